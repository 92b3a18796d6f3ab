package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/sicasm/machine"
)

// RecordKind is the leading character of an object record.
type RecordKind byte

// Object record kinds, in the order they appear within a section.
const (
	RecordHeader       RecordKind = 'H'
	RecordDefine       RecordKind = 'D'
	RecordRefer        RecordKind = 'R'
	RecordText         RecordKind = 'T'
	RecordModification RecordKind = 'M'
	RecordEnd          RecordKind = 'E'
)

// Record is one line of the object module. Which fields are used depends on Kind:
//
//	Header:       Name, Address (start), Length
//	Define:       Symbols (name and address)
//	Refer:        Symbols (names only)
//	Text:         Address, Length (bytes), Code
//	Modification: Address, Length (nibbles), Name (signed symbol)
//	End:          Address when HasAddress
type Record struct {
	Kind       RecordKind
	Name       string
	Address    int
	Length     int
	Symbols    []Symbol
	Code       string
	HasAddress bool
}

func word(v int) string {
	return machine.Truncate(v, machine.WordDigits)
}

// String renders the record in object module format.
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteByte(byte(r.Kind))

	switch r.Kind {
	case RecordHeader:
		sb.WriteString(r.Name + " " + word(r.Address) + word(r.Length))

	case RecordDefine:
		for _, sym := range r.Symbols {
			sb.WriteString(sym.Name + word(sym.Value))
		}

	case RecordRefer:
		for _, sym := range r.Symbols {
			sb.WriteString(sym.Name)
		}

	case RecordText:
		fmt.Fprintf(&sb, "%s%s%s", word(r.Address), machine.Truncate(r.Length, 2), r.Code)

	case RecordModification:
		fmt.Fprintf(&sb, "%s%s%s", word(r.Address), machine.Truncate(r.Length, 2), r.Name)

	case RecordEnd:
		if r.HasAddress {
			sb.WriteString(word(r.Address))
		}
	}
	return sb.String()
}
