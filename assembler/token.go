package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/sicasm/catalog"
	"github.com/Urethramancer/sicasm/machine"
)

const (
	// MaxOperands is the most comma separated operands a line may carry.
	MaxOperands = 3

	extendedMarker = "+"
	commentLabel   = "."
	fieldSep       = "\t"
)

// InstructionSet is the lookup capability the tokenizer needs from a catalog.
type InstructionSet interface {
	Lookup(mnemonic string) (catalog.Spec, bool)
}

// Token is one parsed source line.
type Token struct {
	// Location is the location counter before this token.
	Location int
	Label    string
	// Operator may carry a leading "+" for format 4.
	Operator string
	Operands []string
	Comment  string
	Flags    machine.Flags
	Size     int
	// Code is the object code in hex, filled in by Section.Encode.
	Code string

	// Target is the classified first operand.
	Target Operand
	// Args holds every classified operand.
	Args []Operand
	// Pool lists the literals an LTORG or END placed.
	Pool []Symbol

	spec  catalog.Spec
	known bool
}

// Parse splits a tab separated line into label, operator, operands and comment,
// then sizes and flags the token with a single catalog lookup.
func Parse(line string, set InstructionSet) (*Token, error) {
	units := strings.Split(strings.TrimRight(line, "\r\n"), fieldSep)
	tok := &Token{Label: strings.TrimSpace(units[0])}

	if tok.Label == commentLabel {
		if len(units) > 1 {
			tok.Comment = strings.Join(units[1:], fieldSep)
		}
		return tok, nil
	}
	if len(units) < 2 {
		return tok, nil
	}

	tok.Operator = strings.TrimSpace(units[1])
	tok.spec, tok.known = set.Lookup(tok.Mnemonic())

	rest := units[2:]
	if tok.known && tok.spec.Operands == 0 {
		tok.Comment = lastField(rest)
	} else {
		if len(rest) > 0 && strings.TrimSpace(rest[0]) != "" {
			tok.Operands = strings.SplitN(strings.TrimSpace(rest[0]), ",", MaxOperands)
		}
		if len(rest) > 1 {
			tok.Comment = strings.Join(rest[1:], fieldSep)
		}
	}

	if err := tok.classify(); err != nil {
		return nil, err
	}
	if err := tok.size(); err != nil {
		return nil, err
	}
	tok.flag()
	return tok, nil
}

func lastField(fields []string) string {
	for i := len(fields) - 1; i >= 0; i-- {
		if f := strings.TrimSpace(fields[i]); f != "" {
			return f
		}
	}
	return ""
}

func (t *Token) classify() error {
	for i, raw := range t.Operands {
		raw = strings.TrimSpace(raw)
		t.Operands[i] = raw

		var op Operand
		var err error
		if t.known && t.spec.Format == 2 {
			op, err = parseRegister(raw)
		} else {
			op, err = parseOperand(raw)
		}
		if err != nil {
			return fmt.Errorf("operand %d of %s: %w", i+1, t.Operator, err)
		}
		t.Args = append(t.Args, op)
	}
	if len(t.Args) > 0 {
		t.Target = t.Args[0]
	}
	return nil
}

func (t *Token) size() error {
	switch {
	case t.IsExtended():
		t.Size = 4
		t.Flags = t.Flags.Set(machine.E)
	case t.known:
		t.Size = t.spec.Format
	default:
		size, err := getDirectiveSize(t.Mnemonic(), t.Target)
		if err != nil {
			return err
		}
		t.Size = size
	}
	return nil
}

// flag computes nixbpe for format 3/4 instructions.
func (t *Token) flag() {
	if t.Size < 3 || !t.IsInstruction() {
		return
	}

	if !t.IsExtended() && t.Target.Kind != OperandNone {
		t.Flags = t.Flags.Set(machine.P)
	}

	switch t.Target.Kind {
	case OperandNone:
		t.Flags = t.Flags.Set(machine.N | machine.I)
	case OperandImmediate:
		t.Flags = t.Flags.Set(machine.I)
		if t.Target.Numeric {
			t.Flags = t.Flags.Clear(machine.P)
		}
	case OperandIndirect:
		t.Flags = t.Flags.Set(machine.N)
	default:
		t.Flags = t.Flags.Set(machine.N | machine.I)
	}

	if len(t.Operands) > 1 && t.Operands[1] == "X" {
		t.Flags = t.Flags.Set(machine.X)
	}
}

// Mnemonic returns the operator without the extended-format marker.
func (t *Token) Mnemonic() string {
	return strings.TrimPrefix(t.Operator, extendedMarker)
}

// IsComment is true for lines labelled ".".
func (t *Token) IsComment() bool {
	return t.Label == commentLabel
}

// IsExtended is true when the operator carries the format 4 marker.
func (t *Token) IsExtended() bool {
	return strings.HasPrefix(t.Operator, extendedMarker)
}

// IsInstruction is true when the operator is a catalog instruction.
func (t *Token) IsInstruction() bool {
	return t.known
}

// Spec returns the catalog entry the token was sized with.
func (t *Token) Spec() (catalog.Spec, bool) {
	return t.spec, t.known
}

// IsReservation is true for RESB and RESW.
func (t *Token) IsReservation() bool {
	m := t.Mnemonic()
	return m == DirResb || m == DirResw
}
