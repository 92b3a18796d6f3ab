package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/sicasm/machine"
)

// PC-relative displacement range of format 3.
const (
	minDisp = -2048
	maxDisp = 2047
)

// Encode lets every token of the section produce its object code. It only
// reads the section tables, so Pass 1 must be complete.
func (s *Section) Encode() {
	for _, t := range s.Tokens {
		t.Code = s.encode(t)
	}
}

func (s *Section) encode(t *Token) string {
	if t.IsComment() || t.Operator == "" {
		return ""
	}

	if t.IsInstruction() {
		switch {
		case t.Size >= 3:
			return s.encodeFormat34(t)
		case t.spec.Format == 2:
			return encodeFormat2(t)
		default:
			return fmt.Sprintf("%02X", t.spec.Opcode)
		}
	}

	switch t.Mnemonic() {
	case DirByte:
		return s.encodeByte(t)
	case DirWord:
		return s.encodeWord(t)
	}
	return ""
}

// encodeFormat34 packs opcode|ni, xbpe and the 3 or 5 digit address field.
func (s *Section) encodeFormat34(t *Token) string {
	opcode := t.spec.Opcode | t.Flags.NI()
	digits := machine.AddressDigits(t.Size)

	target := 0
	if t.spec.Operands > 0 && t.Target.Kind != OperandNone {
		var resolved bool
		target, resolved = s.resolve(t.Target)

		switch {
		case t.Flags.IsExtended(), s.isExternal(t.Target):
			// Format 4 fields are left for the loader to patch.
			target = 0
		case t.Flags.IsPCRelative():
			target -= t.Location + t.Size
			if resolved && (target < minDisp || target > maxDisp) {
				s.log.Warn("displacement out of range",
					"location", fmt.Sprintf("%04X", t.Location), "operand", t.Target.Raw, "disp", target)
			}
		}
	}

	return fmt.Sprintf("%02X%X", opcode, t.Flags.XBPE()) + machine.Truncate(target, digits)
}

// resolve finds the address an operand refers to. Unresolved names yield NotFound.
func (s *Section) resolve(op Operand) (int, bool) {
	switch op.Kind {
	case OperandLiteral:
		if v, ok := s.Literals.Lookup(op.Symbol); ok {
			return v, true
		}
		return NotFound, false

	case OperandExpr:
		l, lok := s.Symbols.Lookup(op.Symbol)
		r, rok := s.Symbols.Lookup(op.Right)
		if !lok || !rok {
			s.unresolved(op)
			return NotFound, false
		}
		return l - r, true

	case OperandImmediate, OperandIndirect, OperandSimple:
		if op.Numeric {
			return op.Value, true
		}
		if v, ok := s.Symbols.Lookup(op.Symbol); ok {
			return v, true
		}
		s.unresolved(op)
		return NotFound, false
	}
	return NotFound, false
}

// unresolved logs names that are neither defined nor declared external.
func (s *Section) unresolved(op Operand) {
	if s.isExternal(op) {
		return
	}
	s.log.Warn("unresolved symbol", "operand", op.Raw)
}

func encodeFormat2(t *Token) string {
	var r [2]int
	for i := 0; i < len(r) && i < len(t.Args) && i < t.spec.Operands; i++ {
		r[i] = t.Args[i].Value
	}
	// SHIFTL and SHIFTR encode the count minus one.
	if strings.HasPrefix(t.Mnemonic(), "SHIFT") && len(t.Args) > 1 && t.Args[1].Kind != OperandRegister {
		r[1]--
	}
	return fmt.Sprintf("%02X%X%X", t.spec.Opcode, r[0]&0xF, r[1]&0xF)
}

func (s *Section) encodeByte(t *Token) string {
	op := t.Target
	switch {
	case op.Kind == OperandConstant:
		return LiteralHex(op.Symbol)
	case op.Numeric:
		return machine.Truncate(op.Value, 2)
	}
	return ""
}

// encodeWord emits a 24-bit constant. References to external symbols leave a
// zero placeholder for the modification records made in Pass 1.
func (s *Section) encodeWord(t *Token) string {
	op := t.Target
	if s.isExternal(op) {
		return machine.Truncate(0, machine.WordDigits)
	}
	v, _ := s.resolve(op)
	return machine.Truncate(v, machine.WordDigits)
}
