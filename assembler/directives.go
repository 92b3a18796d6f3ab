package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/sicasm/machine"
)

// Directive names.
const (
	DirStart  = "START"
	DirCsect  = "CSECT"
	DirExtdef = "EXTDEF"
	DirExtref = "EXTREF"
	DirEqu    = "EQU"
	DirLtorg  = "LTORG"
	DirEnd    = "END"
	DirByte   = "BYTE"
	DirWord   = "WORD"
	DirResb   = "RESB"
	DirResw   = "RESW"
)

// getDirectiveSize returns the bytes a directive reserves or emits.
func getDirectiveSize(dir string, op Operand) (int, error) {
	switch dir {
	case DirResb, DirResw:
		if op.Kind != OperandSimple || !op.Numeric || op.Value < 0 {
			return 0, fmt.Errorf("%w: %s count %q", ErrMalformedNumber, dir, op.Raw)
		}
		if dir == DirResw {
			return op.Value * machine.WordSize, nil
		}
		return op.Value, nil

	case DirByte:
		if op.Kind == OperandConstant {
			return LiteralSize(op.Symbol), nil
		}
		return 1, nil

	case DirWord:
		return machine.WordSize, nil

	default:
		// START, CSECT, EXTDEF, EXTREF, EQU, LTORG, END and anything unknown.
		return 0, nil
	}
}

func isConstant(text string) bool {
	return reConstant.MatchString(text)
}

// LiteralSize derives the byte size of a literal or constant from its own text:
// X'..' holds two hex digits per byte, C'..' one byte per character, and a
// plain decimal literal is one word.
func LiteralSize(text string) int {
	text = strings.TrimPrefix(text, "=")
	if m := reConstant.FindStringSubmatch(text); m != nil {
		if m[1] == "X" {
			return len(m[2]) / 2
		}
		return len(m[2])
	}
	if reNumber.MatchString(text) {
		return machine.WordSize
	}
	return 0
}

// LiteralHex renders a literal or constant as object code.
func LiteralHex(text string) string {
	text = strings.TrimPrefix(text, "=")
	if m := reConstant.FindStringSubmatch(text); m != nil {
		if m[1] == "X" {
			return strings.ToUpper(m[2])
		}
		var sb strings.Builder
		for i := 0; i < len(m[2]); i++ {
			fmt.Fprintf(&sb, "%02X", m[2][i])
		}
		return sb.String()
	}
	if v, err := parseDecimal(text); err == nil {
		return machine.Truncate(v, machine.WordDigits)
	}
	return ""
}
