package assembler

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/sicasm/machine"
)

var (
	// ErrMalformedNumber is returned for numeric fields that do not parse.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrBadExpression is returned for address expressions outside the supported forms.
	ErrBadExpression = errors.New("unsupported address expression")
)

// OperandKind tags how an operand addresses its target.
type OperandKind int

const (
	// OperandNone means the field was empty.
	OperandNone OperandKind = iota
	// OperandRegister is a format 2 register name.
	OperandRegister
	// OperandImmediate is #value or #symbol.
	OperandImmediate
	// OperandIndirect is @symbol.
	OperandIndirect
	// OperandSimple is a bare symbol or number.
	OperandSimple
	// OperandLiteral is a =X'..' or =C'..' pool reference.
	OperandLiteral
	// OperandConstant is an inline X'..' or C'..' constant as used by BYTE.
	OperandConstant
	// OperandExpr is symbol-symbol.
	OperandExpr
	// OperandCurrent is "*", the current location.
	OperandCurrent
)

var kindNames = [...]string{"none", "register", "immediate", "indirect", "simple", "literal", "constant", "expr", "current"}

func (k OperandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Operand is an operand field classified once at tokenize time.
type Operand struct {
	Kind OperandKind
	Raw  string
	// Symbol is the referenced name, the literal text without "=", or the left side of an Expr.
	Symbol string
	// Right is the subtracted symbol of an Expr.
	Right string
	// Value holds register codes and numeric values.
	Value int
	// Numeric is true when Value, not Symbol, carries the operand.
	Numeric bool
}

// Symbols returns the names the operand refers to.
func (o Operand) Symbols() []string {
	switch o.Kind {
	case OperandExpr:
		return []string{o.Symbol, o.Right}
	case OperandImmediate, OperandIndirect, OperandSimple:
		if !o.Numeric {
			return []string{o.Symbol}
		}
	}
	return nil
}

var (
	reConstant = regexp.MustCompile(`^([CX])'(.*)'$`)
	reExpr     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)-([A-Za-z_][A-Za-z0-9_]*)$`)
	reSymbol   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reNumber   = regexp.MustCompile(`^-?[0-9]+$`)
	reHexBytes = regexp.MustCompile(`^([0-9A-Fa-f]{2})*$`)
)

// checkConstant rejects X'..' constants that are not whole bytes of hex digits.
func checkConstant(text string) error {
	m := reConstant.FindStringSubmatch(text)
	if m != nil && m[1] == "X" && !reHexBytes.MatchString(m[2]) {
		return fmt.Errorf("%w: hex constant %s", ErrMalformedNumber, text)
	}
	return nil
}

// parseOperand classifies one raw operand field.
func parseOperand(s string) (Operand, error) {
	op := Operand{Raw: s}

	switch {
	case s == "":
		return op, nil

	case s == "*":
		op.Kind = OperandCurrent
		return op, nil

	case strings.HasPrefix(s, "#"):
		op.Kind = OperandImmediate
		return parseTarget(op, s[1:])

	case strings.HasPrefix(s, "@"):
		op.Kind = OperandIndirect
		return parseTarget(op, s[1:])

	case strings.HasPrefix(s, "="):
		op.Kind = OperandLiteral
		op.Symbol = s[1:]
		if !isConstant(op.Symbol) && !reNumber.MatchString(op.Symbol) {
			return op, fmt.Errorf("%w: literal %s", ErrMalformedNumber, s)
		}
		return op, checkConstant(op.Symbol)

	case reConstant.MatchString(s):
		op.Kind = OperandConstant
		op.Symbol = s
		return op, checkConstant(s)

	case reExpr.MatchString(s):
		m := reExpr.FindStringSubmatch(s)
		op.Kind = OperandExpr
		op.Symbol = m[1]
		op.Right = m[2]
		return op, nil
	}

	op.Kind = OperandSimple
	return parseTarget(op, s)
}

// parseTarget fills in a symbol or numeric target.
func parseTarget(op Operand, s string) (Operand, error) {
	if reSymbol.MatchString(s) {
		op.Symbol = s
		return op, nil
	}
	v, err := parseDecimal(s)
	if err != nil {
		return op, err
	}
	op.Value = v
	op.Numeric = true
	return op, nil
}

// parseRegister classifies a format 2 operand: a register name or a small number.
func parseRegister(s string) (Operand, error) {
	if r, ok := machine.Register(s); ok {
		return Operand{Kind: OperandRegister, Raw: s, Value: int(r), Numeric: true}, nil
	}
	return parseOperand(s)
}

func parseDecimal(s string) (int, error) {
	if !reNumber.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return v, nil
}

func parseHex(s string) (int, error) {
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return int(v), nil
}
