package assembler

import (
	"fmt"
	"log/slog"
)

// Section is one control section: its tables, its tokens and its location counter.
type Section struct {
	Name  string
	Index int
	// Start is the location the section was opened at.
	Start int
	// Loc is the running location counter.
	Loc int

	Symbols   *SymbolTable
	Literals  *LiteralTable
	Externals *SymbolTable
	Mods      *ModificationTable
	Tokens    []*Token

	// tail holds literals no LTORG or END placed before the section closed.
	tail []Symbol
	log  *slog.Logger
}

func newSection(name string, index, start int, log *slog.Logger) *Section {
	return &Section{
		Name:      name,
		Index:     index,
		Start:     start,
		Loc:       start,
		Symbols:   NewSymbolTable(),
		Literals:  NewLiteralTable(),
		Externals: NewSymbolTable(),
		Mods:      &ModificationTable{},
		log:       log.With("section", name),
	}
}

// Length is the byte size of the section: every token plus every literal,
// less the start location.
func (s *Section) Length() int {
	size := s.Literals.Size()
	for _, t := range s.Tokens {
		size += t.Size
	}
	return size - s.Start
}

// add places a token at the current location.
func (s *Section) add(t *Token) {
	t.Location = s.Loc
	s.Tokens = append(s.Tokens, t)
}

// close places literals that were never flushed at the end of the section.
func (s *Section) close() {
	if s.Literals.Pending() {
		s.tail, s.Loc = s.Literals.Flush(s.Loc)
	}
}

// evaluate resolves an EQU operand: *, a symbol, a number, or A-B.
func (s *Section) evaluate(op Operand) (int, error) {
	switch op.Kind {
	case OperandCurrent:
		return s.Loc, nil
	case OperandExpr:
		return s.symbol(op.Symbol) - s.symbol(op.Right), nil
	case OperandSimple:
		if op.Numeric {
			return op.Value, nil
		}
		return s.symbol(op.Symbol), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadExpression, op.Raw)
}

// symbol looks a name up in the section symbol table and logs misses.
func (s *Section) symbol(name string) int {
	v, ok := s.Symbols.Lookup(name)
	if !ok {
		s.log.Warn("undefined symbol", "symbol", name)
		return NotFound
	}
	return v
}

// recordModifications registers relocation entries for operands that name
// external references.
func (s *Section) recordModifications(t *Token) {
	if s.Externals.Len() == 0 || t.Size == 0 || t.IsReservation() {
		return
	}

	width := 6
	if t.IsExtended() {
		width = 5
	}
	loc := t.Location + (6 - width)

	op := t.Target
	switch op.Kind {
	case OperandExpr:
		if s.Externals.Has(op.Symbol) || s.Externals.Has(op.Right) {
			s.Mods.Put("+"+op.Symbol, loc, width)
			s.Mods.Put("-"+op.Right, loc, width)
		}
	case OperandSimple, OperandIndirect, OperandImmediate:
		if !op.Numeric && s.Externals.Has(op.Symbol) {
			s.Mods.Put("+"+op.Symbol, loc, width)
		}
	}
}

// isExternal is true when any name the operand uses is an external reference.
func (s *Section) isExternal(op Operand) bool {
	for _, name := range op.Symbols() {
		if s.Externals.Has(name) {
			return true
		}
	}
	return false
}

// firstInstruction returns the location of the first instruction token.
func (s *Section) firstInstruction() (int, bool) {
	for _, t := range s.Tokens {
		if t.IsInstruction() {
			return t.Location, true
		}
	}
	return 0, false
}
