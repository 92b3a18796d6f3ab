package assembler

import (
	"fmt"
	"log/slog"
	"strings"
)

// context is the state Pass 1 carries from line to line. Nothing here outlives
// one Assemble call.
type context struct {
	sections []*Section
	active   *Section
	// pending holds comment lines seen before the first section opened.
	pending []*Token
	log     *slog.Logger
}

// pass1 tokenizes every line, opens sections, binds labels and places literals.
func (asm *Assembler) pass1(lines []string) ([]*Section, error) {
	ctx := &context{log: asm.log}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tok, err := Parse(line, asm.set)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := ctx.step(tok); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if ctx.active != nil {
		ctx.active.close()
	}
	return ctx.sections, nil
}

// open starts a new control section at a START or CSECT token. Every section
// is relocatable and counts from 0; a START operand is checked but does not
// move the location counter.
func (ctx *context) open(t *Token) error {
	if t.Mnemonic() == DirStart && t.Target.Raw != "" {
		v, err := parseHex(t.Target.Raw)
		if err != nil {
			return fmt.Errorf("START address: %w", err)
		}
		if v != 0 {
			ctx.log.Warn("START address ignored, section starts at 0", "section", t.Label, "address", t.Target.Raw)
		}
	}
	if ctx.active != nil {
		ctx.active.close()
	}

	s := newSection(t.Label, len(ctx.sections), 0, ctx.log)
	s.Tokens = append(s.Tokens, ctx.pending...)
	ctx.pending = nil
	ctx.sections = append(ctx.sections, s)
	ctx.active = s
	s.log.Debug("section opened", "index", s.Index)
	return nil
}

// section returns the active section, opening an unnamed one for code that
// precedes any START.
func (ctx *context) section() *Section {
	if ctx.active == nil {
		ctx.active = newSection("", 0, 0, ctx.log)
		ctx.active.Tokens = ctx.pending
		ctx.pending = nil
		ctx.sections = append(ctx.sections, ctx.active)
	}
	return ctx.active
}

// step runs Pass 1 for one token.
func (ctx *context) step(t *Token) error {
	switch t.Mnemonic() {
	case DirStart, DirCsect:
		if err := ctx.open(t); err != nil {
			return err
		}
	}

	if t.IsComment() && ctx.active == nil {
		ctx.pending = append(ctx.pending, t)
		return nil
	}

	s := ctx.section()
	s.add(t)
	if t.IsComment() {
		return nil
	}

	if t.Label != "" {
		if t.Mnemonic() == DirEqu {
			v, err := s.evaluate(t.Target)
			if err != nil {
				return err
			}
			s.Symbols.Put(t.Label, v)
		} else {
			s.Symbols.Put(t.Label, s.Loc)
		}
	}
	if t.Target.Kind == OperandLiteral {
		s.Literals.Put(t.Target.Symbol, 0)
	}

	switch t.Mnemonic() {
	case DirLtorg, DirEnd:
		t.Pool, s.Loc = s.Literals.Flush(s.Loc)
	case DirExtref:
		for _, name := range t.Operands {
			s.Externals.Put(name, 0)
		}
	default:
		s.recordModifications(t)
	}

	s.Loc += t.Size
	return nil
}
