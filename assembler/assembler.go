package assembler

import (
	"io"
	"log/slog"
	"strings"
)

// Assembler turns SIC/XE source into per-section symbol tables and a
// relocatable object module. It keeps no state between Assemble calls.
type Assembler struct {
	set InstructionSet
	log *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sends diagnostics such as unresolved symbols to l.
func WithLogger(l *slog.Logger) Option {
	return func(asm *Assembler) {
		if l != nil {
			asm.log = l
		}
	}
}

// New creates an Assembler for the given instruction set.
func New(set InstructionSet, opts ...Option) *Assembler {
	asm := &Assembler{
		set: set,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(asm)
	}
	return asm
}

// Program is the result of one assembly run.
type Program struct {
	Sections []*Section
	records  [][]Record
}

// Assemble runs Pass 1 over all lines, then Pass 2 over every section.
func (asm *Assembler) Assemble(lines []string) (*Program, error) {
	sections, err := asm.pass1(lines)
	if err != nil {
		return nil, err
	}

	p := &Program{Sections: sections}
	start := entryPoint(sections)
	for i, s := range sections {
		p.records = append(p.records, s.pass2(i == 0, start))
	}
	asm.log.Debug("assembly complete", "sections", len(sections))
	return p, nil
}

// AssembleSource splits src into lines and assembles them.
func (asm *Assembler) AssembleSource(src string) (*Program, error) {
	src = strings.TrimSuffix(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	return asm.Assemble(strings.Split(src, "\n"))
}

// entryPoint is the END operand when it names a symbol of the first section,
// otherwise the first instruction of the first section.
func entryPoint(sections []*Section) entry {
	if len(sections) == 0 {
		return entry{}
	}
	first := sections[0]
	for _, s := range sections {
		for _, t := range s.Tokens {
			if t.Mnemonic() != DirEnd || t.Target.Kind != OperandSimple {
				continue
			}
			if t.Target.Numeric {
				return entry{address: t.Target.Value, ok: true}
			}
			if v, ok := first.Symbols.Lookup(t.Target.Symbol); ok {
				return entry{address: v, ok: true}
			}
		}
	}
	if loc, ok := first.firstInstruction(); ok {
		return entry{address: loc, ok: true}
	}
	return entry{}
}

// Records returns the object records of section i.
func (p *Program) Records(i int) []Record {
	if i < 0 || i >= len(p.records) {
		return nil
	}
	return p.records[i]
}

// AllRecords returns every record, sections concatenated.
func (p *Program) AllRecords() []Record {
	var out []Record
	for _, recs := range p.records {
		out = append(out, recs...)
	}
	return out
}
