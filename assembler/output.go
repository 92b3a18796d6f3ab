package assembler

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSymbols writes "<name>\t<HEX>" per label, with a blank line after each section.
func (p *Program) WriteSymbols(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range p.Sections {
		for _, sym := range s.Symbols.Entries() {
			fmt.Fprintf(bw, "%s\t%X\n", sym.Name, uint32(sym.Value))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteObject writes the object module, with a blank line after each End record.
func (p *Program) WriteObject(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range p.AllRecords() {
		bw.WriteString(r.String() + "\n")
		if r.Kind == RecordEnd {
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}
