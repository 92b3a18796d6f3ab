package assembler

import (
	"github.com/Urethramancer/sicasm/machine"
)

// entry is the program start address written to the first End record.
type entry struct {
	address int
	ok      bool
}

// pass2 encodes one section and assembles its records in source order.
func (s *Section) pass2(first bool, start entry) []Record {
	s.Encode()

	var recs []Record
	toks := s.Tokens
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.IsComment() {
			continue
		}

		switch t.Mnemonic() {
		case DirStart, DirCsect:
			recs = append(recs, Record{Kind: RecordHeader, Name: t.Label, Address: s.Start, Length: s.Length()})

		case DirExtdef:
			def := Record{Kind: RecordDefine}
			for _, name := range t.Operands {
				def.Symbols = append(def.Symbols, Symbol{Name: name, Value: s.symbol(name)})
			}
			recs = append(recs, def)

		case DirExtref:
			ref := Record{Kind: RecordRefer}
			for _, name := range t.Operands {
				ref.Symbols = append(ref.Symbols, Symbol{Name: name})
			}
			recs = append(recs, ref)

		case DirLtorg, DirEnd:
			recs = append(recs, poolText(t.Location, t.Pool)...)

		default:
			if t.Code == "" || t.Size == 0 || t.IsReservation() {
				continue
			}
			next := s.textRun(i)
			recs = append(recs, textRecords(toks[i:next])...)
			i = next - 1
		}
	}

	if len(s.tail) > 0 {
		recs = append(recs, poolText(s.tail[0].Value, s.tail)...)
	}

	for _, m := range s.Mods.Entries() {
		recs = append(recs, Record{Kind: RecordModification, Address: m.Location, Length: m.Width, Name: m.Symbol})
	}

	end := Record{Kind: RecordEnd}
	if first {
		end.HasAddress = true
		end.Address = s.Start
		if start.ok {
			end.Address = start.address
		}
	}
	return append(recs, end)
}

// textRun returns the index after the last token that fits in the text
// record starting at token i.
func (s *Section) textRun(i int) int {
	size := 0
	j := i
	for ; j < len(s.Tokens); j++ {
		t := s.Tokens[j]
		if t.Size == 0 || t.IsReservation() || size+t.Size > machine.MaxTextBytes {
			break
		}
		size += t.Size
	}
	if j == i {
		// A single token larger than one record.
		j++
	}
	return j
}

// textRecords builds the text record for a run of tokens.
func textRecords(run []*Token) []Record {
	size := 0
	code := ""
	for _, t := range run {
		size += t.Size
		code += t.Code
	}
	if size > machine.MaxTextBytes {
		return splitText(run[0].Location, code)
	}
	return []Record{{Kind: RecordText, Address: run[0].Location, Length: size, Code: code}}
}

// poolText renders placed literals as text records starting at loc.
func poolText(loc int, pool []Symbol) []Record {
	if len(pool) == 0 {
		return nil
	}
	code := ""
	for _, lit := range pool {
		code += LiteralHex(lit.Name)
	}
	return splitText(loc, code)
}

// splitText cuts object code into records of at most MaxTextBytes.
func splitText(loc int, code string) []Record {
	var recs []Record
	const chunk = machine.MaxTextBytes * 2
	for len(code) > 0 {
		n := min(chunk, len(code))
		recs = append(recs, Record{Kind: RecordText, Address: loc, Length: (n + 1) / 2, Code: code[:n]})
		loc += n / 2
		code = code[n:]
	}
	return recs
}
