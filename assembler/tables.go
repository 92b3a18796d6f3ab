package assembler

import "strings"

// NotFound is what Search returns for an unknown name.
const NotFound = -1

// Symbol is one name/value pair of a section table.
type Symbol struct {
	Name  string
	Value int
}

// SymbolTable is an append-only, insertion-ordered name to value mapping.
type SymbolTable struct {
	index   map[string]int
	entries []Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// Put adds a name. A leading literal marker is stripped, and a name that is
// already present keeps its first value.
func (t *SymbolTable) Put(name string, value int) {
	name = strings.TrimPrefix(name, "=")
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Symbol{Name: name, Value: value})
}

// Modify patches the value of an existing name. Unknown names are ignored.
func (t *SymbolTable) Modify(name string, value int) {
	if i, ok := t.index[strings.TrimPrefix(name, "=")]; ok {
		t.entries[i].Value = value
	}
}

// Search returns the value of name, or NotFound.
func (t *SymbolTable) Search(name string) int {
	if v, ok := t.Lookup(name); ok {
		return v
	}
	return NotFound
}

// Lookup returns the value of name and whether it exists.
func (t *SymbolTable) Lookup(name string) (int, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Value, true
}

// Has reports whether name is present.
func (t *SymbolTable) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of entries.
func (t *SymbolTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in insertion order.
func (t *SymbolTable) Entries() []Symbol {
	out := make([]Symbol, len(t.entries))
	copy(out, t.entries)
	return out
}

// LiteralTable holds a section's literal pool. Names are the literal text
// without "=", such as C'EOF' or X'05'.
type LiteralTable struct {
	SymbolTable
	placed []bool
}

// NewLiteralTable returns an empty pool.
func NewLiteralTable() *LiteralTable {
	return &LiteralTable{SymbolTable: SymbolTable{index: make(map[string]int)}}
}

// Put registers a literal with a placeholder address.
func (t *LiteralTable) Put(text string, value int) {
	n := t.Len()
	t.SymbolTable.Put(text, value)
	if t.Len() > n {
		t.placed = append(t.placed, false)
	}
}

// Flush places every still-unlocated literal at loc, in table order, and
// returns the placed literals and the location after them.
func (t *LiteralTable) Flush(loc int) ([]Symbol, int) {
	var pool []Symbol
	for i := range t.entries {
		if t.placed[i] {
			continue
		}
		t.placed[i] = true
		t.entries[i].Value = loc
		pool = append(pool, t.entries[i])
		loc += LiteralSize(t.entries[i].Name)
	}
	return pool, loc
}

// Pending reports whether some literal still has no address.
func (t *LiteralTable) Pending() bool {
	for _, p := range t.placed {
		if !p {
			return true
		}
	}
	return false
}

// Size is the total byte size of all literals in the pool.
func (t *LiteralTable) Size() int {
	size := 0
	for _, e := range t.entries {
		size += LiteralSize(e.Name)
	}
	return size
}

// Modification asks the linker to patch Width nibbles at Location with the
// value of Symbol, whose first character is the sign.
type Modification struct {
	Symbol   string
	Location int
	Width    int
}

// ModificationTable collects relocation entries in the order they were found.
type ModificationTable struct {
	entries []Modification
}

// Put appends an entry.
func (t *ModificationTable) Put(signedName string, location, width int) {
	t.entries = append(t.entries, Modification{Symbol: signedName, Location: location, Width: width})
}

func (t *ModificationTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in insertion order.
func (t *ModificationTable) Entries() []Modification {
	out := make([]Modification, len(t.entries))
	copy(out, t.entries)
	return out
}
