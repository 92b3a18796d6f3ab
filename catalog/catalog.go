package catalog

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every error Load returns for a bad specification line.
var ErrMalformed = errors.New("malformed instruction specification")

//go:embed sicxe.inst
var defaultSet embed.FS

// Spec describes one machine instruction.
type Spec struct {
	Mnemonic string
	// Format is the base encoding size in bytes: 1, 2 or 3. Format 4 is selected per use with "+".
	Format int
	Opcode byte
	// Operands is the number of operands the instruction takes.
	Operands int
}

// Catalog maps mnemonics to their specifications. It is read-only after loading.
type Catalog struct {
	specs map[string]Spec
}

// Load reads one instruction per line in the form "<mnemonic> <format> <opcodeHex> <operands>".
// A malformed line aborts the whole load.
func Load(r io.Reader) (*Catalog, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading instruction specification: %w", err)
	}
	return LoadLines(lines)
}

// LoadLines builds a catalog from already split lines. Later duplicates overwrite earlier ones.
func LoadLines(lines []string) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]Spec, len(lines))}
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		spec, err := parseSpec(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		c.specs[spec.Mnemonic] = spec
	}
	return c, nil
}

func parseSpec(fields []string) (Spec, error) {
	if len(fields) != 4 {
		return Spec{}, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformed, len(fields))
	}

	format, err := strconv.Atoi(fields[1])
	if err != nil || format < 1 || format > 3 {
		return Spec{}, fmt.Errorf("%w: invalid format %q", ErrMalformed, fields[1])
	}
	opcode, err := strconv.ParseUint(fields[2], 16, 8)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: invalid opcode %q", ErrMalformed, fields[2])
	}
	operands, err := strconv.Atoi(fields[3])
	if err != nil || operands < 0 || operands > 3 {
		return Spec{}, fmt.Errorf("%w: invalid operand count %q", ErrMalformed, fields[3])
	}

	return Spec{
		Mnemonic: fields[0],
		Format:   format,
		Opcode:   byte(opcode),
		Operands: operands,
	}, nil
}

// Default returns the standard SIC/XE instruction set.
func Default() *Catalog {
	f, err := defaultSet.Open("sicxe.inst")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the specification for a mnemonic. Unknown mnemonics report false.
func (c *Catalog) Lookup(mnemonic string) (Spec, bool) {
	spec, ok := c.specs[mnemonic]
	return spec, ok
}

// IsInstruction tells real opcodes apart from assembler directives.
func (c *Catalog) IsInstruction(name string) bool {
	_, ok := c.specs[name]
	return ok
}

// Len returns the number of known instructions.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// Mnemonics returns all known mnemonics in sorted order.
func (c *Catalog) Mnemonics() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
