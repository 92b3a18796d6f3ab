package machine

// Flags is the nixbpe addressing field of a format 3/4 instruction.
type Flags uint8

// Addressing flag bits, most significant first.
const (
	// N selects indirect addressing when set without I.
	N Flags = 1 << 5
	// I selects immediate addressing when set without N.
	I Flags = 1 << 4
	// X adds the index register.
	X Flags = 1 << 3
	// B makes the displacement base-relative.
	B Flags = 1 << 2
	// P makes the displacement PC-relative.
	P Flags = 1 << 1
	// E selects the extended format 4.
	E Flags = 1 << 0
)

// Set returns f with the given bits turned on.
func (f Flags) Set(bits Flags) Flags {
	return f | bits
}

// Clear returns f with the given bits turned off, whether or not they were set.
func (f Flags) Clear(bits Flags) Flags {
	return f &^ bits
}

// Has reports whether all given bits are set.
func (f Flags) Has(bits Flags) bool {
	return f&bits == bits
}

// IsIndirect is true for @operand addressing.
func (f Flags) IsIndirect() bool {
	return f&(N|I) == N
}

// IsImmediate is true for #operand addressing.
func (f Flags) IsImmediate() bool {
	return f&(N|I) == I
}

// IsSimple is true when both n and i are set.
func (f Flags) IsSimple() bool {
	return f.Has(N | I)
}

// IsIndexed reports whether x is set.
func (f Flags) IsIndexed() bool { return f.Has(X) }

// IsBaseRelative reports whether b is set.
func (f Flags) IsBaseRelative() bool { return f.Has(B) }

// IsPCRelative reports whether p is set.
func (f Flags) IsPCRelative() bool { return f.Has(P) }

// IsExtended reports whether e is set, selecting format 4.
func (f Flags) IsExtended() bool { return f.Has(E) }

// NI returns the two bits that are added to the opcode byte.
func (f Flags) NI() byte {
	return byte(f>>4) & 0x3
}

// XBPE returns the second nibble of the instruction.
func (f Flags) XBPE() byte {
	return byte(f) & 0xF
}

// String renders the set as "nixbpe" with '-' for clear bits.
func (f Flags) String() string {
	const letters = "nixbpe"
	out := []byte("------")
	for i := range letters {
		if f&(1<<(5-i)) != 0 {
			out[i] = letters[i]
		}
	}
	return string(out)
}
