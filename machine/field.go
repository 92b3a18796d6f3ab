package machine

import "fmt"

// Address field widths in hex digits.
const (
	// DispDigits is the 12-bit displacement of format 3.
	DispDigits = 3
	// AddrDigits is the 20-bit address of format 4.
	AddrDigits = 5
	// WordDigits is one 24-bit word.
	WordDigits = 6
)

// Word sizes in bytes.
const (
	WordSize = 3
	// MaxTextBytes is the most object code one text record may carry.
	MaxTextBytes = 30
)

// Truncate renders v as exactly digits uppercase hex digits. Negative values
// come out in two's complement.
func Truncate(v, digits int) string {
	mask := uint64(1)<<(4*uint(digits)) - 1
	return fmt.Sprintf("%0*X", digits, uint64(int64(v))&mask)
}

// AddressDigits returns the address field width of an instruction of the given size.
func AddressDigits(size int) int {
	if size == 4 {
		return AddrDigits
	}
	return DispDigits
}
