package machine

// Register numbers as encoded in format 2 instructions.
const (
	RegA  = 0
	RegX  = 1
	RegL  = 2
	RegB  = 3
	RegS  = 4
	RegT  = 5
	RegF  = 6
	RegPC = 8
	RegSW = 9
)

var registers = map[string]byte{
	"A":  RegA,
	"X":  RegX,
	"L":  RegL,
	"B":  RegB,
	"S":  RegS,
	"T":  RegT,
	"F":  RegF,
	"PC": RegPC,
	"SW": RegSW,
}

// Register returns the code for a register name.
func Register(name string) (byte, bool) {
	r, ok := registers[name]
	return r, ok
}
