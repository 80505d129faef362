package cpu

import "gone8080/mask"

// Flags holds the five architectural status bits of the 8080. Unlike
// InterruptsEnabled (which lives on State directly and has no PSW bit),
// these five are exactly what PUSH
// PSW / POP PSW exchange with memory.
type Flags struct {
	Sign     bool
	Zero     bool
	AuxCarry bool
	Parity   bool
	Carry    bool
}

// PSW bit layout: S Z 0 AC 0 P 1 CY (bit 7 = S ... bit 0 = CY). Bits 5 and
// 3 are always zero; bit 1 is always one.
const (
	pswSign     = 1 << 7
	pswZero     = 1 << 6
	pswAuxCarry = 1 << 4
	pswParity   = 1 << 2
	pswFixedOne = 1 << 1
	pswCarry    = 1 << 0
)

// PackPSW encodes the flags (and only the flags; A is not part of this
// byte) into the Processor Status Word layout used by PUSH PSW.
func (f Flags) PackPSW() byte {
	var b byte = pswFixedOne
	if f.Sign {
		b |= pswSign
	}
	if f.Zero {
		b |= pswZero
	}
	if f.AuxCarry {
		b |= pswAuxCarry
	}
	if f.Parity {
		b |= pswParity
	}
	if f.Carry {
		b |= pswCarry
	}
	return b
}

// UnpackPSW decodes a PSW byte into Flags, discarding the fixed bits.
func UnpackPSW(b byte) Flags {
	return Flags{
		Sign:     mask.IsSet(b, mask.I1),
		Zero:     mask.IsSet(b, mask.I2),
		AuxCarry: mask.IsSet(b, mask.I4),
		Parity:   mask.IsSet(b, mask.I6),
		Carry:    mask.IsSet(b, mask.I8),
	}
}

// PackPSW returns the current PSW byte: A in the high byte, packed flags
// in the low byte, as required by PUSH PSW.
func (s *State) PackPSW() uint16 {
	return pack(s.A, s.Flags.PackPSW())
}

// SetPSW restores A and Flags from a PSW word, as required by POP PSW.
func (s *State) SetPSW(v uint16) {
	s.A = byte(v >> 8)
	s.Flags = UnpackPSW(byte(v))
}

// Parity reports whether b has an even number of set bits, the 8080's
// definition of the P flag.
func Parity(b byte) bool {
	count := 0
	for i := mask.I1; i <= mask.I8; i++ {
		if mask.IsSet(b, i) {
			count++
		}
	}
	return count%2 == 0
}

// SetSZP sets Sign, Zero and Parity from an 8-bit result, the three flags
// every arithmetic, logical and INR/DCR instruction updates identically.
func (f *Flags) SetSZP(result byte) {
	f.Sign = result&0x80 != 0
	f.Zero = result == 0
	f.Parity = Parity(result)
}

// AddAuxCarry reports the canonical 8080 auxiliary-carry definition for
// ADD-family operations: carry out of bit 3 when summing a+b+carryIn.
//
// The source this core is modeled on instead compares result&0x10 against
// a&0x10, which diverges from hardware for some operand pairs (see §9);
// this implementation uses the canonical definition instead.
func AddAuxCarry(a, b byte, carryIn bool) bool {
	var c byte
	if carryIn {
		c = 1
	}
	return (a&0x0F)+(b&0x0F)+c > 0x0F
}

// SubAuxCarry reports the canonical 8080 auxiliary-carry definition for
// SUB-family operations: borrow into bit 4.
func SubAuxCarry(a, b byte, borrowIn bool) bool {
	var c byte
	if borrowIn {
		c = 1
	}
	return int(a&0x0F)-int(b&0x0F)-int(c) < 0
}

// IncAuxCarry and DecAuxCarry give the AC definition for INR/DCR: carry or
// borrow between bit 3 and bit 4 of the result versus the pre-value.
func IncAuxCarry(pre byte) bool { return pre&0x0F == 0x0F }
func DecAuxCarry(pre byte) bool { return pre&0x0F == 0x00 }
