package interp

import "gone8080/cpu"

// regOrder is the 8080's standard 3-bit register encoding: 000=B, 001=C,
// 010=D, 011=E, 100=H, 101=L, 110=M, 111=A. MOV, MVI, INR, DCR and the
// arithmetic/logical group all address registers through this field.
var regOrder = [8]cpu.Register{
	cpu.RegB, cpu.RegC, cpu.RegD, cpu.RegE,
	cpu.RegH, cpu.RegL, cpu.RegM, cpu.RegA,
}

// pairOrder is the 2-bit register-pair encoding used by LXI/DAD/INX/DCX
// and by PUSH/POP's rp field (rp=3 means SP for LXI/DAD/INX/DCX, but PSW
// for PUSH/POP — callers pick the right table).
var pairOrder = [4]cpu.Pair{cpu.PairBC, cpu.PairDE, cpu.PairHL, cpu.PairSP}

// reg extracts a 3-bit register field starting at bit `shift` of op.
func reg(op byte, shift uint) cpu.Register {
	return regOrder[(op>>shift)&0x7]
}

// pair extracts the 2-bit register-pair field at bit 4.
func pair(op byte) cpu.Pair {
	return pairOrder[(op>>4)&0x3]
}

// condition evaluates one of the eight 8080 condition codes (the cc field
// of conditional JMP/CALL/RET) against the current flags.
func condition(s *cpu.State, cc byte) bool {
	switch cc {
	case 0: // NZ
		return !s.Flags.Zero
	case 1: // Z
		return s.Flags.Zero
	case 2: // NC
		return !s.Flags.Carry
	case 3: // C
		return s.Flags.Carry
	case 4: // PO
		return !s.Flags.Parity
	case 5: // PE
		return s.Flags.Parity
	case 6: // P (sign clear)
		return !s.Flags.Sign
	case 7: // M (sign set)
		return s.Flags.Sign
	}
	panic("interp: condition code out of range")
}
