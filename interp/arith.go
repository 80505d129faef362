package interp

import "gone8080/cpu"

// aluAdd implements the ADD/ADC/ADI/ACI family: a 9-bit sum with A, the
// operand and an optional incoming carry, writing the low 8 bits back to
// A and deriving every flag per spec §4.2.
func aluAdd(s *cpu.State, operand byte, carryIn bool) {
	var c uint16
	if carryIn {
		c = 1
	}
	sum := uint16(s.A) + uint16(operand) + c
	result := byte(sum)

	ac := cpu.AddAuxCarry(s.A, operand, carryIn)
	s.A = result
	s.Flags.SetSZP(result)
	s.Flags.Carry = sum > 0xFF
	s.Flags.AuxCarry = ac
}

// aluSub implements SUB/SBB/SUI/SBI: A minus operand minus an optional
// incoming borrow, in a 9-bit temporary so the carry-as-borrow bit is
// observable.
func aluSub(s *cpu.State, operand byte, borrowIn bool) {
	var b int
	if borrowIn {
		b = 1
	}
	diff := int(s.A) - int(operand) - b
	result := byte(diff)

	ac := cpu.SubAuxCarry(s.A, operand, borrowIn)
	s.A = result
	s.Flags.SetSZP(result)
	s.Flags.Carry = diff < 0
	s.Flags.AuxCarry = ac
}

// aluCmp implements CMP/CPI: the same 9-bit subtraction as aluSub, but the
// result is discarded and A is left unmodified.
func aluCmp(s *cpu.State, operand byte) {
	diff := int(s.A) - int(operand)
	result := byte(diff)

	s.Flags.SetSZP(result)
	s.Flags.Carry = diff < 0
	s.Flags.AuxCarry = cpu.SubAuxCarry(s.A, operand, false)
}

// aluLogic implements ANA/ANI/ORA/ORI/XRA/XRI: bitwise A op= operand, with
// CY and AC always cleared per spec §4.2 regardless of the real 8080's
// undocumented AC-from-OR-of-bit-3 behavior.
func aluLogic(s *cpu.State, op func(a, b byte) byte, operand byte) {
	s.A = op(s.A, operand)
	s.Flags.SetSZP(s.A)
	s.Flags.Carry = false
	s.Flags.AuxCarry = false
}

func bitAnd(a, b byte) byte { return a & b }
func bitOr(a, b byte) byte  { return a | b }
func bitXor(a, b byte) byte { return a ^ b }

// daa implements decimal-adjust per spec §4.2: a two-step BCD correction
// of A, each step contributing to the pending carry, with S/Z/P taken
// from the final A and AC left as the low-nibble step produced it.
func daa(s *cpu.State) {
	pendingCarry := s.Flags.Carry

	if s.A&0x0F > 9 || s.Flags.AuxCarry {
		pre := s.A
		sum := uint16(s.A) + 0x06
		s.A = byte(sum)
		s.Flags.AuxCarry = cpu.AddAuxCarry(pre, 0x06, false)
		if sum > 0xFF {
			pendingCarry = true
		}
	}

	if (s.A>>4)&0x0F > 9 || s.Flags.Carry {
		sum := uint16(s.A) + 0x60
		s.A = byte(sum)
		if sum > 0xFF {
			pendingCarry = true
		}
	}

	s.Flags.Carry = pendingCarry
	s.Flags.SetSZP(s.A)
}

// incReg and decReg implement INR/DCR: S, Z, P and AC are updated, CY is
// left untouched.
func incReg(s *cpu.State, r cpu.Register) {
	pre := s.ReadReg(r)
	result := pre + 1
	s.WriteReg(r, result)
	s.Flags.SetSZP(result)
	s.Flags.AuxCarry = cpu.IncAuxCarry(pre)
}

func decReg(s *cpu.State, r cpu.Register) {
	pre := s.ReadReg(r)
	result := pre - 1
	s.WriteReg(r, result)
	s.Flags.SetSZP(result)
	s.Flags.AuxCarry = cpu.DecAuxCarry(pre)
}

// dad implements DAD rp: HL += rp, with CY set from bit 16 of the sum and
// every other flag left untouched.
func dad(s *cpu.State, p cpu.Pair) {
	sum := uint32(s.HL()) + uint32(s.ReadPair(p))
	s.WritePair(cpu.PairHL, uint16(sum))
	s.Flags.Carry = sum > 0xFFFF
}

// rlc, rrc, ral, rar rotate A one bit, affecting only CY.
func rlc(s *cpu.State) {
	carry := s.A&0x80 != 0
	s.A = s.A<<1 | s.A>>7
	s.Flags.Carry = carry
}

func rrc(s *cpu.State) {
	carry := s.A&0x01 != 0
	s.A = s.A>>1 | s.A<<7
	s.Flags.Carry = carry
}

func ral(s *cpu.State) {
	carryOut := s.A&0x80 != 0
	var carryIn byte
	if s.Flags.Carry {
		carryIn = 1
	}
	s.A = s.A<<1 | carryIn
	s.Flags.Carry = carryOut
}

func rar(s *cpu.State) {
	carryOut := s.A&0x01 != 0
	var carryIn byte
	if s.Flags.Carry {
		carryIn = 0x80
	}
	s.A = s.A>>1 | carryIn
	s.Flags.Carry = carryOut
}
