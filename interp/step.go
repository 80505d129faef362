// Package interp implements the single dispatch table over the 8080's 256
// opcodes described in spec §4.2: it reads the byte at PC, decodes
// operands, mutates cpu.State, advances PC, and reports the instruction's
// cycle cost.
package interp

import (
	"fmt"

	"gone8080/cpu"
	"gone8080/io8080"
)

// Step executes exactly one instruction starting at s.PC and returns the
// 8080 cycle cost it incurred. It is the only exported entry point; every
// other function in this package is an implementation detail of one
// instruction group.
//
// Step assumes the decode table is complete: an opcode byte reaching the
// bottom default case is a programming error (§7), so that case panics
// rather than returning an error.
func Step(s *cpu.State) (int, error) {
	op := s.Memory[s.PC]

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD:
		s.PC++
		return 4, nil

	case 0x76: // HLT
		s.PC++
		s.ShouldExit = true
		return 7, nil

	case 0x02: // STAX B
		s.Memory[s.BC()] = s.A
		s.PC++
		return 7, nil
	case 0x12: // STAX D
		s.Memory[s.DE()] = s.A
		s.PC++
		return 7, nil
	case 0x0A: // LDAX B
		s.A = s.Memory[s.BC()]
		s.PC++
		return 7, nil
	case 0x1A: // LDAX D
		s.A = s.Memory[s.DE()]
		s.PC++
		return 7, nil

	case 0x22: // SHLD a16
		addr := s.Next16()
		s.Memory[addr] = s.L
		s.Memory[addr+1] = s.H
		s.PC += 3
		return 16, nil
	case 0x2A: // LHLD a16
		addr := s.Next16()
		s.L = s.Memory[addr]
		s.H = s.Memory[addr+1]
		s.PC += 3
		return 16, nil
	case 0x32: // STA a16
		s.Memory[s.Next16()] = s.A
		s.PC += 3
		return 13, nil
	case 0x3A: // LDA a16
		s.A = s.Memory[s.Next16()]
		s.PC += 3
		return 13, nil

	case 0x07: // RLC
		rlc(s)
		s.PC++
		return 4, nil
	case 0x0F: // RRC
		rrc(s)
		s.PC++
		return 4, nil
	case 0x17: // RAL
		ral(s)
		s.PC++
		return 4, nil
	case 0x1F: // RAR
		rar(s)
		s.PC++
		return 4, nil

	case 0x27: // DAA
		daa(s)
		s.PC++
		return 4, nil
	case 0x2F: // CMA
		s.A = ^s.A
		s.PC++
		return 4, nil
	case 0x37: // STC
		s.Flags.Carry = true
		s.PC++
		return 4, nil
	case 0x3F: // CMC
		s.Flags.Carry = !s.Flags.Carry
		s.PC++
		return 4, nil

	case 0xEB: // XCHG
		s.H, s.D = s.D, s.H
		s.L, s.E = s.E, s.L
		s.PC++
		return 5, nil
	case 0xE3: // XTHL
		lo, hi := s.Memory[s.SP], s.Memory[s.SP+1]
		s.Memory[s.SP], s.Memory[s.SP+1] = s.L, s.H
		s.L, s.H = lo, hi
		s.PC++
		return 18, nil
	case 0xF9: // SPHL
		s.SP = s.HL()
		s.PC++
		return 5, nil
	case 0xE9: // PCHL
		s.PC = s.HL()
		return 5, nil

	case 0xC3: // JMP a16
		s.PC = s.Next16()
		return 10, nil
	case 0xCD: // CALL a16
		ret := s.PC + 3
		s.Push(ret)
		s.PC = s.Next16()
		return 17, nil
	case 0xC9: // RET
		s.PC = s.Pop()
		return 10, nil

	case 0xD3: // OUT d8
		port, value := s.Next8(), s.A
		s.PC += 2
		if err := io8080.Out(s, port, value); err != nil {
			return 0, err
		}
		return 10, nil
	case 0xDB: // IN d8
		port := s.Next8()
		v, err := io8080.In(s, port)
		if err != nil {
			return 0, err
		}
		s.A = v
		s.PC += 2
		return 10, nil

	case 0xF3: // DI
		s.InterruptsEnabled = false
		s.PC++
		return 4, nil
	case 0xFB: // EI
		s.InterruptsEnabled = true
		s.PC++
		return 4, nil
	}

	switch {
	case op&0xC0 == 0x80: // ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP r
		return stepALURegister(s, op)

	case op&0xC7 == 0xC6: // ADI/ACI/SUI/SBI/ANI/XRI/ORI/CPI d8
		return stepALUImmediate(s, op)

	case op >= 0x40 && op <= 0x7F: // MOV r,r' (0x76 handled above)
		dst, src := reg(op, 3), reg(op, 0)
		cost := 5
		if dst == cpu.RegM || src == cpu.RegM {
			cost = 7
		}
		s.WriteReg(dst, s.ReadReg(src))
		s.PC++
		return cost, nil

	case op&0xC7 == 0x06: // MVI r,d8
		r := reg(op, 3)
		s.WriteReg(r, s.Next8())
		s.PC += 2
		if r == cpu.RegM {
			return 10, nil
		}
		return 7, nil

	case op&0xCF == 0x01: // LXI rp,d16
		s.WritePair(pair(op), s.Next16())
		s.PC += 3
		return 10, nil

	case op&0xCF == 0x09: // DAD rp
		dad(s, pair(op))
		s.PC++
		return 10, nil

	case op&0xCF == 0x03: // INX rp
		s.WritePair(pair(op), s.ReadPair(pair(op))+1)
		s.PC++
		return 5, nil

	case op&0xCF == 0x0B: // DCX rp
		s.WritePair(pair(op), s.ReadPair(pair(op))-1)
		s.PC++
		return 5, nil

	case op&0xC7 == 0x04: // INR r
		r := reg(op, 3)
		incReg(s, r)
		s.PC++
		if r == cpu.RegM {
			return 10, nil
		}
		return 5, nil

	case op&0xC7 == 0x05: // DCR r
		r := reg(op, 3)
		decReg(s, r)
		s.PC++
		if r == cpu.RegM {
			return 10, nil
		}
		return 5, nil

	case op&0xC7 == 0xC7: // RST n
		n := (op >> 3) & 0x7
		s.Push(s.PC + 1)
		s.PC = 8 * uint16(n)
		return 11, nil

	case op&0xC7 == 0xC2: // conditional JMP
		if condition(s, (op>>3)&0x7) {
			s.PC = s.Next16()
		} else {
			s.PC += 3
		}
		return 10, nil

	case op&0xC7 == 0xC4: // conditional CALL
		if condition(s, (op>>3)&0x7) {
			ret := s.PC + 3
			target := s.Next16()
			s.Push(ret)
			s.PC = target
			return 17, nil
		}
		s.PC += 3
		return 11, nil

	case op&0xC7 == 0xC0: // conditional RET
		if condition(s, (op>>3)&0x7) {
			s.PC = s.Pop()
			return 11, nil
		}
		s.PC++
		return 5, nil

	case op&0xCF == 0xC5: // PUSH rp
		s.Push(pushValue(s, op))
		s.PC++
		return 11, nil

	case op&0xCF == 0xC1: // POP rp
		popValue(s, op, s.Pop())
		s.PC++
		return 10, nil
	}

	panic(fmt.Sprintf("interp: incomplete decode table for opcode %#02x at PC %#04x", op, s.PC))
}

// stepALURegister handles the 0x80-0xBF block: 10 ooo rrr, where ooo
// selects ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP and rrr selects the operand
// register (M included).
func stepALURegister(s *cpu.State, op byte) (int, error) {
	operand := s.ReadReg(reg(op, 0))
	cost := 4
	if reg(op, 0) == cpu.RegM {
		cost = 7
	}
	applyALU(s, (op>>3)&0x7, operand)
	s.PC++
	return cost, nil
}

// stepALUImmediate handles the 0xC6-0xFE block: 11 ooo 110 with a trailing
// immediate byte.
func stepALUImmediate(s *cpu.State, op byte) (int, error) {
	applyALU(s, (op>>3)&0x7, s.Next8())
	s.PC += 2
	return 7, nil
}

// applyALU dispatches the 8 arithmetic/logical operations shared by the
// register and immediate opcode blocks.
func applyALU(s *cpu.State, selector byte, operand byte) {
	switch selector {
	case 0: // ADD / ADI
		aluAdd(s, operand, false)
	case 1: // ADC / ACI
		aluAdd(s, operand, s.Flags.Carry)
	case 2: // SUB / SUI
		aluSub(s, operand, false)
	case 3: // SBB / SBI
		aluSub(s, operand, s.Flags.Carry)
	case 4: // ANA / ANI
		aluLogic(s, bitAnd, operand)
	case 5: // XRA / XRI
		aluLogic(s, bitXor, operand)
	case 6: // ORA / ORI
		aluLogic(s, bitOr, operand)
	case 7: // CMP / CPI
		aluCmp(s, operand)
	}
}

// pushValue and popValue implement PUSH/POP's rp field, where rp=3 means
// PSW (A plus packed flags) rather than SP.
func pushValue(s *cpu.State, op byte) uint16 {
	if (op>>4)&0x3 == 3 {
		return s.PackPSW()
	}
	return s.ReadPair(pairOrder[(op>>4)&0x3])
}

func popValue(s *cpu.State, op byte, v uint16) {
	if (op>>4)&0x3 == 3 {
		s.SetPSW(v)
		return
	}
	s.WritePair(pairOrder[(op>>4)&0x3], v)
}
