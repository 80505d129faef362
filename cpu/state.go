// Package cpu implements the Intel 8080 microprocessor's architectural
// state: the general registers, flags, stack pointer, program counter, and
// the flat 64 KiB memory array. It has no notion of opcodes or cycles; see
// package interp for the instruction interpreter that mutates this state.
package cpu

// MemSize is the full 8080 address space.
const MemSize = 65536

// defaultInputPort0 is the Space Invaders dip-switch default for input
// port 0 (coin slot closed, 3 ships, bonus life at 1500, demo sound on).
const defaultInputPort0 = 0b00001110

// State is the complete architectural state of one 8080 core. It owns all
// mutable CPU state; interp.Step and the functions of package io8080 do
// most of the mutation, and both expect the caller to hold whatever lock
// guards concurrent access (see package timing).
type State struct {
	A, B, C, D, E, H, L byte

	SP uint16
	PC uint16

	Flags Flags

	Memory [MemSize]byte

	// ShiftAmount is the Space Invaders shift-register offset latched by
	// OUT 2.
	ShiftAmount byte
	// ShiftRegister is the 16-bit shift hardware fed by OUT 4.
	ShiftRegister uint16

	InputPorts  [8]byte
	OutputPorts [8]byte

	// InterruptsEnabled gates acceptance of io8080.CallInterrupt. It is
	// not an architectural flag bit and has no PSW bit: PUSH PSW and
	// POP PSW neither save nor restore it.
	InterruptsEnabled bool

	// ShouldExit is set by HLT or by the host requesting shutdown; the
	// Timing Driver observes it at the next iteration boundary. A fatal
	// core error does not set it: interp.Step returns the error instead.
	ShouldExit bool

	// Debug puts the Timing Driver into single-step mode: it executes
	// one instruction per StepRequests token instead of free-running.
	Debug        bool
	StepRequests int

	// SoundHook observes OUT to ports 3 and 5 without producing audio,
	// matching the "accurate analog sound" Non-goal.
	SoundHook func(port, value byte)
}

// New returns a freshly reset State: zeroed registers, flags, PC and SP,
// interrupts disabled, memory zero-filled, and input port 0 at the Space
// Invaders default dip-switch pattern.
func New() *State {
	s := &State{}
	s.InputPorts[0] = defaultInputPort0
	return s
}

// LoadROM copies rom into the low end of memory. It panics if rom does not
// fit in the 64 KiB address space; callers (package romload) are expected
// to have already validated the image length.
func (s *State) LoadROM(rom []byte) {
	if len(rom) > MemSize {
		panic("cpu: ROM image larger than address space")
	}
	copy(s.Memory[:], rom)
}

// Register names the eight places MOV/MVI/arithmetic instructions can read
// or write a byte, including the pseudo-register M (memory at HL). It is a
// closed set: every opcode that needs "which register" decodes into one of
// these eight values, never a raw index.
type Register int

const (
	RegB Register = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegM
	RegA
)

// ReadReg returns the current value of r. M reads the byte addressed by HL.
func (s *State) ReadReg(r Register) byte {
	switch r {
	case RegA:
		return s.A
	case RegB:
		return s.B
	case RegC:
		return s.C
	case RegD:
		return s.D
	case RegE:
		return s.E
	case RegH:
		return s.H
	case RegL:
		return s.L
	case RegM:
		return s.Memory[s.HL()]
	default:
		panic(invalidRegisterSelector("ReadReg", s, int(r)))
	}
}

// WriteReg stores v into r. M writes the byte addressed by HL.
func (s *State) WriteReg(r Register, v byte) {
	switch r {
	case RegA:
		s.A = v
	case RegB:
		s.B = v
	case RegC:
		s.C = v
	case RegD:
		s.D = v
	case RegE:
		s.E = v
	case RegH:
		s.H = v
	case RegL:
		s.L = v
	case RegM:
		s.Memory[s.HL()] = v
	default:
		panic(invalidRegisterSelector("WriteReg", s, int(r)))
	}
}

// Pair names a 16-bit logical view over two 8-bit registers, or SP.
type Pair int

const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
)

// ReadPair returns the 16-bit value of p.
func (s *State) ReadPair(p Pair) uint16 {
	switch p {
	case PairBC:
		return pack(s.B, s.C)
	case PairDE:
		return pack(s.D, s.E)
	case PairHL:
		return pack(s.H, s.L)
	case PairSP:
		return s.SP
	default:
		panic(invalidRegisterSelector("ReadPair", s, int(p)))
	}
}

// WritePair stores v into p, high byte first.
func (s *State) WritePair(p Pair, v uint16) {
	hi, lo := byte(v>>8), byte(v)
	switch p {
	case PairBC:
		s.B, s.C = hi, lo
	case PairDE:
		s.D, s.E = hi, lo
	case PairHL:
		s.H, s.L = hi, lo
	case PairSP:
		s.SP = v
	default:
		panic(invalidRegisterSelector("WritePair", s, int(p)))
	}
}

// BC, DE, HL are convenience accessors for the three register-pair views
// used pervasively by the load/store and arithmetic groups.
func (s *State) BC() uint16 { return pack(s.B, s.C) }
func (s *State) DE() uint16 { return pack(s.D, s.E) }
func (s *State) HL() uint16 { return pack(s.H, s.L) }

func pack(hi, lo byte) uint16 { return uint16(hi)<<8 | uint16(lo) }

// Push stores a 16-bit word at SP-2 (low byte) and SP-1 (high byte), then
// decrements SP by 2, all in 16-bit modulo arithmetic.
func (s *State) Push(v uint16) {
	s.SP -= 2
	s.Memory[s.SP] = byte(v)
	s.Memory[s.SP+1] = byte(v >> 8)
}

// Pop loads a 16-bit word from SP (low byte) and SP+1 (high byte), then
// increments SP by 2.
func (s *State) Pop() uint16 {
	v := pack(s.Memory[s.SP+1], s.Memory[s.SP])
	s.SP += 2
	return v
}

// Next8 and Next16 read the immediate operand bytes that follow the opcode
// at PC, without advancing PC themselves.
func (s *State) Next8() byte    { return s.Memory[s.PC+1] }
func (s *State) Next16() uint16 { return pack(s.Memory[s.PC+2], s.Memory[s.PC+1]) }

// InvalidRegisterSelector is returned (by panicking, per §7/§9: this is a
// programming error, not a recoverable condition) when a decode path
// demands a register that is not valid for the operation it is decoding,
// e.g. PSW as the source of MOV.
type InvalidRegisterSelector struct {
	Op string
	PC uint16
	SP uint16
	Got int
}

func (e *InvalidRegisterSelector) Error() string {
	return "invalid register selector in " + e.Op
}

func invalidRegisterSelector(op string, s *State, got int) error {
	return &InvalidRegisterSelector{Op: op, PC: s.PC, SP: s.SP, Got: got}
}
