// Package io8080 implements the Space Invaders I/O-port model and the
// RST-style interrupt injection protocol described in spec §4.3: eight
// input ports, eight output ports, the shift-register hardware behind
// ports 2/3/4, and CallInterrupt.
package io8080

import "gone8080/cpu"

// UnimplementedPort is returned when OUT or IN addresses a port outside
// the Space Invaders map. Per §7 this is fatal for the core; callers are
// expected to abort with a diagnostic rather than recover.
type UnimplementedPort struct {
	Op   string // "IN" or "OUT"
	Port byte
	PC   uint16
}

func (e *UnimplementedPort) Error() string {
	return "io8080: unimplemented port"
}

// Space Invaders input-port bit masks, set on key-down and cleared on
// key-up by the host input adapter (§6).
const (
	Port1Coin    = 1 << 0
	Port1P2Start = 1 << 1
	Port1P1Start = 1 << 2
	Port1P1Fire  = 1 << 4
	Port1P1Left  = 1 << 5
	Port1P1Right = 1 << 6

	Port2P2Fire  = 1 << 4
	Port2P2Left  = 1 << 5
	Port2P2Right = 1 << 6
)

// SetInputBit sets the given bits of input port n. Used by the host input
// adapter on key-down.
func SetInputBit(s *cpu.State, n byte, bits byte) {
	s.InputPorts[n] |= bits
}

// ClearInputBit clears the given bits of input port n. Used by the host
// input adapter on key-up.
func ClearInputBit(s *cpu.State, n byte, bits byte) {
	s.InputPorts[n] &^= bits
}

// In reads the shadow register for input port n.
func In(s *cpu.State, n byte) (byte, error) {
	if n > 7 {
		return 0, &UnimplementedPort{Op: "IN", Port: n, PC: s.PC}
	}
	return s.InputPorts[n], nil
}

// Out dispatches a byte written to output port n, per §4.3:
//
//	2: latches the shift amount.
//	3, 5: sound triggers, observed via s.SoundHook and otherwise ignored.
//	4: shifts value into the 16-bit shift register and re-latches input
//	   port 3 from the programmable 8-bit window.
//	6: watchdog, accepted and ignored.
//
// Any other port is fatal for this target.
func Out(s *cpu.State, n byte, value byte) error {
	switch n {
	case 2:
		s.ShiftAmount = value & 0x07
	case 3, 5:
		if s.SoundHook != nil {
			s.SoundHook(n, value)
		}
	case 4:
		s.ShiftRegister = (s.ShiftRegister >> 8) | (uint16(value) << 8)
		s.InputPorts[3] = byte(s.ShiftRegister >> (8 - s.ShiftAmount))
	case 6:
		// watchdog: accepted and ignored
	default:
		return &UnimplementedPort{Op: "OUT", Port: n, PC: s.PC}
	}
	s.OutputPorts[n&7] = value
	return nil
}

// CallInterrupt performs an externally injected RST-equivalent entry: if
// interrupts are disabled this is a no-op; otherwise it clears
// InterruptsEnabled, pushes the current PC (no +1 — PC already points at
// the next opcode per §4.3/§9) and sets PC to the fixed vector 8*code.
func CallInterrupt(s *cpu.State, code byte) {
	if !s.InterruptsEnabled {
		return
	}
	s.InterruptsEnabled = false
	s.Push(s.PC)
	s.PC = 8 * uint16(code)
}
