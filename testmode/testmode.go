// Package testmode drives the 8080 core against CP/M-style diagnostic ROMs
// (CPUTEST, 8080EXM and similar), per spec §4.5. These ROMs assume they are
// loaded under a CP/M BDOS: they start at 0x0100 and call 0x0005 to print
// diagnostic output through registers C/D/E rather than through any real
// disk operating system.
package testmode

import (
	"fmt"
	"io"

	"gone8080/cpu"
	"gone8080/interp"
)

// bdosPrintString and bdosPrintChar are the two BDOS function codes these
// ROMs exercise: "print the $-terminated string at DE" and "print the
// single character in E".
const (
	bdosPrintString = 9
	bdosPrintChar   = 2
)

// bootAddr is where CP/M-style images expect to be entered; bdosAddr is the
// fixed location of the BDOS entry point they CALL into for console I/O.
const (
	bootAddr = 0x0100
	bdosAddr = 0x0005
)

// Boot prepares s to run a CP/M-style diagnostic image already copied into
// memory at bootAddr (0x0100): it injects a three-byte JMP 0x0100 at address 0x0000 (the reset
// vector these ROMs expect) and patches the BDOS entry point at 0x0005 with
// a bare RET, so that CALL 5 returns to the caller immediately once Run's
// loop has serviced it.
func Boot(s *cpu.State) {
	s.Memory[0x0000] = 0xC3 // JMP
	s.Memory[0x0001] = byte(bootAddr & 0xFF)
	s.Memory[0x0002] = byte(bootAddr >> 8)
	s.Memory[bdosAddr] = 0xC9 // RET
	s.PC = 0x0000
}

// Run executes s until HLT, a fatal core error, or an unreasonable
// instruction budget is exhausted (diagnostic ROMs that loop forever
// without halting are treated as a failure rather than hanging the host).
// Every time PC reaches the BDOS entry point, the requested BDOS call is
// serviced by writing to w before the patched RET sends control back to the
// caller.
func Run(s *cpu.State, w io.Writer) error {
	const instructionBudget = 200_000_000
	for i := 0; i < instructionBudget && !s.ShouldExit; i++ {
		if s.PC == bdosAddr {
			service(s, w)
		}
		if _, err := interp.Step(s); err != nil {
			return err
		}
	}
	if !s.ShouldExit {
		return fmt.Errorf("testmode: no HLT within %d instructions", instructionBudget)
	}
	return nil
}

// service implements the two BDOS console functions these diagnostic ROMs
// rely on, per spec §4.5.
func service(s *cpu.State, w io.Writer) {
	switch s.C {
	case bdosPrintString:
		addr := s.DE()
		for s.Memory[addr] != '$' {
			fmt.Fprintf(w, "%c", s.Memory[addr])
			addr++
		}
	case bdosPrintChar:
		fmt.Fprintf(w, "%c", s.E)
	}
}
