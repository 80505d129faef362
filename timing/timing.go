// Package timing implements the Space Invaders frame-driven interrupt
// schedule described in spec §4.4: a host-thread loop that steps the
// interpreter, paces itself to a 2 MHz emulated clock, and injects the
// mid-screen and end-of-frame RST interrupts at the right cycle offsets.
package timing

import (
	"sync"
	"time"

	"gone8080/cpu"
	"gone8080/interp"
	"gone8080/io8080"
)

// Target clock and refresh rate the loop paces itself against, per §4.4.
const (
	cyclesPerSecond = 2_000_000
	framesPerSecond = 60
	cyclesPerFrame  = cyclesPerSecond / framesPerSecond
)

// Driver owns the emulation thread (Thread A of §5): it is the only party
// permitted to call interp.Step and io8080.CallInterrupt. Everything it
// exposes to the host collaborator (Thread B) — Framebuffer, SetInputBit,
// ClearInputBit, RequestStep, RequestExit — takes the lock itself, so
// Thread B never has to reason about holding it across a call.
type Driver struct {
	mu    sync.Mutex
	state *cpu.State

	cyclesSinceInterrupt int
	nextInterrupt        byte // alternates between 1 (mid-screen) and 2 (end-of-frame)

	lastTick time.Time
}

// New wraps state in a Driver ready to Run.
func New(state *cpu.State) *Driver {
	return &Driver{state: state, nextInterrupt: 1, lastTick: time.Time{}}
}

// Framebuffer returns a point-in-time copy of the 256x224 1bpp region at
// 0x2400, per §6's framebuffer contract. It takes the lock itself, so
// callers must not already hold it.
func (d *Driver) Framebuffer() [7168]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	var snapshot [7168]byte
	copy(snapshot[:], d.state.Memory[0x2400:0x2400+7168])
	return snapshot
}

// RequestStep enqueues n single-step tokens for Debug mode.
func (d *Driver) RequestStep(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.StepRequests += n
}

// SetInputBit and ClearInputBit let Thread B apply a key-down/key-up event
// to an input port without reaching into the wrapped State directly.
func (d *Driver) SetInputBit(port, bits byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	io8080.SetInputBit(d.state, port, bits)
}

func (d *Driver) ClearInputBit(port, bits byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	io8080.ClearInputBit(d.state, port, bits)
}

// RequestExit lets Thread B ask the Timing Driver to leave its loop at the
// next iteration boundary.
func (d *Driver) RequestExit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ShouldExit = true
}

// Run executes the Timing Driver loop until state.ShouldExit becomes true.
// It paces itself against wall-clock time so the free-running average rate
// approaches cyclesPerSecond without a tight busy-spin.
func (d *Driver) Run() error {
	d.lastTick = time.Now()
	for {
		d.mu.Lock()
		exit := d.state.ShouldExit
		d.mu.Unlock()
		if exit {
			return nil
		}

		d.pace()

		d.mu.Lock()
		err := d.stepLocked()
		d.mu.Unlock()
		if err != nil {
			return err
		}
	}
}

// pace sleeps off the real time one average instruction should occupy at
// cyclesPerSecond, using a nominal 4-cycle instruction as the pacing unit.
// It deliberately does not hold the state lock while sleeping (§5).
func (d *Driver) pace() {
	const avgCyclesPerInstruction = 4
	quantum := time.Second * avgCyclesPerInstruction / cyclesPerSecond
	elapsed := time.Since(d.lastTick)
	if elapsed < quantum {
		time.Sleep(quantum - elapsed)
	}
	d.lastTick = time.Now()
}

// stepLocked performs one iteration body under the caller's held lock: in
// Debug mode it only proceeds if a step token is available, otherwise it
// always executes exactly one instruction, injecting an interrupt first if
// the frame-half budget has been reached.
func (d *Driver) stepLocked() error {
	if d.state.Debug {
		if d.state.StepRequests <= 0 {
			return nil
		}
		d.state.StepRequests--
	}

	if d.cyclesSinceInterrupt >= cyclesPerFrame/2 {
		io8080.CallInterrupt(d.state, d.nextInterrupt)
		if d.nextInterrupt == 1 {
			d.nextInterrupt = 2
		} else {
			d.nextInterrupt = 1
		}
		d.cyclesSinceInterrupt = 0
	}

	cycles, err := interp.Step(d.state)
	if err != nil {
		return err
	}
	d.cyclesSinceInterrupt += cycles
	return nil
}
