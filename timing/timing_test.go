package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gone8080/cpu"
)

func TestStepLockedInjectsAlternatingInterruptAtHalfFrame(t *testing.T) {
	s := cpu.New()
	s.SP = 0xFFFE
	s.InterruptsEnabled = true
	s.Memory[0] = 0x00 // NOP, 4 cycles
	d := New(s)
	d.cyclesSinceInterrupt = cyclesPerFrame / 2

	assert.NoError(t, d.stepLocked())
	// CallInterrupt jumps to the RST 1 vector (8); stepLocked then still
	// executes one instruction from there in the same call, and memory
	// at 8 is zero-initialized (a NOP-equivalent), landing PC at 9.
	assert.Equal(t, uint16(9), s.PC)
	assert.Equal(t, 4, d.cyclesSinceInterrupt)
	assert.Equal(t, byte(2), d.nextInterrupt)
	assert.False(t, s.InterruptsEnabled)
}

func TestStepLockedRunsOneInstructionWhenUnderBudget(t *testing.T) {
	s := cpu.New()
	s.Memory[0] = 0x00 // NOP
	d := New(s)

	assert.NoError(t, d.stepLocked())
	assert.Equal(t, uint16(1), s.PC)
	assert.Equal(t, 4, d.cyclesSinceInterrupt)
}

func TestStepLockedRespectsDebugStepBudget(t *testing.T) {
	s := cpu.New()
	s.Debug = true
	s.Memory[0] = 0x00
	d := New(s)

	assert.NoError(t, d.stepLocked())
	assert.Equal(t, uint16(0), s.PC) // no step tokens available, idles

	d.state.StepRequests = 1
	assert.NoError(t, d.stepLocked())
	assert.Equal(t, uint16(1), s.PC)
	assert.Equal(t, 0, s.StepRequests)
}

func TestFramebufferReturnsSnapshotOfFramebufferRegion(t *testing.T) {
	s := cpu.New()
	s.Memory[0x2400] = 0xAB
	s.Memory[0x2400+7167] = 0xCD
	d := New(s)

	fb := d.Framebuffer()
	assert.Equal(t, byte(0xAB), fb[0])
	assert.Equal(t, byte(0xCD), fb[7167])
}

func TestRequestStepAccumulates(t *testing.T) {
	s := cpu.New()
	d := New(s)
	d.RequestStep(3)
	d.RequestStep(2)
	assert.Equal(t, 5, s.StepRequests)
}

func TestRunExitsWhenShouldExitIsSet(t *testing.T) {
	s := cpu.New()
	s.ShouldExit = true
	d := New(s)
	assert.NoError(t, d.Run())
}
