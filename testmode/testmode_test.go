package testmode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"gone8080/cpu"
)

func TestBootInjectsJumpAndBdosHook(t *testing.T) {
	s := cpu.New()
	Boot(s)
	assert.Equal(t, byte(0xC3), s.Memory[0x0000])
	assert.Equal(t, byte(0x00), s.Memory[0x0001])
	assert.Equal(t, byte(0x01), s.Memory[0x0002])
	assert.Equal(t, byte(0xC9), s.Memory[0x0005])
	assert.Equal(t, uint16(0), s.PC)
}

func TestRunPrintsDollarTerminatedString(t *testing.T) {
	s := cpu.New()
	Boot(s)
	msg := "PASS$"
	copy(s.Memory[0x0200:], msg)
	s.D, s.E = 0x02, 0x00 // DE = 0x0200
	s.C = bdosPrintString
	s.SP = 0xFFFE

	// at 0x0100: CALL 0x0005; HLT
	s.Memory[bootAddr] = 0xCD
	s.Memory[bootAddr+1] = 0x05
	s.Memory[bootAddr+2] = 0x00
	s.Memory[bootAddr+3] = 0x76

	var out bytes.Buffer
	assert.NoError(t, Run(s, &out))
	assert.Equal(t, "PASS", out.String())
}

func TestRunPrintsSingleCharacter(t *testing.T) {
	s := cpu.New()
	Boot(s)
	s.C = bdosPrintChar
	s.E = 'X'
	s.SP = 0xFFFE

	s.Memory[bootAddr] = 0xCD
	s.Memory[bootAddr+1] = 0x05
	s.Memory[bootAddr+2] = 0x00
	s.Memory[bootAddr+3] = 0x76

	var out bytes.Buffer
	assert.NoError(t, Run(s, &out))
	assert.Equal(t, "X", out.String())
}

func TestRunStopsOnFatalIOError(t *testing.T) {
	s := cpu.New()
	Boot(s)
	s.Memory[bootAddr] = 0xD3 // OUT to an unmapped port
	s.Memory[bootAddr+1] = 0x01

	var out bytes.Buffer
	err := Run(s, &out)
	assert.Error(t, err)
}
