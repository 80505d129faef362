package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteRegRoutesMThroughHL(t *testing.T) {
	s := New()
	s.H, s.L = 0x20, 0x10
	s.WriteReg(RegM, 0x42)
	assert.Equal(t, byte(0x42), s.Memory[0x2010])
	assert.Equal(t, byte(0x42), s.ReadReg(RegM))

	s.WriteReg(RegA, 0x7F)
	assert.Equal(t, byte(0x7F), s.A)
}

func TestReadWritePair(t *testing.T) {
	s := New()
	s.WritePair(PairBC, 0x1234)
	assert.Equal(t, byte(0x12), s.B)
	assert.Equal(t, byte(0x34), s.C)
	assert.Equal(t, uint16(0x1234), s.ReadPair(PairBC))
	assert.Equal(t, uint16(0x1234), s.BC())
}

func TestPushPopIsIdentity(t *testing.T) {
	s := New()
	s.SP = 0xFFFE
	s.Push(0xBEEF)
	assert.Equal(t, uint16(0xFFFC), s.SP)
	assert.Equal(t, uint16(0xBEEF), s.Pop())
	assert.Equal(t, uint16(0xFFFE), s.SP)
}

func TestPushPopRegisterPairRoundTrip(t *testing.T) {
	s := New()
	s.SP = 0xFFFE
	s.WritePair(PairBC, 0x1234)
	s.Push(s.ReadPair(PairBC))
	s.WritePair(PairHL, s.Pop())
	assert.Equal(t, byte(0x12), s.H)
	assert.Equal(t, byte(0x34), s.L)
	assert.Equal(t, uint16(0xFFFE), s.SP)
}

func TestPushPopWraparoundAtZero(t *testing.T) {
	s := New()
	s.SP = 0x0001
	s.Push(0xABCD)
	assert.Equal(t, uint16(0xFFFF), s.SP)
	assert.Equal(t, uint16(0xABCD), s.Pop())
	assert.Equal(t, uint16(0x0001), s.SP)
}

func TestLoadROMPadsRemainderWithZero(t *testing.T) {
	s := New()
	s.LoadROM([]byte{0xDE, 0xAD})
	assert.Equal(t, byte(0xDE), s.Memory[0])
	assert.Equal(t, byte(0xAD), s.Memory[1])
	assert.Equal(t, byte(0), s.Memory[2])
}

func TestLoadROMTooLargePanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() {
		s.LoadROM(make([]byte, MemSize+1))
	})
}

func TestNewSetsDefaultDipSwitches(t *testing.T) {
	s := New()
	assert.Equal(t, byte(0b00001110), s.InputPorts[0])
	assert.False(t, s.InterruptsEnabled)
	assert.False(t, s.ShouldExit)
}

func TestInvalidRegisterSelectorPanicsWithPCAndSP(t *testing.T) {
	s := New()
	s.PC = 0x1000
	s.SP = 0xFF00
	assert.PanicsWithValue(t, &InvalidRegisterSelector{Op: "ReadReg", PC: 0x1000, SP: 0xFF00, Got: 99},
		func() { s.ReadReg(Register(99)) })
}
