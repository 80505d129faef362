package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPSWSetsFixedBits(t *testing.T) {
	f := Flags{}
	b := f.PackPSW()
	assert.NotZero(t, b&pswFixedOne)
	assert.Zero(t, b&(1<<5))
	assert.Zero(t, b&(1<<3))
}

func TestUnpackThenPackNormalizesFixedBits(t *testing.T) {
	for b := 0; b < 256; b++ {
		got := UnpackPSW(byte(b)).PackPSW()
		want := (byte(b) & 0xD5) | 0x02
		assert.Equal(t, want, got, "byte %#x", b)
	}
}

func TestPSWRoundTripOnState(t *testing.T) {
	s := New()
	s.A = 0x42
	s.Flags = Flags{Sign: true, Zero: false, AuxCarry: true, Parity: true, Carry: true}
	psw := s.PackPSW()
	s2 := New()
	s2.SetPSW(psw)
	assert.Equal(t, byte(0x42), s2.A)
	assert.Equal(t, s.Flags, s2.Flags)
}

func TestParityEven(t *testing.T) {
	assert.True(t, Parity(0x00))
	assert.True(t, Parity(0x03))
	assert.False(t, Parity(0x01))
	assert.True(t, Parity(0xFF))
}

func TestAddAuxCarryCanonicalDefinition(t *testing.T) {
	assert.True(t, AddAuxCarry(0x0F, 0x01, false))
	assert.False(t, AddAuxCarry(0x0E, 0x01, false))
	assert.True(t, AddAuxCarry(0x0E, 0x01, true))
}

func TestSubAuxCarry(t *testing.T) {
	assert.True(t, SubAuxCarry(0x00, 0x01, false))
	// Only the low nibbles decide: 0x0 - 0x1 borrows whatever bit 4 holds.
	assert.True(t, SubAuxCarry(0x10, 0x01, false))
}

func TestIncDecAuxCarry(t *testing.T) {
	assert.True(t, IncAuxCarry(0x0F))
	assert.False(t, IncAuxCarry(0x0E))
	assert.True(t, DecAuxCarry(0x00))
	assert.False(t, DecAuxCarry(0x01))
}
