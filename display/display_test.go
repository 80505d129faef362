package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gone8080/cpu"
	"gone8080/timing"
)

func TestDrawExpandsFramebufferBits(t *testing.T) {
	s := cpu.New()
	s.Memory[0x2400] = 0b00000001 // column 0, rows 0-7: row 0 on
	d := timing.New(s)
	g := NewGame(d)

	g.renderFrame()

	r, gg, b, a := g.frame.At(0, 0).RGBA()
	assert.NotZero(t, r)
	assert.NotZero(t, gg)
	assert.NotZero(t, b)
	assert.NotZero(t, a)

	r, gg, b, _ = g.frame.At(0, 1).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, gg)
	assert.Zero(t, b)
}

func TestBindingsMapEachKeyToADistinctPortBit(t *testing.T) {
	seen := map[int]bool{}
	for _, b := range bindings {
		seen[int(b.port)<<8|int(b.bit)] = true
	}
	assert.Len(t, seen, len(bindings))
}
