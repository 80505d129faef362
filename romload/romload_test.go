package romload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"gone8080/cpu"
)

func TestLoadRejectsOversizedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "too_big.bin")
	assert.NoError(t, os.WriteFile(path, make([]byte, cpu.MemSize+1), 0o644))

	_, err := Load(path)
	var tooLarge *TooLarge
	assert.ErrorAs(t, err, &tooLarge)
}

func TestIntoCopiesAndLeavesRemainderZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invaders.bin")
	assert.NoError(t, os.WriteFile(path, []byte{0xC3, 0x00, 0x08}, 0o644))

	s := cpu.New()
	assert.NoError(t, Into(s, path))
	assert.Equal(t, byte(0xC3), s.Memory[0])
	assert.Equal(t, byte(0x00), s.Memory[1])
	assert.Equal(t, byte(0x08), s.Memory[2])
	assert.Equal(t, byte(0x00), s.Memory[3])
	assert.Equal(t, byte(0x00), s.Memory[cpu.MemSize-1])
}

func TestLoadSurfacesMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
