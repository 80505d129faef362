// Package romload loads a raw Space Invaders ROM image into the 8080's
// address space, per spec §6: no header, no bank switching, pad the
// remainder of the target region with zero.
package romload

import (
	"fmt"
	"os"

	"gone8080/cpu"
)

// TooLarge is returned when a ROM image does not fit the 64 KiB address
// space.
type TooLarge struct {
	Size int
}

func (e *TooLarge) Error() string {
	return fmt.Sprintf("romload: image is %d bytes, exceeds %d byte address space", e.Size, cpu.MemSize)
}

// Load reads path and returns its raw bytes, rejecting anything that would
// not fit in the 8080's address space. It does not touch any cpu.State; see
// Into for that.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}
	if len(data) > cpu.MemSize {
		return nil, &TooLarge{Size: len(data)}
	}
	return data, nil
}

// Into reads path and copies it into s starting at address 0, leaving the
// remainder of memory zeroed as cpu.New already guarantees.
func Into(s *cpu.State, path string) error {
	rom, err := Load(path)
	if err != nil {
		return err
	}
	s.LoadROM(rom)
	return nil
}
