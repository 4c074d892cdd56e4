// Package loader turns a raw program file into the little-endian word
// image vm.New consumes.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/xyloflake/svc16/vm"
)

// maxBytes is the largest program file accepted: 65536 words, two bytes
// each, matching the guest's entire address space.
const maxBytes = 1 << 17

// ErrProgramTooLarge is returned when a program file holds more words than
// fit in the 65536-word main memory.
var ErrProgramTooLarge = errors.New("loader: program exceeds 65536 words")

// Load reads path and decodes it as a stream of little-endian 16-bit
// words, exactly as the original engine's read_u16s_from_file did. A
// trailing odd byte, if present, is ignored rather than treated as an
// error — it cannot form a complete word.
func Load(path string) ([]vm.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return Decode(data)
}

// Decode parses a byte stream into a word image, the way NewCartridge
// parses a byte stream into a validated cartridge struct: length checked
// up front, then a straight scan.
func Decode(data []byte) ([]vm.Word, error) {
	if len(data) > maxBytes {
		return nil, ErrProgramTooLarge
	}
	n := len(data) / 2
	image := make([]vm.Word, n)
	for i := 0; i < n; i++ {
		image[i] = vm.Word(binary.LittleEndian.Uint16(data[2*i : 2*i+2]))
	}
	return image, nil
}
