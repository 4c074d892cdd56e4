package vm

// Word is the machine's native 16-bit unit. All arithmetic on it wraps
// modulo 2^16 via Go's ordinary uint16 overflow semantics.
type Word = uint16

// memSize is the size of both M and S: every 16-bit address is valid.
const memSize = 1 << 16

// memory is a flat, fixed-size array of words. Using an array (not a
// slice or a map) means the VM value owns its storage directly, the way
// nes.RAM owns its [2048]byte array.
type memory [memSize]Word

// load copies image into the memory starting at address 0, leaving any
// addresses beyond len(image) untouched (they are already zero on a fresh
// memory value).
func (m *memory) load(image []Word) {
	copy(m[:], image)
}

func (m *memory) read(addr Word) Word {
	return m[addr]
}

func (m *memory) write(addr Word, value Word) {
	m[addr] = value
}
