package vm

// instruction is the four words read from memory at a given instruction
// pointer: an opcode and its three operands.
type instruction struct {
	opcode, a1, a2, a3 Word
}

// fetch reads the four words at M[ip], M[ip+1], M[ip+2], M[ip+3], each
// address wrapping modulo 2^16 independently of ip itself. It never
// advances ip — advancement is the caller's responsibility, per-opcode.
func (v *VM) fetch(ip Word) instruction {
	return instruction{
		opcode: v.m.read(ip + 0),
		a1:     v.m.read(ip + 1),
		a2:     v.m.read(ip + 2),
		a3:     v.m.read(ip + 3),
	}
}
