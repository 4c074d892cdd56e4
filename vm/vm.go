// Package vm implements the SVC16 core: a deterministic 16-bit fantasy
// virtual machine with a flat 65536-word address space, a 256x256-word
// screen, a fixed sixteen-opcode instruction set, and a single
// host-synchronization barrier (SYNC).
//
// Everything outside this package — program loading, windowing, input
// polling, frame pacing, audio playback — is a host concern; this package
// only defines the data the host exchanges with the VM at sync points.
package vm

// Registers holds the machine's small register file: the instruction
// pointer, the two inputs most recently latched by the host, and the
// sync-requested flag.
type Registers struct {
	IP Word // address of the next opcode to execute
	P  Word // latched pointer/position code
	K  Word // latched key-code bitmask
	Q  bool // true iff SYNC ran since the last host servicing
}

// VM is the machine: its two memory arrays and its register file. The
// zero value is not useful; construct with New.
type VM struct {
	m memory // main memory
	s memory // screen memory
	r Registers
}

// New constructs a VM, zero-filling M and S and then overlaying image
// into M starting at address 0. Addresses beyond len(image) stay zero.
// image must have length <= 65536; New does not enforce that itself (the
// loader package does, since it is the component that knows the file
// format's own length limit) but silently ignores anything past 65536
// words if handed a longer slice.
func New(image []Word) *VM {
	v := &VM{}
	if len(image) > memSize {
		image = image[:memSize]
	}
	v.m.load(image)
	return v
}

// Step decodes and executes exactly one instruction: DECODE -> DISPATCH ->
// (MUTATE) -> UPDATE_IP. It returns ErrZeroDivision or
// ErrInvalidInstruction on a fatal fault; both leave the VM in a state
// where resuming is not meaningful (the caller's session is over).
func (v *VM) Step() error {
	ins := v.fetch(v.r.IP)
	return v.execute(ins)
}

// WantsSync reports the sync-requested flag Q.
func (v *VM) WantsSync() bool {
	return v.r.Q
}

// ReadIP returns the current instruction pointer.
func (v *VM) ReadIP() Word {
	return v.r.IP
}

// ReadInstruction returns the four words at the current IP without
// executing them — a pure observer for host diagnostics.
func (v *VM) ReadInstruction() [4]Word {
	ins := v.fetch(v.r.IP)
	return [4]Word{ins.opcode, ins.a1, ins.a2, ins.a3}
}

// Read returns M[addr] — a pure observer for host diagnostics.
func (v *VM) Read(addr Word) Word {
	return v.m.read(addr)
}

// ReadScreen returns S[addr]. Unlike PerformSync's snapshot, this reads
// live screen memory and is intended for diagnostics, not presentation
// (the guest must observe no external writes to S mid-step, but nothing
// stops a host from peeking between steps for debugging).
func (v *VM) ReadScreen(addr Word) Word {
	return v.s.read(addr)
}

// PerformSync is the host servicing operation (spec §4.3): it atomically
// latches the host's fresh P', K' into the register file, clears Q, and
// returns a by-value copy of S so the guest's next PRINT cannot alias the
// snapshot the host is about to present.
func (v *VM) PerformSync(p, k Word) Memory {
	v.r.P = p
	v.r.K = k
	v.r.Q = false
	return Memory(v.s)
}

// Memory is a by-value snapshot of one of the VM's 65536-word arrays,
// returned from PerformSync so callers cannot alias the VM's internal
// screen storage.
type Memory = memory
