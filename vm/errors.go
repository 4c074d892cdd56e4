package vm

import "errors"

// Step returns one of these two sentinel errors on a fatal fault. Both end
// the VM session; there is no resume, retry, or trap handler within the
// guest (spec §7). Callers distinguish them with errors.Is.
var (
	// ErrZeroDivision is raised by DIV when the divisor is zero, before M
	// is mutated.
	ErrZeroDivision = errors.New("svc16: division by zero")

	// ErrInvalidInstruction is raised when the fetched opcode is not one
	// of the sixteen defined opcodes, before IP advances or M mutates.
	ErrInvalidInstruction = errors.New("svc16: invalid instruction")
)
