package chip8

import "errors"

// Fatal machine errors. All of them end execution, the machine refuses to
// step again after returning one of these. Callers distinguish them with
// errors.Is; the wrapped messages carry the offending context (ROM size or
// program counter and raw opcode).
var (
	// ErrROMTooLarge is returned when a ROM image exceeds program memory.
	ErrROMTooLarge = errors.New("ROM image exceeds program memory")

	// ErrUnknownOpcode is returned when a fetched opcode matches no
	// instruction pattern.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrStackOverflow is returned when a subroutine call exceeds the
	// call stack capacity.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned when returning from a subroutine with
	// an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)
