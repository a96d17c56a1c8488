package chip8

// Quirks select between the divergent historical interpretations of a few
// opcodes. Real world ROMs depend on both variants, so the driver can
// override the defaults. The defaults reproduce the original interpreter
// behavior.
type Quirks struct {
	// ShiftUsesVY makes 8XY6/8XYE load VY into VX before shifting.
	// When false, VX is shifted in place and VY is ignored.
	ShiftUsesVY bool

	// IncrementIndex makes FX55/FX65 advance I by X+1 after the transfer.
	// When false, I is left unchanged.
	IncrementIndex bool
}

// DefaultQuirks returns the quirk settings of the original interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:    true,
		IncrementIndex: true,
	}
}
