package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupOpcode classifies an opcode word against the canonical CHIP-8
// instruction tables. Patterns that match no table entry are decode errors,
// they are not silently skipped.
func lookupOpcode(w uint16) (chip8.Opcode, bool) {
	firstNibble := int(w >> 12)
	for _, op := range chip8.Opcodes[firstNibble] {
		if w&op.Info.Mask == op.Info.Value {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// regX extracts the X register nibble from an opcode word.
func regX(w uint16) byte {
	return byte(w>>8) & 0x0F
}

// regY extracts the Y register nibble from an opcode word.
func regY(w uint16) byte {
	return byte(w>>4) & 0x0F
}

// immN extracts the low nibble immediate from an opcode word.
func immN(w uint16) byte {
	return byte(w) & 0x0F
}

// immNN extracts the low byte immediate from an opcode word.
func immNN(w uint16) byte {
	return byte(w)
}

// immNNN extracts the 12 bit address immediate from an opcode word.
func immNNN(w uint16) uint16 {
	return w & 0x0FFF
}
