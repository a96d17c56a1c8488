package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble renders an opcode word as assembly for trace output,
// for example "JP $228" or "LD V1, $0A". Unknown opcode patterns are
// rendered as a raw data word.
func Disassemble(w uint16) string {
	op, ok := lookupOpcode(w)
	if !ok || op.Instruction == nil {
		return fmt.Sprintf(".word $%04X", w)
	}

	name := op.Instruction.Name
	if params := formatInstruction(name, w); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatInstruction formats the parameters of a CHIP-8 instruction.
// Returns an empty string for instructions without parameters.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJump(opcode)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", immNNN(opcode))
	case chip8.SeName, chip8.SneName:
		return formatCompare(opcode)
	case chip8.LdName:
		return formatLoad(opcode)
	case chip8.AddName:
		return formatAdd(opcode)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", regX(opcode), regY(opcode))
	case chip8.ShrName, chip8.ShlName:
		return fmt.Sprintf("V%X", regX(opcode))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", regX(opcode), immNN(opcode))
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", regX(opcode), regY(opcode), immN(opcode))
	case chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", regX(opcode))
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", immNNN(opcode))
	}
	return fmt.Sprintf("$%03X", immNNN(opcode))
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(opcode uint16) string {
	x := regX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, immNN(opcode))
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, regY(opcode))
	}
	return ""
}

// formatLoad formats the many LD variants.
func formatLoad(opcode uint16) string {
	x := regX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, immNN(opcode))
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, regY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", immNNN(opcode))
	case 0xF000:
		switch immNN(opcode) {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte / Vx, Vy / I, Vx).
func formatAdd(opcode uint16) string {
	x := regX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, immNN(opcode))
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, regY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}
