package chip8

import (
	"fmt"
)

// Step fetches, decodes and executes one instruction. The program counter
// advances by two before execution so that jump and call opcodes are not
// double-advanced. All returned errors are fatal: the first one latches and
// every further Step call returns it unchanged.
func (m *Machine) Step() error {
	if m.fault != nil {
		return m.fault
	}

	opcodePC := m.pc
	w := m.NextOpcode()
	m.pc += 2

	if _, ok := lookupOpcode(w); !ok {
		return m.fail(ErrUnknownOpcode, w, opcodePC)
	}
	if err := m.execute(w); err != nil {
		return m.fail(err, w, opcodePC)
	}
	return nil
}

// fail latches a fatal error with the offending opcode and address attached.
func (m *Machine) fail(err error, w, pc uint16) error {
	m.fault = fmt.Errorf("%w: opcode $%04X at $%03X", err, w, pc)
	return m.fault
}

// execute dispatches one opcode word to its handler. The program counter
// already points at the following instruction.
func (m *Machine) execute(w uint16) error {
	switch w >> 12 {
	case 0x0:
		return m.executeSystem(w)
	case 0x1: // JP addr
		m.pc = immNNN(w)
	case 0x2: // CALL addr
		return m.call(immNNN(w))
	case 0x3: // SE Vx, byte
		m.skipIf(m.v[regX(w)] == immNN(w))
	case 0x4: // SNE Vx, byte
		m.skipIf(m.v[regX(w)] != immNN(w))
	case 0x5: // SE Vx, Vy
		if immN(w) != 0 {
			return ErrUnknownOpcode
		}
		m.skipIf(m.v[regX(w)] == m.v[regY(w)])
	case 0x6: // LD Vx, byte
		m.v[regX(w)] = immNN(w)
	case 0x7: // ADD Vx, byte - wrapping, VF untouched
		m.v[regX(w)] += immNN(w)
	case 0x8:
		return m.executeALU(w)
	case 0x9: // SNE Vx, Vy
		if immN(w) != 0 {
			return ErrUnknownOpcode
		}
		m.skipIf(m.v[regX(w)] != m.v[regY(w)])
	case 0xA: // LD I, addr
		m.i = immNNN(w)
	case 0xB: // JP V0, addr
		m.pc = (immNNN(w) + uint16(m.v[0])) & addressMask
	case 0xC: // RND Vx, byte
		m.v[regX(w)] = byte(m.rng.Intn(256)) & immNN(w)
	case 0xD: // DRW Vx, Vy, nibble
		m.drawSprite(regX(w), regY(w), immN(w))
	case 0xE:
		return m.executeKey(w)
	case 0xF:
		return m.executeMisc(w)
	}
	return nil
}

// executeSystem handles the 0x0 opcode group (CLS, RET).
func (m *Machine) executeSystem(w uint16) error {
	switch w {
	case 0x00E0: // CLS
		m.display = [DisplayHeight][DisplayWidth]bool{}
		m.redraw = true
	case 0x00EE: // RET
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]
	default:
		// 0NNN machine code routines are not supported
		return ErrUnknownOpcode
	}
	return nil
}

// executeALU handles the 0x8 opcode group of register operations.
// Flag results are computed from the pre-operation register values and
// written after the result, so VF as an operand ends up holding the flag.
func (m *Machine) executeALU(w uint16) error {
	x, y := regX(w), regY(w)

	switch immN(w) {
	case 0x0: // LD Vx, Vy
		m.v[x] = m.v[y]
	case 0x1: // OR Vx, Vy
		m.v[x] |= m.v[y]
	case 0x2: // AND Vx, Vy
		m.v[x] &= m.v[y]
	case 0x3: // XOR Vx, Vy
		m.v[x] ^= m.v[y]
	case 0x4: // ADD Vx, Vy
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = byte(sum)
		m.setFlag(sum > 0xFF)
	case 0x5: // SUB Vx, Vy
		vx, vy := m.v[x], m.v[y]
		m.v[x] = vx - vy
		m.setFlag(vx >= vy)
	case 0x6: // SHR Vx
		if m.quirks.ShiftUsesVY {
			m.v[x] = m.v[y]
		}
		vx := m.v[x]
		m.v[x] = vx >> 1
		m.setFlag(vx&0x01 != 0)
	case 0x7: // SUBN Vx, Vy
		vx, vy := m.v[x], m.v[y]
		m.v[x] = vy - vx
		m.setFlag(vy >= vx)
	case 0xE: // SHL Vx
		if m.quirks.ShiftUsesVY {
			m.v[x] = m.v[y]
		}
		vx := m.v[x]
		m.v[x] = vx << 1
		m.setFlag(vx&0x80 != 0)
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// executeKey handles the 0xE opcode group of keypad skips.
func (m *Machine) executeKey(w uint16) error {
	key := m.v[regX(w)] & 0xF

	switch immNN(w) {
	case 0x9E: // SKP Vx
		m.skipIf(m.keys[key])
	case 0xA1: // SKNP Vx
		m.skipIf(!m.keys[key])
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// executeMisc handles the 0xF opcode group of timer, keypad and memory
// transfer operations.
func (m *Machine) executeMisc(w uint16) error {
	x := regX(w)

	switch immNN(w) {
	case 0x07: // LD Vx, DT
		m.v[x] = m.delayTimer
	case 0x0A: // LD Vx, K - repeat until a key is pressed
		m.waitKey(x)
	case 0x15: // LD DT, Vx
		m.delayTimer = m.v[x]
	case 0x18: // LD ST, Vx
		m.soundTimer = m.v[x]
	case 0x1E: // ADD I, Vx
		m.i = (m.i + uint16(m.v[x])) & addressMask
	case 0x29: // LD F, Vx
		m.i = FontStart + uint16(m.v[x]&0xF)*glyphSize
	case 0x33: // LD B, Vx
		m.storeBCD(m.v[x])
	case 0x55: // LD [I], Vx
		for k := byte(0); k <= x; k++ {
			m.mem[(m.i+uint16(k))&addressMask] = m.v[k]
		}
		m.advanceIndex(x)
	case 0x65: // LD Vx, [I]
		for k := byte(0); k <= x; k++ {
			m.v[k] = m.mem[(m.i+uint16(k))&addressMask]
		}
		m.advanceIndex(x)
	default:
		return ErrUnknownOpcode
	}
	return nil
}

// skipIf advances the program counter over the next instruction when the
// condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// setFlag writes a carry/borrow/collision result into VF.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// call pushes the current program counter and jumps to addr.
func (m *Machine) call(addr uint16) error {
	if m.sp == StackDepth {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = addr
	return nil
}

// waitKey implements FX0A: store the lowest pressed key in Vx, or rewind
// the program counter so the instruction executes again on the next step.
func (m *Machine) waitKey(x byte) {
	for key := byte(0); key < NumKeys; key++ {
		if m.keys[key] {
			m.v[x] = key
			return
		}
	}
	m.pc -= 2
}

// storeBCD writes the decimal digits of value to memory at I, I+1 and I+2.
func (m *Machine) storeBCD(value byte) {
	m.mem[m.i&addressMask] = value / 100
	m.mem[(m.i+1)&addressMask] = value / 10 % 10
	m.mem[(m.i+2)&addressMask] = value % 10
}

// advanceIndex applies the FX55/FX65 index increment quirk.
func (m *Machine) advanceIndex(x byte) {
	if m.quirks.IncrementIndex {
		m.i = (m.i + uint16(x) + 1) & addressMask
	}
}

// drawSprite XORs an 8 pixel wide, n pixel tall sprite read from memory at I
// onto the display at (Vx, Vy). Every pixel wraps around the display edges
// independently. VF reports whether any set pixel was erased, computed
// across the whole sprite.
func (m *Machine) drawSprite(x, y, n byte) {
	baseX := int(m.v[x])
	baseY := int(m.v[y])

	collision := false
	for row := 0; row < int(n); row++ {
		sprite := m.mem[(m.i+uint16(row))&addressMask]
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (baseX + col) % DisplayWidth
			py := (baseY + row) % DisplayHeight
			if m.display[py][px] {
				collision = true
			}
			m.display[py][px] = !m.display[py][px]
		}
	}

	m.setFlag(collision)
	m.redraw = true
}
