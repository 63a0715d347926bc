package vm

import "fmt"

type handler func(m *Machine, ins Instruction) error

// handlers maps every instruction pattern to its implementation.
var handlers = [opCount]handler{
	OpNop:              (*Machine).nop,
	OpClearScreen:      (*Machine).clearScreen,
	OpReturn:           (*Machine).ret,
	OpJump:             (*Machine).jump,
	OpCall:             (*Machine).call,
	OpSkipEqualByte:    (*Machine).skipEqualByte,
	OpSkipNotEqualByte: (*Machine).skipNotEqualByte,
	OpSkipEqual:        (*Machine).skipEqual,
	OpLoadByte:         (*Machine).loadByte,
	OpAddByte:          (*Machine).addByte,
	OpLoad:             (*Machine).load,
	OpOr:               (*Machine).or,
	OpAnd:              (*Machine).and,
	OpXor:              (*Machine).xor,
	OpAdd:              (*Machine).add,
	OpSub:              (*Machine).sub,
	OpShiftRight:       (*Machine).shiftRight,
	OpSubReverse:       (*Machine).subReverse,
	OpShiftLeft:        (*Machine).shiftLeft,
	OpSkipNotEqual:     (*Machine).skipNotEqual,
	OpLoadIndex:        (*Machine).loadIndex,
	OpJumpOffset:       (*Machine).jumpOffset,
	OpRandom:           (*Machine).rnd,
	OpDraw:             (*Machine).draw,
	OpSkipKey:          (*Machine).skipKey,
	OpSkipNotKey:       (*Machine).skipNotKey,
	OpLoadDelay:        (*Machine).loadDelay,
	OpWaitKey:          (*Machine).waitKey,
	OpSetDelay:         (*Machine).setDelay,
	OpSetSound:         (*Machine).setSound,
	OpAddIndex:         (*Machine).addIndex,
	OpLoadFont:         (*Machine).loadFont,
	OpStoreBCD:         (*Machine).storeBCD,
	OpStoreRegisters:   (*Machine).storeRegisters,
	OpLoadRegisters:    (*Machine).loadRegisters,
}

func (m *Machine) execute(ins Instruction) error {
	if ins.Op >= opCount {
		return fmt.Errorf("%w: %s", ErrUnknownInstruction, ins.Op)
	}
	return handlers[ins.Op](m, ins)
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// setFlag writes VF after the result register, a flag result wins when
// the result register is VF itself.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

func (m *Machine) nop(_ Instruction) error {
	return nil
}

func (m *Machine) clearScreen(_ Instruction) error {
	m.display.clear()
	return nil
}

func (m *Machine) ret(_ Instruction) error {
	address, err := m.pop()
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

func (m *Machine) jump(ins Instruction) error {
	m.pc = ins.NNN()
	return nil
}

// call pushes the address of the instruction following the call, the
// program counter was already advanced by the fetch.
func (m *Machine) call(ins Instruction) error {
	if err := m.push(m.pc); err != nil {
		return err
	}
	m.pc = ins.NNN()
	return nil
}

func (m *Machine) skipEqualByte(ins Instruction) error {
	m.skipIf(m.v[ins.X()] == ins.NN())
	return nil
}

func (m *Machine) skipNotEqualByte(ins Instruction) error {
	m.skipIf(m.v[ins.X()] != ins.NN())
	return nil
}

func (m *Machine) skipEqual(ins Instruction) error {
	m.skipIf(m.v[ins.X()] == m.v[ins.Y()])
	return nil
}

func (m *Machine) skipNotEqual(ins Instruction) error {
	m.skipIf(m.v[ins.X()] != m.v[ins.Y()])
	return nil
}

func (m *Machine) loadByte(ins Instruction) error {
	m.v[ins.X()] = ins.NN()
	return nil
}

// addByte wraps around without touching VF.
func (m *Machine) addByte(ins Instruction) error {
	m.v[ins.X()] += ins.NN()
	return nil
}

func (m *Machine) load(ins Instruction) error {
	m.v[ins.X()] = m.v[ins.Y()]
	return nil
}

func (m *Machine) or(ins Instruction) error {
	m.v[ins.X()] |= m.v[ins.Y()]
	return nil
}

func (m *Machine) and(ins Instruction) error {
	m.v[ins.X()] &= m.v[ins.Y()]
	return nil
}

func (m *Machine) xor(ins Instruction) error {
	m.v[ins.X()] ^= m.v[ins.Y()]
	return nil
}

func (m *Machine) add(ins Instruction) error {
	x, y := m.v[ins.X()], m.v[ins.Y()]
	sum := uint16(x) + uint16(y)
	m.v[ins.X()] = uint8(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

// sub sets VF to 1 when no borrow occurred.
func (m *Machine) sub(ins Instruction) error {
	x, y := m.v[ins.X()], m.v[ins.Y()]
	m.v[ins.X()] = x - y
	m.setFlag(x >= y)
	return nil
}

func (m *Machine) subReverse(ins Instruction) error {
	x, y := m.v[ins.X()], m.v[ins.Y()]
	m.v[ins.X()] = y - x
	m.setFlag(y >= x)
	return nil
}

func (m *Machine) shiftRight(ins Instruction) error {
	x := m.v[ins.X()]
	m.v[ins.X()] = x >> 1
	m.setFlag(x&0x01 != 0)
	return nil
}

func (m *Machine) shiftLeft(ins Instruction) error {
	x := m.v[ins.X()]
	m.v[ins.X()] = x << 1
	m.setFlag(x&0x80 != 0)
	return nil
}

func (m *Machine) loadIndex(ins Instruction) error {
	m.index = ins.NNN()
	return nil
}

func (m *Machine) jumpOffset(ins Instruction) error {
	m.pc = uint16(m.v[0]) + ins.NNN()
	return nil
}

func (m *Machine) rnd(ins Instruction) error {
	m.v[ins.X()] = m.random() & ins.NN()
	return nil
}

func (m *Machine) draw(ins Instruction) error {
	sprite, err := m.memoryRange(m.index, int(ins.N()))
	if err != nil {
		return err
	}
	collision := m.display.drawSprite(int(m.v[ins.X()]), int(m.v[ins.Y()]), sprite)
	m.setFlag(collision)
	return nil
}

func (m *Machine) skipKey(ins Instruction) error {
	pressed, err := m.keyState(m.v[ins.X()])
	if err != nil {
		return err
	}
	m.skipIf(pressed)
	return nil
}

func (m *Machine) skipNotKey(ins Instruction) error {
	pressed, err := m.keyState(m.v[ins.X()])
	if err != nil {
		return err
	}
	m.skipIf(!pressed)
	return nil
}

func (m *Machine) loadDelay(ins Instruction) error {
	m.v[ins.X()] = m.delayTimer
	return nil
}

func (m *Machine) waitKey(ins Instruction) error {
	key, ok := m.firstPressedKey()
	if !ok {
		// stay on this instruction until a tick observes a pressed key
		m.pc -= opcodeSize
		m.waitingKey = true
		m.waitRegister = uint8(ins.X())
		return nil
	}

	m.v[ins.X()] = uint8(key)
	m.waitingKey = false
	m.waitRegister = 0
	return nil
}

func (m *Machine) setDelay(ins Instruction) error {
	m.delayTimer = m.v[ins.X()]
	return nil
}

func (m *Machine) setSound(ins Instruction) error {
	m.soundTimer = m.v[ins.X()]
	return nil
}

func (m *Machine) addIndex(ins Instruction) error {
	m.index += uint16(m.v[ins.X()])
	return nil
}

func (m *Machine) loadFont(ins Instruction) error {
	m.index = FontAddress + uint16(m.v[ins.X()])*FontGlyphSize
	return nil
}

func (m *Machine) storeBCD(ins Instruction) error {
	dst, err := m.memoryRange(m.index, 3)
	if err != nil {
		return err
	}
	value := m.v[ins.X()]
	dst[0] = value / 100
	dst[1] = value / 10 % 10
	dst[2] = value % 10
	return nil
}

func (m *Machine) storeRegisters(ins Instruction) error {
	dst, err := m.memoryRange(m.index, ins.X()+1)
	if err != nil {
		return err
	}
	copy(dst, m.v[:ins.X()+1])
	return nil
}

func (m *Machine) loadRegisters(ins Instruction) error {
	src, err := m.memoryRange(m.index, ins.X()+1)
	if err != nil {
		return err
	}
	copy(m.v[:ins.X()+1], src)
	return nil
}
