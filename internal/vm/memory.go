package vm

import "fmt"

// fetch reads the big-endian instruction word at the program counter and
// advances the program counter past it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+opcodeSize > MemorySize {
		return 0, fmt.Errorf("fetching instruction at $%04X: %w", m.pc, ErrMemoryOutOfBounds)
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += opcodeSize
	return word, nil
}

// memoryRange returns the memory slice of the given length starting at address.
// The returned slice aliases machine memory.
func (m *Machine) memoryRange(address uint16, length int) ([]byte, error) {
	end := int(address) + length
	if end > MemorySize {
		return nil, fmt.Errorf("accessing $%04X-$%04X: %w", address, end-1, ErrMemoryOutOfBounds)
	}
	return m.memory[address:end], nil
}

func (m *Machine) push(address uint16) error {
	if int(m.sp) >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = address
	m.sp++
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.stack[m.sp], nil
}
