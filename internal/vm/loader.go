package vm

import "fmt"

// Load copies a raw program image into memory at ProgramStart.
// Images larger than MaxProgramSize are rejected and memory is left unchanged.
// Load does not reset the machine, call Reset first to discard a previous program.
func (m *Machine) Load(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrImageTooLarge, len(data), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], data)
	return nil
}
