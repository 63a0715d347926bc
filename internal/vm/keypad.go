package vm

import "fmt"

// KeyPress sets or clears the state of one of the 16 keypad keys.
func (m *Machine) KeyPress(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	return nil
}

// KeyPressed returns whether the given key is currently pressed.
func (m *Machine) KeyPressed(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// AwaitingKey returns whether the machine is blocked on a wait-for-key
// instruction and the register that will receive the key.
func (m *Machine) AwaitingKey() (register int, waiting bool) {
	return int(m.waitRegister), m.waitingKey
}

func (m *Machine) keyState(key uint8) (bool, error) {
	if int(key) >= KeyCount {
		return false, fmt.Errorf("%w: V register holds %d", ErrInvalidKey, key)
	}
	return m.keys[key], nil
}

// firstPressedKey returns the lowest pressed key.
func (m *Machine) firstPressedKey() (int, bool) {
	for key, pressed := range m.keys {
		if pressed {
			return key, true
		}
	}
	return 0, false
}
