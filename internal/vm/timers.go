package vm

// TickTimers decrements the delay and sound timers by one if they are
// running. It returns true when the sound timer reached zero in this call,
// signalling the host to play a beep.
func (m *Machine) TickTimers() bool {
	if m.delayTimer > 0 {
		m.delayTimer--
	}

	var beep bool
	if m.soundTimer > 0 {
		beep = m.soundTimer == 1
		m.soundTimer--
	}

	if beep && m.beep != nil {
		m.beep()
	}
	return beep
}
