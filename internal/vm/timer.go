package vm

// TickTimers decrements the delay and sound timers by one, stopping at
// zero. It is meant to be called at 60 Hz, independent of the instruction
// rate. The returned value is true when the sound timer reached zero on
// this tick, which ends a tone.
func (m *Machine) TickTimers() bool {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer == 0 {
		return false
	}
	m.soundTimer--
	return m.soundTimer == 0
}

// SoundActive returns whether the sound timer is running. Hosts play a
// tone for every timer tick that starts with an active sound timer.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}
