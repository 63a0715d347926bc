// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// The machine executes the 35 opcodes of the original CHIP-8 instruction set.
// All state is owned by a single Machine value:
//   - 4KB of memory, the built-in font occupies 0x000-0x04F
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag output
//   - 16-bit index register I and program counter
//   - a 16 entry return address stack
//   - delay and sound timers
//   - a 64x32 monochrome display plane
//   - a 16 key hexadecimal keypad
//
// # Execution Model
//
// The machine has no internal clock. A host calls Tick to run exactly one
// fetch-decode-execute cycle and TickTimers once per rendered frame to count
// the timers down. A common pacing is 10 instruction ticks per timer tick at
// 60 frames per second:
//
//	m := vm.New()
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for range 10 {
//		if err := m.Tick(); err != nil {
//			return err
//		}
//	}
//	if m.TickTimers() {
//		// play a beep
//	}
//	display := m.Display()
//
// The wait-for-key instruction (FX0A) does not block. It leaves the program
// counter on itself and puts the machine into an awaiting key state until a
// tick observes a pressed key.
//
// # Faults
//
// Unknown instruction words, memory and stack accesses outside the fixed
// arrays and oversized program images are reported as errors. Execution
// faults are returned as *Fault carrying the instruction word and address,
// after which the machine stays halted until Reset is called.
package vm
