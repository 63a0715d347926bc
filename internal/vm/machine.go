package vm

import (
	"fmt"
	"math/rand/v2"
)

// Tracer is called before an instruction is executed with the address
// it was fetched from.
type Tracer func(pc uint16, ins Instruction)

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the source of random bytes used by the RND instruction.
func WithRandom(random func() uint8) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithTracer installs a tracer that observes every executed instruction.
func WithTracer(tracer Tracer) Option {
	return func(m *Machine) {
		m.tracer = tracer
	}
}

// WithBeepHandler sets a callback that is invoked when the sound timer
// reaches zero.
func WithBeepHandler(handler func()) Option {
	return func(m *Machine) {
		m.beep = handler
	}
}

// Machine contains the complete state of a CHIP-8 virtual machine.
// A Machine is not safe for concurrent use, each host loop owns its instance.
type Machine struct {
	pc     uint16
	index  uint16
	v      [RegisterCount]uint8
	memory [MemorySize]byte

	stack [StackSize]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	display Display
	keys    [KeyCount]bool

	waitingKey   bool
	waitRegister uint8

	fault *Fault

	random func() uint8
	tracer Tracer
	beep   func()
}

// New returns a new machine in its initial state with the font installed.
func New(opts ...Option) *Machine {
	m := &Machine{
		random: randomByte,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset restores the initial state of the machine and discards any loaded
// program. Configured options are kept.
func (m *Machine) Reset() {
	m.pc = ProgramStart
	m.index = 0
	m.v = [RegisterCount]uint8{}
	m.memory = [MemorySize]byte{}
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.display.clear()
	m.keys = [KeyCount]bool{}
	m.waitingKey = false
	m.waitRegister = 0
	m.fault = nil

	copy(m.memory[FontAddress:], font[:])
}

// Tick executes exactly one fetch-decode-execute cycle.
// A returned *Fault halts the machine, all following ticks return an
// error wrapping ErrHalted until Reset is called.
func (m *Machine) Tick() error {
	if m.fault != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.fault)
	}

	pc := m.pc
	word, err := m.fetch()
	if err != nil {
		return m.halt(err, 0, pc)
	}

	ins, err := Decode(word)
	if err != nil {
		return m.halt(err, word, pc)
	}

	if m.tracer != nil {
		m.tracer(pc, ins)
	}

	if err := m.execute(ins); err != nil {
		return m.halt(err, word, pc)
	}
	return nil
}

func (m *Machine) halt(err error, opcode, pc uint16) error {
	m.fault = &Fault{
		Kind:   faultKind(err),
		Opcode: opcode,
		PC:     pc,
	}
	return m.fault
}

// Fault returns the fault that halted the machine or nil.
func (m *Machine) Fault() *Fault {
	return m.fault
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.index
}

// SP returns the stack pointer, the number of return addresses on the stack.
func (m *Machine) SP() int {
	return int(m.sp)
}

// Register returns the value of register Vn, n is taken modulo 16.
func (m *Machine) Register(n int) uint8 {
	return m.v[n&0xF]
}

// Registers returns a copy of all general-purpose registers.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.v
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading address $%04X: %w", address, ErrMemoryOutOfBounds)
	}
	return m.memory[address], nil
}

// Display returns a copy of the display plane.
func (m *Machine) Display() Display {
	return m.display
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}
