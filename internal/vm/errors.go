package vm

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrMemoryOutOfBounds  = errors.New("memory access out of bounds")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrImageTooLarge      = errors.New("program image too large")
	ErrInvalidKey         = errors.New("invalid key")
	ErrHalted             = errors.New("machine halted")
)

// Fault describes an execution fault that stopped the machine.
// It unwraps to one of the sentinel errors of this package.
type Fault struct {
	Kind   error  // sentinel error describing the fault
	Opcode uint16 // instruction word that faulted, 0 if the fetch itself failed
	PC     uint16 // address of the faulting instruction
}

// faultKinds lists the sentinel errors an execution fault can carry.
var faultKinds = []error{
	ErrUnknownInstruction,
	ErrMemoryOutOfBounds,
	ErrStackOverflow,
	ErrStackUnderflow,
	ErrInvalidKey,
}

// faultKind returns the sentinel error wrapped by err. The fault already
// reports opcode and address, the detail of the wrapping message is dropped.
func faultKind(err error) error {
	for _, kind := range faultKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return err
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: opcode $%04X at address $%03X", f.Kind, f.Opcode, f.PC)
}

func (f *Fault) Unwrap() error {
	return f.Kind
}
