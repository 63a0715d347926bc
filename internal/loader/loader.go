// Package loader handles program file loading operations.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

var errEmptyProgram = errors.New("program file is empty")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image named by the input option.
// CHIP-8 program files have no header, the whole file is the image.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a raw program image and validates that it fits
// into the program area of the machine.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images without
	// reading arbitrarily large files into memory
	buffered := bufio.NewReader(io.LimitReader(reader, vm.MaxProgramSize+1))
	if _, err := buffered.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyProgram
		}
		return nil, fmt.Errorf("reading program: %w", err)
	}

	cart, err := cartridge.LoadBuffer(buffered)
	if err != nil {
		return nil, fmt.Errorf("loading program buffer: %w", err)
	}

	switch {
	case len(cart.PRG) == 0:
		return nil, errEmptyProgram
	case len(cart.PRG) > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", vm.ErrImageTooLarge, vm.MaxProgramSize)
	}
	return cart.PRG, nil
}
