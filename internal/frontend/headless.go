package frontend

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Headless is a frontend without a display or keyboard. It replays a
// scripted key sequence and writes the last rendered frame on Close.
type Headless struct {
	writer io.Writer
	script map[int][]KeyEvent

	frame   int
	beeps   int
	display vm.Display
}

// NewHeadless returns a headless frontend that writes the final frame to
// the given writer, the writer may be nil.
func NewHeadless(writer io.Writer) *Headless {
	return &Headless{
		writer: writer,
		script: map[int][]KeyEvent{},
	}
}

// Script queues key events to be delivered at the start of the given frame.
func (h *Headless) Script(frame int, events ...KeyEvent) {
	h.script[frame] = append(h.script[frame], events...)
}

// Input returns the scripted events for the current frame.
func (h *Headless) Input() ([]KeyEvent, error) {
	events := h.script[h.frame]
	h.frame++
	return events, nil
}

// Render stores the frame.
func (h *Headless) Render(display vm.Display) error {
	h.display = display
	return nil
}

// Beep counts the beep.
func (h *Headless) Beep() {
	h.beeps++
}

// Beeps returns the number of beeps requested so far.
func (h *Headless) Beeps() int {
	return h.beeps
}

// Frames returns the number of frames that polled input.
func (h *Headless) Frames() int {
	return h.frame
}

// Display returns the last rendered frame.
func (h *Headless) Display() vm.Display {
	return h.display
}

// Close writes the last rendered frame.
func (h *Headless) Close() error {
	if h.writer == nil {
		return nil
	}
	if _, err := fmt.Fprint(h.writer, h.display.String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
