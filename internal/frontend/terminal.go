package frontend

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/term"
)

// DefaultKeyHoldFrames is the number of frames a key stays pressed after
// the terminal reported it. Terminals do not report key releases, holding
// a key down produces repeated bytes at the keyboard repeat rate.
const DefaultKeyHoldFrames = 6

const (
	byteCtrlC  = 0x03
	byteEscape = 0x1B
)

const (
	escClearScreen = "\x1b[2J"
	escCursorHome  = "\x1b[H"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
)

// keyMap maps the left side of a QWERTY keyboard to the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var errNotATerminal = errors.New("input is not a terminal")

// Terminal renders the display with block characters in a raw mode
// terminal and reads the keypad from the keyboard.
// A lone ESC or Ctrl+C quit, escape sequences of arrow and function keys
// are ignored.
type Terminal struct {
	in  *os.File
	out *bufio.Writer

	oldState *term.State
	fd       int

	bytes   chan byte
	stopCh  chan struct{}
	stopped sync.Once

	holdFrames int
	held       [vm.KeyCount]int
	pressed    [vm.KeyCount]bool
	quit       bool
}

// NewTerminal returns a terminal frontend reading keys from in and
// drawing to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:         in,
		out:        bufio.NewWriter(out),
		bytes:      make(chan byte, 64),
		stopCh:     make(chan struct{}),
		holdFrames: DefaultKeyHoldFrames,
	}
}

// Start puts the terminal into raw mode and starts reading keys.
// Call Close to restore the terminal.
func (t *Terminal) Start() error {
	t.fd = int(t.in.Fd())
	if !term.IsTerminal(t.fd) {
		return errNotATerminal
	}

	width, height, err := term.GetSize(t.fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < vm.ScreenWidth || height < vm.ScreenHeight/2 {
		return fmt.Errorf("terminal size %dx%d is too small, at least %dx%d is required",
			width, height, vm.ScreenWidth, vm.ScreenHeight/2)
	}

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = oldState

	go t.readInput()

	_, _ = t.out.WriteString(escClearScreen + escHideCursor)
	return t.out.Flush()
}

// readInput forwards bytes from the terminal until the frontend is closed.
// A blocking read can not be interrupted, the goroutine exits after the
// next key press following Close.
func (t *Terminal) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.bytes <- b:
			case <-t.stopCh:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Input returns the keypad changes since the last call.
func (t *Terminal) Input() ([]KeyEvent, error) {
	var data []byte
drain:
	for {
		select {
		case b := <-t.bytes:
			data = append(data, b)
		default:
			break drain
		}
	}

	events := t.processInput(data)
	if t.quit {
		return events, ErrQuit
	}
	return events, nil
}

func (t *Terminal) processInput(data []byte) []KeyEvent {
	var events []KeyEvent
	var refreshed [vm.KeyCount]bool

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch b {
		case byteCtrlC:
			t.quit = true
			continue
		case byteEscape:
			if next := escapeSequenceEnd(data, i); next > i {
				i = next
			} else {
				t.quit = true
			}
			continue
		}

		key, ok := keyForByte(b)
		if !ok {
			continue
		}
		refreshed[key] = true
		t.held[key] = t.holdFrames
		if !t.pressed[key] {
			t.pressed[key] = true
			events = append(events, KeyEvent{Key: key, Pressed: true})
		}
	}

	for key := range t.held {
		if refreshed[key] || t.held[key] == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 && t.pressed[key] {
			t.pressed[key] = false
			events = append(events, KeyEvent{Key: key, Pressed: false})
		}
	}
	return events
}

// escapeSequenceEnd returns the index of the last byte of the escape
// sequence starting at data[start], or start for a lone ESC.
// Arrow and function keys send CSI (ESC [ ... final) or SS3 (ESC O x)
// sequences.
func escapeSequenceEnd(data []byte, start int) int {
	if start+1 >= len(data) {
		return start
	}

	switch data[start+1] {
	case '[':
		for i := start + 2; i < len(data); i++ {
			if data[i] >= 0x40 && data[i] <= 0x7E {
				return i
			}
		}
		return len(data) - 1
	case 'O':
		return min(start+2, len(data)-1)
	default:
		return start
	}
}

func keyForByte(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	return key, ok
}

// Render draws the display using half block characters, two display rows
// per terminal line.
func (t *Terminal) Render(display vm.Display) error {
	_, _ = t.out.WriteString(escCursorHome)

	for y := 0; y < vm.ScreenHeight; y += 2 {
		for x := range vm.ScreenWidth {
			top := display.Pixel(x, y)
			bottom := display.Pixel(x, y+1)
			switch {
			case top && bottom:
				_, _ = t.out.WriteString("█")
			case top:
				_, _ = t.out.WriteString("▀")
			case bottom:
				_, _ = t.out.WriteString("▄")
			default:
				_ = t.out.WriteByte(' ')
			}
		}
		_, _ = t.out.WriteString("\r\n")
	}

	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	_ = t.out.WriteByte('\a')
}

// Close stops reading keys and restores the terminal state.
func (t *Terminal) Close() error {
	t.stopped.Do(func() {
		close(t.stopCh)
	})

	_, _ = t.out.WriteString(escShowCursor)
	flushErr := t.out.Flush()

	if t.oldState != nil {
		if err := term.Restore(t.fd, t.oldState); err != nil {
			return fmt.Errorf("restoring terminal: %w", err)
		}
		t.oldState = nil
	}
	return flushErr
}
