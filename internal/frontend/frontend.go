// Package frontend contains the host frontends that display the machine
// and feed keypad input into it.
package frontend

import "errors"

// ErrQuit is returned by a frontend when the user asked to quit.
var ErrQuit = errors.New("quit requested")

// KeyEvent is a keypad state change.
type KeyEvent struct {
	Key     int // keypad key 0x0-0xF
	Pressed bool
}
