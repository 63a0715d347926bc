package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// quitFrontend requests to quit after a number of frames.
type quitFrontend struct {
	*frontend.Headless
	quitAfter int
}

func (q *quitFrontend) Input() ([]frontend.KeyEvent, error) {
	events, err := q.Headless.Input()
	if q.Frames() > q.quitAfter {
		return events, frontend.ErrQuit
	}
	return events, err
}

// closeCounter counts how often the frontend was closed.
type closeCounter struct {
	*frontend.Headless
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.Headless.Close()
}

func unpaced(frames int) options.Program {
	return options.Program{
		Flags: options.Flags{Frontend: options.FrontendHeadless, Quiet: true},
		Pacing: options.Pacing{
			TicksPerFrame: 10,
			Frames:        frames,
		},
	}
}

func TestNew(t *testing.T) {
	r := New(log.NewTestLogger(t), frontend.NewHeadless(nil))

	assert.NotNil(t, r)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.detector)
	assert.NotNil(t, r.loader)
}

func TestExecuteWithProgram(t *testing.T) {
	t.Run("draws a font glyph", func(t *testing.T) {
		headless := frontend.NewHeadless(nil)
		r := New(log.NewTestLogger(t), headless)

		// LD V0, 0; LD F, V0; DRW V0, V0, 5; JP 0x206
		program := []byte{0x60, 0x00, 0xF0, 0x29, 0xD0, 0x05, 0x12, 0x06}

		result, err := r.ExecuteWithProgram(context.Background(), program, unpaced(3))
		assert.NoError(t, err)
		assert.Equal(t, 3, result.Frames)
		assert.Equal(t, 30, result.Instructions)

		display := headless.Display()
		assert.Equal(t, 14, display.Lit())
		assert.True(t, display.Pixel(0, 0))
	})

	t.Run("signals beep", func(t *testing.T) {
		headless := frontend.NewHeadless(nil)
		r := New(log.NewTestLogger(t), headless)

		// LD V0, 2; LD ST, V0; JP 0x204
		program := []byte{0x60, 0x02, 0xF0, 0x18, 0x12, 0x04}

		result, err := r.ExecuteWithProgram(context.Background(), program, unpaced(4))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Beeps)
		assert.Equal(t, 1, headless.Beeps())
	})

	t.Run("applies scripted keys", func(t *testing.T) {
		headless := frontend.NewHeadless(nil)
		headless.Script(1, frontend.KeyEvent{Key: 0x7, Pressed: true})
		r := New(log.NewTestLogger(t), headless)

		// LD V3, K; LD F, V3; DRW V0, V0, 5; JP 0x206
		program := []byte{0xF3, 0x0A, 0xF3, 0x29, 0xD0, 0x05, 0x12, 0x06}

		result, err := r.ExecuteWithProgram(context.Background(), program, unpaced(2))
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Frames)
		assert.True(t, headless.Display().Lit() > 0)
	})

	t.Run("fault stops the run", func(t *testing.T) {
		r := New(log.NewTestLogger(t), frontend.NewHeadless(nil))

		_, err := r.ExecuteWithProgram(context.Background(), []byte{0x00, 0xEE}, unpaced(1))
		assert.True(t, errors.Is(err, vm.ErrStackUnderflow))

		var fault *vm.Fault
		assert.True(t, errors.As(err, &fault))
		assert.Equal(t, uint16(vm.ProgramStart), fault.PC)
	})

	t.Run("quit ends the run without error", func(t *testing.T) {
		fe := &quitFrontend{Headless: frontend.NewHeadless(nil), quitAfter: 2}
		r := New(log.NewTestLogger(t), fe)

		result, err := r.ExecuteWithProgram(context.Background(), []byte{0x12, 0x00}, unpaced(0))
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Frames)
	})

	t.Run("cancelled context", func(t *testing.T) {
		r := New(log.NewTestLogger(t), frontend.NewHeadless(nil))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.ExecuteWithProgram(ctx, []byte{0x12, 0x00}, unpaced(0))
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("same seed produces the same numbers", func(t *testing.T) {
		// RND V0, FF; RND V1, FF; ... ; JP 0x208
		program := []byte{0xC0, 0xFF, 0xC1, 0xFF, 0xC2, 0xFF, 0xC3, 0xFF, 0x12, 0x08}
		opts := unpaced(1)
		opts.Seed = 42
		opts.TicksPerFrame = 4

		first := runSeeded(t, program, opts)
		second := runSeeded(t, program, opts)
		assert.Equal(t, first, second)
	})
}

func runSeeded(t *testing.T, program []byte, opts options.Program) [vm.RegisterCount]uint8 {
	t.Helper()

	r := New(log.NewTestLogger(t), frontend.NewHeadless(nil))
	m := vm.New(r.machineOptions(opts)...)
	assert.NoError(t, m.Load(program))
	for range opts.TicksPerFrame {
		assert.NoError(t, m.Tick())
	}
	return m.Registers()
}

func TestExecute(t *testing.T) {
	t.Run("runs program file", func(t *testing.T) {
		tmpFile := createTempFile(t, "loop.ch8", []byte{0x12, 0x00})
		r := New(log.NewTestLogger(t), frontend.NewHeadless(nil))

		opts := unpaced(2)
		opts.Input = tmpFile

		result, err := r.Execute(context.Background(), opts)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Frames)
	})

	t.Run("non-existent file closes the frontend", func(t *testing.T) {
		fe := &closeCounter{Headless: frontend.NewHeadless(nil)}
		r := New(log.NewTestLogger(t), fe)

		opts := unpaced(1)
		opts.Input = "/nonexistent/file.ch8"

		_, err := r.Execute(context.Background(), opts)
		assert.Error(t, err)
		assert.Equal(t, 1, fe.closes)
	})

	t.Run("unsupported system closes the frontend", func(t *testing.T) {
		tmpFile := createTempFile(t, "game.nes", []byte{0x12, 0x00})
		fe := &closeCounter{Headless: frontend.NewHeadless(nil)}
		r := New(log.NewTestLogger(t), fe)

		opts := unpaced(1)
		opts.Input = tmpFile

		_, err := r.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "unsupported system")
		assert.Equal(t, 1, fe.closes)
	})

	t.Run("successful run closes the frontend once", func(t *testing.T) {
		tmpFile := createTempFile(t, "loop.ch8", []byte{0x12, 0x00})
		fe := &closeCounter{Headless: frontend.NewHeadless(nil)}
		r := New(log.NewTestLogger(t), fe)

		opts := unpaced(1)
		opts.Input = tmpFile

		_, err := r.Execute(context.Background(), opts)
		assert.NoError(t, err)
		assert.Equal(t, 1, fe.closes)
	})
}

func TestInstructionKind(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x3A12, "skip"},
		{0x4A12, "skip"},
		{0x5AB0, "skip"},
		{0x9AB0, "skip"},
		{0xEA9E, "skip"},
		{0xEAA1, "skip"},
		{0x6A12, "instruction"},
		{0x1234, "instruction"},
		{0xFA0A, "instruction"},
	}

	for _, tt := range tests {
		ins, err := vm.Decode(tt.word)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, instructionKind(ins), "word $%04X", tt.word)
	}
}

func TestDebugTraceWhileWaitingForKey(t *testing.T) {
	headless := frontend.NewHeadless(nil)
	headless.Script(2, frontend.KeyEvent{Key: 0x2, Pressed: true})
	r := New(log.NewTestLogger(t), headless)

	opts := unpaced(3)
	opts.Debug = true

	// SE V0, 1; LD V1, K; JP 0x204
	program := []byte{0x30, 0x01, 0xF1, 0x0A, 0x12, 0x04}

	result, err := r.ExecuteWithProgram(context.Background(), program, opts)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Frames)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
