package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		wantSystem arch.System
	}{
		{
			name:       "explicit CHIP8 system option",
			systemOpt:  "chip8",
			inputFile:  "game.nes",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "explicit NES system option",
			systemOpt:  "nes",
			inputFile:  "game.ch8",
			wantSystem: arch.NES,
		},
		{
			name:       "detect from .ch8 extension",
			inputFile:  "game.ch8",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .nes extension",
			inputFile:  "game.nes",
			wantSystem: arch.NES,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile, System: tt.systemOpt},
			}

			got := d.Detect(opts)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		filename   string
		wantSystem arch.System
	}{
		{".ch8 extension", "pong.ch8", arch.CHIP8System},
		{".CH8 extension (uppercase)", "PONG.CH8", arch.CHIP8System},
		{".rom extension", "game.rom", arch.CHIP8System},
		{"no extension", "game", arch.CHIP8System},
		{".nes extension", "super_mario.nes", arch.NES},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.detectFromFile(tt.filename)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}

func TestValidate(t *testing.T) {
	d := New(log.NewTestLogger(t))

	assert.NoError(t, d.Validate(arch.CHIP8System))
	assert.ErrorContains(t, d.Validate(arch.NES), "unsupported system")
}
