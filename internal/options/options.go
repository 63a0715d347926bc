// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program file"`
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: terminal, headless" default:"terminal"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Pacing contains the execution pacing options.
type Pacing struct {
	TicksPerFrame   int    `flag:"ticks" usage:"instructions executed per frame" default:"10"`
	FramesPerSecond int    `flag:"fps" usage:"frames per second, 0 runs unpaced" default:"60"`
	Frames          int    `flag:"frames" usage:"stop after this many frames, 0 runs until quit"`
	Seed            uint64 `flag:"seed" usage:"seed of the random number generator, 0 uses a random seed"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Pacing
}
