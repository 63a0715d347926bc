package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: built-in font glyphs
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program and data space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address a program image is loaded at and
	// where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the address of the first font glyph.
	FontAddress = 0x000

	// FontGlyphSize is the number of bytes (rows) of a single font glyph.
	FontGlyphSize = 5
)

const (
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// FlagRegister is the index of VF which receives carry, borrow,
	// shift and collision flags.
	FlagRegister = 0xF
)

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// font contains the hexadecimal digit glyphs 0-F, 4x5 pixels each,
// stored with the most significant bit as the leftmost pixel.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
