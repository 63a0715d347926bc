package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the 35 instruction patterns.
type Op uint8

// Instruction patterns, the comment shows the instruction word with
// operand nibbles as x, y, n, nn and nnn.
const (
	OpNop              Op = iota // 0000
	OpClearScreen                // 00E0
	OpReturn                     // 00EE
	OpJump                       // 1nnn
	OpCall                       // 2nnn
	OpSkipEqualByte              // 3xnn
	OpSkipNotEqualByte           // 4xnn
	OpSkipEqual                  // 5xy0
	OpLoadByte                   // 6xnn
	OpAddByte                    // 7xnn
	OpLoad                       // 8xy0
	OpOr                         // 8xy1
	OpAnd                        // 8xy2
	OpXor                        // 8xy3
	OpAdd                        // 8xy4
	OpSub                        // 8xy5
	OpShiftRight                 // 8xy6
	OpSubReverse                 // 8xy7
	OpShiftLeft                  // 8xyE
	OpSkipNotEqual               // 9xy0
	OpLoadIndex                  // Annn
	OpJumpOffset                 // Bnnn
	OpRandom                     // Cxnn
	OpDraw                       // Dxyn
	OpSkipKey                    // Ex9E
	OpSkipNotKey                 // ExA1
	OpLoadDelay                  // Fx07
	OpWaitKey                    // Fx0A
	OpSetDelay                   // Fx15
	OpSetSound                   // Fx18
	OpAddIndex                   // Fx1E
	OpLoadFont                   // Fx29
	OpStoreBCD                   // Fx33
	OpStoreRegisters             // Fx55
	OpLoadRegisters              // Fx65

	opCount
)

var opNames = [opCount]string{
	OpNop:              "NOP",
	OpClearScreen:      "CLS",
	OpReturn:           "RET",
	OpJump:             "JP addr",
	OpCall:             "CALL addr",
	OpSkipEqualByte:    "SE Vx, byte",
	OpSkipNotEqualByte: "SNE Vx, byte",
	OpSkipEqual:        "SE Vx, Vy",
	OpLoadByte:         "LD Vx, byte",
	OpAddByte:          "ADD Vx, byte",
	OpLoad:             "LD Vx, Vy",
	OpOr:               "OR Vx, Vy",
	OpAnd:              "AND Vx, Vy",
	OpXor:              "XOR Vx, Vy",
	OpAdd:              "ADD Vx, Vy",
	OpSub:              "SUB Vx, Vy",
	OpShiftRight:       "SHR Vx",
	OpSubReverse:       "SUBN Vx, Vy",
	OpShiftLeft:        "SHL Vx",
	OpSkipNotEqual:     "SNE Vx, Vy",
	OpLoadIndex:        "LD I, addr",
	OpJumpOffset:       "JP V0, addr",
	OpRandom:           "RND Vx, byte",
	OpDraw:             "DRW Vx, Vy, nibble",
	OpSkipKey:          "SKP Vx",
	OpSkipNotKey:       "SKNP Vx",
	OpLoadDelay:        "LD Vx, DT",
	OpWaitKey:          "LD Vx, K",
	OpSetDelay:         "LD DT, Vx",
	OpSetSound:         "LD ST, Vx",
	OpAddIndex:         "ADD I, Vx",
	OpLoadFont:         "LD F, Vx",
	OpStoreBCD:         "LD B, Vx",
	OpStoreRegisters:   "LD [I], Vx",
	OpLoadRegisters:    "LD Vx, [I]",
}

func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", o)
	}
	return opNames[o]
}

// pattern matches an instruction word if the bits selected by mask equal value.
// Nibbles cleared in the mask are operand wildcards.
type pattern struct {
	mask  uint16
	value uint16
	op    Op
}

var patterns = []pattern{
	{0xFFFF, 0x0000, OpNop},
	{0xFFFF, 0x00E0, OpClearScreen},
	{0xFFFF, 0x00EE, OpReturn},
	{0xF000, 0x1000, OpJump},
	{0xF000, 0x2000, OpCall},
	{0xF000, 0x3000, OpSkipEqualByte},
	{0xF000, 0x4000, OpSkipNotEqualByte},
	{0xF00F, 0x5000, OpSkipEqual},
	{0xF000, 0x6000, OpLoadByte},
	{0xF000, 0x7000, OpAddByte},
	{0xF00F, 0x8000, OpLoad},
	{0xF00F, 0x8001, OpOr},
	{0xF00F, 0x8002, OpAnd},
	{0xF00F, 0x8003, OpXor},
	{0xF00F, 0x8004, OpAdd},
	{0xF00F, 0x8005, OpSub},
	{0xF00F, 0x8006, OpShiftRight},
	{0xF00F, 0x8007, OpSubReverse},
	{0xF00F, 0x800E, OpShiftLeft},
	{0xF00F, 0x9000, OpSkipNotEqual},
	{0xF000, 0xA000, OpLoadIndex},
	{0xF000, 0xB000, OpJumpOffset},
	{0xF000, 0xC000, OpRandom},
	{0xF000, 0xD000, OpDraw},
	{0xF0FF, 0xE09E, OpSkipKey},
	{0xF0FF, 0xE0A1, OpSkipNotKey},
	{0xF0FF, 0xF007, OpLoadDelay},
	{0xF0FF, 0xF00A, OpWaitKey},
	{0xF0FF, 0xF015, OpSetDelay},
	{0xF0FF, 0xF018, OpSetSound},
	{0xF0FF, 0xF01E, OpAddIndex},
	{0xF0FF, 0xF029, OpLoadFont},
	{0xF0FF, 0xF033, OpStoreBCD},
	{0xF0FF, 0xF055, OpStoreRegisters},
	{0xF0FF, 0xF065, OpLoadRegisters},
}

// decodeTable groups the patterns by the first nibble of the instruction word.
var decodeTable = buildDecodeTable()

func buildDecodeTable() [16][]pattern {
	var table [16][]pattern
	for _, p := range patterns {
		nibble := p.value >> 12
		table[nibble] = append(table[nibble], p)
	}
	return table
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op     Op
	Opcode uint16
}

// Decode splits an instruction word into its nibbles and selects the
// matching instruction pattern.
func Decode(word uint16) (Instruction, error) {
	for _, p := range decodeTable[word>>12] {
		if word&p.mask == p.value {
			return Instruction{Op: p.op, Opcode: word}, nil
		}
	}
	return Instruction{}, fmt.Errorf("%w $%04X", ErrUnknownInstruction, word)
}

// X returns the register index encoded in the second nibble.
func (i Instruction) X() int {
	return int(i.Opcode>>8) & 0xF
}

// Y returns the register index encoded in the third nibble.
func (i Instruction) Y() int {
	return int(i.Opcode>>4) & 0xF
}

// N returns the lowest nibble.
func (i Instruction) N() uint8 {
	return uint8(i.Opcode & 0x000F)
}

// NN returns the low byte.
func (i Instruction) NN() uint8 {
	return uint8(i.Opcode & 0x00FF)
}

// NNN returns the 12-bit address operand.
func (i Instruction) NNN() uint16 {
	return i.Opcode & 0x0FFF
}

// Mnemonic returns the assembler mnemonic of the instruction as named by the
// retrogolib CHIP-8 opcode table, or an empty string if the table has no entry.
func (i Instruction) Mnemonic() string {
	ins := i.cpuInstruction()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// IsSkip returns whether the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	ins := i.cpuInstruction()
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

func (i Instruction) cpuInstruction() *chip8.Instruction {
	for _, op := range chip8.Opcodes[int(i.Opcode>>12)] {
		if op.Info.Mask&i.Opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

func (i Instruction) String() string {
	return fmt.Sprintf("$%04X %s", i.Opcode, i.Op)
}
