package insts

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Width is the number of bits in an instruction word.
const Width = 8

// Bit is a single instruction bit. It only ever holds 0 or 1.
type Bit = uint8

// ErrInvalidInstruction is returned when a textual bit pattern cannot be parsed.
var ErrInvalidInstruction = errors.New("invalid instruction")

// Instruction is an immutable 8-bit vector. Bit 0 is the most significant bit,
// matching the top row of the LED panel.
//
// Instruction is comparable, so it can be used directly as a map key.
type Instruction [Width]Bit

// FromByte builds an instruction from a byte, most significant bit first.
func FromByte(b uint8) Instruction {
	var inst Instruction
	for i := 0; i < Width; i++ {
		inst[i] = (b >> (Width - 1 - i)) & 1
	}
	return inst
}

// FromCounter returns the low 8 bits of n as an instruction, most significant
// bit first. It is used to display wrapping counters.
func FromCounter(n uint64) Instruction {
	return FromByte(uint8(n % 256))
}

// ParseInstruction parses a string of exactly Width '0'/'1' characters.
func ParseInstruction(s string) (Instruction, error) {
	var inst Instruction
	if len(s) != Width {
		return inst, fmt.Errorf("%w: %q has %d bits, want %d",
			ErrInvalidInstruction, s, len(s), Width)
	}

	for i, c := range s {
		switch c {
		case '0':
			inst[i] = 0
		case '1':
			inst[i] = 1
		default:
			return Instruction{}, fmt.Errorf("%w: %q contains %q",
				ErrInvalidInstruction, s, c)
		}
	}

	return inst, nil
}

// MustParse is like ParseInstruction but panics on error.
func MustParse(s string) Instruction {
	inst, err := ParseInstruction(s)
	if err != nil {
		panic(err)
	}
	return inst
}

// Byte packs the instruction back into a byte, most significant bit first.
func (inst Instruction) Byte() uint8 {
	var b uint8
	for i := 0; i < Width; i++ {
		b = b<<1 | (inst[i] & 1)
	}
	return b
}

// Bit returns bit i (0 is the most significant bit).
func (inst Instruction) Bit(i int) Bit {
	return inst[i]
}

// OnesCount returns the number of set bits.
func (inst Instruction) OnesCount() int {
	return bits.OnesCount8(inst.Byte())
}

// String returns the bit pattern, e.g. "01011010".
func (inst Instruction) String() string {
	var sb strings.Builder
	sb.Grow(Width)
	for _, b := range inst {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}
