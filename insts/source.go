package insts

import (
	"math/rand/v2"
	"time"
)

// Generator produces instructions.
type Generator interface {
	// Generate returns a new instruction.
	Generate() Instruction
}

// Chooser yields uniform draws in [0, 1).
type Chooser interface {
	Float64() float64
}

// Source is a shared entropy source that can both generate instructions and
// make probabilistic choices.
type Source interface {
	Generator
	Chooser
}

// RandomSource draws every bit independently with probability 0.5.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource seeded with seed.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewTimeSeededSource creates a RandomSource seeded from the wall clock.
func NewTimeSeededSource() *RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

// Generate returns a new random instruction.
func (s *RandomSource) Generate() Instruction {
	var inst Instruction
	for i := range inst {
		inst[i] = Bit(s.rng.IntN(2))
	}
	return inst
}

// Float64 returns a uniform draw in [0, 1).
func (s *RandomSource) Float64() float64 {
	return s.rng.Float64()
}

// SequenceSource replays a fixed list of instructions and choices in order,
// wrapping around at the end. It makes pipeline runs fully deterministic.
type SequenceSource struct {
	insts   []Instruction
	choices []float64

	nextInst   int
	nextChoice int
}

// NewSequenceSource creates a source that replays the given instructions.
// Choices default to 0, so every probabilistic branch fires.
func NewSequenceSource(insts ...Instruction) *SequenceSource {
	if len(insts) == 0 {
		insts = []Instruction{{}}
	}
	return &SequenceSource{
		insts:   insts,
		choices: []float64{0},
	}
}

// WithChoices replaces the replayed choice values.
func (s *SequenceSource) WithChoices(choices ...float64) *SequenceSource {
	if len(choices) == 0 {
		choices = []float64{0}
	}
	s.choices = choices
	s.nextChoice = 0
	return s
}

// Generate returns the next instruction in the sequence.
func (s *SequenceSource) Generate() Instruction {
	inst := s.insts[s.nextInst]
	s.nextInst = (s.nextInst + 1) % len(s.insts)
	return inst
}

// Float64 returns the next choice value in the sequence.
func (s *SequenceSource) Float64() float64 {
	c := s.choices[s.nextChoice]
	s.nextChoice = (s.nextChoice + 1) % len(s.choices)
	return c
}
