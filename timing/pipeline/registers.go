// Package pipeline provides the three-phase instruction pipeline: the state it
// owns and the scheduler that advances it one tick at a time.
package pipeline

import "github.com/sarchlab/blinkcpu/insts"

const (
	// QueueCapacity is the fixed depth of the instruction queue.
	QueueCapacity = 4
	// NumALUSlots is the number of ALU registers.
	NumALUSlots = 4
	// NumMemorySlots is the number of memory bank slots.
	NumMemorySlots = 4
	// NumReservedCounters is the number of unused system counter slots.
	NumReservedCounters = 2
)

// Slot holds either an instruction or nothing.
type Slot struct {
	// Valid indicates if this slot contains an instruction.
	Valid bool

	// Inst is the held instruction. It is meaningless when Valid is false.
	Inst insts.Instruction
}

// Load places inst in the slot.
func (s *Slot) Load(inst insts.Instruction) {
	s.Valid = true
	s.Inst = inst
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.Valid = false
	s.Inst = insts.Instruction{}
}

// Queue is a fixed-capacity FIFO of instructions backed by a ring buffer.
// It is a plain value; copying a Queue copies its contents.
type Queue struct {
	buf  [QueueCapacity]insts.Instruction
	head int
	n    int
}

// Len returns the number of queued instructions.
func (q Queue) Len() int {
	return q.n
}

// Full reports whether the queue is at capacity.
func (q Queue) Full() bool {
	return q.n == QueueCapacity
}

// Push appends inst at the tail. It returns false if the queue is full.
func (q *Queue) Push(inst insts.Instruction) bool {
	if q.n == QueueCapacity {
		return false
	}
	q.buf[(q.head+q.n)%QueueCapacity] = inst
	q.n++
	return true
}

// Pop removes and returns the head instruction. It returns false if the queue
// is empty.
func (q *Queue) Pop() (insts.Instruction, bool) {
	if q.n == 0 {
		return insts.Instruction{}, false
	}
	inst := q.buf[q.head]
	q.buf[q.head] = insts.Instruction{}
	q.head = (q.head + 1) % QueueCapacity
	q.n--
	return inst, true
}

// At returns the i-th queued instruction, where 0 is the head.
func (q Queue) At(i int) insts.Instruction {
	if i < 0 || i >= q.n {
		panic("pipeline: queue index out of range")
	}
	return q.buf[(q.head+i)%QueueCapacity]
}

// Entries returns the queued instructions from head to tail.
func (q Queue) Entries() []insts.Instruction {
	out := make([]insts.Instruction, q.n)
	for i := range out {
		out[i] = q.buf[(q.head+i)%QueueCapacity]
	}
	return out
}

// Clear empties the queue.
func (q *Queue) Clear() {
	*q = Queue{}
}

// SystemCounters holds the clock and instruction counters.
type SystemCounters struct {
	// Clock counts ticks. Only the low 8 bits are ever displayed.
	Clock uint64

	// Instructions counts fetch phases.
	Instructions uint64

	// Reserved slots are currently unused.
	Reserved [NumReservedCounters]uint64
}

// State is everything the pipeline owns. It is pure data: the scheduler is the
// only writer, and readers work on copies.
type State struct {
	Queue    Queue
	ALU      [NumALUSlots]Slot
	Memory   [NumMemorySlots]Slot
	Counters SystemCounters
	Phase    Phase
}

// ALUOccupancy returns the number of non-empty ALU slots.
func (s State) ALUOccupancy() int {
	return countValid(s.ALU[:])
}

// MemoryOccupancy returns the number of non-empty memory slots.
func (s State) MemoryOccupancy() int {
	return countValid(s.Memory[:])
}

func countValid(slots []Slot) int {
	n := 0
	for _, slot := range slots {
		if slot.Valid {
			n++
		}
	}
	return n
}
