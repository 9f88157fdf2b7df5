// Package insts provides the fixed-width instruction word used by the
// pipeline and the sources that produce it.
//
// An instruction is an 8-bit vector with no decoded meaning. Two instructions
// with the same bit pattern are indistinguishable.
//
// Usage:
//
//	src := insts.NewRandomSource(42)
//	inst := src.Generate()
//	fmt.Println(inst) // e.g. 01101001
package insts
