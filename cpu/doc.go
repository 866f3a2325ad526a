// Package cpu implements the PDP-8 instruction execution engine and a
// PAL-style assembler for it.
//
// The CPU is a 12-bit, single accumulator machine with a one bit Link.
// Memory reference instructions address the zero page or the current page,
// optionally through one level of indirection; indirect references through
// 0010-0017 pre-increment the pointer. IOT instructions are routed to one of
// 64 device slots, and a single shared interrupt line vectors to 0020 after
// saving AC, PC and Link at 0006, 0007 and 0010.
//
// The assembler accepts a subset of PAL-8 syntax, with macros and
// compile-time $(...) expressions.
package cpu
