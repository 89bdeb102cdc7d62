// Package cpu implements the register machine and assembler for tinyasm.
//
// The machine has an unbounded set of named 32-bit signed registers, an
// instruction pointer (IP) indexing a flat list of decoded instructions,
// a comparison flag register set by cmp, and a call stack of return
// addresses. Text written by msg is collected in an output port.
//
// The assembler turns program text into a Program: it strips comments,
// splits quote-aware words, records labels, and evaluates $(...)
// compile-time expressions.
package cpu
