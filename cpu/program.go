package cpu

import (
	"iter"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo int      // Source line number, starting at 1.
	Ip     int      // Index of the instruction in the program.
	Words  []string // Source words of the instruction.
	Code   Code     // Decoded instruction.
}

// Program is an immutable list of decoded instructions.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at an instruction pointer, or nil.
func (prog *Program) Debug(ip int) *Opcode {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return nil
	}

	return &prog.Opcodes[ip]
}

// Codes iterates over the instructions, by instruction pointer.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// Labels iterates over the label names and the instruction pointer
// they transfer control to.
func (prog *Program) Labels() iter.Seq2[string, int] {
	return func(yield func(label string, ip int) bool) {
		for ip, code := range prog.Codes() {
			if code.Op != OP_LABEL || len(code.Args) != 1 {
				continue
			}
			if !yield(code.Args[0].Text, ip+1) {
				return
			}
		}
	}
}
