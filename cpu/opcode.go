package cpu

import (
	"strings"
)

// CodeOp is an instruction operation.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_MOV   = CodeOp(0)  // mov
	OP_INC   = CodeOp(1)  // inc
	OP_DEC   = CodeOp(2)  // dec
	OP_ADD   = CodeOp(3)  // add
	OP_SUB   = CodeOp(4)  // sub
	OP_MUL   = CodeOp(5)  // mul
	OP_DIV   = CodeOp(6)  // div
	OP_JNZ   = CodeOp(7)  // jnz
	OP_JMP   = CodeOp(8)  // jmp
	OP_CMP   = CodeOp(9)  // cmp
	OP_JE    = CodeOp(10) // je
	OP_JNE   = CodeOp(11) // jne
	OP_JG    = CodeOp(12) // jg
	OP_JGE   = CodeOp(13) // jge
	OP_JL    = CodeOp(14) // jl
	OP_JLE   = CodeOp(15) // jle
	OP_CALL  = CodeOp(16) // call
	OP_RET   = CodeOp(17) // ret
	OP_MSG   = CodeOp(18) // msg
	OP_LABEL = CodeOp(19) // label
	OP_END   = CodeOp(20) // end
)

// opMap maps opcode mnemonics.
var opMap = map[string]CodeOp{
	"mov":   OP_MOV,
	"inc":   OP_INC,
	"dec":   OP_DEC,
	"add":   OP_ADD,
	"sub":   OP_SUB,
	"mul":   OP_MUL,
	"div":   OP_DIV,
	"jnz":   OP_JNZ,
	"jmp":   OP_JMP,
	"cmp":   OP_CMP,
	"je":    OP_JE,
	"jne":   OP_JNE,
	"jg":    OP_JG,
	"jge":   OP_JGE,
	"jl":    OP_JL,
	"jle":   OP_JLE,
	"call":  OP_CALL,
	"ret":   OP_RET,
	"msg":   OP_MSG,
	"label": OP_LABEL,
	"end":   OP_END,
}

// CodeArg is the decode type of an instruction argument.
type CodeArg int

const (
	ARG_REGISTER = CodeArg(0) // Destination register name.
	ARG_VALUE    = CodeArg(1) // Register reference or integer literal.
	ARG_LABEL    = CodeArg(2) // Label name.
	ARG_MESSAGE  = CodeArg(3) // Quoted text, or a value.
)

// argMap is the argument signature of each opcode.
// OP_MSG takes any number of ARG_MESSAGE arguments.
var argMap = map[CodeOp][]CodeArg{
	OP_MOV:   {ARG_REGISTER, ARG_VALUE},
	OP_INC:   {ARG_REGISTER},
	OP_DEC:   {ARG_REGISTER},
	OP_ADD:   {ARG_REGISTER, ARG_VALUE},
	OP_SUB:   {ARG_REGISTER, ARG_VALUE},
	OP_MUL:   {ARG_REGISTER, ARG_VALUE},
	OP_DIV:   {ARG_REGISTER, ARG_VALUE},
	OP_JNZ:   {ARG_VALUE, ARG_VALUE},
	OP_JMP:   {ARG_LABEL},
	OP_CMP:   {ARG_VALUE, ARG_VALUE},
	OP_JE:    {ARG_LABEL},
	OP_JNE:   {ARG_LABEL},
	OP_JG:    {ARG_LABEL},
	OP_JGE:   {ARG_LABEL},
	OP_JL:    {ARG_LABEL},
	OP_JLE:   {ARG_LABEL},
	OP_CALL:  {ARG_LABEL},
	OP_RET:   {},
	OP_MSG:   nil,
	OP_LABEL: {ARG_LABEL},
	OP_END:   {},
}

// Word is a single token of program text.
type Word struct {
	Text   string // Token text, with any quotes removed.
	Quoted bool   // Set if the token was free text in single quotes.
}

// String returns the word as it would appear in program text.
func (word Word) String() string {
	if word.Quoted {
		return "'" + word.Text + "'"
	}
	return word.Text
}

// Code is a decoded instruction. Values are resolved when executed,
// not when decoded.
type Code struct {
	Op   CodeOp
	Args []Word
}

// MakeCode creates an instruction from unquoted argument words.
func MakeCode(op CodeOp, args ...string) Code {
	code := Code{Op: op}
	for _, arg := range args {
		code.Args = append(code.Args, Word{Text: arg})
	}
	return code
}

// MakeCodeMsg creates a msg instruction from a mix of words.
func MakeCodeMsg(args ...Word) Code {
	return Code{Op: OP_MSG, Args: args}
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if len(code.Args) == 0 {
		return code.Op.String()
	}

	args := make([]string, len(code.Args))
	for n, arg := range code.Args {
		args[n] = arg.String()
	}

	return code.Op.String() + " " + strings.Join(args, ", ")
}
