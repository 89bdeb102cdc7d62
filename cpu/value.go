package cpu

import (
	"strconv"
	"strings"
	"unicode"
)

// IsRegister returns true if the text names a register rather than
// an integer literal. Any letter makes it a register name.
func IsRegister(text string) bool {
	return strings.ContainsFunc(text, unicode.IsLetter)
}

// parseNumber parses a base 10, 32-bit signed integer literal.
func parseNumber(text string) (value int32, err error) {
	v64, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = int32(v64)
	return
}

// ValueOf resolves a word against the current register state.
func (cpu *Cpu) ValueOf(word Word) (value int32, err error) {
	if word.Quoted {
		err = ErrParseValue(word.Text)
		return
	}

	if IsRegister(word.Text) {
		return cpu.GetRegister(word.Text)
	}

	return parseNumber(word.Text)
}

// GetRegister returns the value of an assigned register.
func (cpu *Cpu) GetRegister(name string) (value int32, err error) {
	value, ok := cpu.Register[name]
	if !ok {
		err = ErrRegisterUndefined(name)
		return
	}

	return
}

// SetRegister assigns a register, creating it if needed.
func (cpu *Cpu) SetRegister(name string, value int32) {
	if cpu.Register == nil {
		cpu.Register = make(map[string]int32)
	}
	cpu.Register[name] = value
}
