package cpu

import (
	"strings"
)

// CodeFlag is the comparison flag register, a bitset of cmp outcomes.
type CodeFlag uint8

const (
	FLAG_NONE = CodeFlag(0)
	FLAG_EQ   = CodeFlag(1 << 0) // Equal
	FLAG_NE   = CodeFlag(1 << 1) // NotEqual
	FLAG_GE   = CodeFlag(1 << 2) // GreaterOrEqual
	FLAG_GT   = CodeFlag(1 << 3) // Greater
	FLAG_LE   = CodeFlag(1 << 4) // LessOrEqual
	FLAG_LT   = CodeFlag(1 << 5) // Less
)

var flagNames = []struct {
	flag CodeFlag
	name string
}{
	{FLAG_EQ, "eq"},
	{FLAG_NE, "ne"},
	{FLAG_GE, "ge"},
	{FLAG_GT, "gt"},
	{FLAG_LE, "le"},
	{FLAG_LT, "lt"},
}

// jumpFlag maps each conditional jump to the flag it tests.
var jumpFlag = map[CodeOp]CodeFlag{
	OP_JE:  FLAG_EQ,
	OP_JNE: FLAG_NE,
	OP_JG:  FLAG_GT,
	OP_JGE: FLAG_GE,
	OP_JL:  FLAG_LT,
	OP_JLE: FLAG_LE,
}

// Compare returns the complete flag set for comparing a against b.
func Compare(a, b int32) (flags CodeFlag) {
	switch {
	case a == b:
		flags = FLAG_EQ | FLAG_LE | FLAG_GE
	case a < b:
		flags = FLAG_NE | FLAG_LT | FLAG_LE
	default:
		flags = FLAG_NE | FLAG_GT | FLAG_GE
	}

	return
}

// Has returns true if all bits of flag are set.
func (flags CodeFlag) Has(flag CodeFlag) bool {
	return flag != FLAG_NONE && (flags&flag) == flag
}

// String returns the set flag names, ie "eq|ge|le".
func (flags CodeFlag) String() string {
	var names []string
	for _, fn := range flagNames {
		if flags.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}

	if len(names) == 0 {
		return "-"
	}

	return strings.Join(names, "|")
}
