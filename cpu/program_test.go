package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"mov", "a", "5"}, Code: MakeCode(OP_MOV, "a", "5")},
			{LineNo: 2, Ip: 1, Words: []string{"call", "func"}, Code: MakeCode(OP_CALL, "func")},
			{LineNo: 3, Ip: 2, Words: []string{"end"}, Code: MakeCode(OP_END)},
			{LineNo: 5, Ip: 3, Words: []string{"func:"}, Code: MakeCode(OP_LABEL, "func")},
			{LineNo: 6, Ip: 4, Words: []string{"inc", "a"}, Code: MakeCode(OP_INC, "a")},
			{LineNo: 7, Ip: 5, Words: []string{"ret"}, Code: MakeCode(OP_RET)},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal(6, prog.Len())

	op := prog.Debug(0)
	assert.NotNil(op)
	assert.Equal(1, op.LineNo)

	op = prog.Debug(4)
	assert.NotNil(op)
	assert.Equal(6, op.LineNo)
	assert.Equal(OP_INC, op.Code.Op)

	assert.Nil(prog.Debug(-1))
	assert.Nil(prog.Debug(6))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var ops []CodeOp
	for ip, code := range prog.Codes() {
		assert.Equal(len(ops), ip)
		ops = append(ops, code.Op)
	}

	assert.Equal([]CodeOp{OP_MOV, OP_CALL, OP_END, OP_LABEL, OP_INC, OP_RET}, ops)
}

func TestProgram_Labels(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	labels := maps.Collect(prog.Labels())
	assert.Equal(map[string]int{"func": 4}, labels)
}
