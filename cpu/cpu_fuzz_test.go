package cpu

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func FuzzCpu(f *testing.F) {
	for op := range int(OP_END) + 1 {
		f.Add(uint8(op), int32(0), int32(1))
		f.Add(uint8(op), int32(7), int32(0))
		f.Add(uint8(op), int32(math.MinInt32), int32(-1))
		f.Add(uint8(op), int32(math.MaxInt32), int32(-6))
	}

	f.Fuzz(func(t *testing.T, opval uint8, a int32, b int32) {
		assert := assert.New(t)

		op := CodeOp(opval % uint8(OP_END+1))

		var code Code
		switch op {
		case OP_MOV, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_JNZ, OP_CMP:
			code = MakeCode(op, "a", "b")
		case OP_INC, OP_DEC:
			code = MakeCode(op, "a")
		case OP_MSG:
			code = MakeCodeMsg(Word{Text: "a"}, Word{Text: " ", Quoted: true}, Word{Text: "b"})
		case OP_RET, OP_END:
			code = MakeCode(op)
		default:
			code = MakeCode(op, "there")
		}

		// Eight labels, with 'there' transferring control to 6.
		prog := &Program{}
		for ip := range 8 {
			name := fmt.Sprintf("L%d", ip)
			if ip == 5 {
				name = "there"
			}
			prog.Opcodes = append(prog.Opcodes, Opcode{LineNo: ip + 1, Ip: ip, Code: MakeCode(OP_LABEL, name)})
		}

		cpu := NewCpu()
		require.NoError(t, cpu.Load(prog))

		cpu.Ip = 2
		cpu.SetRegister("a", a)
		cpu.SetRegister("b", b)
		cpu.Stack.Push(4)

		err := cpu.Execute(code)

		code_str := fmt.Sprintf("%v a:%v b:%v\ncpu:%v", code, a, b, cpu.String())

		if err != nil {
			assert.ErrorIs(err, ErrOpcode{}, code_str)
			switch {
			case op == OP_DIV && b == 0:
				assert.ErrorIs(err, ErrDivideByZero, code_str)
			default:
				assert.NoError(err, code_str)
			}
			return
		}

		next_ip := 3
		expect_a := a
		switch op {
		case OP_MOV:
			expect_a = b
		case OP_INC:
			expect_a = a + 1
		case OP_DEC:
			expect_a = a - 1
		case OP_ADD:
			expect_a = a + b
		case OP_SUB:
			expect_a = a - b
		case OP_MUL:
			expect_a = a * b
		case OP_DIV:
			expect_a = a / b
		case OP_JNZ:
			target := 2 + int(b)
			if a != 0 && target >= 0 && target <= 8 {
				next_ip = target
			}
		case OP_JMP:
			next_ip = 6
		case OP_CALL:
			next_ip = 6
			top, _ := cpu.Stack.Peek()
			assert.Equal(3, top, code_str)
		case OP_RET:
			next_ip = 4
			assert.True(cpu.Stack.Empty(), code_str)
		case OP_CMP:
			assert.Equal(Compare(a, b), cpu.Flags, code_str)
		case OP_MSG:
			assert.Equal(fmt.Sprintf("%d %d", a, b), cpu.Output.String(), code_str)
		case OP_END:
			next_ip = 2
			assert.True(cpu.Ended(), code_str)
		}

		assert.Equal(expect_a, cpu.Register["a"], code_str)
		assert.Equal(b, cpu.Register["b"], code_str)
		assert.Equal(next_ip, cpu.Ip, code_str)
		assert.Equal(1, cpu.Ticks, code_str)
	})
}

func FuzzAssembler(f *testing.F) {
	f.Add("mov a 5\ninc a\nmsg 'a = ', a\nend")
	f.Add("(\nmov a, 5 ; five\njnz a -1\n)")
	f.Add("loop: dec a\njne loop")
	f.Add("msg 'unterminated")
	f.Add("mov a $(INT32_MAX)")
	f.Add("mov a $((1+2)")

	f.Fuzz(func(t *testing.T, text string) {
		assert := assert.New(t)

		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(text))
		if err != nil {
			var syntax *ErrSyntax
			assert.ErrorAs(err, &syntax, text)
			return
		}

		for n, op := range prog.Opcodes {
			assert.Equal(n, op.Ip, text)
			assert.Positive(op.LineNo, text)
			want, ok := argMap[op.Code.Op]
			if assert.True(ok, text) && want != nil {
				assert.Len(op.Code.Args, len(want), text)
			}
		}
	})
}
