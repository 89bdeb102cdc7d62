package cpu

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/tinyasm/internal"
	"github.com/ezrec/tinyasm/io"
)

// Cpu is the register machine executing a Program.
//
// The machine is either running or halted. It halts when the end
// instruction executes, or when the IP moves past the last instruction.
// Nothing executes once halted. There is no limit on the number of
// instructions executed by Run; a program that loops forever never
// returns.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int              // Current instruction pointer.
	Register map[string]int32 // Register bank, created on first write.
	Flags    CodeFlag         // Result of the last cmp.
	Stack    Stack            // Call stack.
	Label    map[string]int   // Map of labels to instruction pointers.
	Output   io.Port          // Text written by msg.

	Ticks int // Instructions executed since reset.

	codes  []Code
	halted bool
	ended  bool
}

// NewCpu creates a new CPU with no program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Load a program, building the label table, and reset the CPU.
func (cpu *Cpu) Load(prog *Program) (err error) {
	label := make(map[string]int)
	for name, ip := range prog.Labels() {
		_, ok := label[name]
		if ok {
			err = fmt.Errorf("%w: %v", ErrLabelDuplicate, name)
			return
		}
		label[name] = ip
	}

	cpu.codes = cpu.codes[:0]
	for _, code := range prog.Codes() {
		cpu.codes = append(cpu.codes, code)
	}
	cpu.Label = label

	cpu.Reset()

	if cpu.Verbose {
		log.Printf("cpu: loaded %d instructions, %d labels", len(cpu.codes), len(cpu.Label))
	}

	return
}

// Reset the CPU state.
// - Clears the registers, flags, stack and output.
// - Zeros the tick counter.
// - Sets IP to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register = make(map[string]int32)
	cpu.Flags = FLAG_NONE
	cpu.Stack.Reset()
	cpu.Output.Reset()
	cpu.Ticks = 0
	cpu.Ip = 0
	cpu.ended = false
	cpu.halted = len(cpu.codes) == 0
}

// Halted returns true once the program has stopped.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Ended returns true if the program stopped by executing end.
func (cpu *Cpu) Ended() bool {
	return cpu.ended
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 6s: %v\n", "flags", cpu.Flags)

	top, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 6s: %v (%d deep)\n", "stack", top, len(cpu.Stack.Data))
	} else {
		text += fmt.Sprintf("% 6s: %v\n", "stack", "-")
	}

	for name, value := range internal.SortedAll(cpu.Register) {
		text += fmt.Sprintf("% 6s: %v\n", name, value)
	}

	return
}

// FetchCode fetches the instruction at the IP.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.halted || cpu.Ip < 0 || cpu.Ip >= len(cpu.codes) {
		err = ErrIpEmpty
		return
	}

	code = cpu.codes[cpu.Ip]
	return
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	return cpu.Execute(code)
}

// Run executes instructions until the CPU halts or fails.
func (cpu *Cpu) Run() (err error) {
	for !cpu.halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Advance moves the IP by a signed offset. An offset that would leave
// the program, other than to just past its end, advances by one.
func (cpu *Cpu) Advance(offset int) {
	target := cpu.Ip + offset
	if target < 0 || target > len(cpu.codes) {
		target = cpu.Ip + 1
	}

	cpu.Ip = target
}

// Jump moves the IP to a label.
func (cpu *Cpu) Jump(label string) (err error) {
	ip, ok := cpu.Label[label]
	if !ok {
		err = ErrLabelMissing(label)
		return
	}

	cpu.Ip = ip
	return
}

// Call pushes the address after the current instruction, and jumps to
// a label.
func (cpu *Cpu) Call(label string) (err error) {
	if cpu.Stack.Full() {
		err = ErrStackFull
		return
	}

	ret := cpu.Ip + 1
	err = cpu.Jump(label)
	if err != nil {
		return
	}

	cpu.Stack.Push(ret)
	return
}

// Return pops the IP from the call stack.
func (cpu *Cpu) Return() (err error) {
	ip, ok := cpu.Stack.Pop()
	if !ok {
		err = ErrStackEmpty
		return
	}

	cpu.Ip = ip
	return
}

// Halt stops the program as if end had executed.
func (cpu *Cpu) Halt() {
	cpu.ended = true
	cpu.halted = true
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.halted {
		err = ErrIpEmpty
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip, code)
	}

	want, ok := argMap[code.Op]
	if ok && want != nil && len(code.Args) != len(want) {
		err = ErrOpcodeValueMissing
		if len(code.Args) > len(want) {
			err = ErrOpcodeExtraArgs
		}
		return
	}

	jumped := false

	switch code.Op {
	case OP_MOV:
		var val int32
		val, err = cpu.ValueOf(code.Args[1])
		if err != nil {
			return
		}
		cpu.SetRegister(code.Args[0].Text, val)
	case OP_INC, OP_DEC:
		val := int32(1)
		if code.Op == OP_DEC {
			val = -1
		}
		err = cpu.doAlu(OP_ADD, code.Args[0].Text, val)
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var val int32
		val, err = cpu.ValueOf(code.Args[1])
		if err != nil {
			return
		}
		err = cpu.doAlu(code.Op, code.Args[0].Text, val)
	case OP_JNZ:
		var cond, offset int32
		cond, err = cpu.ValueOf(code.Args[0])
		if err != nil {
			return
		}
		offset, err = cpu.ValueOf(code.Args[1])
		if err != nil {
			return
		}
		if cond != 0 {
			cpu.Advance(int(offset))
			jumped = true
		}
	case OP_JMP:
		err = cpu.Jump(code.Args[0].Text)
		jumped = true
	case OP_CMP:
		cpu.Flags = FLAG_NONE
		var a, b int32
		a, err = cpu.ValueOf(code.Args[0])
		if err != nil {
			return
		}
		b, err = cpu.ValueOf(code.Args[1])
		if err != nil {
			return
		}
		cpu.Flags = Compare(a, b)
	case OP_JE, OP_JNE, OP_JG, OP_JGE, OP_JL, OP_JLE:
		if cpu.Flags.Has(jumpFlag[code.Op]) {
			err = cpu.Jump(code.Args[0].Text)
			jumped = true
		}
	case OP_CALL:
		err = cpu.Call(code.Args[0].Text)
		jumped = true
	case OP_RET:
		err = cpu.Return()
		jumped = true
	case OP_MSG:
		err = cpu.doMsg(code.Args)
	case OP_LABEL:
		// Resolved by Load.
	case OP_END:
		cpu.Ticks++
		cpu.Halt()
		return
	default:
		err = ErrOpcodeInvalid
		return
	}

	if err != nil {
		return
	}

	if !jumped {
		cpu.Ip++
	}

	cpu.Ticks++

	if cpu.Ip < 0 || cpu.Ip >= len(cpu.codes) {
		cpu.halted = true
		if cpu.Verbose {
			log.Printf("cpu: ran off end of program at %d", cpu.Ip)
		}
	}

	return
}

// doAlu performs the requested arithmetic on a register.
// Arithmetic wraps at 32 bits. Division truncates toward zero, and
// math.MinInt32 / -1 is math.MinInt32.
func (cpu *Cpu) doAlu(op CodeOp, reg string, value int32) (err error) {
	input, err := cpu.GetRegister(reg)
	if err != nil {
		return
	}

	var output int32
	switch op {
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_DIV:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input / value
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.SetRegister(reg, output)
	return
}

// doMsg writes the message arguments to the output port.
func (cpu *Cpu) doMsg(args []Word) (err error) {
	var text strings.Builder
	for _, arg := range args {
		if arg.Quoted {
			text.WriteString(arg.Text)
			continue
		}
		var val int32
		val, err = cpu.ValueOf(arg)
		if err != nil {
			return
		}
		text.WriteString(strconv.FormatInt(int64(val), 10))
	}

	return cpu.Output.Write(text.String())
}
