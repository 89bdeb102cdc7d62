// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/tinyasm/cpu"
)

// NO_RESULT is the output of a program that never executed end.
const NO_RESULT = "-1"

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	StepLimit int // If non-zero, the most instructions Run may execute.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Reset loads the program into the CPU, and resets the CPU state.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(emu.Program)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", emu.Program.Len())
	}

	return
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return cpu.Code{}
	}

	return op.Code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Ip)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once there is no instruction left to execute.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.Halted() {
		done = true
		return
	}

	if emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit {
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program halts or fails.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks, ended %v", emu.Cpu.Ticks, emu.Cpu.Ended())
	}

	return
}

// Result returns the program output, or NO_RESULT if the program did
// not execute end.
func (emu *Emulator) Result() string {
	if !emu.Cpu.Ended() {
		return NO_RESULT
	}

	return emu.Cpu.Output.String()
}

// RunRegisters assembles and runs a list of single instruction lines,
// and returns the final register values.
func RunRegisters(lines []string) (register map[string]int32, err error) {
	asm := &cpu.Assembler{}
	prog, err := asm.ParseLines(lines)
	if err != nil {
		return
	}

	emu := NewEmulator()
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	register = maps.Clone(emu.Cpu.Register)

	return
}

// RunText assembles and runs a program text, and returns the text
// written by msg. If the program never executes end, the result is
// NO_RESULT.
func RunText(raw string) (output string, err error) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(raw))
	if err != nil {
		return
	}

	emu := NewEmulator()
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	output = emu.Result()

	return
}
