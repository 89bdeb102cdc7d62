// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/tinyasm/cpu"
	"github.com/ezrec/tinyasm/emulator"
	"github.com/ezrec/tinyasm/internal"
	"github.com/ezrec/tinyasm/io"
	"github.com/ezrec/tinyasm/translate"
)

// readLines reads one instruction per line from standard input.
func readLines() (lines []string, err error) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}

	err = scanner.Err()
	return
}

func main() {
	var compile string
	var registers bool
	var limit int
	var verbose bool
	var lang string

	flag.StringVar(&compile, "c", "-", "Program file to run, or - for standard input")
	flag.BoolVar(&registers, "r", false, "Register mode: one instruction per line, print the registers")
	flag.IntVar(&limit, "n", 0, "Step limit, or 0 for no limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, overriding the locale")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
	}

	src := &io.Source{FS: os.DirFS(filepath.Dir(compile))}
	name := filepath.Base(compile)

	asm := &cpu.Assembler{Verbose: verbose}
	var prog *cpu.Program
	var err error

	switch {
	case registers && compile == "-":
		var lines []string
		lines, err = readLines()
		if err == nil {
			prog, err = asm.ParseLines(lines)
		}
	case registers:
		var lines []string
		lines, err = src.Lines(name)
		if err == nil {
			prog, err = asm.ParseLines(lines)
		}
	case compile == "-":
		prog, err = asm.Parse(os.Stdin)
	default:
		var text string
		text, err = src.Text(name)
		if err == nil {
			prog, err = asm.Parse(strings.NewReader(text))
		}
	}
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.StepLimit = limit
	if verbose {
		emu.Cpu.Output.Echo = os.Stderr
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if registers {
		for name, value := range internal.SortedAll(emu.Cpu.Register) {
			fmt.Printf("%v: %v\n", name, value)
		}
		return
	}

	fmt.Println(emu.Result())
}
