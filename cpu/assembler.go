package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined expression constants
var sysEquate = map[string]int64{
	"LINENO":    0,
	"INT32_MAX": math.MaxInt32,
	"INT32_MIN": math.MinInt32,
}

// Execution step limit for a single $(...) expression.
const evalStepLimit = 1 << 16

// Assembler converts program text into a Program.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label map[string]int // Map of labels to opcode indexes.
}

// delimiters that may bracket an entire program.
var delimiters = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// stripDelimiters removes a single outer structural delimiter pair,
// and a single leading and trailing newline.
func stripDelimiters(text string) string {
	if len(text) >= 2 {
		closer, ok := delimiters[text[0]]
		if ok && text[len(text)-1] == closer {
			text = text[1 : len(text)-1]
		}
	}

	text = strings.TrimPrefix(text, "\n")
	text = strings.TrimSuffix(text, "\n")

	return text
}

// stripComment removes a ';' comment, unless it is inside quotes.
func stripComment(line string) string {
	quoted := false
	for n := 0; n < len(line); n++ {
		switch line[n] {
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return line[:n]
			}
		}
	}

	return line
}

// isSeparator returns true for bytes that split words.
func isSeparator(c byte) bool {
	switch c {
	case ' ', ',', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

// splitWords splits a line into words on whitespace and commas.
// Text in single quotes is a single word, and $(...) is a single word.
func splitWords(line string) (words []Word, err error) {
	var text strings.Builder
	var have, quoted, inQuote bool
	var depth int

	flush := func() {
		if !have {
			return
		}
		words = append(words, Word{Text: text.String(), Quoted: quoted})
		text.Reset()
		have = false
		quoted = false
	}

	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case inQuote:
			if c == '\'' {
				inQuote = false
			} else {
				text.WriteByte(c)
			}
		case depth > 0:
			text.WriteByte(c)
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
		case c == '\'':
			inQuote = true
			quoted = true
			have = true
		case c == '$' && n+1 < len(line) && line[n+1] == '(':
			text.WriteString("$(")
			n++
			depth = 1
			have = true
		case isSeparator(c):
			flush()
		default:
			text.WriteByte(c)
			have = true
		}
	}

	if inQuote {
		err = ErrQuoteUnterminated
		return
	}

	if depth > 0 {
		err = ErrParseExpression(strings.TrimPrefix(text.String(), "$("))
		return
	}

	flush()

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, lineno int) (value int32, err error) {
	thread := starlark.Thread{Name: "asm"}
	thread.SetMaxExecutionSteps(evalStepLimit)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, v64 := range sysEquate {
		pred[key] = starlark.MakeInt64(v64)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > math.MaxInt32 || st_int64 < math.MinInt32 {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

// valueOf validates a value word, evaluating any $(...) expression.
func (asm *Assembler) valueOf(word Word, lineno int) (value Word, err error) {
	if word.Quoted {
		err = ErrParseValue(word.Text)
		return
	}

	value = word
	if strings.HasPrefix(word.Text, "$(") && strings.HasSuffix(word.Text, ")") {
		var v32 int32
		v32, err = asm.parenEval(word.Text[2:len(word.Text)-1], lineno)
		if err != nil {
			return
		}
		value.Text = strconv.FormatInt(int64(v32), 10)
		return
	}

	if !IsRegister(word.Text) {
		_, err = parseNumber(word.Text)
	}

	return
}

// decode builds an instruction from an opcode and its argument words.
func (asm *Assembler) decode(op CodeOp, words []Word, lineno int) (code Code, err error) {
	want, ok := argMap[op]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if op != OP_MSG {
		if len(words) < len(want) {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > len(want) {
			err = ErrOpcodeExtraArgs
			return
		}
	}

	code.Op = op
	for n, word := range words {
		kind := ARG_MESSAGE
		if op != OP_MSG {
			kind = want[n]
		}

		switch kind {
		case ARG_REGISTER:
			if word.Quoted || !IsRegister(word.Text) {
				err = ErrRegisterInvalid
				return
			}
		case ARG_VALUE:
			word, err = asm.valueOf(word, lineno)
		case ARG_LABEL:
			if word.Quoted || len(word.Text) == 0 {
				err = ErrLabelSyntax
				return
			}
		case ARG_MESSAGE:
			if !word.Quoted {
				word, err = asm.valueOf(word, lineno)
			}
		}
		if err != nil {
			return
		}
		code.Args = append(code.Args, word)
	}

	return
}

// addLabel records a label at the next opcode.
func (asm *Assembler) addLabel(label string) (err error) {
	if len(label) == 0 {
		err = ErrLabelSyntax
		return
	}

	_, ok := asm.Label[label]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	asm.Label[label] = len(asm.Opcode)

	return
}

// emit appends a decoded opcode.
func (asm *Assembler) emit(code Code, words []Word, lineno int) {
	text := make([]string, len(words))
	for n, word := range words {
		text[n] = word.String()
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo: lineno,
		Ip:     len(asm.Opcode),
		Words:  text,
		Code:   code,
	})
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []Word, lineno int) (err error) {
	// Leading 'name:' words are labels.
	for len(words) > 0 && !words[0].Quoted && strings.HasSuffix(words[0].Text, ":") {
		label := strings.TrimSuffix(words[0].Text, ":")
		err = asm.addLabel(label)
		if err != nil {
			return
		}
		asm.emit(MakeCode(OP_LABEL, label), words[:1], lineno)
		words = words[1:]
	}

	// no-op
	if len(words) == 0 {
		return
	}

	if words[0].Quoted {
		err = ErrOpcodeMissing
		return
	}

	op, ok := opMap[words[0].Text]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	code, err := asm.decode(op, words[1:], lineno)
	if err != nil {
		return
	}

	if op == OP_LABEL {
		err = asm.addLabel(code.Args[0].Text)
		if err != nil {
			return
		}
	}

	asm.emit(code, words, lineno)

	return
}

// parseLine strips comments from a line of text, and parses it.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	if asm.Verbose {
		log.Printf("%v: %v\n", lineno, text)
	}

	line := strings.TrimLeftFunc(text, unicode.IsSpace)
	line = stripComment(line)
	if len(strings.TrimSpace(line)) == 0 {
		return
	}

	words, err := splitWords(line)
	if err != nil {
		return
	}

	return asm.parseWords(words, lineno)
}

// reset clears the assembler state.
func (asm *Assembler) reset() {
	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
}

// program returns the assembled program.
func (asm *Assembler) program() *Program {
	opcodes := make([]Opcode, len(asm.Opcode))
	copy(opcodes, asm.Opcode)
	return &Program{Opcodes: opcodes}
}

// Parse parses a complete program text into a Program.
// The text may be bracketed by an outer delimiter, and may contain
// comments and quoted text.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(strings.NewReader(stripDelimiters(string(data))))
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = asm.program()

	return
}

// ParseLines parses a list of single instruction lines into a Program.
func (asm *Assembler) ParseLines(lines []string) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	for lineno, line = range lines {
		err = asm.parseLine(line, lineno+1)
		if err != nil {
			lineno++
			return
		}
	}

	prog = asm.program()

	return
}
