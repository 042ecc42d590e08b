// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	DEFAULT_ORIGIN = 0x0600 // Assembly address until the first .org
	EQUATE_DEPTH   = 16     // Maximum depth of equates referring to equates.
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"DEFAULT_ORIGIN": fmt.Sprintf("0x%04x", DEFAULT_ORIGIN),
}

// mnemonicMap maps upper case mnemonic names.
var mnemonicMap = func() (mnemonics map[string]Mnemonic) {
	mnemonics = make(map[string]Mnemonic)
	for mnemonic := OP_ADC; mnemonic <= OP_TYA; mnemonic++ {
		mnemonics[mnemonic.String()] = mnemonic
	}
	return
}()

var identRegexp = regexp.MustCompile(`^[A-Za-z_.@][A-Za-z0-9_.@]*$`)

// Assembler is a single pass macro assembler for the 6502.
//
// Forward references to labels are permitted wherever the operand is
// a full address, or a branch target. Such operands are always
// assembled as absolute addresses, and resolved when the parse
// completes.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Line    []Line // List of assembled lines.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc uint16 // Current assembly address.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	for range EQUATE_DEPTH {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	text := word
	negate := false
	if strings.HasPrefix(word, "-") {
		negate = true
		word = word[1:]
	}

	var v64 int64
	switch {
	case len(word) == 0:
		err = ErrParseNumber(text)
		return
	case word[0] == '\'':
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word)
		return
	case word[0] == '$':
		v64, err = strconv.ParseInt(word[1:], 16, 32)
	case word[0] == '%':
		v64, err = strconv.ParseInt(word[1:], 2, 32)
	case identRegexp.MatchString(word):
		label, ok := asm.Label[word]
		if !ok {
			err = ErrLabelMissing(word)
			return
		}
		v64 = int64(label)
	default:
		v64, err = strconv.ParseInt(word, 0, 32)
	}
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = int(v64)
	if negate {
		value = -value
	}

	return
}

// forceWord is true for hexadecimal literals written with four or
// more digits, which always assemble to a full address.
func forceWord(expr string) bool {
	return strings.HasPrefix(expr, "$") && len(expr) > 4
}

// byteOf returns a starlark builtin extracting a byte of its argument.
func byteOf(shift int) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var value int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt((value >> shift) & 0xff), nil
	}
}

// parentEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"lo": starlark.NewBuiltin("lo", byteOf(0)),
		"hi": starlark.NewBuiltin("hi", byteOf(8)),
	}
	for key := range asm.Equate {
		var equate int
		equate, err = asm.valueOf(key)
		if err != nil {
			// Ignore non-integer equates, and equates of
			// forward labels.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(equate)
	}
	for key, label := range asm.Label {
		pred[key] = starlark.MakeInt(label)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expandExpr replaces each balanced $(...) in line with its value.
func (asm *Assembler) expandExpr(line string) (expanded string, err error) {
	var sb strings.Builder

	for {
		start := strings.Index(line, "$(")
		if start < 0 {
			sb.WriteString(line)
			break
		}

		end := -1
		depth := 0
		for n := start + 1; n < len(line) && end < 0; n++ {
			switch line[n] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = n
				}
			}
		}
		if end < 0 {
			err = ErrParseExpression(line[start+2:])
			return
		}

		var value int
		value, err = asm.parenEval(line[start+2 : end])
		if err != nil {
			return
		}

		sb.WriteString(line[:start])
		sb.WriteString(strconv.Itoa(value))
		line = line[end+1:]
	}

	expanded = sb.String()
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line, err = asm.expandExpr(line)
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = int(asm.pc)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Line = asm.Line[:0]
	asm.pc = DEFAULT_ORIGIN
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if err = scanner.Err(); err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Line {
		op := &asm.Line[n]

		if len(op.LinkLabel) == 0 {
			continue
		}

		lineno = op.LineNo
		line = op.String()

		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}

		op.Bytes, err = encode(op.Bytes[0], op.LinkMode, op.Pc, target)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Entry: DEFAULT_ORIGIN,
		Lines: slices.Clone(asm.Line),
	}
	if len(prog.Lines) > 0 {
		prog.Entry = prog.Lines[0].Pc
	}

	return
}

// data encodes a comma separated list of byte or word values.
// Words are stored little-endian, as pointers are read by the CPU.
func (asm *Assembler) data(args string, size int) (codes []byte, err error) {
	if len(args) == 0 {
		err = ErrDataMissing
		return
	}

	for _, word := range strings.Split(args, ",") {
		var value int
		value, err = asm.valueOf(word)
		if err != nil {
			return
		}

		switch size {
		case 1:
			if value < -0x80 || value > 0xff {
				err = ErrOperandRange
				return
			}
			codes = append(codes, byte(value))
		default:
			if value < -0x8000 || value > 0xffff {
				err = ErrOperandRange
				return
			}
			codes = append(codes, byte(value), byte(value>>8))
		}
	}

	return
}

// operandKind is the syntactic form of an instruction operand.
type operandKind int

const (
	kindNone        = operandKind(iota) // LSR
	kindAccumulator                     // LSR A
	kindImmediate                       // LDA #expr
	kindDirect                          // LDA expr
	kindIndexX                          // LDA expr,X
	kindIndexY                          // LDA expr,Y
	kindIndirect                        // JMP (expr)
	kindIndirectX                       // LDA (expr,X)
	kindIndirectY                       // LDA (expr),Y
)

// splitOperand determines the operand form, and its expression.
func splitOperand(args string) (kind operandKind, expr string, err error) {
	upper := strings.ToUpper(args)

	switch {
	case len(args) == 0:
		kind = kindNone
		return
	case upper == "A":
		kind = kindAccumulator
		return
	case strings.HasPrefix(args, "#"):
		kind, expr = kindImmediate, args[1:]
	case strings.HasPrefix(args, "(") && strings.HasSuffix(upper, ",X)"):
		kind, expr = kindIndirectX, args[1:len(args)-3]
	case strings.HasPrefix(args, "(") && strings.HasSuffix(upper, "),Y"):
		kind, expr = kindIndirectY, args[1:len(args)-3]
	case strings.HasPrefix(args, "(") && strings.HasSuffix(args, ")"):
		kind, expr = kindIndirect, args[1:len(args)-1]
	case strings.HasSuffix(upper, ",X"):
		kind, expr = kindIndexX, args[:len(args)-2]
	case strings.HasSuffix(upper, ",Y"):
		kind, expr = kindIndexY, args[:len(args)-2]
	default:
		kind, expr = kindDirect, args
	}

	if len(expr) == 0 {
		err = ErrOperandInvalid
	}

	return
}

// selectMode picks the addressing mode for an operand form.
// Zero page forms are preferred when the value is known, and fits.
func selectMode(mnemonic Mnemonic, kind operandKind, expr string, value int, known bool) (mode Mode, err error) {
	has := func(mode Mode) (ok bool) {
		_, ok = Lookup(mnemonic, mode)
		return
	}

	zp := known && value >= 0 && value <= 0xff && !forceWord(expr)

	switch kind {
	case kindNone:
		mode = MODE_IMPLIED
		if !has(mode) {
			mode = MODE_ACCUMULATOR
		}
	case kindAccumulator:
		mode = MODE_ACCUMULATOR
	case kindImmediate:
		mode = MODE_IMMEDIATE
	case kindIndirect:
		mode = MODE_INDIRECT
	case kindIndirectX:
		mode = MODE_INDIRECT_X
	case kindIndirectY:
		mode = MODE_INDIRECT_Y
	case kindIndexX:
		mode = MODE_ABSOLUTE_X
		if zp && has(MODE_ZERO_PAGE_X) {
			mode = MODE_ZERO_PAGE_X
		}
	case kindIndexY:
		mode = MODE_ABSOLUTE_Y
		if zp && has(MODE_ZERO_PAGE_Y) {
			mode = MODE_ZERO_PAGE_Y
		}
	case kindDirect:
		switch {
		case mnemonic.IsBranch():
			mode = MODE_RELATIVE
		case zp && has(MODE_ZERO_PAGE):
			mode = MODE_ZERO_PAGE
		default:
			mode = MODE_ABSOLUTE
		}
	}

	if !has(mode) {
		err = ErrModeInvalid
	}

	return
}

// encode an instruction at pc. Relative operands are given as the
// branch target. Full addresses are stored high byte first.
func encode(opcode byte, mode Mode, pc uint16, value int) (codes []byte, err error) {
	codes = []byte{opcode}

	switch mode.Len() {
	case 2:
		if mode == MODE_RELATIVE {
			value -= int(pc) + 2
			if value < -0x80 || value > 0x7f {
				err = ErrBranchRange
				return
			}
		} else if value < -0x80 || value > 0xff {
			err = ErrOperandRange
			return
		}
		codes = append(codes, byte(value))
	case 3:
		if value < -0x8000 || value > 0xffff {
			err = ErrOperandRange
			return
		}
		codes = append(codes, byte(value>>8), byte(value))
	}

	return
}

// instruction assembles a single instruction into line.
func (asm *Assembler) instruction(line *Line, mnemonic Mnemonic, args string) (err error) {
	kind, expr, err := splitOperand(args)
	if err != nil {
		return
	}

	var value int
	var missing ErrLabelMissing
	known := true
	if len(expr) > 0 {
		value, err = asm.valueOf(expr)
		if errors.As(err, &missing) {
			known = false
			err = nil
		}
		if err != nil {
			return
		}
	}

	mode, err := selectMode(mnemonic, kind, expr, value, known)
	if err != nil {
		return
	}

	opcode, _ := Lookup(mnemonic, mode)

	if !known {
		switch mode {
		case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y, MODE_INDIRECT:
		case MODE_RELATIVE:
			value = int(line.Pc) + 2
		default:
			err = missing
			return
		}
		line.LinkLabel = string(missing)
		line.LinkMode = mode
	}

	line.Bytes, err = encode(opcode, mode, line.Pc, value)

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	line := Line{LineNo: lineno, Pc: asm.pc, Words: words}

	defer func() {
		if err != nil || len(line.Bytes) == 0 {
			return
		}
		if int(line.Pc)+len(line.Bytes) > 0x10000 {
			err = ErrOrgRange
			return
		}
		asm.Line = append(asm.Line, line)
		asm.pc += uint16(len(line.Bytes))
	}()

	args := strings.Join(words[1:], "")

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value int
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < 0 || value > 0xffff {
			err = ErrOperandRange
			return
		}
		asm.pc = uint16(value)
		return
	case ".byte":
		line.Bytes, err = asm.data(args, 1)
		return
	case ".word":
		line.Bytes, err = asm.data(args, 2)
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirectiveInvalid
		return
	}

	mnemonic, ok := mnemonicMap[strings.ToUpper(words[0])]
	if !ok {
		err = ErrMnemonicInvalid
		return
	}

	err = asm.instruction(&line, mnemonic, args)

	return
}
