// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Assembler is a two pass PAL-style assembler for the PDP-8.
//
// Syntax, one or more ';' separated statements per line:
//
//	/ comment
//	*0200                origin
//	LABEL,               label, may prefix any statement
//	NAME=value           equate
//	TAD I PTR            memory reference, zero or current page
//	CLA CLL RAL          group 1 or group 2 micro-ops
//	IOT 6031             IOT by word, or IOT dev func
//	"A / 0101 / X+1      data words
//	$(HERE + 0o10)       Starlark expression, bound to all known symbols
//	$                    end of program
//
// Numbers are octal unless prefixed with 0x (hex) or # (decimal).
// Symbols are case-insensitive, and stored in upper case.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	location   uint16 // Current location counter.
	expansions int    // Macro expansion counter.
	done       bool   // Set by '$'.
}

var (
	reParen  = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*),(.*)$`)
	reSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// memMap maps memory reference mnemonics.
var memMap = map[string]CodeClass{
	"AND": OP_AND,
	"TAD": OP_TAD,
	"ISZ": OP_ISZ,
	"DCA": OP_DCA,
	"JMS": OP_JMS,
	"JMP": OP_JMP,
}

// group1Map and group2Map map operate mnemonics to micro-op bits.
var group1Map, group2Map = microOpMap(group1Ops), microOpMap(group2Ops)

func microOpMap(ops []microOp) map[string]uint16 {
	mapping := make(map[string]uint16, len(ops))
	for _, op := range ops {
		mapping[op.Name] = op.Bits
	}
	return mapping
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[strings.ToUpper(equ)] = value
}

// valueOf returns the value of a single numeric or character word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	if word[0] == '"' {
		if len(word) < 2 {
			err = ErrParseNumber(word)
			return
		}
		value = uint16(word[1]) & 0o177
		return
	}

	base := 8
	digits := word
	switch {
	case strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X"):
		base = 16
		digits = word[2:]
	case strings.HasPrefix(word, "0o") || strings.HasPrefix(word, "0O"):
		digits = word[2:]
	case word[0] == '#':
		base = 10
		digits = word[1:]
	}

	v64, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64) & WORD_MASK

	return
}

// symbolValue looks up a label or equate.
func (asm *Assembler) symbolValue(name string) (value uint16, ok bool, err error) {
	name = strings.ToUpper(name)

	value, ok = asm.Label[name]
	if ok {
		return
	}

	equate, ok := asm.Equate[name]
	if ok {
		value, err = asm.valueOf(equate)
	}

	return
}

// isNumeric returns true if the term is a literal rather than a symbol.
func isNumeric(term string) bool {
	if len(term) == 0 {
		return false
	}
	c := term[0]
	return c == '"' || c == '#' || (c >= '0' && c <= '9')
}

// evalExpr evaluates terms joined by '+' and '-'. Unknown symbols are
// reported with ErrLabelMissing.
func (asm *Assembler) evalExpr(expr string) (value uint16, err error) {
	expr = strings.TrimSpace(expr)
	if len(expr) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	var total int
	sign := 1
	for len(expr) > 0 {
		switch expr[0] {
		case '+':
			expr = strings.TrimSpace(expr[1:])
			continue
		case '-':
			sign = -sign
			expr = strings.TrimSpace(expr[1:])
			continue
		}

		var term string
		if expr[0] == '"' && len(expr) >= 2 {
			term = expr[:2]
			expr = strings.TrimPrefix(expr[2:], `"`)
		} else {
			end := strings.IndexAny(expr, "+-")
			if end < 0 {
				end = len(expr)
			}
			term = strings.TrimSpace(expr[:end])
			expr = expr[end:]
		}
		expr = strings.TrimSpace(expr)

		var tv uint16
		if isNumeric(term) {
			tv, err = asm.valueOf(term)
			if err != nil {
				return
			}
		} else {
			if !reSymbol.MatchString(term) {
				err = ErrParseNumber(term)
				return
			}
			var ok bool
			tv, ok, err = asm.symbolValue(term)
			if err != nil {
				return
			}
			if !ok {
				err = ErrLabelMissing(strings.ToUpper(term))
				return
			}
		}

		total += sign * int(tv)
		sign = 1
	}

	value = uint16(total) & WORD_MASK

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var value16 uint16
		var ok bool
		value16, ok, err = asm.symbolValue(key)
		if err != nil || !ok {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, value16 := range asm.Label {
		pred[key] = starlark.MakeInt(int(value16))
	}
	pred["HERE"] = starlark.MakeInt(int(asm.location))

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
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
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64) & WORD_MASK
	return
}

// stripComment removes a '/' comment, ignoring a quoted "/ character.
func stripComment(line string) string {
	for n := 0; n < len(line); n++ {
		switch line[n] {
		case '"':
			n++
		case '/':
			return line[:n]
		}
	}
	return line
}

// emit appends an assembled word at the location counter.
func (asm *Assembler) emit(op Opcode) {
	op.Address = asm.location
	asm.Opcode = append(asm.Opcode, op)
	asm.location = (asm.location + 1) & WORD_MASK
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

	asm.Label = make(map[string]uint16, 16)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = make(map[string]string, len(asm.predefine))
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.location = 0o200
	asm.expansions = 0
	asm.done = false

	for !asm.done && scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
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
			name := strings.ToUpper(words[1])
			_, ok := asm.Macro[name]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[name] = macro
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

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of operands.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		err = asm.link(op)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	if len(asm.Opcode) == 0 {
		err = ErrProgramEmpty
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Start:   asm.Opcode[0].Address,
	}

	return
}

// link resolves an opcode's deferred operand.
func (asm *Assembler) link(op *Opcode) (err error) {
	if op.link == linkNone {
		return
	}

	value, err := asm.evalExpr(op.Operand)
	if err != nil {
		return
	}

	switch op.link {
	case linkMemory:
		var page bool
		switch {
		case value <= OFFSET_MASK:
			page = false
		case value&^OFFSET_MASK == ((op.Address+1)&WORD_MASK)&^OFFSET_MASK:
			page = true
		default:
			err = ErrOperandRange
			return
		}
		op.Code = MakeCodeMem(op.Code.Class(), op.Code.Indirect(), page, value)
	case linkIot:
		op.Code = Code((uint16(OP_IOT) << 9) | (value & 0o777))
	case linkData:
		op.Code = Code(value)
	}

	op.Operand = ""
	op.link = linkNone

	return
}

// parseLine evaluates $(...) expressions and parses each statement.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%o", value)
	})
	if err != nil {
		return
	}

	for _, stmt := range strings.Split(line, ";") {
		err = asm.parseStatement(strings.TrimSpace(stmt), lineno)
		if err != nil || asm.done {
			return
		}
	}

	return
}

// defineLabel binds a label to the location counter.
func (asm *Assembler) defineLabel(label string) (err error) {
	label = strings.ToUpper(label)
	_, isLabel := asm.Label[label]
	_, isEquate := asm.Equate[label]
	if isLabel || isEquate {
		err = ErrLabelDuplicate
		return
	}
	asm.Label[label] = asm.location
	return
}

// isOperate returns true if every word is an operate micro-op.
func (asm *Assembler) isOperate(words []string) bool {
	if len(words) == 1 {
		// An equate of the same name wins, so device mnemonics such as
		// ION can be predefined as IOT words.
		if _, ok := asm.Equate[words[0]]; ok {
			return false
		}
	}
	for _, word := range words {
		_, in1 := group1Map[word]
		_, in2 := group2Map[word]
		if !in1 && !in2 && word != "NOP" {
			return false
		}
	}
	return true
}

// encodeOperate builds a group 1 or group 2 operate instruction.
func encodeOperate(words []string) (code Code, err error) {
	group1, group2 := true, true
	var bits1, bits2 uint16
	for _, word := range words {
		if word == "NOP" {
			continue
		}
		bits, ok := group1Map[word]
		if ok {
			bits1 |= bits
		} else {
			group1 = false
		}
		bits, ok = group2Map[word]
		if ok {
			bits2 |= bits
		} else {
			group2 = false
		}
	}

	switch {
	case group1:
		code = MakeCodeOperate(1, bits1)
	case group2:
		code = MakeCodeOperate(2, bits2)
	default:
		err = ErrMicroOpGroup
	}

	return
}

// parseStatement parses a single statement.
func (asm *Assembler) parseStatement(stmt string, lineno int) (err error) {
	// Labels
	for {
		match := reLabel.FindStringSubmatch(stmt)
		if match == nil {
			break
		}
		err = asm.defineLabel(match[1])
		if err != nil {
			return
		}
		stmt = strings.TrimSpace(match[2])
	}

	if len(stmt) == 0 {
		return
	}

	if stmt[0] != '"' && strings.Contains(stmt, ",") {
		err = ErrLabelSyntax
		return
	}

	if stmt == "$" {
		asm.done = true
		return
	}

	// *origin
	if stmt[0] == '*' {
		var value uint16
		value, err = asm.evalExpr(stmt[1:])
		if err != nil {
			err = errors.Join(ErrOriginSyntax, err)
			return
		}
		asm.location = value
		return
	}

	// NAME=value
	if name, expr, ok := strings.Cut(stmt, "="); ok && stmt[0] != '"' {
		name = strings.ToUpper(strings.TrimSpace(name))
		if !reSymbol.MatchString(name) {
			err = ErrEquateSyntax
			return
		}
		_, isEquate := asm.Equate[name]
		_, isLabel := asm.Label[name]
		if isEquate || isLabel {
			err = ErrEquateDuplicate
			return
		}
		var value uint16
		value, err = asm.evalExpr(expr)
		if err != nil {
			return
		}
		asm.Equate[name] = fmt.Sprintf("%o", value)
		return
	}

	words := strings.Fields(stmt)
	upper := make([]string, len(words))
	for n, word := range words {
		upper[n] = strings.ToUpper(word)
	}

	// Macro expansion
	if macro, ok := asm.Macro[upper[0]]; ok {
		err = asm.expand(upper[0], macro, words[1:])
		return
	}

	// Memory reference
	if class, ok := memMap[upper[0]]; ok {
		indirect := len(upper) > 1 && upper[1] == "I"
		operand := words[1:]
		if indirect {
			operand = words[2:]
		}
		if len(operand) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		asm.emit(Opcode{
			LineNo:  lineno,
			Words:   words,
			Code:    MakeCodeMem(class, indirect, false, 0),
			Operand: strings.Join(operand, ""),
			link:    linkMemory,
		})
		return
	}

	// IOT word, or IOT device function
	if upper[0] == "IOT" {
		switch len(words) {
		case 1:
			err = ErrOpcodeValueMissing
		case 2:
			asm.emit(Opcode{
				LineNo:  lineno,
				Words:   words,
				Operand: words[1],
				link:    linkIot,
			})
		case 3:
			var device, function uint16
			device, err = asm.evalExpr(words[1])
			if err != nil {
				return
			}
			function, err = asm.evalExpr(words[2])
			if err != nil {
				return
			}
			asm.emit(Opcode{
				LineNo: lineno,
				Words:  words,
				Code:   MakeCodeIot(int(device), function),
			})
		default:
			err = ErrOpcodeExtraArgs
		}
		return
	}

	// Operate micro-ops
	if asm.isOperate(upper) {
		var code Code
		code, err = encodeOperate(upper)
		if err != nil {
			return
		}
		asm.emit(Opcode{
			LineNo: lineno,
			Words:  words,
			Code:   code,
		})
		return
	}

	// Anything else is a data word.
	asm.emit(Opcode{
		LineNo:  lineno,
		Words:   words,
		Operand: stmt,
		link:    linkData,
	})

	return
}

// expand parses the body of a macro with its arguments substituted.
// '@' in the body becomes a prefix unique to this expansion.
func (asm *Assembler) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	asm.expansions++
	prefix := fmt.Sprintf("%v_%v_", name, asm.expansions)

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", prefix)
		for i, arg := range macro.Args {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(arg) + `\b`)
			line = re.ReplaceAllLiteralString(line, args[i])
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}
