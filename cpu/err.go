package cpu

import (
	"errors"

	"github.com/ezrec/pdp8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrMemorySize    = errors.New(f("memory size invalid"))
	ErrMemoryEmpty   = errors.New(f("memory empty"))
	ErrDeviceCode    = errors.New(f("device code invalid"))
	ErrInterruptNone = errors.New(f("no interrupt pending"))
	ErrBoardNil      = errors.New(f("board missing"))
	ErrBoardUnknown  = errors.New(f("board unknown"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f("equate syntax"))
	ErrEquateDuplicate    = errors.New(f("equate duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOriginSyntax       = errors.New(f("origin syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandRange       = errors.New(f("operand not on zero or current page"))
	ErrMicroOpGroup       = errors.New(f("micro-ops from different groups"))
	ErrProgramEmpty       = errors.New(f("program empty"))
)

// ErrLabelMissing is returned when a symbol is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax is an assembler error at a source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrMacro is an error inside a macro expansion.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
