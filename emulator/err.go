package emulator

import (
	"github.com/ezrec/pdp8/translate"
)

var f = translate.From

// ErrRuntime locates an emulator error in the program source.
type ErrRuntime struct {
	LineNo int    // Source line, or 0 if the PC is outside the program.
	Pc     uint16 // Address of the failing instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (%04o) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
