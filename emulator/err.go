package emulator

import (
	"github.com/ezrec/nescore/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int    // Source line, or 0 if the address has no line.
	Pc     uint16 // Address of the faulting instruction.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("$%04X %v", err.Pc, err.Err)
	}
	return f("line %d $%04X %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
