package cpu

import (
	"errors"

	"github.com/ezrec/nescore/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrMacroSyntax      = errors.New(f(".macro syntax"))
	ErrMacroNesting     = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate   = errors.New(f(".macro duplicated"))
	ErrMacroLonely      = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm  = errors.New(f(".endm without .macro"))
	ErrOrgSyntax        = errors.New(f(".org syntax"))
	ErrOrgRange         = errors.New(f("program exceeds address space"))
	ErrDataMissing      = errors.New(f("data missing"))
	ErrDirectiveInvalid = errors.New(f("directive invalid"))
	ErrMnemonicInvalid  = errors.New(f("mnemonic invalid"))
	ErrModeInvalid      = errors.New(f("addressing mode invalid"))
	ErrOperandInvalid   = errors.New(f("operand invalid"))
	ErrOperandRange     = errors.New(f("operand out of range"))
	ErrBranchRange      = errors.New(f("branch out of range"))
)

// ErrIllegalOpcode is reported when the CPU fetches an unmapped opcode.
type ErrIllegalOpcode struct {
	Opcode byte   // Opcode fetched.
	Pc     uint16 // Address of the opcode.
}

func (err ErrIllegalOpcode) Error() string {
	return f("illegal opcode 0x%02x at 0x%04x", err.Opcode, err.Pc)
}

func (err ErrIllegalOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrIllegalOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

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

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

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
