package cpu

import (
	"fmt"
	"iter"

	"github.com/ezrec/nescore/bus"
)

// Disassemble the instruction at pc.
// Unmapped opcodes disassemble as a one byte .byte directive.
func Disassemble(mem bus.Reader, pc uint16) (text string, length uint16) {
	opcode := mem.Read(pc)
	inst := Opcodes[opcode]
	if !inst.Valid() {
		text = fmt.Sprintf(".byte $%02X", opcode)
		length = 1
		return
	}

	length = inst.Mode.Len()

	name := inst.Mnemonic.String()
	arg := mem.Read(pc + 1)
	addr := Operand16(mem.Read(pc+1), mem.Read(pc+2))

	switch inst.Mode {
	case MODE_IMPLIED:
		text = name
	case MODE_ACCUMULATOR:
		text = name + " A"
	case MODE_IMMEDIATE:
		text = fmt.Sprintf("%s #$%02X", name, arg)
	case MODE_ZERO_PAGE:
		text = fmt.Sprintf("%s $%02X", name, arg)
	case MODE_ZERO_PAGE_X:
		text = fmt.Sprintf("%s $%02X,X", name, arg)
	case MODE_ZERO_PAGE_Y:
		text = fmt.Sprintf("%s $%02X,Y", name, arg)
	case MODE_ABSOLUTE:
		text = fmt.Sprintf("%s $%04X", name, addr)
	case MODE_ABSOLUTE_X:
		text = fmt.Sprintf("%s $%04X,X", name, addr)
	case MODE_ABSOLUTE_Y:
		text = fmt.Sprintf("%s $%04X,Y", name, addr)
	case MODE_INDIRECT:
		text = fmt.Sprintf("%s ($%04X)", name, addr)
	case MODE_INDIRECT_X:
		text = fmt.Sprintf("%s ($%02X,X)", name, arg)
	case MODE_INDIRECT_Y:
		text = fmt.Sprintf("%s ($%02X),Y", name, arg)
	case MODE_RELATIVE:
		target, _ := Resolve(mem, inst.Mode, pc, 0, 0)
		text = fmt.Sprintf("%s $%04X", name, target)
	}

	return
}

// Listing disassembles consecutive instructions, starting at pc.
// The sequence is unbounded; the consumer decides when to stop.
func Listing(mem bus.Reader, pc uint16) iter.Seq2[uint16, string] {
	return func(yield func(pc uint16, text string) bool) {
		for {
			text, length := Disassemble(mem, pc)
			if !yield(pc, text) {
				return
			}
			pc += length
		}
	}
}
