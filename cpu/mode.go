package cpu

import (
	"fmt"

	"github.com/ezrec/nescore/bus"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode

const (
	MODE_IMPLIED     = Mode(0)  // implied
	MODE_ACCUMULATOR = Mode(1)  // accumulator
	MODE_IMMEDIATE   = Mode(2)  // immediate
	MODE_ZERO_PAGE   = Mode(3)  // zeropage
	MODE_ZERO_PAGE_X = Mode(4)  // zeropage,x
	MODE_ZERO_PAGE_Y = Mode(5)  // zeropage,y
	MODE_ABSOLUTE    = Mode(6)  // absolute
	MODE_ABSOLUTE_X  = Mode(7)  // absolute,x
	MODE_ABSOLUTE_Y  = Mode(8)  // absolute,y
	MODE_INDIRECT    = Mode(9)  // indirect
	MODE_INDIRECT_X  = Mode(10) // (indirect,x)
	MODE_INDIRECT_Y  = Mode(11) // (indirect),y
	MODE_RELATIVE    = Mode(12) // relative
)

// Len returns the encoded instruction length, in bytes, for the mode.
func (mode Mode) Len() (length uint16) {
	switch mode {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		length = 1
	case MODE_ABSOLUTE, MODE_ABSOLUTE_X, MODE_ABSOLUTE_Y, MODE_INDIRECT:
		length = 3
	default:
		length = 2
	}
	return
}

// Operand16 forms a 16-bit operand from two consecutive instruction
// bytes, the first byte being the high byte.
func Operand16(first, second byte) uint16 {
	return uint16(first)<<8 | uint16(second)
}

// pointer reads a little-endian pointer from lo and hi.
func pointer(mem bus.Reader, lo, hi uint16) uint16 {
	return uint16(mem.Read(hi))<<8 | uint16(mem.Read(lo))
}

func pageCrossed(from, to uint16) bool {
	return from&0xff00 != to&0xff00
}

// Resolve the effective address of the instruction at pc.
// crossed is set when an indexed or relative address lands on a
// different page than its base.
// Implied and accumulator modes have no address, and resolve to zero.
func Resolve(mem bus.Reader, mode Mode, pc uint16, x, y byte) (addr uint16, crossed bool) {
	switch mode {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
	case MODE_IMMEDIATE:
		addr = pc + 1
	case MODE_ZERO_PAGE:
		addr = uint16(mem.Read(pc + 1))
	case MODE_ZERO_PAGE_X:
		addr = uint16(mem.Read(pc+1) + x)
	case MODE_ZERO_PAGE_Y:
		addr = uint16(mem.Read(pc+1) + y)
	case MODE_ABSOLUTE:
		addr = Operand16(mem.Read(pc+1), mem.Read(pc+2))
	case MODE_ABSOLUTE_X:
		base := Operand16(mem.Read(pc+1), mem.Read(pc+2))
		addr = base + uint16(x)
		crossed = pageCrossed(base, addr)
	case MODE_ABSOLUTE_Y:
		base := Operand16(mem.Read(pc+1), mem.Read(pc+2))
		addr = base + uint16(y)
		crossed = pageCrossed(base, addr)
	case MODE_INDIRECT:
		// The high byte of the target never carries into the next page.
		ptr := Operand16(mem.Read(pc+1), mem.Read(pc+2))
		addr = pointer(mem, ptr, ptr&0xff00|uint16(byte(ptr)+1))
	case MODE_INDIRECT_X:
		zp := mem.Read(pc+1) + x
		addr = pointer(mem, uint16(zp), uint16(zp+1))
	case MODE_INDIRECT_Y:
		zp := mem.Read(pc + 1)
		base := pointer(mem, uint16(zp), uint16(zp+1))
		addr = base + uint16(y)
		crossed = pageCrossed(base, addr)
	case MODE_RELATIVE:
		next := pc + 2
		addr = next + uint16(int8(mem.Read(pc+1)))
		crossed = pageCrossed(next, addr)
	default:
		panic(fmt.Sprintf("unknown addressing mode %v", mode))
	}

	return
}
