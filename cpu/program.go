package cpu

import (
	"iter"
	"strings"
)

// Line is a single assembled source line.
type Line struct {
	LineNo    int      // Source line number.
	Pc        uint16   // Address of the first encoded byte.
	Words     []string // Source words, after expansion.
	Bytes     []byte   // Encoded bytes.
	LinkLabel string   // Label to resolve at link time, if any.
	LinkMode  Mode     // Addressing mode of the linked operand.
}

// String returns the source words of the line.
func (line *Line) String() string {
	return strings.Join(line.Words, " ")
}

// Program is an assembled program.
type Program struct {
	Entry uint16 // Address of the first assembled line.
	Lines []Line
}

// Debug locates the source line for an address.
type Debug struct {
	*Line
	Index int // Byte index of the address within the line.
}

// Debug returns the source line that encoded pc.
// The Line member is nil if no line covers pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(pc) >= int(line.Pc) && int(pc) < int(line.Pc)+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc - line.Pc),
			}
			break
		}
	}

	return
}

// Bytes iterates over every encoded byte, with its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(pc uint16, value byte) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Pc+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Binary returns a flat image of the program, from its lowest to its
// highest encoded address. Gaps between lines are zero filled.
func (prog *Program) Binary() (origin uint16, data []byte) {
	if len(prog.Lines) == 0 {
		origin = prog.Entry
		return
	}

	low := 0x10000
	high := 0
	for _, line := range prog.Lines {
		low = min(low, int(line.Pc))
		high = max(high, int(line.Pc)+len(line.Bytes))
	}

	origin = uint16(low)
	data = make([]byte, high-low)
	for _, line := range prog.Lines {
		copy(data[int(line.Pc)-low:], line.Bytes)
	}

	return
}
