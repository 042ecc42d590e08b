// Package cpu implements a cycle metered 6502 core, as found in the NES,
// along with its assembler and disassembler.
//
// The CPU has an 8-bit accumulator (A), two 8-bit index registers (X
// and Y), an 8-bit stack pointer (S) into the 0x0100 stack page, a
// 16-bit program counter (PC), and a processor status register (P).
//
// Execution is driven by Tick. An instruction executes in full on the
// tick that fetches it, and its remaining cycle cost is then paid off
// one tick at a time before the next fetch. Decimal mode is not
// supported, and interrupts are not modelled.
//
// Operands of the absolute and indirect modes are encoded in the
// instruction stream high byte first. Pointers in memory, as used by
// the indirect modes, are stored low byte first.
package cpu
