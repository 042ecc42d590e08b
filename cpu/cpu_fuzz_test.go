package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// jumps are the mnemonics that may leave PC anywhere.
var jumps = map[Mnemonic]bool{
	OP_JMP: true,
	OP_JSR: true,
	OP_RTS: true,
	OP_RTI: true,
}

func FuzzCpu(f *testing.F) {
	for opcode := range 0x100 {
		f.Add(byte(opcode), byte(0x00), byte(0x00), byte(0x00), byte(0x00), byte(0xff), byte(0x12), byte(0x34))
		f.Add(byte(opcode), byte(0x80), byte(0xff), byte(0x01), byte(0xff), byte(0x00), byte(0xff), byte(0xff))
	}

	f.Fuzz(func(t *testing.T, opcode byte, a, x, y, p, s byte, first, second byte) {
		assert := assert.New(t)

		cpu := newTestCpu(opcode, first, second)
		cpu.A = a
		cpu.X = x
		cpu.Y = y
		cpu.S = s
		cpu.P = Status(p) &^ FLAG_PUSHED

		before := *cpu

		inst := Opcodes[opcode]
		if !inst.Valid() {
			var reported error
			cpu.Err = func(err error) { reported = err }

			cpu.Tick()
			assert.Equal(ErrIllegalOpcode{Opcode: opcode, Pc: testOrigin}, reported)
			assert.Equal(uint64(1), cpu.Cycles)
			assert.Equal(uint64(0), cpu.Steps)
			assert.Equal(before.PC, cpu.PC)
			assert.Equal(before.A, cpu.A)
			assert.Equal(before.X, cpu.X)
			assert.Equal(before.Y, cpu.Y)
			assert.Equal(before.S, cpu.S)
			assert.Equal(before.P, cpu.P)
			assert.True(cpu.Idle())
			return
		}

		ticks := cpu.Step()
		assert.Equal(uint64(ticks), cpu.Cycles)
		assert.Equal(uint64(1), cpu.Steps)
		assert.GreaterOrEqual(ticks, inst.Cycles, "%02X", opcode)
		assert.LessOrEqual(ticks, inst.Cycles+2, "%02X", opcode)
		if !inst.Mnemonic.IsBranch() {
			assert.LessOrEqual(ticks, inst.Cycles+inst.PageCycles, "%02X", opcode)
		}

		assert.Equal(Status(0), cpu.P&FLAG_PUSHED, "%02X", opcode)

		switch {
		case jumps[inst.Mnemonic]:
		case inst.Mnemonic.IsBranch():
			target, _ := Resolve(cpu.Bus, MODE_RELATIVE, testOrigin, 0, 0)
			next := testOrigin + inst.Mode.Len()
			assert.True(cpu.PC == next || cpu.PC == target, "%02X: PC %04X", opcode, cpu.PC)
		default:
			assert.Equal(testOrigin+inst.Mode.Len(), cpu.PC, "%02X", opcode)
		}
	})
}
