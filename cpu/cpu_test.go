package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testOrigin = 0x0600

// newTestCpu loads code at testOrigin, and points PC at it.
func newTestCpu(code ...byte) (cpu *Cpu) {
	cpu = NewCpu()
	err := cpu.Bus.Load(testOrigin, code)
	if err != nil {
		panic(err)
	}
	cpu.PC = testOrigin

	return
}

func TestCpuNew(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(byte(0), cpu.A)
	assert.Equal(byte(0), cpu.X)
	assert.Equal(byte(0), cpu.Y)
	assert.Equal(uint16(0), cpu.PC)
	assert.Equal(byte(0xff), cpu.S)
	assert.Equal(Status(0), cpu.P)
	assert.True(cpu.Idle())
	assert.True(cpu.StackEmpty())
}

func TestCpuLdaImmediate(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0xa9, 0x05)

	cpu.Tick()
	assert.Equal(byte(0x05), cpu.A)
	assert.Equal(uint16(0x0602), cpu.PC)
	assert.False(cpu.P.Zero())
	assert.False(cpu.P.Negative())
	assert.Equal(1, cpu.Remaining)
	assert.False(cpu.Idle())

	cpu.Tick()
	assert.True(cpu.Idle())
	assert.Equal(uint64(2), cpu.Cycles)
	assert.Equal(uint64(1), cpu.Steps)
}

func TestCpuLoadFlags(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode byte
		reg    Register
	}){
		{0xa9, REG_A},
		{0xa2, REG_X},
		{0xa0, REG_Y},
	}

	for _, entry := range table {
		for value := range 0x100 {
			cpu := newTestCpu(entry.opcode, byte(value))
			cpu.P = FLAG_CARRY | FLAG_OVERFLOW
			assert.Equal(2, cpu.Step())
			assert.Equal(byte(value), cpu.Get(entry.reg))
			assert.Equal(value == 0, cpu.P.Zero())
			assert.Equal(value&0x80 != 0, cpu.P.Negative())
			assert.True(cpu.P.Carry())
			assert.True(cpu.P.Overflow())
		}
	}
}

func TestCpuStaZeroPageX(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x95, 0x10)
	cpu.A = 0x42
	cpu.X = 0xf8

	assert.Equal(4, cpu.Step())
	assert.Equal(byte(0x42), cpu.Bus.Read(0x0008))
	assert.Equal(byte(0x00), cpu.Bus.Read(0x0108))
	assert.Equal(uint16(0x0602), cpu.PC)
}

func TestCpuStaAbsolute(t *testing.T) {
	assert := assert.New(t)

	// Operands are high byte first.
	cpu := newTestCpu(0x8d, 0x02, 0x00)
	cpu.A = 0x99

	assert.Equal(4, cpu.Step())
	assert.Equal(byte(0x99), cpu.Bus.Read(0x0200))
	assert.Equal(uint16(0x0603), cpu.PC)
}

func TestCpuInxWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0xe8)
	cpu.X = 0xff

	assert.Equal(2, cpu.Step())
	assert.Equal(byte(0x00), cpu.X)
	assert.True(cpu.P.Zero())
	assert.False(cpu.P.Negative())
}

func TestCpuJmpIndirect(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x6c, 0x02, 0xff)
	cpu.Bus.Write(0x02ff, 0x34)
	cpu.Bus.Write(0x0200, 0x12)
	cpu.Bus.Write(0x0300, 0x99)

	assert.Equal(5, cpu.Step())
	assert.Equal(uint16(0x1234), cpu.PC)
}

func TestCpuPushAccumulator(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x48, 0x48, 0x48)
	cpu.A = 0x42

	for range 9 {
		cpu.Tick()
	}

	assert.True(cpu.Idle())
	assert.Equal(uint64(3), cpu.Steps)
	assert.Equal(byte(0xfc), cpu.S)
	assert.Equal(3, cpu.StackDepth())
	for _, addr := range []uint16{0x01ff, 0x01fe, 0x01fd} {
		assert.Equal(byte(0x42), cpu.Bus.Read(addr))
	}
	assert.Equal(byte(0x42), cpu.Peek())
}

func TestCpuStackWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x48, 0x68)
	cpu.A = 0x5a
	cpu.S = 0x00
	assert.True(cpu.StackFull())

	assert.Equal(3, cpu.Step())
	assert.Equal(byte(0x5a), cpu.Bus.Read(0x0100))
	assert.Equal(byte(0xff), cpu.S)

	cpu.A = 0
	assert.Equal(4, cpu.Step())
	assert.Equal(byte(0x5a), cpu.A)
	assert.Equal(byte(0x00), cpu.S)
}

func TestCpuIllegalOpcode(t *testing.T) {
	assert := assert.New(t)

	var reported []error

	cpu := newTestCpu(0x02)
	cpu.Err = func(err error) { reported = append(reported, err) }
	cpu.A = 0x11

	before := *cpu
	cpu.Tick()

	assert.Equal(before.PC, cpu.PC)
	assert.Equal(before.A, cpu.A)
	assert.Equal(before.S, cpu.S)
	assert.Equal(before.P, cpu.P)
	assert.True(cpu.Idle())
	assert.Equal(uint64(1), cpu.Cycles)
	assert.Equal(uint64(0), cpu.Steps)

	assert.Equal(1, len(reported))
	assert.True(errors.Is(reported[0], ErrIllegalOpcode{}))
	assert.Equal(ErrIllegalOpcode{Opcode: 0x02, Pc: testOrigin}, reported[0])

	// Without a hook, still a silent no-op.
	cpu.Err = nil
	cpu.Tick()
	assert.Equal(uint16(testOrigin), cpu.PC)
	assert.Equal(uint64(2), cpu.Cycles)
}

func TestCpuOpenBusFetch(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.PC = 0x8000
	cpu.Tick()
	assert.Equal(uint16(0x8000), cpu.PC)
	assert.True(cpu.Idle())
}

func TestCpuDrain(t *testing.T) {
	assert := assert.New(t)

	// INC $0200,X ; 7 cycles
	cpu := newTestCpu(0xfe, 0x02, 0x00)
	cpu.Bus.Write(0x0201, 0x41)
	cpu.X = 1

	cpu.Tick()
	assert.Equal(byte(0x42), cpu.Bus.Read(0x0201))
	assert.Equal(6, cpu.Remaining)

	state := *cpu
	for n := range 6 {
		cpu.Tick()
		assert.Equal(5-n, cpu.Remaining)
		assert.Equal(state.PC, cpu.PC)
		assert.Equal(state.A, cpu.A)
		assert.Equal(state.X, cpu.X)
		assert.Equal(state.P, cpu.P)
	}
	assert.True(cpu.Idle())
	assert.Equal(uint64(7), cpu.Cycles)
}

func TestCpuTransfer(t *testing.T) {
	assert := assert.New(t)

	// TXS does not affect flags.
	cpu := newTestCpu(0x9a)
	cpu.X = 0x00
	cpu.Step()
	assert.Equal(byte(0x00), cpu.S)
	assert.False(cpu.P.Zero())

	// TSX does.
	cpu = newTestCpu(0xba)
	cpu.S = 0x80
	cpu.Step()
	assert.Equal(byte(0x80), cpu.X)
	assert.True(cpu.P.Negative())

	table := [](struct {
		opcode   byte
		from, to Register
	}){
		{0xaa, REG_A, REG_X},
		{0xa8, REG_A, REG_Y},
		{0x8a, REG_X, REG_A},
		{0x98, REG_Y, REG_A},
	}
	for _, entry := range table {
		cpu = newTestCpu(entry.opcode)
		cpu.Set(entry.from, 0x00)
		cpu.Set(entry.to, 0x55)
		assert.Equal(2, cpu.Step())
		assert.Equal(byte(0x00), cpu.Get(entry.to))
		assert.True(cpu.P.Zero())
	}
}

func TestCpuIncDecRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for value := range 0x100 {
		// INC $10 ; DEC $10
		cpu := newTestCpu(0xe6, 0x10, 0xc6, 0x10)
		cpu.Bus.Write(0x0010, byte(value))

		assert.Equal(5, cpu.Step())
		assert.Equal(byte(value+1), cpu.Bus.Read(0x0010))
		assert.Equal(byte(value+1) == 0, cpu.P.Zero())

		assert.Equal(5, cpu.Step())
		assert.Equal(byte(value), cpu.Bus.Read(0x0010))
		assert.Equal(value == 0, cpu.P.Zero())
		assert.Equal(value >= 0x80, cpu.P.Negative())
	}
}

func TestCpuIndexStep(t *testing.T) {
	assert := assert.New(t)

	// DEX ; DEY ; INY
	cpu := newTestCpu(0xca, 0x88, 0xc8)
	cpu.Step()
	assert.Equal(byte(0xff), cpu.X)
	assert.True(cpu.P.Negative())
	cpu.Step()
	assert.Equal(byte(0xff), cpu.Y)
	cpu.Step()
	assert.Equal(byte(0x00), cpu.Y)
	assert.True(cpu.P.Zero())
	assert.False(cpu.P.Negative())
}

func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode  byte
		a, m    byte
		carry   bool
		result  byte
		c, v, z bool
	}){
		{0x69, 0x50, 0x10, false, 0x60, false, false, false},
		{0x69, 0x50, 0x50, false, 0xa0, false, true, false},
		{0x69, 0xff, 0x01, false, 0x00, true, false, true},
		{0x69, 0x80, 0xff, false, 0x7f, true, true, false},
		{0x69, 0x01, 0x01, true, 0x03, false, false, false},
		{0xe9, 0x50, 0xf0, true, 0x60, false, false, false},
		{0xe9, 0x50, 0xb0, true, 0xa0, false, true, false},
		{0xe9, 0x05, 0x03, true, 0x02, true, false, false},
		{0xe9, 0x05, 0x05, false, 0xff, false, false, false},
		{0xe9, 0x05, 0x05, true, 0x00, true, false, true},
	}

	for _, entry := range table {
		cpu := newTestCpu(entry.opcode, entry.m)
		cpu.A = entry.a
		cpu.P.SetCarry(entry.carry)
		cpu.P.SetDecimal(true)
		assert.Equal(2, cpu.Step())
		assert.Equal(entry.result, cpu.A, "%02x %02x %02x", entry.opcode, entry.a, entry.m)
		assert.Equal(entry.c, cpu.P.Carry(), "C %02x %02x %02x", entry.opcode, entry.a, entry.m)
		assert.Equal(entry.v, cpu.P.Overflow(), "V %02x %02x %02x", entry.opcode, entry.a, entry.m)
		assert.Equal(entry.z, cpu.P.Zero(), "Z %02x %02x %02x", entry.opcode, entry.a, entry.m)
	}
}

func TestCpuLogic(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x29, 0x0f, 0x09, 0x80, 0x49, 0xff)
	cpu.A = 0x3c
	cpu.Step()
	assert.Equal(byte(0x0c), cpu.A)
	cpu.Step()
	assert.Equal(byte(0x8c), cpu.A)
	assert.True(cpu.P.Negative())
	cpu.Step()
	assert.Equal(byte(0x73), cpu.A)
	assert.False(cpu.P.Negative())
}

func TestCpuCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode  byte
		reg     Register
		value   byte
		operand byte
		c, z, n bool
	}){
		{0xc9, REG_A, 0x10, 0x10, true, true, false},
		{0xc9, REG_A, 0x10, 0x20, false, false, true},
		{0xc9, REG_A, 0x20, 0x10, true, false, false},
		{0xe0, REG_X, 0x00, 0x01, false, false, true},
		{0xc0, REG_Y, 0xff, 0x00, true, false, true},
	}

	for _, entry := range table {
		cpu := newTestCpu(entry.opcode, entry.operand)
		cpu.Set(entry.reg, entry.value)
		assert.Equal(2, cpu.Step())
		assert.Equal(entry.c, cpu.P.Carry())
		assert.Equal(entry.z, cpu.P.Zero())
		assert.Equal(entry.n, cpu.P.Negative())
		assert.Equal(entry.value, cpu.Get(entry.reg))
	}
}

func TestCpuShift(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		opcode byte
		carry  bool
		value  byte
		result byte
		c      bool
	}){
		{0x0a, false, 0x81, 0x02, true},
		{0x0a, true, 0x40, 0x80, false},
		{0x4a, true, 0x01, 0x00, true},
		{0x4a, false, 0x80, 0x40, false},
		{0x2a, true, 0x80, 0x01, true},
		{0x2a, false, 0x40, 0x80, false},
		{0x6a, true, 0x01, 0x80, true},
		{0x6a, false, 0x02, 0x01, false},
	}

	for _, entry := range table {
		// Accumulator form.
		cpu := newTestCpu(entry.opcode)
		cpu.A = entry.value
		cpu.P.SetCarry(entry.carry)
		assert.Equal(2, cpu.Step())
		assert.Equal(entry.result, cpu.A)
		assert.Equal(entry.c, cpu.P.Carry())
		assert.Equal(entry.result == 0, cpu.P.Zero())
		assert.Equal(entry.result >= 0x80, cpu.P.Negative())

		// Zero page form.
		cpu = newTestCpu(entry.opcode-0x04, 0x20)
		cpu.Bus.Write(0x0020, entry.value)
		cpu.P.SetCarry(entry.carry)
		assert.Equal(5, cpu.Step())
		assert.Equal(entry.result, cpu.Bus.Read(0x0020))
		assert.Equal(entry.c, cpu.P.Carry())
		assert.Equal(byte(0), cpu.A)
	}
}

func TestCpuBit(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0x24, 0x10)
	cpu.Bus.Write(0x0010, 0xc0)
	cpu.A = 0x01

	assert.Equal(3, cpu.Step())
	assert.True(cpu.P.Zero())
	assert.True(cpu.P.Negative())
	assert.True(cpu.P.Overflow())
	assert.Equal(byte(0x01), cpu.A)
}

func TestCpuFlagOps(t *testing.T) {
	assert := assert.New(t)

	// SEC SED SEI CLC CLD CLI CLV
	cpu := newTestCpu(0x38, 0xf8, 0x78)
	cpu.Step()
	cpu.Step()
	cpu.Step()
	assert.Equal(FLAG_CARRY|FLAG_DECIMAL|FLAG_INTERRUPT, cpu.P)

	cpu = newTestCpu(0x18, 0xd8, 0x58, 0xb8)
	cpu.P = 0xff &^ FLAG_PUSHED
	for range 4 {
		assert.Equal(2, cpu.Step())
	}
	assert.Equal(FLAG_NEGATIVE|FLAG_ZERO, cpu.P)
}

func TestCpuSubroutine(t *testing.T) {
	assert := assert.New(t)

	// JSR $0610
	cpu := newTestCpu(0x20, 0x06, 0x10)
	cpu.Bus.Write(0x0610, 0x60) // RTS

	assert.Equal(6, cpu.Step())
	assert.Equal(uint16(0x0610), cpu.PC)
	assert.Equal(byte(0x06), cpu.Bus.Read(0x01ff))
	assert.Equal(byte(0x02), cpu.Bus.Read(0x01fe))
	assert.Equal(byte(0xfd), cpu.S)

	assert.Equal(6, cpu.Step())
	assert.Equal(uint16(0x0603), cpu.PC)
	assert.Equal(byte(0xff), cpu.S)
}

func TestCpuStatusStack(t *testing.T) {
	assert := assert.New(t)

	// PHP ; PLP
	cpu := newTestCpu(0x08, 0x28)
	cpu.P = FLAG_NEGATIVE | FLAG_CARRY

	assert.Equal(3, cpu.Step())
	assert.Equal(byte(0xb1), cpu.Bus.Read(0x01ff))
	assert.Equal(FLAG_NEGATIVE|FLAG_CARRY, cpu.P)

	cpu.Bus.Write(0x01ff, 0xff)
	assert.Equal(4, cpu.Step())
	assert.Equal(Status(0xcf), cpu.P)

	// RTI
	cpu = newTestCpu(0x40)
	cpu.S = 0xfc
	cpu.Bus.Write(0x01fd, 0x30|byte(FLAG_ZERO))
	cpu.Bus.Write(0x01fe, 0x34)
	cpu.Bus.Write(0x01ff, 0x12)
	assert.Equal(6, cpu.Step())
	assert.Equal(FLAG_ZERO, cpu.P)
	assert.Equal(uint16(0x1234), cpu.PC)
	assert.Equal(byte(0xff), cpu.S)
}

func TestCpuTiming(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		code   []byte
		setup  func(cpu *Cpu)
		cycles int
		pc     uint16
	}){
		{"LDA $1200,X", []byte{0xbd, 0x12, 0x00}, func(cpu *Cpu) { cpu.X = 0x01 }, 4, 0x0603},
		{"LDA $12FF,X", []byte{0xbd, 0x12, 0xff}, func(cpu *Cpu) { cpu.X = 0x01 }, 5, 0x0603},
		{"LDA $12FF,Y", []byte{0xb9, 0x12, 0xff}, func(cpu *Cpu) { cpu.Y = 0x01 }, 5, 0x0603},
		{"LDX $12FF,Y", []byte{0xbe, 0x12, 0xff}, func(cpu *Cpu) { cpu.Y = 0x01 }, 5, 0x0603},
		{"LDY $12FF,X", []byte{0xbc, 0x12, 0xff}, func(cpu *Cpu) { cpu.X = 0x01 }, 5, 0x0603},
		{"STA $12FF,X", []byte{0x9d, 0x12, 0xff}, func(cpu *Cpu) { cpu.X = 0x01 }, 5, 0x0603},
		{"STA $1200,X", []byte{0x9d, 0x12, 0x00}, func(cpu *Cpu) { cpu.X = 0x01 }, 5, 0x0603},
		{"LDA ($10),Y", []byte{0xb1, 0x10}, func(cpu *Cpu) {
			cpu.Bus.Write(0x0010, 0xfe)
			cpu.Bus.Write(0x0011, 0x02)
			cpu.Y = 0x01
		}, 5, 0x0602},
		{"LDA ($10),Y crossed", []byte{0xb1, 0x10}, func(cpu *Cpu) {
			cpu.Bus.Write(0x0010, 0xff)
			cpu.Bus.Write(0x0011, 0x02)
			cpu.Y = 0x01
		}, 6, 0x0602},
		{"STA ($10),Y", []byte{0x91, 0x10}, func(cpu *Cpu) {}, 6, 0x0602},
		{"LDA ($10,X)", []byte{0xa1, 0x10}, func(cpu *Cpu) { cpu.X = 0xff }, 6, 0x0602},
		{"BNE not taken", []byte{0xd0, 0x05}, func(cpu *Cpu) { cpu.P.SetZero(0) }, 2, 0x0602},
		{"BNE taken", []byte{0xd0, 0x05}, func(cpu *Cpu) {}, 3, 0x0607},
		{"BNE taken crossed", []byte{0xd0, 0xfd}, func(cpu *Cpu) {}, 4, 0x05ff},
		{"BCS taken", []byte{0xb0, 0x10}, func(cpu *Cpu) { cpu.P.SetCarry(true) }, 3, 0x0612},
		{"BCC not taken", []byte{0x90, 0x10}, func(cpu *Cpu) { cpu.P.SetCarry(true) }, 2, 0x0602},
		{"BMI taken", []byte{0x30, 0x00}, func(cpu *Cpu) { cpu.P.SetNegative(0x80) }, 3, 0x0602},
		{"BPL taken", []byte{0x10, 0x80}, func(cpu *Cpu) {}, 4, 0x0582},
		{"BVS not taken", []byte{0x70, 0x10}, func(cpu *Cpu) {}, 2, 0x0602},
		{"BVC taken", []byte{0x50, 0x10}, func(cpu *Cpu) {}, 3, 0x0612},
		{"BEQ taken", []byte{0xf0, 0x10}, func(cpu *Cpu) { cpu.P.SetZero(0) }, 3, 0x0612},
		{"JMP $1234", []byte{0x4c, 0x12, 0x34}, func(cpu *Cpu) {}, 3, 0x1234},
		{"INC $1234,X", []byte{0xfe, 0x12, 0x34}, func(cpu *Cpu) {}, 7, 0x0603},
		{"DEC $10,X", []byte{0xd6, 0x10}, func(cpu *Cpu) {}, 6, 0x0602},
		{"ASL $1234", []byte{0x0e, 0x12, 0x34}, func(cpu *Cpu) {}, 6, 0x0603},
		{"PLA", []byte{0x68}, func(cpu *Cpu) {}, 4, 0x0601},
		{"NOP", []byte{0xea}, func(cpu *Cpu) {}, 2, 0x0601},
		{"STX $10,Y", []byte{0x96, 0x10}, func(cpu *Cpu) {}, 4, 0x0602},
		{"CPX $1234", []byte{0xec, 0x12, 0x34}, func(cpu *Cpu) {}, 4, 0x0603},
	}

	for _, entry := range table {
		cpu := newTestCpu(entry.code...)
		entry.setup(cpu)
		assert.Equal(entry.cycles, cpu.Step(), entry.name)
		assert.Equal(entry.pc, cpu.PC, entry.name)
	}
}

func TestCpuOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for n, inst := range Opcodes {
		if !inst.Valid() {
			assert.Equal(Instruction{}, inst, "0x%02x", n)
			continue
		}
		count++
		assert.GreaterOrEqual(inst.Cycles, 2, "0x%02x", n)
		assert.LessOrEqual(inst.PageCycles, 1, "0x%02x", n)

		opcode, ok := Lookup(inst.Mnemonic, inst.Mode)
		assert.True(ok)
		assert.Equal(byte(n), opcode)
	}
	assert.Equal(150, count)
	assert.False(Opcodes[0x00].Valid())

	_, ok := Lookup(OP_STA, MODE_IMMEDIATE)
	assert.False(ok)
}

func TestCpuRegisters(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	for reg := REG_A; reg <= REG_S; reg++ {
		cpu.Set(reg, byte(reg)+0x10)
	}
	assert.Equal(byte(0x10), cpu.A)
	assert.Equal(byte(0x11), cpu.X)
	assert.Equal(byte(0x12), cpu.Y)
	assert.Equal(byte(0x13), cpu.S)
	assert.Equal("x", REG_X.String())

	assert.Panics(func() { cpu.Get(Register(9)) })
	assert.Panics(func() { cpu.Set(Register(9), 0) })

	cpu.P = FLAG_CARRY
	cpu.PC = 0x1234
	cpu.Remaining = 3
	cpu.Reset()
	assert.Equal(byte(0), cpu.A)
	assert.Equal(byte(0xff), cpu.S)
	assert.Equal(Status(0), cpu.P)
	assert.Equal(uint16(0), cpu.PC)
	assert.True(cpu.Idle())
}

func TestCpuVerbose(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0xa9, 0x80)
	cpu.Verbose = true
	assert.Equal(2, cpu.Step())
	assert.Equal(byte(0x80), cpu.A)
	assert.Contains(cpu.String(), "A:80")
	assert.Contains(cpu.String(), "P:N.--....")
}
