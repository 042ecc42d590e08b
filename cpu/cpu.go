package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nescore/bus"
)

// Register selects one of the byte registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register

const (
	REG_A = Register(0) // a
	REG_X = Register(1) // x
	REG_Y = Register(2) // y
	REG_S = Register(3) // s
)

// Power-on register state.
const (
	RESET_S = byte(0xff)
	RESET_P = Status(0)
)

var _cpu_defines = map[string]string{
	"STACK_BASE":    fmt.Sprintf("0x%04x", STACK_BASE),
	"RAM_SIZE":      fmt.Sprintf("0x%04x", bus.RAM_SIZE),
	"FLAG_CARRY":    fmt.Sprintf("0x%02x", byte(FLAG_CARRY)),
	"FLAG_ZERO":     fmt.Sprintf("0x%02x", byte(FLAG_ZERO)),
	"FLAG_DECIMAL":  fmt.Sprintf("0x%02x", byte(FLAG_DECIMAL)),
	"FLAG_NEGATIVE": fmt.Sprintf("0x%02x", byte(FLAG_NEGATIVE)),
	"FLAG_OVERFLOW": fmt.Sprintf("0x%02x", byte(FLAG_OVERFLOW)),
}

// Cpu is the simulation context for the 6502 core.
type Cpu struct {
	Verbose bool            // Set to enable verbose logging.
	Err     func(err error) // If set, receives runtime diagnostics.

	Bus *bus.Bus // Address space, owned by the CPU.

	A  byte   // Accumulator.
	X  byte   // X index.
	Y  byte   // Y index.
	PC uint16 // Program counter.
	S  byte   // Stack pointer, offset into STACK_BASE.
	P  Status // Processor status.

	Remaining int // Cycles still owed by the instruction in flight.

	Cycles uint64 // Ticks since reset.
	Steps  uint64 // Instructions executed since reset.
}

// NewCpu creates a new CPU with its own bus, in the power-on state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Bus: &bus.Bus{},
	}
	cpu.Reset()

	return
}

// Defines returns the assembler equates for the CPU.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU registers to the power-on state.
// The bus is left untouched.
func (cpu *Cpu) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.PC = 0
	cpu.S = RESET_S
	cpu.P = RESET_P
	cpu.Remaining = 0
	cpu.Cycles = 0
	cpu.Steps = 0
}

// Idle returns true if no instruction is in flight, so the next
// Tick will fetch.
func (cpu *Cpu) Idle() bool {
	return cpu.Remaining == 0
}

// Tick advances the CPU by one cycle.
// When idle, the whole next instruction executes on this tick, and the
// remainder of its cost is paid by the following ticks.
// An unmapped opcode costs the one tick, and does not advance PC.
func (cpu *Cpu) Tick() {
	cpu.Cycles++

	if cpu.Remaining > 0 {
		cpu.Remaining--
		return
	}

	opcode := cpu.Bus.Read(cpu.PC)
	inst := Opcodes[opcode]
	if !inst.Valid() {
		if cpu.Verbose {
			log.Printf("cpu: %04X: illegal opcode %02X", cpu.PC, opcode)
		}
		if cpu.Err != nil {
			cpu.Err(ErrIllegalOpcode{Opcode: opcode, Pc: cpu.PC})
		}
		return
	}

	cost := cpu.execute(inst)
	cpu.Remaining = cost - 1
	cpu.Steps++
}

// Step ticks until the current instruction, if any, and then the next
// instruction have completed. Returns the ticks consumed.
func (cpu *Cpu) Step() (ticks int) {
	for !cpu.Idle() {
		cpu.Tick()
		ticks++
	}

	cpu.Tick()
	ticks++

	for !cpu.Idle() {
		cpu.Tick()
		ticks++
	}

	return
}

// Get the value of a register.
func (cpu *Cpu) Get(reg Register) (value byte) {
	switch reg {
	case REG_A:
		value = cpu.A
	case REG_X:
		value = cpu.X
	case REG_Y:
		value = cpu.Y
	case REG_S:
		value = cpu.S
	default:
		panic(fmt.Sprintf("unknown register %v", reg))
	}
	return
}

// Set the value of a register. Flags are not affected.
func (cpu *Cpu) Set(reg Register, value byte) {
	switch reg {
	case REG_A:
		cpu.A = value
	case REG_X:
		cpu.X = value
	case REG_Y:
		cpu.Y = value
	case REG_S:
		cpu.S = value
	default:
		panic(fmt.Sprintf("unknown register %v", reg))
	}
}

func (cpu *Cpu) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%v S:%02X PC:%04X CYC:%d",
		cpu.A, cpu.X, cpu.Y, cpu.P, cpu.S, cpu.PC, cpu.Cycles)
}

// execute the instruction at PC, returning its full cycle cost.
func (cpu *Cpu) execute(inst Instruction) (cost int) {
	if cpu.Verbose {
		text, _ := Disassemble(cpu.Bus, cpu.PC)
		log.Printf("cpu: %04X: %-12v %v", cpu.PC, text, cpu)
	}

	addr, crossed := Resolve(cpu.Bus, inst.Mode, cpu.PC, cpu.X, cpu.Y)

	op := &operand{
		mode:    inst.Mode,
		addr:    addr,
		crossed: crossed,
		cycles:  inst.Cycles,
	}
	if crossed {
		op.cycles += inst.PageCycles
	}

	cpu.PC += inst.Mode.Len()

	handlers[inst.Mnemonic](cpu, op)

	cost = op.cycles

	return
}
