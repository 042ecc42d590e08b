package cpu

// operand is the resolved operand of the instruction being executed.
type operand struct {
	mode    Mode
	addr    uint16
	crossed bool
	cycles  int // Cost so far; handlers add branch penalties here.
}

type handler func(cpu *Cpu, op *operand)

var handlers = [...]handler{
	OP_NONE: func(cpu *Cpu, op *operand) { panic("unmapped opcode executed") },

	OP_LDA: func(cpu *Cpu, op *operand) { cpu.load(REG_A, op) },
	OP_LDX: func(cpu *Cpu, op *operand) { cpu.load(REG_X, op) },
	OP_LDY: func(cpu *Cpu, op *operand) { cpu.load(REG_Y, op) },
	OP_STA: func(cpu *Cpu, op *operand) { cpu.store(REG_A, op) },
	OP_STX: func(cpu *Cpu, op *operand) { cpu.store(REG_X, op) },
	OP_STY: func(cpu *Cpu, op *operand) { cpu.store(REG_Y, op) },

	OP_TAX: func(cpu *Cpu, op *operand) { cpu.transfer(REG_A, REG_X) },
	OP_TAY: func(cpu *Cpu, op *operand) { cpu.transfer(REG_A, REG_Y) },
	OP_TSX: func(cpu *Cpu, op *operand) { cpu.transfer(REG_S, REG_X) },
	OP_TXA: func(cpu *Cpu, op *operand) { cpu.transfer(REG_X, REG_A) },
	OP_TXS: func(cpu *Cpu, op *operand) { cpu.transfer(REG_X, REG_S) },
	OP_TYA: func(cpu *Cpu, op *operand) { cpu.transfer(REG_Y, REG_A) },

	OP_INC: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.inc) },
	OP_DEC: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.dec) },
	OP_INX: func(cpu *Cpu, op *operand) { cpu.X = cpu.inc(cpu.X) },
	OP_INY: func(cpu *Cpu, op *operand) { cpu.Y = cpu.inc(cpu.Y) },
	OP_DEX: func(cpu *Cpu, op *operand) { cpu.X = cpu.dec(cpu.X) },
	OP_DEY: func(cpu *Cpu, op *operand) { cpu.Y = cpu.dec(cpu.Y) },

	OP_ASL: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.asl) },
	OP_LSR: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.lsr) },
	OP_ROL: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.rol) },
	OP_ROR: func(cpu *Cpu, op *operand) { cpu.modify(op, cpu.ror) },

	OP_AND: func(cpu *Cpu, op *operand) { cpu.setA(cpu.A & cpu.read(op)) },
	OP_ORA: func(cpu *Cpu, op *operand) { cpu.setA(cpu.A | cpu.read(op)) },
	OP_EOR: func(cpu *Cpu, op *operand) { cpu.setA(cpu.A ^ cpu.read(op)) },
	OP_ADC: func(cpu *Cpu, op *operand) { cpu.add(cpu.read(op)) },
	OP_SBC: func(cpu *Cpu, op *operand) { cpu.add(^cpu.read(op)) },
	OP_CMP: func(cpu *Cpu, op *operand) { cpu.compare(cpu.A, op) },
	OP_CPX: func(cpu *Cpu, op *operand) { cpu.compare(cpu.X, op) },
	OP_CPY: func(cpu *Cpu, op *operand) { cpu.compare(cpu.Y, op) },
	OP_BIT: func(cpu *Cpu, op *operand) { cpu.bit(op) },

	OP_BCC: func(cpu *Cpu, op *operand) { cpu.branch(op, !cpu.P.Carry()) },
	OP_BCS: func(cpu *Cpu, op *operand) { cpu.branch(op, cpu.P.Carry()) },
	OP_BNE: func(cpu *Cpu, op *operand) { cpu.branch(op, !cpu.P.Zero()) },
	OP_BEQ: func(cpu *Cpu, op *operand) { cpu.branch(op, cpu.P.Zero()) },
	OP_BPL: func(cpu *Cpu, op *operand) { cpu.branch(op, !cpu.P.Negative()) },
	OP_BMI: func(cpu *Cpu, op *operand) { cpu.branch(op, cpu.P.Negative()) },
	OP_BVC: func(cpu *Cpu, op *operand) { cpu.branch(op, !cpu.P.Overflow()) },
	OP_BVS: func(cpu *Cpu, op *operand) { cpu.branch(op, cpu.P.Overflow()) },

	OP_JMP: func(cpu *Cpu, op *operand) { cpu.PC = op.addr },
	OP_JSR: func(cpu *Cpu, op *operand) { cpu.push16(cpu.PC - 1); cpu.PC = op.addr },
	OP_RTS: func(cpu *Cpu, op *operand) { cpu.PC = cpu.pull16() + 1 },
	OP_RTI: func(cpu *Cpu, op *operand) { cpu.pullStatus(); cpu.PC = cpu.pull16() },

	OP_PHA: func(cpu *Cpu, op *operand) { cpu.push(cpu.A) },
	OP_PLA: func(cpu *Cpu, op *operand) { cpu.setA(cpu.pull()) },
	OP_PHP: func(cpu *Cpu, op *operand) { cpu.push(byte(cpu.P | FLAG_PUSHED)) },
	OP_PLP: func(cpu *Cpu, op *operand) { cpu.pullStatus() },

	OP_CLC: func(cpu *Cpu, op *operand) { cpu.P.SetCarry(false) },
	OP_SEC: func(cpu *Cpu, op *operand) { cpu.P.SetCarry(true) },
	OP_CLI: func(cpu *Cpu, op *operand) { cpu.P.SetInterrupt(false) },
	OP_SEI: func(cpu *Cpu, op *operand) { cpu.P.SetInterrupt(true) },
	OP_CLD: func(cpu *Cpu, op *operand) { cpu.P.SetDecimal(false) },
	OP_SED: func(cpu *Cpu, op *operand) { cpu.P.SetDecimal(true) },
	OP_CLV: func(cpu *Cpu, op *operand) { cpu.P.SetOverflow(false) },

	OP_NOP: func(cpu *Cpu, op *operand) {},
}

func (cpu *Cpu) read(op *operand) byte {
	return cpu.Bus.Read(op.addr)
}

func (cpu *Cpu) setA(value byte) {
	cpu.A = value
	cpu.P.SetZN(value)
}

func (cpu *Cpu) load(reg Register, op *operand) {
	value := cpu.read(op)
	cpu.Set(reg, value)
	cpu.P.SetZN(value)
}

func (cpu *Cpu) store(reg Register, op *operand) {
	cpu.Bus.Write(op.addr, cpu.Get(reg))
}

// transfer copies between registers. Writes to S leave the flags alone.
func (cpu *Cpu) transfer(from, to Register) {
	value := cpu.Get(from)
	cpu.Set(to, value)
	if to != REG_S {
		cpu.P.SetZN(value)
	}
}

// modify is a read-modify-write of the operand, either the accumulator
// or memory.
func (cpu *Cpu) modify(op *operand, fn func(value byte) byte) {
	if op.mode == MODE_ACCUMULATOR {
		cpu.A = fn(cpu.A)
		return
	}

	cpu.Bus.Write(op.addr, fn(cpu.read(op)))
}

func (cpu *Cpu) inc(value byte) byte {
	value++
	cpu.P.SetZN(value)
	return value
}

func (cpu *Cpu) dec(value byte) byte {
	value--
	cpu.P.SetZN(value)
	return value
}

func (cpu *Cpu) asl(value byte) byte {
	cpu.P.SetCarry(value&0x80 != 0)
	value <<= 1
	cpu.P.SetZN(value)
	return value
}

func (cpu *Cpu) lsr(value byte) byte {
	cpu.P.SetCarry(value&0x01 != 0)
	value >>= 1
	cpu.P.SetZN(value)
	return value
}

func (cpu *Cpu) rol(value byte) byte {
	carry := byte(cpu.P & FLAG_CARRY)
	cpu.P.SetCarry(value&0x80 != 0)
	value = value<<1 | carry
	cpu.P.SetZN(value)
	return value
}

func (cpu *Cpu) ror(value byte) byte {
	carry := byte(cpu.P&FLAG_CARRY) << 7
	cpu.P.SetCarry(value&0x01 != 0)
	value = value>>1 | carry
	cpu.P.SetZN(value)
	return value
}

// add value and carry to A. The decimal flag is ignored.
func (cpu *Cpu) add(value byte) {
	a := cpu.A
	sum := uint16(a) + uint16(value) + uint16(cpu.P&FLAG_CARRY)
	result := byte(sum)

	cpu.P.SetCarry(sum > 0xff)
	cpu.P.SetOverflow((a^result)&(value^result)&0x80 != 0)
	cpu.setA(result)
}

func (cpu *Cpu) compare(reg byte, op *operand) {
	value := cpu.read(op)
	cpu.P.SetCarry(reg >= value)
	cpu.P.SetZN(reg - value)
}

func (cpu *Cpu) bit(op *operand) {
	value := cpu.read(op)
	cpu.P.SetZero(cpu.A & value)
	cpu.P.SetNegative(value)
	cpu.P.SetOverflow(value&0x40 != 0)
}

// branch to the operand when taken, costing one more cycle, and one
// more again when the target is on another page.
func (cpu *Cpu) branch(op *operand, taken bool) {
	if !taken {
		return
	}

	op.cycles++
	if op.crossed {
		op.cycles++
	}
	cpu.PC = op.addr
}

func (cpu *Cpu) pullStatus() {
	cpu.P = Status(cpu.pull()) &^ FLAG_PUSHED
}
