package cpu

const (
	STACK_BASE = 0x0100 // Stack page.
)

// push a byte to the stack. S wraps within the stack page.
func (cpu *Cpu) push(value byte) {
	cpu.Bus.Write(STACK_BASE|uint16(cpu.S), value)
	cpu.S--
}

// pull a byte from the stack. S wraps within the stack page.
func (cpu *Cpu) pull() (value byte) {
	cpu.S++
	value = cpu.Bus.Read(STACK_BASE | uint16(cpu.S))
	return
}

// push16 pushes the high byte, then the low byte.
func (cpu *Cpu) push16(value uint16) {
	cpu.push(byte(value >> 8))
	cpu.push(byte(value))
}

func (cpu *Cpu) pull16() (value uint16) {
	lo := cpu.pull()
	hi := cpu.pull()
	value = uint16(hi)<<8 | uint16(lo)
	return
}

// StackEmpty returns true if S is at its power-on position.
func (cpu *Cpu) StackEmpty() bool {
	return cpu.S == RESET_S
}

// StackFull returns true if the next push wraps S.
func (cpu *Cpu) StackFull() bool {
	return cpu.S == 0x00
}

// StackDepth returns the number of bytes between S and its power-on
// position.
func (cpu *Cpu) StackDepth() int {
	return int(RESET_S - cpu.S)
}

// Peek returns the most recently pushed byte.
func (cpu *Cpu) Peek() (value byte) {
	value = cpu.Bus.Read(STACK_BASE | uint16(cpu.S+1))
	return
}
