package cpu

import (
	"strings"
)

// Status is the processor status register.
type Status byte

// Status register flags.
const (
	FLAG_CARRY     = Status(1 << 0)
	FLAG_ZERO      = Status(1 << 1)
	FLAG_INTERRUPT = Status(1 << 2)
	FLAG_DECIMAL   = Status(1 << 3)
	FLAG_BREAK     = Status(1 << 4) // Only set in copies pushed to the stack.
	FLAG_UNUSED    = Status(1 << 5) // Only set in copies pushed to the stack.
	FLAG_OVERFLOW  = Status(1 << 6)
	FLAG_NEGATIVE  = Status(1 << 7)

	FLAG_PUSHED = FLAG_BREAK | FLAG_UNUSED
)

func (p *Status) set(flag Status, on bool) {
	if on {
		*p |= flag
	} else {
		*p &^= flag
	}
}

// SetNegative sets N from bit 7 of value.
func (p *Status) SetNegative(value byte) {
	p.set(FLAG_NEGATIVE, value&0x80 != 0)
}

// SetZero sets Z if value is zero.
func (p *Status) SetZero(value byte) {
	p.set(FLAG_ZERO, value == 0)
}

// SetZN sets both N and Z from value.
func (p *Status) SetZN(value byte) {
	p.SetNegative(value)
	p.SetZero(value)
}

func (p *Status) SetCarry(on bool) {
	p.set(FLAG_CARRY, on)
}

func (p *Status) SetOverflow(on bool) {
	p.set(FLAG_OVERFLOW, on)
}

func (p *Status) SetDecimal(on bool) {
	p.set(FLAG_DECIMAL, on)
}

func (p *Status) SetInterrupt(on bool) {
	p.set(FLAG_INTERRUPT, on)
}

func (p Status) Carry() bool     { return p&FLAG_CARRY != 0 }
func (p Status) Zero() bool      { return p&FLAG_ZERO != 0 }
func (p Status) Interrupt() bool { return p&FLAG_INTERRUPT != 0 }
func (p Status) Decimal() bool   { return p&FLAG_DECIMAL != 0 }
func (p Status) Overflow() bool  { return p&FLAG_OVERFLOW != 0 }
func (p Status) Negative() bool  { return p&FLAG_NEGATIVE != 0 }

// String renders the register as "NV--DIZC", with clear flags as '.'.
func (p Status) String() string {
	var sb strings.Builder
	for n, name := range "NV--DIZC" {
		if name != '-' && p&(0x80>>n) == 0 {
			name = '.'
		}
		sb.WriteRune(name)
	}
	return sb.String()
}
