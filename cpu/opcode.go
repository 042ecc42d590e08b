package cpu

// Instruction is the decode entry for a single opcode.
type Instruction struct {
	Mnemonic   Mnemonic // Instruction mnemonic; OP_NONE if unmapped.
	Mode       Mode     // Addressing mode.
	Cycles     int      // Base cycle cost.
	PageCycles int      // Additional cycles when the indexed address crosses a page.
}

// Valid returns true if the entry is a mapped instruction.
func (inst Instruction) Valid() bool {
	return inst.Mnemonic != OP_NONE
}

// Opcodes is the decode table, indexed by opcode byte.
// Branch penalties are applied by the branch itself, and are not
// part of PageCycles.
var Opcodes = [256]Instruction{
	0x69: {OP_ADC, MODE_IMMEDIATE, 2, 0},
	0x65: {OP_ADC, MODE_ZERO_PAGE, 3, 0},
	0x75: {OP_ADC, MODE_ZERO_PAGE_X, 4, 0},
	0x6d: {OP_ADC, MODE_ABSOLUTE, 4, 0},
	0x7d: {OP_ADC, MODE_ABSOLUTE_X, 4, 1},
	0x79: {OP_ADC, MODE_ABSOLUTE_Y, 4, 1},
	0x61: {OP_ADC, MODE_INDIRECT_X, 6, 0},
	0x71: {OP_ADC, MODE_INDIRECT_Y, 5, 1},

	0x29: {OP_AND, MODE_IMMEDIATE, 2, 0},
	0x25: {OP_AND, MODE_ZERO_PAGE, 3, 0},
	0x35: {OP_AND, MODE_ZERO_PAGE_X, 4, 0},
	0x2d: {OP_AND, MODE_ABSOLUTE, 4, 0},
	0x3d: {OP_AND, MODE_ABSOLUTE_X, 4, 1},
	0x39: {OP_AND, MODE_ABSOLUTE_Y, 4, 1},
	0x21: {OP_AND, MODE_INDIRECT_X, 6, 0},
	0x31: {OP_AND, MODE_INDIRECT_Y, 5, 1},

	0x0a: {OP_ASL, MODE_ACCUMULATOR, 2, 0},
	0x06: {OP_ASL, MODE_ZERO_PAGE, 5, 0},
	0x16: {OP_ASL, MODE_ZERO_PAGE_X, 6, 0},
	0x0e: {OP_ASL, MODE_ABSOLUTE, 6, 0},
	0x1e: {OP_ASL, MODE_ABSOLUTE_X, 7, 0},

	0x90: {OP_BCC, MODE_RELATIVE, 2, 0},
	0xb0: {OP_BCS, MODE_RELATIVE, 2, 0},
	0xf0: {OP_BEQ, MODE_RELATIVE, 2, 0},
	0x30: {OP_BMI, MODE_RELATIVE, 2, 0},
	0xd0: {OP_BNE, MODE_RELATIVE, 2, 0},
	0x10: {OP_BPL, MODE_RELATIVE, 2, 0},
	0x50: {OP_BVC, MODE_RELATIVE, 2, 0},
	0x70: {OP_BVS, MODE_RELATIVE, 2, 0},

	0x24: {OP_BIT, MODE_ZERO_PAGE, 3, 0},
	0x2c: {OP_BIT, MODE_ABSOLUTE, 4, 0},

	0x18: {OP_CLC, MODE_IMPLIED, 2, 0},
	0xd8: {OP_CLD, MODE_IMPLIED, 2, 0},
	0x58: {OP_CLI, MODE_IMPLIED, 2, 0},
	0xb8: {OP_CLV, MODE_IMPLIED, 2, 0},

	0xc9: {OP_CMP, MODE_IMMEDIATE, 2, 0},
	0xc5: {OP_CMP, MODE_ZERO_PAGE, 3, 0},
	0xd5: {OP_CMP, MODE_ZERO_PAGE_X, 4, 0},
	0xcd: {OP_CMP, MODE_ABSOLUTE, 4, 0},
	0xdd: {OP_CMP, MODE_ABSOLUTE_X, 4, 1},
	0xd9: {OP_CMP, MODE_ABSOLUTE_Y, 4, 1},
	0xc1: {OP_CMP, MODE_INDIRECT_X, 6, 0},
	0xd1: {OP_CMP, MODE_INDIRECT_Y, 5, 1},

	0xe0: {OP_CPX, MODE_IMMEDIATE, 2, 0},
	0xe4: {OP_CPX, MODE_ZERO_PAGE, 3, 0},
	0xec: {OP_CPX, MODE_ABSOLUTE, 4, 0},

	0xc0: {OP_CPY, MODE_IMMEDIATE, 2, 0},
	0xc4: {OP_CPY, MODE_ZERO_PAGE, 3, 0},
	0xcc: {OP_CPY, MODE_ABSOLUTE, 4, 0},

	0xc6: {OP_DEC, MODE_ZERO_PAGE, 5, 0},
	0xd6: {OP_DEC, MODE_ZERO_PAGE_X, 6, 0},
	0xce: {OP_DEC, MODE_ABSOLUTE, 6, 0},
	0xde: {OP_DEC, MODE_ABSOLUTE_X, 7, 0},

	0xca: {OP_DEX, MODE_IMPLIED, 2, 0},
	0x88: {OP_DEY, MODE_IMPLIED, 2, 0},

	0x49: {OP_EOR, MODE_IMMEDIATE, 2, 0},
	0x45: {OP_EOR, MODE_ZERO_PAGE, 3, 0},
	0x55: {OP_EOR, MODE_ZERO_PAGE_X, 4, 0},
	0x4d: {OP_EOR, MODE_ABSOLUTE, 4, 0},
	0x5d: {OP_EOR, MODE_ABSOLUTE_X, 4, 1},
	0x59: {OP_EOR, MODE_ABSOLUTE_Y, 4, 1},
	0x41: {OP_EOR, MODE_INDIRECT_X, 6, 0},
	0x51: {OP_EOR, MODE_INDIRECT_Y, 5, 1},

	0xe6: {OP_INC, MODE_ZERO_PAGE, 5, 0},
	0xf6: {OP_INC, MODE_ZERO_PAGE_X, 6, 0},
	0xee: {OP_INC, MODE_ABSOLUTE, 6, 0},
	0xfe: {OP_INC, MODE_ABSOLUTE_X, 7, 0},

	0xe8: {OP_INX, MODE_IMPLIED, 2, 0},
	0xc8: {OP_INY, MODE_IMPLIED, 2, 0},

	0x4c: {OP_JMP, MODE_ABSOLUTE, 3, 0},
	0x6c: {OP_JMP, MODE_INDIRECT, 5, 0},
	0x20: {OP_JSR, MODE_ABSOLUTE, 6, 0},

	0xa9: {OP_LDA, MODE_IMMEDIATE, 2, 0},
	0xa5: {OP_LDA, MODE_ZERO_PAGE, 3, 0},
	0xb5: {OP_LDA, MODE_ZERO_PAGE_X, 4, 0},
	0xad: {OP_LDA, MODE_ABSOLUTE, 4, 0},
	0xbd: {OP_LDA, MODE_ABSOLUTE_X, 4, 1},
	0xb9: {OP_LDA, MODE_ABSOLUTE_Y, 4, 1},
	0xa1: {OP_LDA, MODE_INDIRECT_X, 6, 0},
	0xb1: {OP_LDA, MODE_INDIRECT_Y, 5, 1},

	0xa2: {OP_LDX, MODE_IMMEDIATE, 2, 0},
	0xa6: {OP_LDX, MODE_ZERO_PAGE, 3, 0},
	0xb6: {OP_LDX, MODE_ZERO_PAGE_Y, 4, 0},
	0xae: {OP_LDX, MODE_ABSOLUTE, 4, 0},
	0xbe: {OP_LDX, MODE_ABSOLUTE_Y, 4, 1},

	0xa0: {OP_LDY, MODE_IMMEDIATE, 2, 0},
	0xa4: {OP_LDY, MODE_ZERO_PAGE, 3, 0},
	0xb4: {OP_LDY, MODE_ZERO_PAGE_X, 4, 0},
	0xac: {OP_LDY, MODE_ABSOLUTE, 4, 0},
	0xbc: {OP_LDY, MODE_ABSOLUTE_X, 4, 1},

	0x4a: {OP_LSR, MODE_ACCUMULATOR, 2, 0},
	0x46: {OP_LSR, MODE_ZERO_PAGE, 5, 0},
	0x56: {OP_LSR, MODE_ZERO_PAGE_X, 6, 0},
	0x4e: {OP_LSR, MODE_ABSOLUTE, 6, 0},
	0x5e: {OP_LSR, MODE_ABSOLUTE_X, 7, 0},

	0xea: {OP_NOP, MODE_IMPLIED, 2, 0},

	0x09: {OP_ORA, MODE_IMMEDIATE, 2, 0},
	0x05: {OP_ORA, MODE_ZERO_PAGE, 3, 0},
	0x15: {OP_ORA, MODE_ZERO_PAGE_X, 4, 0},
	0x0d: {OP_ORA, MODE_ABSOLUTE, 4, 0},
	0x1d: {OP_ORA, MODE_ABSOLUTE_X, 4, 1},
	0x19: {OP_ORA, MODE_ABSOLUTE_Y, 4, 1},
	0x01: {OP_ORA, MODE_INDIRECT_X, 6, 0},
	0x11: {OP_ORA, MODE_INDIRECT_Y, 5, 1},

	0x48: {OP_PHA, MODE_IMPLIED, 3, 0},
	0x08: {OP_PHP, MODE_IMPLIED, 3, 0},
	0x68: {OP_PLA, MODE_IMPLIED, 4, 0},
	0x28: {OP_PLP, MODE_IMPLIED, 4, 0},

	0x2a: {OP_ROL, MODE_ACCUMULATOR, 2, 0},
	0x26: {OP_ROL, MODE_ZERO_PAGE, 5, 0},
	0x36: {OP_ROL, MODE_ZERO_PAGE_X, 6, 0},
	0x2e: {OP_ROL, MODE_ABSOLUTE, 6, 0},
	0x3e: {OP_ROL, MODE_ABSOLUTE_X, 7, 0},

	0x6a: {OP_ROR, MODE_ACCUMULATOR, 2, 0},
	0x66: {OP_ROR, MODE_ZERO_PAGE, 5, 0},
	0x76: {OP_ROR, MODE_ZERO_PAGE_X, 6, 0},
	0x6e: {OP_ROR, MODE_ABSOLUTE, 6, 0},
	0x7e: {OP_ROR, MODE_ABSOLUTE_X, 7, 0},

	0x40: {OP_RTI, MODE_IMPLIED, 6, 0},
	0x60: {OP_RTS, MODE_IMPLIED, 6, 0},

	0xe9: {OP_SBC, MODE_IMMEDIATE, 2, 0},
	0xe5: {OP_SBC, MODE_ZERO_PAGE, 3, 0},
	0xf5: {OP_SBC, MODE_ZERO_PAGE_X, 4, 0},
	0xed: {OP_SBC, MODE_ABSOLUTE, 4, 0},
	0xfd: {OP_SBC, MODE_ABSOLUTE_X, 4, 1},
	0xf9: {OP_SBC, MODE_ABSOLUTE_Y, 4, 1},
	0xe1: {OP_SBC, MODE_INDIRECT_X, 6, 0},
	0xf1: {OP_SBC, MODE_INDIRECT_Y, 5, 1},

	0x38: {OP_SEC, MODE_IMPLIED, 2, 0},
	0xf8: {OP_SED, MODE_IMPLIED, 2, 0},
	0x78: {OP_SEI, MODE_IMPLIED, 2, 0},

	0x85: {OP_STA, MODE_ZERO_PAGE, 3, 0},
	0x95: {OP_STA, MODE_ZERO_PAGE_X, 4, 0},
	0x8d: {OP_STA, MODE_ABSOLUTE, 4, 0},
	0x9d: {OP_STA, MODE_ABSOLUTE_X, 5, 0},
	0x99: {OP_STA, MODE_ABSOLUTE_Y, 5, 0},
	0x81: {OP_STA, MODE_INDIRECT_X, 6, 0},
	0x91: {OP_STA, MODE_INDIRECT_Y, 6, 0},

	0x86: {OP_STX, MODE_ZERO_PAGE, 3, 0},
	0x96: {OP_STX, MODE_ZERO_PAGE_Y, 4, 0},
	0x8e: {OP_STX, MODE_ABSOLUTE, 4, 0},

	0x84: {OP_STY, MODE_ZERO_PAGE, 3, 0},
	0x94: {OP_STY, MODE_ZERO_PAGE_X, 4, 0},
	0x8c: {OP_STY, MODE_ABSOLUTE, 4, 0},

	0xaa: {OP_TAX, MODE_IMPLIED, 2, 0},
	0xa8: {OP_TAY, MODE_IMPLIED, 2, 0},
	0xba: {OP_TSX, MODE_IMPLIED, 2, 0},
	0x8a: {OP_TXA, MODE_IMPLIED, 2, 0},
	0x9a: {OP_TXS, MODE_IMPLIED, 2, 0},
	0x98: {OP_TYA, MODE_IMPLIED, 2, 0},
}

// Lookup finds the opcode byte for a mnemonic and addressing mode.
func Lookup(mnemonic Mnemonic, mode Mode) (opcode byte, ok bool) {
	for n, inst := range Opcodes {
		if inst.Valid() && inst.Mnemonic == mnemonic && inst.Mode == mode {
			opcode = byte(n)
			ok = true
			return
		}
	}

	return
}

// IsBranch returns true for the conditional branch mnemonics.
func (mnemonic Mnemonic) IsBranch() bool {
	switch mnemonic {
	case OP_BCC, OP_BCS, OP_BEQ, OP_BMI, OP_BNE, OP_BPL, OP_BVC, OP_BVS:
		return true
	}
	return false
}
