package cpu

// Mnemonic is an instruction mnemonic.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic

const (
	OP_NONE = Mnemonic(0)  // ???
	OP_ADC  = Mnemonic(1)  // ADC
	OP_AND  = Mnemonic(2)  // AND
	OP_ASL  = Mnemonic(3)  // ASL
	OP_BCC  = Mnemonic(4)  // BCC
	OP_BCS  = Mnemonic(5)  // BCS
	OP_BEQ  = Mnemonic(6)  // BEQ
	OP_BIT  = Mnemonic(7)  // BIT
	OP_BMI  = Mnemonic(8)  // BMI
	OP_BNE  = Mnemonic(9)  // BNE
	OP_BPL  = Mnemonic(10) // BPL
	OP_BVC  = Mnemonic(11) // BVC
	OP_BVS  = Mnemonic(12) // BVS
	OP_CLC  = Mnemonic(13) // CLC
	OP_CLD  = Mnemonic(14) // CLD
	OP_CLI  = Mnemonic(15) // CLI
	OP_CLV  = Mnemonic(16) // CLV
	OP_CMP  = Mnemonic(17) // CMP
	OP_CPX  = Mnemonic(18) // CPX
	OP_CPY  = Mnemonic(19) // CPY
	OP_DEC  = Mnemonic(20) // DEC
	OP_DEX  = Mnemonic(21) // DEX
	OP_DEY  = Mnemonic(22) // DEY
	OP_EOR  = Mnemonic(23) // EOR
	OP_INC  = Mnemonic(24) // INC
	OP_INX  = Mnemonic(25) // INX
	OP_INY  = Mnemonic(26) // INY
	OP_JMP  = Mnemonic(27) // JMP
	OP_JSR  = Mnemonic(28) // JSR
	OP_LDA  = Mnemonic(29) // LDA
	OP_LDX  = Mnemonic(30) // LDX
	OP_LDY  = Mnemonic(31) // LDY
	OP_LSR  = Mnemonic(32) // LSR
	OP_NOP  = Mnemonic(33) // NOP
	OP_ORA  = Mnemonic(34) // ORA
	OP_PHA  = Mnemonic(35) // PHA
	OP_PHP  = Mnemonic(36) // PHP
	OP_PLA  = Mnemonic(37) // PLA
	OP_PLP  = Mnemonic(38) // PLP
	OP_ROL  = Mnemonic(39) // ROL
	OP_ROR  = Mnemonic(40) // ROR
	OP_RTI  = Mnemonic(41) // RTI
	OP_RTS  = Mnemonic(42) // RTS
	OP_SBC  = Mnemonic(43) // SBC
	OP_SEC  = Mnemonic(44) // SEC
	OP_SED  = Mnemonic(45) // SED
	OP_SEI  = Mnemonic(46) // SEI
	OP_STA  = Mnemonic(47) // STA
	OP_STX  = Mnemonic(48) // STX
	OP_STY  = Mnemonic(49) // STY
	OP_TAX  = Mnemonic(50) // TAX
	OP_TAY  = Mnemonic(51) // TAY
	OP_TSX  = Mnemonic(52) // TSX
	OP_TXA  = Mnemonic(53) // TXA
	OP_TXS  = Mnemonic(54) // TXS
	OP_TYA  = Mnemonic(55) // TYA
)
