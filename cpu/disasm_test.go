package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   []byte
		text   string
		length uint16
	}){
		{[]byte{0xea}, "NOP", 1},
		{[]byte{0x0a}, "ASL A", 1},
		{[]byte{0xa9, 0x05}, "LDA #$05", 2},
		{[]byte{0xa5, 0x10}, "LDA $10", 2},
		{[]byte{0x95, 0x10}, "STA $10,X", 2},
		{[]byte{0xb6, 0x10}, "LDX $10,Y", 2},
		{[]byte{0xad, 0x12, 0x34}, "LDA $1234", 3},
		{[]byte{0x9d, 0x02, 0x00}, "STA $0200,X", 3},
		{[]byte{0xb9, 0x02, 0x00}, "LDA $0200,Y", 3},
		{[]byte{0x6c, 0x02, 0xff}, "JMP ($02FF)", 3},
		{[]byte{0xa1, 0x20}, "LDA ($20,X)", 2},
		{[]byte{0xb1, 0x20}, "LDA ($20),Y", 2},
		{[]byte{0xd0, 0xfe}, "BNE $0600", 2},
		{[]byte{0x10, 0x10}, "BPL $0612", 2},
		{[]byte{0x00}, ".byte $00", 1},
		{[]byte{0xff}, ".byte $FF", 1},
	}

	for _, entry := range table {
		cpu := newTestCpu(entry.code...)
		text, length := Disassemble(cpu.Bus, testOrigin)
		assert.Equal(entry.text, text)
		assert.Equal(entry.length, length, entry.text)
	}
}

func TestListing(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(0xa2, 0x03, 0xca, 0xd0, 0xfd, 0x02)

	var pcs []uint16
	var texts []string
	for pc, text := range Listing(cpu.Bus, testOrigin) {
		pcs = append(pcs, pc)
		texts = append(texts, text)
		if len(texts) == 4 {
			break
		}
	}

	assert.Equal([]uint16{0x0600, 0x0602, 0x0603, 0x0605}, pcs)
	assert.Equal([]string{"LDX #$03", "DEX", "BNE $0602", ".byte $02"}, texts)
}
