package bus

import (
	"fmt"
	"iter"
	"maps"
)

// Memory map constants.
const (
	RAM_SIZE = 0x0800 // Internal work RAM.
	RAM_END  = 0x1fff // Last mirror of work RAM.

	PPU_BASE = 0x2000 // PPU register window.
	PPU_SIZE = 8      // PPU registers, mirrored through PPU_END.
	PPU_END  = 0x3fff

	APU_BASE = 0x4000 // APU and I/O register window.
	APU_SIZE = 0x18   // APU and I/O registers, not mirrored.
	APU_END  = APU_BASE + APU_SIZE - 1

	OPEN_BUS = byte(0xff) // Value read from unmapped addresses.
)

// Region identifies the backing store of a bus address.
type Region int

//go:generate go tool stringer -linecomment -type=Region

const (
	REGION_RAM  = Region(0) // ram
	REGION_PPU  = Region(1) // ppu
	REGION_APU  = Region(2) // apu
	REGION_OPEN = Region(3) // open
)

var _bus_defines = map[string]string{
	"PPUCTRL":    fmt.Sprintf("0x%04x", PPU_BASE+0),
	"PPUMASK":    fmt.Sprintf("0x%04x", PPU_BASE+1),
	"PPUSTATUS":  fmt.Sprintf("0x%04x", PPU_BASE+2),
	"OAMADDR":    fmt.Sprintf("0x%04x", PPU_BASE+3),
	"OAMDATA":    fmt.Sprintf("0x%04x", PPU_BASE+4),
	"PPUSCROLL":  fmt.Sprintf("0x%04x", PPU_BASE+5),
	"PPUADDR":    fmt.Sprintf("0x%04x", PPU_BASE+6),
	"PPUDATA":    fmt.Sprintf("0x%04x", PPU_BASE+7),
	"SQ1_VOL":    fmt.Sprintf("0x%04x", APU_BASE+0x00),
	"SQ2_VOL":    fmt.Sprintf("0x%04x", APU_BASE+0x04),
	"TRI_LINEAR": fmt.Sprintf("0x%04x", APU_BASE+0x08),
	"NOISE_VOL":  fmt.Sprintf("0x%04x", APU_BASE+0x0c),
	"DMC_FREQ":   fmt.Sprintf("0x%04x", APU_BASE+0x10),
	"OAMDMA":     fmt.Sprintf("0x%04x", APU_BASE+0x14),
	"SND_CHN":    fmt.Sprintf("0x%04x", APU_BASE+0x15),
	"JOY1":       fmt.Sprintf("0x%04x", APU_BASE+0x16),
	"JOY2":       fmt.Sprintf("0x%04x", APU_BASE+0x17),
}

// Reader is a byte addressable read port.
type Reader interface {
	Read(addr uint16) (value byte)
}

// Writer is a byte addressable write port.
type Writer interface {
	Write(addr uint16, value byte)
}

// Memory is a byte addressable read/write port.
type Memory interface {
	Reader
	Writer
}

// Bus is the CPU address space: work RAM, and the PPU and APU/IO
// register windows. The register windows are plain storage, shared
// with any attached Peripheral.
type Bus struct {
	Ram [RAM_SIZE]byte
	Ppu [PPU_SIZE]byte
	Apu [APU_SIZE]byte
}

var _ Memory = (*Bus)(nil)

// Decode an address into its region, and the index into the region's
// storage. REGION_OPEN always has an index of -1.
func Decode(addr uint16) (region Region, index int) {
	switch {
	case addr <= RAM_END:
		region = REGION_RAM
		index = int(addr) % RAM_SIZE
	case addr <= PPU_END:
		region = REGION_PPU
		index = int(addr-PPU_BASE) % PPU_SIZE
	case addr <= APU_END:
		region = REGION_APU
		index = int(addr - APU_BASE)
	default:
		region = REGION_OPEN
		index = -1
	}

	return
}

// Defines returns the assembler equates for the bus registers.
func (b *Bus) Defines() iter.Seq2[string, string] {
	return maps.All(_bus_defines)
}

// Read a byte from the bus. Unmapped addresses read as OPEN_BUS.
func (b *Bus) Read(addr uint16) (value byte) {
	region, index := Decode(addr)
	switch region {
	case REGION_RAM:
		value = b.Ram[index]
	case REGION_PPU:
		value = b.Ppu[index]
	case REGION_APU:
		value = b.Apu[index]
	default:
		value = OPEN_BUS
	}

	return
}

// Write a byte to the bus. Writes to unmapped addresses are discarded.
func (b *Bus) Write(addr uint16, value byte) {
	region, index := Decode(addr)
	switch region {
	case REGION_RAM:
		b.Ram[index] = value
	case REGION_PPU:
		b.Ppu[index] = value
	case REGION_APU:
		b.Apu[index] = value
	}
}

// Reset clears all bus storage.
func (b *Bus) Reset() {
	clear(b.Ram[:])
	clear(b.Ppu[:])
	clear(b.Apu[:])
}

// Load an image onto the bus, starting at addr.
// Bytes that land in unmapped space are discarded, as with Write.
func (b *Bus) Load(addr uint16, data []byte) (err error) {
	if int(addr)+len(data) > 0x10000 {
		err = &ErrImageRange{Addr: addr, Size: len(data)}
		return
	}

	for n, value := range data {
		b.Write(addr+uint16(n), value)
	}

	return
}
