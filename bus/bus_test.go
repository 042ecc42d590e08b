package bus

import (
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		addr   uint16
		region Region
		index  int
	}){
		{0x0000, REGION_RAM, 0x000},
		{0x07ff, REGION_RAM, 0x7ff},
		{0x0800, REGION_RAM, 0x000},
		{0x1234, REGION_RAM, 0x234},
		{0x1fff, REGION_RAM, 0x7ff},
		{0x2000, REGION_PPU, 0},
		{0x2007, REGION_PPU, 7},
		{0x2008, REGION_PPU, 0},
		{0x3ffd, REGION_PPU, 5},
		{0x3fff, REGION_PPU, 7},
		{0x4000, REGION_APU, 0x00},
		{0x4016, REGION_APU, 0x16},
		{0x4017, REGION_APU, 0x17},
		{0x4018, REGION_OPEN, -1},
		{0x8000, REGION_OPEN, -1},
		{0xffff, REGION_OPEN, -1},
	}

	for _, entry := range table {
		region, index := Decode(entry.addr)
		assert.Equal(entry.region, region, "0x%04x", entry.addr)
		assert.Equal(entry.index, index, "0x%04x", entry.addr)
	}
}

func TestBusRamMirror(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	for addr := 0; addr <= RAM_END; addr++ {
		value := byte(addr*7 + 3)
		b.Write(uint16(addr), value)
		for mirror := addr % RAM_SIZE; mirror <= RAM_END; mirror += RAM_SIZE {
			if !assert.Equal(value, b.Read(uint16(mirror)), "write 0x%04x read 0x%04x", addr, mirror) {
				return
			}
		}
	}
}

func TestBusPpuMirror(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	b.Write(0x3ffd, 0x42)
	assert.Equal(byte(0x42), b.Ppu[5])
	assert.Equal(byte(0x42), b.Read(0x2005))
	for addr := PPU_BASE + 5; addr <= PPU_END; addr += PPU_SIZE {
		assert.Equal(byte(0x42), b.Read(uint16(addr)))
	}

	b.Ppu[2] = 0x80
	assert.Equal(byte(0x80), b.Read(0x2002))
	assert.Equal(byte(0x80), b.Read(0x3002))
}

func TestBusApu(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	for addr := APU_BASE; addr <= APU_END; addr++ {
		b.Write(uint16(addr), byte(addr))
	}
	for n := range APU_SIZE {
		assert.Equal(byte(APU_BASE+n), b.Apu[n])
	}

	b.Write(0x4018, 0x55)
	assert.Equal(OPEN_BUS, b.Read(0x4018))
}

func TestBusOpen(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	before := *b
	for addr := APU_END + 1; addr <= 0xffff; addr++ {
		b.Write(uint16(addr), 0x00)
		assert.Equal(OPEN_BUS, b.Read(uint16(addr)))
	}
	assert.Equal(before, *b)
}

func TestBusResetLoad(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	err := b.Load(0x0600, []byte{0xa9, 0x05, 0xe8})
	assert.NoError(err)
	assert.Equal(byte(0xa9), b.Read(0x0600))
	assert.Equal(byte(0xe8), b.Read(0x0e02))

	err = b.Load(0xfffe, []byte{1, 2, 3})
	var range_err *ErrImageRange
	assert.True(errors.As(err, &range_err))
	assert.Equal(uint16(0xfffe), range_err.Addr)

	assert.NoError(b.Load(0xfffe, []byte{1, 2}))

	b.Ppu[0] = 1
	b.Apu[0] = 1
	b.Reset()
	assert.Equal(Bus{}, *b)
}

func TestBusDefines(t *testing.T) {
	assert := assert.New(t)

	b := &Bus{}
	defines := maps.Collect(b.Defines())
	assert.Equal("0x2000", defines["PPUCTRL"])
	assert.Equal("0x2007", defines["PPUDATA"])
	assert.Equal("0x4014", defines["OAMDMA"])
	assert.Equal("0x4017", defines["JOY2"])
}
