// Package bus simulates the address space seen by the NES CPU.
//
// Work RAM is 2KiB, mirrored four times through 0x1fff. The eight PPU
// registers are mirrored every eight bytes through 0x3fff. The 24 APU
// and I/O registers at 0x4000 are not mirrored. Everything else is open
// bus: reads return 0xff, writes are dropped.
package bus
