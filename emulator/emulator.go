// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/nescore/bus"
	"github.com/ezrec/nescore/cpu"
	"github.com/ezrec/nescore/internal"
)

const (
	PPU_TICKS_PER_CPU = 3    // PPU clocks per CPU cycle.
	HALT_OPCODE       = 0x00 // Default halt opcode (BRK, which the core leaves unmapped).
)

var _emulator_defines = map[string]string{
	"PPU_TICKS_PER_CPU": fmt.Sprintf("%v", PPU_TICKS_PER_CPU),
	"HALT_OPCODE":       fmt.Sprintf("0x%02x", HALT_OPCODE),
}

// attachment is a peripheral and its clock ratio to the CPU.
type attachment struct {
	bus.Peripheral
	ratio int
}

// Emulator state. CPU + bus + attached peripherals.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Halt byte // Illegal opcode that ends the run, instead of failing it.

	peripherals []attachment
	fault       error
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Halt:    HALT_OPCODE,
	}

	emu.Cpu.Err = func(err error) {
		emu.fault = err
	}

	return
}

// Attach a peripheral, ticked ratio times per CPU cycle.
func (emu *Emulator) Attach(device bus.Peripheral, ratio int) {
	if ratio < 1 {
		ratio = 1
	}

	emu.peripherals = append(emu.peripherals, attachment{Peripheral: device, ratio: ratio})
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Bus.Defines(),
	)
}

// Reset the machine, and load the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset()
	emu.Cpu.Bus.Reset()
	emu.fault = nil

	for _, device := range emu.peripherals {
		device.Reset()
	}

	origin, data := emu.Program.Binary()
	err = emu.Cpu.Bus.Load(origin, data)
	if err != nil {
		return
	}

	emu.Cpu.PC = emu.Program.Entry

	if emu.Verbose {
		log.Printf("emulator: %d bytes at %04X, entry %04X", len(data), origin, emu.Program.Entry)
	}

	return
}

// Ticks returns the total CPU cycles since a reset.
func (emu *Emulator) Ticks() uint64 {
	return emu.Cpu.Cycles
}

// Steps returns the total instructions executed since a reset.
func (emu *Emulator) Steps() uint64 {
	return emu.Cpu.Steps
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	debug := emu.Program.Debug(emu.Cpu.PC)
	if debug.Line == nil {
		return 0
	}

	return debug.LineNo
}

// Tick performs a single CPU cycle of the emulator, and the matching
// peripheral clocks.
// done is set when the halt opcode is fetched.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.PC
	lineno := emu.LineNo()

	emu.Cpu.Tick()

	for _, device := range emu.peripherals {
		for range device.ratio {
			device.Tick(emu.Cpu.Bus)
		}
	}

	fault := emu.fault
	emu.fault = nil
	if fault == nil {
		return
	}

	var illegal cpu.ErrIllegalOpcode
	if errors.As(fault, &illegal) && illegal.Opcode == emu.Halt {
		done = true
		return
	}

	err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: fault}

	return
}

// Run ticks until halted, or until limit cycles have elapsed.
// A limit of zero runs without bound.
func (emu *Emulator) Run(limit uint64) (done bool, err error) {
	for cycles := uint64(0); limit == 0 || cycles < limit; cycles++ {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}
