// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/nescore/cpu"
	"github.com/ezrec/nescore/emulator"
	"github.com/ezrec/nescore/internal"
	"github.com/ezrec/nescore/io"
)

func main() {
	var compile string
	var binary string
	var origin string
	var input string
	var output string
	var cycles uint64
	var dump int
	var state bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&binary, "b", "", "Raw binary image to run")
	flag.StringVar(&origin, "a", "0x0600", "Load address of a raw binary image")
	flag.StringVar(&input, "i", "", "Tape input (- for stdin)")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.Uint64Var(&cycles, "n", 0, "Cycle limit (0 for none)")
	flag.IntVar(&dump, "d", 0, "Disassemble instructions from the entry, do not execute")
	flag.BoolVar(&state, "s", false, "Print the final CPU state")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	tape := &io.Tape{}
	emu.Attach(tape, 1)

	if input == "-" {
		tape.Input = os.Stdin
	} else if len(input) != 0 {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape.Input = inf
	}

	if output == "-" {
		tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Output = ouf
	}

	source := os.Args[0]
	prog := &cpu.Program{}

	switch {
	case len(compile) != 0 && len(binary) != 0:
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	case len(compile) != 0:
		// Assemble a new program.
		source = compile
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range internal.IterSeq2Concat(emu.Defines(), tape.Defines()) {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		// Load a raw image as a single line.
		source = binary
		base, err := strconv.ParseUint(origin, 0, 16)
		if err != nil {
			log.Fatalf("%v: %v", origin, err)
		}
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		prog.Entry = uint16(base)
		prog.Lines = []cpu.Line{{Pc: uint16(base), Bytes: data}}
	default:
		log.Fatalf("%v: one of -c or -b is required", os.Args[0])
	}

	emu.Program = prog
	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if dump > 0 {
		for pc, text := range internal.IterSeq2Limit(cpu.Listing(emu.Cpu.Bus, prog.Entry), dump) {
			fmt.Printf("%04X  %v\n", pc, text)
		}
		return
	}

	done, err := emu.Run(cycles)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	err = tape.Err()
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if state {
		fmt.Println(emu.Cpu.String())
	}

	if !done {
		log.Printf("%v: stopped after %d cycles", source, emu.Ticks())
	}
}
