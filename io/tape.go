package io

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/nescore/bus"
)

// Tape register addresses, in the unused slots of the APU window.
const (
	TAPE_OUT = bus.APU_BASE + 0x09 // Write a byte to the output stream.
	TAPE_IN  = bus.APU_BASE + 0x0d // Next byte of the input stream.
)

var _tape_defines = map[string]string{
	"TAPE_OUT": fmt.Sprintf("0x%04x", TAPE_OUT),
	"TAPE_IN":  fmt.Sprintf("0x%04x", TAPE_IN),
}

// Tape is a byte stream console for programs, attached as a bus peripheral.
//
// A non-zero byte written to TAPE_OUT is sent to Output, and TAPE_OUT is
// cleared once it has been taken. TAPE_IN is filled with the next byte of
// Input whenever it reads as zero; the program clears it to take another.
// NUL bytes are never transferred, in either direction.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	err error
	eof bool
}

var _ bus.Peripheral = (*Tape)(nil)

// Defines returns an iter of defines for the tape registers.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(_tape_defines)
}

// Reset clears the stream state. A tape cannot be rewound, so Input
// resumes where it was left.
func (tc *Tape) Reset() {
	tc.err = nil
	tc.eof = false
}

// Err returns the first stream error seen, other than end of input.
func (tc *Tape) Err() error {
	return tc.err
}

// Tick moves at most one byte in each direction.
func (tc *Tape) Tick(b *bus.Bus) {
	if value := b.Read(TAPE_OUT); value != 0 && tc.Output != nil {
		_, err := tc.Output.Write([]byte{value})
		if err != nil && tc.err == nil {
			tc.err = err
		}
		b.Write(TAPE_OUT, 0)
	}

	if b.Read(TAPE_IN) == 0 && tc.Input != nil && !tc.eof {
		value, ok := tc.receive()
		if ok {
			b.Write(TAPE_IN, value)
		}
	}
}

// receive returns the next non-NUL byte of the input.
func (tc *Tape) receive() (value byte, ok bool) {
	var one [1]byte
	for {
		n, err := tc.Input.Read(one[:])
		if n == 1 && one[0] != 0 {
			value = one[0]
			ok = true
			return
		}
		if err != nil {
			tc.eof = true
			if !errors.Is(err, io.EOF) && tc.err == nil {
				tc.err = err
			}
			return
		}
	}
}
