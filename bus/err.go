package bus

import (
	"github.com/ezrec/nescore/translate"
)

var f = translate.From

// ErrImageRange is returned when a loaded image would run past the end
// of the address space.
type ErrImageRange struct {
	Addr uint16
	Size int
}

func (err *ErrImageRange) Error() string {
	return f("image of %d bytes at 0x%04x exceeds address space", err.Size, err.Addr)
}
