package bus

// Peripheral is a device that shares a register window with the CPU.
// It is advanced by the owner of the bus, never by the CPU itself.
type Peripheral interface {
	Reset()        // Reset the device state.
	Tick(bus *Bus) // Advance the device by one of its own clock ticks.
}
