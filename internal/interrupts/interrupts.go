// Package interrupts holds the bit positions and dispatch vectors
// shared by every interrupt source (PPU, Timer, Serial, Joypad) and
// the CPU's dispatch logic in the MMU's IF/IE registers.
package interrupts

import "github.com/cormacvale/goboycore/internal/types"

// Flag identifies one of the five interrupt sources in IF/IE.
type Flag = uint8

const (
	VBlankFlag Flag = types.Bit0
	LCDFlag    Flag = types.Bit1
	TimerFlag  Flag = types.Bit2
	SerialFlag Flag = types.Bit3
	JoypadFlag Flag = types.Bit4
)

// Vector returns the dispatch address for the given interrupt bit
// index (0-4), following the fixed VBlank/LCDStat/Timer/Serial/Joypad
// ordering: lower bit numbers are serviced first when several are
// pending simultaneously.
func Vector(bit uint8) uint16 {
	return 0x0040 + uint16(bit)*8
}

// Source is implemented by every device capable of requesting an
// interrupt. Each device accumulates requests into its own local
// flag byte; the MMU ORs that byte into IF once per step and clears
// it, so a device never touches IF directly.
type Source interface {
	// Interrupt returns the device's pending local interrupt bits.
	Interrupt() uint8
	// ClearInterrupt clears the device's local interrupt bits after
	// the MMU has folded them into IF.
	ClearInterrupt()
}
