// Package joypad emulates the Game Boy's 2x4 key matrix, selected via
// the P14/P15 group-select bits of the P1 register.
package joypad

import "github.com/cormacvale/goboycore/internal/interrupts"

// Button identifies one of the eight physical keys.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad tracks the pressed/released state of all eight keys and the
// last value written to P1, which selects whether reads report the
// direction group (P14) or the button group (P15).
type Joypad struct {
	// matrix is low-active: a cleared bit means the corresponding key
	// is pressed. Bits 0-3 are Right/Left/Up/Down, bits 4-7 are
	// A/B/Select/Start.
	matrix uint8
	select_ uint8

	interrupt uint8
}

// New returns a Joypad with no keys pressed and neither group
// selected.
func New() *Joypad {
	return &Joypad{matrix: 0xFF, select_: 0xFF}
}

// Read returns the P1 register: the select bits as last written,
// ORed with the active group's key state.
func (j *Joypad) Read() uint8 {
	if j.select_&0x10 == 0 { // P14: direction keys
		return j.select_ | (j.matrix & 0x0F)
	}
	if j.select_&0x20 == 0 { // P15: button keys
		return j.select_ | (j.matrix >> 4)
	}
	return j.select_ | 0x0F
}

// Write records the full byte written to P1. Bits 4-5 select the
// group; the whole byte is ORed into subsequent reads as is.
func (j *Joypad) Write(value uint8) {
	j.select_ = value
}

func (j *Joypad) bit(b Button) uint8 {
	switch b {
	case Right:
		return 0x01
	case Left:
		return 0x02
	case Up:
		return 0x04
	case Down:
		return 0x08
	case A:
		return 0x10
	case B:
		return 0x20
	case Select:
		return 0x40
	case Start:
		return 0x80
	}
	return 0
}

// KeyDown presses the given key, clearing its matrix bit and raising
// the Joypad interrupt.
func (j *Joypad) KeyDown(b Button) {
	j.matrix &^= j.bit(b)
	j.interrupt |= interrupts.JoypadFlag
}

// KeyUp releases the given key, setting its matrix bit.
func (j *Joypad) KeyUp(b Button) {
	j.matrix |= j.bit(b)
}

// Interrupt returns the joypad's pending local interrupt bits.
func (j *Joypad) Interrupt() uint8 { return j.interrupt }

// ClearInterrupt clears the joypad's pending local interrupt bits.
func (j *Joypad) ClearInterrupt() { j.interrupt = 0 }
