package cpu

import "github.com/cormacvale/goboycore/internal/types"

// Registers holds the SM83's eight 8-bit registers and the SP/PC
// 16-bit registers. AF/BC/DE/HL are views combining the high/low byte
// pairs; writing AF always clears F's low nibble, since only the
// upper four bits of F are meaningful.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	SP, PC uint16
}

// AF returns the combined A/F register pair.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// SetAF writes the A/F register pair, forcing F's low nibble to 0.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F = uint8(v) & 0xF0
}

// BC returns the combined B/C register pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC writes the B/C register pair.
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }

// DE returns the combined D/E register pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE writes the D/E register pair.
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }

// HL returns the combined H/L register pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL writes the H/L register pair.
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// Flag reports whether the given status flag is currently set.
func (r *Registers) Flag(f types.Flag) bool { return r.F&f != 0 }

// SetFlag sets or clears the given status flag according to cond.
func (r *Registers) SetFlag(f types.Flag, cond bool) {
	if cond {
		r.F |= f
	} else {
		r.F &^= f
	}
	r.F &= 0xF0
}

// Reset restores the registers to the post-boot-ROM DMG state. cgb
// selects the CGB-specific initial value of A.
func (r *Registers) Reset(cgb bool) {
	if cgb {
		r.A = 0x11
	} else {
		r.A = 0x01
	}
	r.F = 0xB0
	r.SetBC(0x0013)
	r.SetDE(0x00D8)
	r.SetHL(0x014D)
	r.SP = 0xFFFE
	r.PC = 0x0100
}
