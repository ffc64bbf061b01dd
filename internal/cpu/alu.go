package cpu

import "github.com/cormacvale/goboycore/internal/types"

// add8 adds b (and optionally the carry flag) to a, setting Z/N/H/C
// per spec.md §4.2: H from the lower-nibble sum, C from the full sum.
func (c *CPU) add8(a, b uint8, useCarry bool) uint8 {
	carry := uint16(0)
	if useCarry && c.Reg.Flag(types.FlagCarry) {
		carry = 1
	}
	sum := uint16(a) + uint16(b) + carry
	result := uint8(sum)

	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, (a&0xF)+(b&0xF)+uint8(carry) > 0xF)
	c.Reg.SetFlag(types.FlagCarry, sum > 0xFF)
	return result
}

// sub8 subtracts b (and optionally the carry flag) from a.
func (c *CPU) sub8(a, b uint8, useCarry bool) uint8 {
	carry := uint8(0)
	if useCarry && c.Reg.Flag(types.FlagCarry) {
		carry = 1
	}
	result := a - b - carry

	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, true)
	c.Reg.SetFlag(types.FlagHalfCarry, (a&0xF) < (b&0xF)+carry)
	c.Reg.SetFlag(types.FlagCarry, uint16(a) < uint16(b)+uint16(carry))
	return result
}

func (c *CPU) and8(a, b uint8) uint8 {
	result := a & b
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, true)
	c.Reg.SetFlag(types.FlagCarry, false)
	return result
}

func (c *CPU) or8(a, b uint8) uint8 {
	result := a | b
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, false)
	return result
}

func (c *CPU) xor8(a, b uint8) uint8 {
	result := a ^ b
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, false)
	return result
}

// cp8 is sub8 without writing the result back to A.
func (c *CPU) cp8(a, b uint8) { c.sub8(a, b, false) }

// inc8 affects Z/N/H only; C is left untouched.
func (c *CPU) inc8(a uint8) uint8 {
	result := a + 1
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, a&0xF == 0xF)
	return result
}

// dec8 affects Z/N/H only; C is left untouched.
func (c *CPU) dec8(a uint8) uint8 {
	result := a - 1
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, true)
	c.Reg.SetFlag(types.FlagHalfCarry, a&0xF == 0)
	return result
}

// addHL affects N/H/C only; H uses bit 11, C uses bit 15.
func (c *CPU) addHL(b uint16) {
	a := c.Reg.HL()
	sum := uint32(a) + uint32(b)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, (a&0xFFF)+(b&0xFFF) > 0xFFF)
	c.Reg.SetFlag(types.FlagCarry, sum > 0xFFFF)
	c.Reg.SetHL(uint16(sum))
}

// addSPSigned implements both ADD SP,r8 and LD HL,SP+r8: the H and C
// flags are computed as if adding two unsigned 8-bit halves, per
// spec.md's closing Open Question — C uses bit 7 of the low byte, not
// bit 15 of the 16-bit sum.
func (c *CPU) addSPSigned(offset int8) uint16 {
	sp := c.Reg.SP
	result := uint16(int32(sp) + int32(offset))

	low := uint8(sp)
	c.Reg.SetFlag(types.FlagZero, false)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, (low&0xF)+(uint8(offset)&0xF) > 0xF)
	c.Reg.SetFlag(types.FlagCarry, uint16(low)+uint16(uint8(offset)) > 0xFF)
	return result
}

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.Reg.Flag(types.FlagCarry) {
		oldCarry = 1
	}
	carry := v&0x80 != 0
	result := v<<1 | oldCarry
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.Reg.Flag(types.FlagCarry) {
		oldCarry = 0x80
	}
	carry := v&0x01 != 0
	result := v>>1 | oldCarry
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

// rlcA/rrcA/rlA/rrA are the non-CB accumulator rotations: same bit
// shuffling as their CB counterparts but Z is always cleared because
// A is always the target.
func (c *CPU) rlcA() { c.Reg.A = c.rlc(c.Reg.A); c.Reg.SetFlag(types.FlagZero, false) }
func (c *CPU) rrcA() { c.Reg.A = c.rrc(c.Reg.A); c.Reg.SetFlag(types.FlagZero, false) }
func (c *CPU) rlA()  { c.Reg.A = c.rl(c.Reg.A); c.Reg.SetFlag(types.FlagZero, false) }
func (c *CPU) rrA()  { c.Reg.A = c.rr(c.Reg.A); c.Reg.SetFlag(types.FlagZero, false) }

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

// sra preserves the sign bit (bit 7).
func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v&0x80
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.Reg.SetFlag(types.FlagZero, result == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, false)
	return result
}

func (c *CPU) bit(v uint8, n uint8) {
	c.Reg.SetFlag(types.FlagZero, v&(1<<n) == 0)
	c.Reg.SetFlag(types.FlagSubtract, false)
	c.Reg.SetFlag(types.FlagHalfCarry, true)
}

func resBit(v, n uint8) uint8 { return v &^ (1 << n) }
func setBit(v, n uint8) uint8 { return v | (1 << n) }

// daa adjusts A after BCD arithmetic, using the standard SM83
// formulation: adjust the low nibble if H is set or the low nibble
// exceeds 9 (add path), and the high nibble if C is set or the
// original value exceeded 0x99.
func (c *CPU) daa() {
	a := c.Reg.A
	adjust := uint8(0)
	carry := c.Reg.Flag(types.FlagCarry)

	if c.Reg.Flag(types.FlagSubtract) {
		if c.Reg.Flag(types.FlagHalfCarry) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	} else {
		if c.Reg.Flag(types.FlagHalfCarry) || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	}

	c.Reg.A = a
	c.Reg.SetFlag(types.FlagZero, a == 0)
	c.Reg.SetFlag(types.FlagHalfCarry, false)
	c.Reg.SetFlag(types.FlagCarry, carry)
}
