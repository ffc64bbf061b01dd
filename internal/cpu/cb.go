package cpu

// executeCB fetches and runs a CB-prefixed opcode: rotate/shift/swap
// (0x00-0x3F), BIT (0x40-0x7F), RES (0x80-0xBF), SET (0xC0-0xFF),
// each operating on one of the eight standard 8-bit operands.
func (c *CPU) executeCB() int {
	opcode := c.fetch8()
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	fromMemory := z == 6
	cycles := 8
	if fromMemory {
		cycles = 16
	}

	switch x {
	case 0:
		v := c.getR8(z)
		switch y {
		case 0:
			v = c.rlc(v)
		case 1:
			v = c.rrc(v)
		case 2:
			v = c.rl(v)
		case 3:
			v = c.rr(v)
		case 4:
			v = c.sla(v)
		case 5:
			v = c.sra(v)
		case 6:
			v = c.swap(v)
		case 7:
			v = c.srl(v)
		}
		c.setR8(z, v)
		return cycles
	case 1: // BIT y,r
		c.bit(c.getR8(z), y)
		if fromMemory {
			return 12
		}
		return 8
	case 2: // RES y,r
		c.setR8(z, resBit(c.getR8(z), y))
		return cycles
	default: // SET y,r
		c.setR8(z, setBit(c.getR8(z), y))
		return cycles
	}
}
