package cpu

import "github.com/cormacvale/goboycore/internal/types"

// getR8 reads one of the eight 8-bit operands addressable by the
// standard 3-bit register index: B,C,D,E,H,L,(HL),A.
func (c *CPU) getR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.bus.Read(c.Reg.HL())
	default:
		return c.Reg.A
	}
}

func (c *CPU) setR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.bus.Write(c.Reg.HL(), v)
	default:
		c.Reg.A = v
	}
}

// getRP16 reads one of BC/DE/HL/SP, indexed 0-3.
func (c *CPU) getRP16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.Reg.SP
	}
}

func (c *CPU) setRP16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.Reg.SP = v
	}
}

// getRP2 reads one of BC/DE/HL/AF, used by PUSH/POP, indexed 0-3.
func (c *CPU) getRP2(idx uint8) uint16 {
	if idx == 3 {
		return c.Reg.AF()
	}
	return c.getRP16(idx)
}

func (c *CPU) setRP2(idx uint8, v uint16) {
	if idx == 3 {
		c.Reg.SetAF(v)
		return
	}
	c.setRP16(idx, v)
}

// condition evaluates one of NZ/Z/NC/C, indexed 0-3.
func (c *CPU) condition(idx uint8) bool {
	switch idx {
	case 0:
		return !c.Reg.Flag(types.FlagZero)
	case 1:
		return c.Reg.Flag(types.FlagZero)
	case 2:
		return !c.Reg.Flag(types.FlagCarry)
	default:
		return c.Reg.Flag(types.FlagCarry)
	}
}

// execute dispatches opcode and returns the elapsed master-clock
// cycles, accounting for the extra cycles a taken conditional branch
// costs over its untaken form.
func (c *CPU) execute(opcode uint8) int {
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 1:
		if z == 6 && y == 6 {
			c.halted = !c.haltSkipsBug()
			return 4
		}
		c.setR8(y, c.getR8(z))
		if z == 6 || y == 6 {
			return 8
		}
		return 4
	case 2:
		return c.aluOp(y, c.getR8(z), z == 6)
	case 3:
		return c.executeX3(opcode, y, z)
	default:
		return c.executeX0(opcode, y, z)
	}
}

// haltSkipsBug reports whether HALT should be skipped instead of
// actually halting: the documented approximation for the case where
// interrupts are pending with IME clear. The HALT bug itself (PC
// failing to advance) is not modeled, per spec.md's Open Questions.
func (c *CPU) haltSkipsBug() bool {
	if c.ime {
		return false
	}
	pending := c.bus.Read(types.IF) & c.bus.Read(types.IE) & 0x1F
	return pending != 0
}

// aluOp applies one of ADD/ADC/SUB/SBC/AND/XOR/OR/CP (selected by y)
// to A and operand, returning the cycle cost (8 if operand came from
// (HL) or an immediate, 4 otherwise).
func (c *CPU) aluOp(y uint8, operand uint8, fromMemory bool) int {
	switch y {
	case 0:
		c.Reg.A = c.add8(c.Reg.A, operand, false)
	case 1:
		c.Reg.A = c.add8(c.Reg.A, operand, true)
	case 2:
		c.Reg.A = c.sub8(c.Reg.A, operand, false)
	case 3:
		c.Reg.A = c.sub8(c.Reg.A, operand, true)
	case 4:
		c.Reg.A = c.and8(c.Reg.A, operand)
	case 5:
		c.Reg.A = c.xor8(c.Reg.A, operand)
	case 6:
		c.Reg.A = c.or8(c.Reg.A, operand)
	case 7:
		c.cp8(c.Reg.A, operand)
	}
	if fromMemory {
		return 8
	}
	return 4
}

// executeX0 handles opcodes 0x00-0x3F: control-flow, 16-bit
// loads/arithmetic, INC/DEC r8, LD r,n, and the misc accumulator ops.
func (c *CPU) executeX0(opcode uint8, y, z uint8) int {
	switch z {
	case 0:
		switch y {
		case 0: // NOP
			return 4
		case 1: // LD (nn),SP
			addr := c.fetch16()
			c.write16(addr, c.Reg.SP)
			return 20
		case 2: // STOP
			c.fetch8() // STOP is followed by an ignored operand byte
			c.stopped = true
			c.bus.TriggerSpeedSwitch()
			return 4
		case 3: // JR d
			offset := int8(c.fetch8())
			c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
			return 12
		default: // JR cc,d (y = 4..7 -> cc = y-4)
			offset := int8(c.fetch8())
			if c.condition(y - 4) {
				c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
				return 12
			}
			return 8
		}
	case 1:
		if y&1 == 0 { // LD rp,nn
			c.setRP16(y>>1, c.fetch16())
			return 12
		}
		// ADD HL,rp
		c.addHL(c.getRP16(y >> 1))
		return 8
	case 2:
		addr := uint16(0)
		switch y >> 1 {
		case 0:
			addr = c.Reg.BC()
		case 1:
			addr = c.Reg.DE()
		case 2:
			addr = c.Reg.HL()
			c.Reg.SetHL(addr + 1)
		case 3:
			addr = c.Reg.HL()
			c.Reg.SetHL(addr - 1)
		}
		if y&1 == 0 {
			c.bus.Write(addr, c.Reg.A)
		} else {
			c.Reg.A = c.bus.Read(addr)
		}
		return 8
	case 3:
		if y&1 == 0 {
			c.setRP16(y>>1, c.getRP16(y>>1)+1)
		} else {
			c.setRP16(y>>1, c.getRP16(y>>1)-1)
		}
		return 8
	case 4:
		c.setR8(y, c.inc8(c.getR8(y)))
		if y == 6 {
			return 12
		}
		return 4
	case 5:
		c.setR8(y, c.dec8(c.getR8(y)))
		if y == 6 {
			return 12
		}
		return 4
	case 6:
		c.setR8(y, c.fetch8())
		if y == 6 {
			return 12
		}
		return 8
	default: // z == 7: misc accumulator/flag ops
		switch y {
		case 0:
			c.rlcA()
		case 1:
			c.rrcA()
		case 2:
			c.rlA()
		case 3:
			c.rrA()
		case 4:
			c.daa()
		case 5: // CPL
			c.Reg.A = ^c.Reg.A
			c.Reg.SetFlag(types.FlagSubtract, true)
			c.Reg.SetFlag(types.FlagHalfCarry, true)
		case 6: // SCF
			c.Reg.SetFlag(types.FlagSubtract, false)
			c.Reg.SetFlag(types.FlagHalfCarry, false)
			c.Reg.SetFlag(types.FlagCarry, true)
		case 7: // CCF
			c.Reg.SetFlag(types.FlagSubtract, false)
			c.Reg.SetFlag(types.FlagHalfCarry, false)
			c.Reg.SetFlag(types.FlagCarry, !c.Reg.Flag(types.FlagCarry))
		}
		return 4
	}
}

// executeX3 handles opcodes 0xC0-0xFF: returns, pops, jumps, calls,
// pushes, RST, the GB-specific LDH/LD (C)/stack-pointer forms, and
// EI/DI.
func (c *CPU) executeX3(opcode uint8, y, z uint8) int {
	switch z {
	case 0:
		if y < 4 { // RET cc
			if c.condition(y) {
				c.Reg.PC = c.pop16()
				return 20
			}
			return 8
		}
		switch y {
		case 4: // LDH (n),A
			addr := 0xFF00 + uint16(c.fetch8())
			c.bus.Write(addr, c.Reg.A)
			return 12
		case 5: // ADD SP,r8
			offset := int8(c.fetch8())
			c.Reg.SP = c.addSPSigned(offset)
			return 16
		case 6: // LDH A,(n)
			addr := 0xFF00 + uint16(c.fetch8())
			c.Reg.A = c.bus.Read(addr)
			return 12
		default: // LD HL,SP+r8
			offset := int8(c.fetch8())
			c.Reg.SetHL(c.addSPSigned(offset))
			return 12
		}
	case 1:
		if y&1 == 0 { // POP rp2
			c.setRP2(y>>1, c.pop16())
			return 12
		}
		switch y >> 1 {
		case 0: // RET
			c.Reg.PC = c.pop16()
			return 16
		case 1: // RETI
			c.Reg.PC = c.pop16()
			c.ime = true
			return 16
		case 2: // JP HL
			c.Reg.PC = c.Reg.HL()
			return 4
		default: // LD SP,HL
			c.Reg.SP = c.Reg.HL()
			return 8
		}
	case 2:
		if y < 4 { // JP cc,nn
			addr := c.fetch16()
			if c.condition(y) {
				c.Reg.PC = addr
				return 16
			}
			return 12
		}
		switch y {
		case 4: // LD (C),A
			c.bus.Write(0xFF00+uint16(c.Reg.C), c.Reg.A)
			return 8
		case 5: // LD (nn),A
			addr := c.fetch16()
			c.bus.Write(addr, c.Reg.A)
			return 16
		case 6: // LD A,(C)
			c.Reg.A = c.bus.Read(0xFF00 + uint16(c.Reg.C))
			return 8
		default: // LD A,(nn)
			addr := c.fetch16()
			c.Reg.A = c.bus.Read(addr)
			return 16
		}
	case 3:
		switch y {
		case 0: // JP nn
			c.Reg.PC = c.fetch16()
			return 16
		case 1: // CB prefix
			return c.executeCB()
		case 6: // DI
			c.ime = false
			return 4
		case 7: // EI
			c.ime = true
			return 4
		default:
			return c.illegal(opcode)
		}
	case 4:
		if y < 4 { // CALL cc,nn
			addr := c.fetch16()
			if c.condition(y) {
				c.push16(c.Reg.PC)
				c.Reg.PC = addr
				return 24
			}
			return 12
		}
		return c.illegal(opcode)
	case 5:
		if y&1 == 0 { // PUSH rp2
			c.push16(c.getRP2(y >> 1))
			return 16
		}
		if y == 1 { // CALL nn
			addr := c.fetch16()
			c.push16(c.Reg.PC)
			c.Reg.PC = addr
			return 24
		}
		return c.illegal(opcode)
	case 6:
		return c.aluOp(y, c.fetch8(), true)
	default: // RST y*8
		c.push16(c.Reg.PC)
		c.Reg.PC = uint16(y) * 8
		return 16
	}
}

// illegal marks execution of one of the eleven unmapped SM83 opcodes,
// treated as fatal corruption per spec.md §4.2.
func (c *CPU) illegal(opcode uint8) int {
	panic(types.Fatalf("cpu", "unmapped opcode 0x%02X at PC 0x%04X", opcode, c.Reg.PC-1))
}
