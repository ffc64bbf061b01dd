// Package cpu implements fetch-decode-execute for the SM83 CPU core:
// 256 base opcodes plus 256 CB-prefixed opcodes, interrupt dispatch,
// and the HALT/STOP power states.
package cpu

import (
	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/cormacvale/goboycore/internal/types"
)

// Bus is the memory-mapped surface the CPU drives. It is satisfied by
// the MMU; the CPU never knows about any device beyond this interface
// and the IF/IE addresses it shares with every interrupt source.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// TriggerSpeedSwitch applies a pending CGB double-speed switch,
	// called by the CPU when it executes STOP.
	TriggerSpeedSwitch()
}

// CPU is the SM83 fetch-decode-execute engine. A single call to Step
// returns the number of master-clock cycles the dispatched interrupt
// or executed instruction consumed.
type CPU struct {
	Reg Registers

	ime     bool
	halted  bool
	stopped bool

	bus Bus
}

// New returns a CPU wired to bus, reset to the post-boot-ROM state.
func New(bus Bus, cgb bool) *CPU {
	c := &CPU{bus: bus}
	c.Reg.Reset(cgb)
	return c
}

// Halted reports whether the CPU is currently halted.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether the CPU is currently stopped.
func (c *CPU) Stopped() bool { return c.stopped }

// Step runs interrupt dispatch (if due) or a single instruction and
// returns the elapsed master-clock cycles.
func (c *CPU) Step() int {
	if cycles, handled := c.dispatchInterrupt(); handled {
		return cycles
	}

	if c.halted {
		return 4
	}

	if c.stopped {
		return 4
	}

	opcode := c.fetch8()
	return c.execute(opcode)
}

// dispatchInterrupt runs before a fetch whenever halted or ime is
// set. It returns the cycles consumed and whether a handler was
// called. A pending interrupt that only wakes the CPU from HALT (IME
// clear) returns (0, false), so Step goes on to execute the next
// instruction in the same call.
func (c *CPU) dispatchInterrupt() (int, bool) {
	if !c.halted && !c.ime {
		return 0, false
	}

	ifReg := c.bus.Read(types.IF)
	ieReg := c.bus.Read(types.IE)
	pending := ifReg & ieReg & 0x1F
	if pending == 0 {
		return 0, false
	}

	c.halted = false
	c.stopped = false

	if !c.ime {
		return 0, false
	}

	var bit uint8
	for bit = 0; bit < 5; bit++ {
		if pending&(1<<bit) != 0 {
			break
		}
	}

	c.ime = false
	c.bus.Write(types.IF, ifReg&^(1<<bit))
	c.push16(c.Reg.PC)
	c.Reg.PC = interrupts.Vector(bit)

	return 16, true // interrupt dispatch costs 4 machine cycles
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.Reg.PC)
	c.Reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.bus.Write(addr, uint8(v))
	c.bus.Write(addr+1, uint8(v>>8))
}

func (c *CPU) push16(v uint16) {
	c.Reg.SP -= 2
	c.write16(c.Reg.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.read16(c.Reg.SP)
	c.Reg.SP += 2
	return v
}
