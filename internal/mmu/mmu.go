// Package mmu provides the memory management unit that owns the
// Game Boy's full 64 KiB address space, routing each read or write to
// the cartridge, work RAM, high RAM, or one of the attached
// peripherals, and aggregating their interrupt requests into IF each
// step.
package mmu

import (
	"github.com/cormacvale/goboycore/internal/apu"
	"github.com/cormacvale/goboycore/internal/cartridge"
	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/cormacvale/goboycore/internal/joypad"
	"github.com/cormacvale/goboycore/internal/ppu"
	"github.com/cormacvale/goboycore/internal/serial"
	"github.com/cormacvale/goboycore/internal/timer"
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/cormacvale/goboycore/pkg/log"
)

// IOBus is the minimal surface every peripheral the MMU talks to
// exposes.
type IOBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// MMU is the Game Boy's address-space router. It owns work RAM and
// high RAM directly and delegates everything else to the peripherals
// it was constructed with.
type MMU struct {
	Cart cartridge.MBC

	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Timer
	Joypad *joypad.Joypad
	Serial *serial.Serial
	HDMA   *HDMA

	wram     [8][0x1000]uint8
	wramBank uint8
	hram     [0x80]uint8

	ie uint8
	if uint8

	isGBC bool
	key0  uint8
	key1  uint8
	speed types.Speed

	Log log.Logger
}

// New wires a fresh MMU around the given cartridge and peripherals.
// cgb is passed to the PPU (CGB attributes and color palettes) and
// recorded; KEY1, SVBK and HDMA1-5 are decoded in either mode.
func New(cart cartridge.MBC, cgb bool, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNull()
	}
	m := &MMU{
		Cart:     cart,
		PPU:      ppu.New(cgb),
		APU:      apu.New(),
		Timer:    timer.New(),
		Joypad:   joypad.New(),
		Serial:   serial.New(),
		isGBC:    cgb,
		wramBank: 1,
		speed:    types.SpeedNormal,
		Log:      logger,
	}
	m.HDMA = NewHDMA(m)
	return m
}

// Read returns the byte at addr, decoding the full 64 KiB address
// space.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr <= types.CartROMEnd:
		return m.Cart.Read(addr)
	case addr >= types.VRAMStart && addr <= types.VRAMEnd:
		return m.PPU.Read(addr)
	case addr >= types.CartRAMStart && addr <= types.CartRAMEnd:
		return m.Cart.Read(addr)
	case addr >= types.WRAMStart && addr <= types.WRAMBank0End:
		return m.wram[0][addr-types.WRAMStart]
	case addr >= types.WRAMBank0End+1 && addr <= types.WRAMEnd:
		return m.wram[m.wramBank][addr-(types.WRAMBank0End+1)]
	case addr >= types.EchoStart && addr <= types.EchoEnd:
		return m.Read(addr - 0x2000)
	case addr >= types.OAMStart && addr <= types.OAMEnd:
		return m.PPU.Read(addr)
	case addr >= types.UnusableStart && addr <= types.UnusableEnd:
		return 0xFF
	case addr >= types.HRAMStart && addr <= types.HRAMEnd:
		return m.hram[addr-types.HRAMStart]
	case addr == types.IE:
		return m.ie
	}
	return m.readIO(addr)
}

// Write stores value at addr, decoding the full 64 KiB address space.
func (m *MMU) Write(addr uint16, value uint8) {
	switch {
	case addr <= types.CartROMEnd:
		m.Cart.Write(addr, value)
	case addr >= types.VRAMStart && addr <= types.VRAMEnd:
		m.PPU.Write(addr, value)
	case addr >= types.CartRAMStart && addr <= types.CartRAMEnd:
		m.Cart.Write(addr, value)
	case addr >= types.WRAMStart && addr <= types.WRAMBank0End:
		m.wram[0][addr-types.WRAMStart] = value
	case addr >= types.WRAMBank0End+1 && addr <= types.WRAMEnd:
		m.wram[m.wramBank][addr-(types.WRAMBank0End+1)] = value
	case addr >= types.EchoStart && addr <= types.EchoEnd:
		m.Write(addr-0x2000, value)
	case addr >= types.OAMStart && addr <= types.OAMEnd:
		m.PPU.Write(addr, value)
	case addr >= types.UnusableStart && addr <= types.UnusableEnd:
		// writes silently ignored
	case addr >= types.HRAMStart && addr <= types.HRAMEnd:
		m.hram[addr-types.HRAMStart] = value
	case addr == types.IE:
		m.ie = value
	default:
		m.writeIO(addr, value)
	}
}

func (m *MMU) readIO(addr uint16) uint8 {
	switch {
	case addr == types.P1:
		return m.Joypad.Read()
	case addr == types.SB || addr == types.SC:
		return m.Serial.Read(addr)
	case addr == types.DIV || addr == types.TIMA || addr == types.TMA || addr == types.TAC:
		return m.Timer.Read(addr)
	case addr == types.IF:
		return m.if_() | 0xE0
	case addr >= types.NR10 && addr <= types.WaveRAMEnd:
		return m.APU.Read(addr)
	case addr >= types.LCDC && addr <= types.WX:
		return m.PPU.Read(addr)
	case addr == types.KEY1:
		return m.readKEY1()
	case addr == types.VBK:
		return m.PPU.Read(addr)
	case addr >= types.HDMA1 && addr <= types.HDMA5:
		return m.HDMA.Read(addr)
	case addr == types.BCPS || addr == types.BCPD || addr == types.OCPS || addr == types.OCPD:
		return m.PPU.Read(addr)
	case addr == types.SVBK:
		return m.wramBank | 0xF8
	}
	return 0xFF
}

func (m *MMU) writeIO(addr uint16, value uint8) {
	switch {
	case addr == types.P1:
		m.Joypad.Write(value)
	case addr == types.SB || addr == types.SC:
		m.Serial.Write(addr, value)
	case addr == types.DIV || addr == types.TIMA || addr == types.TMA || addr == types.TAC:
		m.Timer.Write(addr, value)
	case addr == types.IF:
		m.ifSet(value)
	case addr >= types.NR10 && addr <= types.WaveRAMEnd:
		m.APU.Write(addr, value)
	case addr == types.DMA:
		m.startOAMDMA(value)
	case addr >= types.LCDC && addr <= types.WX:
		m.PPU.Write(addr, value)
	case addr == types.KEY1:
		m.writeKEY1(value)
	case addr == types.VBK:
		m.PPU.Write(addr, value)
	case addr >= types.HDMA1 && addr <= types.HDMA5:
		m.HDMA.Write(addr, value)
	case addr == types.BCPS || addr == types.BCPD || addr == types.OCPS || addr == types.OCPD:
		m.PPU.Write(addr, value)
	case addr == types.SVBK:
		v := value & 0x07
		if v == 0 {
			v = 1
		}
		m.wramBank = v
	case addr == types.BDIS:
		// boot ROM overlay is not modeled; writes are accepted and ignored
	}
}

func (m *MMU) if_() uint8 { return m.if }

func (m *MMU) ifSet(v uint8) { m.if = v & 0x1F }

// RequestInterrupt ORs flag into IF directly; peripherals go through
// Step's aggregation instead.
func (m *MMU) RequestInterrupt(flag interrupts.Flag) {
	m.if |= flag
}
