package ppu

import (
	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/cormacvale/goboycore/internal/types"
)

// Read answers a bus read in the VRAM, OAM, or PPU I/O register
// range. Unusable memory (0xFEA0-0xFEFF) is handled by the MMU, not
// here.
func (p *PPU) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		return p.vram[p.vramBank][addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		return p.oam[addr-0xFE00]
	}

	switch addr {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		return p.stat | 0x80
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	case types.VBK:
		return p.vramBank | 0xFE
	case types.BCPS:
		return p.bcps
	case types.BCPD:
		return p.bgPalette[p.bcps&0x3F]
	case types.OCPS:
		return p.ocps
	case types.OCPD:
		return p.objPalette[p.ocps&0x3F]
	}
	return 0xFF
}

// Write answers a bus write in the VRAM, OAM, or PPU I/O register
// range.
func (p *PPU) Write(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		p.vram[p.vramBank][addr-0x8000] = value
		return
	case addr >= 0xFE00 && addr <= 0xFE9F:
		p.oam[addr-0xFE00] = value
		return
	}

	switch addr {
	case types.LCDC:
		wasEnabled := p.lcdc&types.Bit7 != 0
		p.lcdc = value
		if wasEnabled && value&types.Bit7 == 0 {
			p.disableLCD()
		}
	case types.STAT:
		p.stat = (p.stat & 0x07) | (value &^ 0x07)
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		p.setLY(0)
	case types.LYC:
		p.lyc = value
		if p.ly == p.lyc && p.stat&types.Bit6 != 0 {
			p.interrupt |= interrupts.LCDFlag
		}
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	case types.VBK:
		p.vramBank = value & 0x01
	case types.BCPS:
		p.bcps = value & 0xBF
	case types.BCPD:
		p.bgPalette[p.bcps&0x3F] = value
		if p.bcps&types.Bit7 != 0 {
			p.bcps = (p.bcps & 0xC0) | ((p.bcps + 1) & 0x3F)
		}
	case types.OCPS:
		p.ocps = value & 0xBF
	case types.OCPD:
		p.objPalette[p.ocps&0x3F] = value
		if p.ocps&types.Bit7 != 0 {
			p.ocps = (p.ocps & 0xC0) | ((p.ocps + 1) & 0x3F)
		}
	}
}

// WriteVRAM is used by the HDMA engine to write directly into the
// currently selected VRAM bank, bypassing the general bus decode.
func (p *PPU) WriteVRAM(addr uint16, value uint8) {
	if addr >= 0x8000 && addr <= 0x9FFF {
		p.vram[p.vramBank][addr-0x8000] = value
	}
}

// LCDEnabled reports whether LCDC.7 is set.
func (p *PPU) LCDEnabled() bool { return p.lcdc&types.Bit7 != 0 }

// Mode reports the current STAT mode (H-Blank, V-Blank, OAM scan or
// drawing). The core does not itself restrict VRAM/OAM access by
// mode; the accessor is kept for callers that want to check it.
func (p *PPU) Mode() Mode { return p.mode }
