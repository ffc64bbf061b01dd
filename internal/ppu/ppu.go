// Package ppu implements the tile/sprite scanline renderer: the
// four-mode STAT state machine, OAM scan, VRAM banking, mono and CGB
// palettes, and the framebuffer/VBlank/LCDStat interrupt outputs.
package ppu

import (
	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/cormacvale/goboycore/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsPerLine  = 456
	linesPerFrame = 154
	mode2End     = 80
	mode3End     = 252
)

// Mode is one of the four STAT modes.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

// PPU renders the 160x144 framebuffer from VRAM/OAM according to the
// LCDC/STAT/SCX/SCY/... register set, stepped in master-clock cycles.
type PPU struct {
	CGB bool

	vram     [2][0x2000]byte
	vramBank uint8
	oam      [160]byte

	lcdc, stat       uint8
	scy, scx         uint8
	ly, lyc          uint8
	wy, wx           uint8
	bgp, obp0, obp1  uint8

	bcps, ocps uint8
	bgPalette  [64]uint8 // 8 palettes x 4 colors x 2 bytes (RGB555)
	objPalette [64]uint8

	dots int
	mode Mode

	// windowLine tracks the internal window line counter, which only
	// advances on scanlines where the window is actually drawn.
	windowLine int

	FrameBuffer [ScreenHeight][ScreenWidth][3]uint8

	// bgPriority records whether the background pixel just rendered
	// at each column wins priority over a sprite, used while
	// compositing sprites onto the same scanline.
	bgPriority  [ScreenWidth]bool
	bgColorIdx  [ScreenWidth]uint8

	vblank bool
	hblank bool

	interrupt uint8
}

// New returns a PPU in its post-boot-ROM register state.
func New(cgb bool) *PPU {
	p := &PPU{CGB: cgb}
	p.lcdc = 0x91
	p.stat = 0x80
	p.bgp = 0xFC
	return p
}

// HasVBlank reports and consumes the "screen updated" flag the
// frontend polls once per frame.
func (p *PPU) HasVBlank() bool {
	v := p.vblank
	p.vblank = false
	return v
}

// HasHBlank reports and consumes the per-scanline H-Blank entry flag
// the HDMA engine polls to copy its next 16-byte chunk.
func (p *PPU) HasHBlank() bool {
	v := p.hblank
	p.hblank = false
	return v
}

// Interrupt returns the PPU's pending local interrupt bits (VBlank
// and/or LCDStat).
func (p *PPU) Interrupt() uint8 { return p.interrupt }

// ClearInterrupt clears the PPU's pending local interrupt bits.
func (p *PPU) ClearInterrupt() { p.interrupt = 0 }

// Tick advances the PPU by the given number of master-clock cycles
// (always at the fixed 4.194304 MHz rate, regardless of CPU speed).
func (p *PPU) Tick(cycles int) {
	if p.lcdc&types.Bit7 == 0 {
		return
	}

	for i := 0; i < cycles; i++ {
		p.tickDot()
	}
}

func (p *PPU) tickDot() {
	p.dots++

	switch {
	case p.ly < 144:
		switch {
		case p.dots == mode2End:
			p.setMode(ModeDraw)
		case p.dots == mode3End:
			p.renderScanline()
			p.setMode(ModeHBlank)
			p.hblank = true
		}
	}

	if p.dots >= dotsPerLine {
		p.dots = 0
		p.setLY(p.ly + 1)

		switch {
		case p.ly == 144:
			p.setMode(ModeVBlank)
			p.vblank = true
			p.interrupt |= interrupts.VBlankFlag
			p.windowLine = 0
		case p.ly == linesPerFrame:
			p.setLY(0)
			p.setMode(ModeOAM)
		case p.ly < 144:
			p.setMode(ModeOAM)
		}
	}
}

func (p *PPU) setMode(m Mode) {
	if p.mode == m {
		return
	}
	p.mode = m
	p.stat = (p.stat &^ 0x03) | uint8(m)

	switch m {
	case ModeOAM:
		if p.stat&types.Bit5 != 0 {
			p.interrupt |= interrupts.LCDFlag
		}
	case ModeVBlank:
		if p.stat&types.Bit4 != 0 {
			p.interrupt |= interrupts.LCDFlag
		}
	case ModeHBlank:
		if p.stat&types.Bit3 != 0 {
			p.interrupt |= interrupts.LCDFlag
		}
	}
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	coincidence := p.ly == p.lyc
	p.stat = types.SetBitIf(p.stat, types.Bit2, coincidence)
	if coincidence && p.stat&types.Bit6 != 0 {
		p.interrupt |= interrupts.LCDFlag
	}
}

// disableLCD implements the LCDC.7-cleared behavior: reset timing
// state, blank the framebuffer to white, and flag a screen refresh.
func (p *PPU) disableLCD() {
	p.dots = 0
	p.setLY(0)
	p.mode = ModeHBlank
	p.stat &^= 0x03
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.FrameBuffer[y][x] = [3]uint8{0xFF, 0xFF, 0xFF}
		}
	}
	p.vblank = true
}
