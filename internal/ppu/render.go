package ppu

import "github.com/cormacvale/goboycore/internal/types"

type tileAttr struct {
	priority  bool
	yFlip     bool
	xFlip     bool
	bank      uint8
	cgbPalette uint8
}

func decodeAttr(b uint8) tileAttr {
	return tileAttr{
		priority:   b&types.Bit7 != 0,
		yFlip:      b&types.Bit6 != 0,
		xFlip:      b&types.Bit5 != 0,
		bank:       (b >> 3) & 0x01,
		cgbPalette: b & 0x07,
	}
}

// renderScanline composites the background/window and sprite layers
// into row LY of the framebuffer. It fires once, at the mode 3 -> 0
// transition.
func (p *PPU) renderScanline() {
	if int(p.ly) >= ScreenHeight {
		return
	}

	p.renderBackgroundWindow()
	p.renderSprites()
}

func (p *PPU) renderBackgroundWindow() {
	windowEnabled := p.lcdc&types.Bit5 != 0 && p.wy <= p.ly
	bgWindowOn := p.CGB || p.lcdc&types.Bit0 != 0

	windowDrawnThisLine := false
	wxSigned := int(p.wx) - 7

	for x := 0; x < ScreenWidth; x++ {
		useWindow := windowEnabled && x >= wxSigned

		var pictureX, pictureY uint8
		var mapSelectBit uint8
		if useWindow {
			pictureY = uint8(p.windowLine)
			pictureX = uint8(x - wxSigned)
			mapSelectBit = types.Bit6
			windowDrawnThisLine = true
		} else {
			pictureY = p.scy + p.ly
			pictureX = p.scx + uint8(x)
			mapSelectBit = types.Bit3
		}

		mapBase := uint16(0x9800)
		if p.lcdc&mapSelectBit != 0 {
			mapBase = 0x9C00
		}

		tileMapOffset := uint16(pictureY>>3)*32 + uint16(pictureX>>3)
		tileIndex := p.vram[0][mapBase-0x8000+tileMapOffset]

		attr := tileAttr{}
		if p.CGB {
			attr = decodeAttr(p.vram[1][mapBase-0x8000+tileMapOffset])
		}

		var tileDataAddr uint16
		if p.lcdc&types.Bit4 != 0 {
			tileDataAddr = 0x8000 + uint16(tileIndex)*16
		} else {
			tileDataAddr = uint16(int32(0x9000) + int32(int8(tileIndex))*16)
		}

		row := pictureY % 8
		if attr.yFlip {
			row = 7 - row
		}
		rowAddr := tileDataAddr + uint16(row)*2

		bank := attr.bank
		lo := p.vram[bank][rowAddr-0x8000]
		hi := p.vram[bank][rowAddr-0x8000+1]

		bit := 7 - (pictureX % 8)
		if attr.xFlip {
			bit = pictureX % 8
		}
		colorIndex := (hi>>bit&1)<<1 | (lo >> bit & 1)

		p.bgColorIdx[x] = colorIndex
		p.bgPriority[x] = attr.priority

		if !bgWindowOn {
			p.FrameBuffer[p.ly][x] = [3]uint8{0xFF, 0xFF, 0xFF}
			continue
		}

		if p.CGB {
			p.FrameBuffer[p.ly][x] = cgbColor(&p.bgPalette, attr.cgbPalette, colorIndex)
		} else {
			p.FrameBuffer[p.ly][x] = dmgColor(p.bgp, colorIndex)
		}
	}

	if windowDrawnThisLine {
		p.windowLine++
	}
}

type oamEntry struct {
	y, x, tile, attr uint8
	index            int
}

func (p *PPU) renderSprites() {
	if p.lcdc&types.Bit1 == 0 {
		return
	}

	height := 8
	if p.lcdc&types.Bit2 != 0 {
		height = 16
	}

	var visible []oamEntry
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := i * 4
		y := p.oam[base]
		spriteTop := int(y) - 16
		if int(p.ly) < spriteTop || int(p.ly) >= spriteTop+height {
			continue
		}
		visible = append(visible, oamEntry{
			y:     y,
			x:     p.oam[base+1],
			tile:  p.oam[base+2],
			attr:  p.oam[base+3],
			index: i,
		})
	}

	spritesWin := p.CGB && p.lcdc&types.Bit0 == 0

	for col := 0; col < ScreenWidth; col++ {
		pixelWritten := false
		for _, s := range visible {
			spriteX := int(s.x) - 8
			if col < spriteX || col >= spriteX+8 {
				continue
			}
			if pixelWritten {
				continue
			}

			attr := decodeAttr(s.attr)
			spriteTop := int(s.y) - 16
			row := p.ly - uint8(spriteTop)
			if attr.yFlip {
				row = uint8(height-1) - row
			}

			tile := s.tile
			if height == 16 {
				tile &^= 0x01
			}
			tileAddr := uint16(0x8000) + uint16(tile)*16 + uint16(row)*2

			bank := attr.bank
			lo := p.vram[bank][tileAddr-0x8000]
			hi := p.vram[bank][tileAddr-0x8000+1]

			bitPos := uint8(col - spriteX)
			bit := 7 - bitPos
			if attr.xFlip {
				bit = bitPos
			}
			colorIndex := (hi>>bit&1)<<1 | (lo >> bit & 1)
			if colorIndex == 0 {
				continue
			}

			if !spritesWin {
				bgHides := (p.bgPriority[col] || attr.priority) && p.bgColorIdx[col] != 0
				if bgHides {
					pixelWritten = true
					continue
				}
			}

			if p.CGB {
				p.FrameBuffer[p.ly][col] = cgbColor(&p.objPalette, attr.cgbPalette, colorIndex)
			} else {
				paletteReg := p.obp0
				if s.attr&types.Bit4 != 0 {
					paletteReg = p.obp1
				}
				p.FrameBuffer[p.ly][col] = dmgColor(paletteReg, colorIndex)
			}
			pixelWritten = true
		}
	}
}
