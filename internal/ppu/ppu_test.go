package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullFrameProducesExactlyOneVBlankAndWhiteScreen(t *testing.T) {
	p := New(false)
	p.Write(0xFF40, 0x91) // LCDC
	p.Write(0xFF47, 0xE4) // BGP
	p.Write(0xFF42, 0x00) // SCY
	p.Write(0xFF43, 0x00) // SCX
	// tile map entry at 0x9800 -> tile 0, left zeroed (all color 0)

	vblanks := 0
	for i := 0; i < 70224; i++ {
		p.Tick(1)
		if p.HasVBlank() {
			vblanks++
		}
	}

	assert.Equal(t, 1, vblanks)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, p.FrameBuffer[y][x])
		}
	}
}

func TestLYCCoincidenceSetsStatAndRequestsInterrupt(t *testing.T) {
	p := New(false)
	p.Write(0xFF40, 0x91)
	p.Write(0xFF45, 0x05) // LYC = 5
	p.stat |= 0x40        // enable LYC=LY interrupt

	for p.ly != 5 {
		p.Tick(456)
	}

	assert.True(t, p.stat&0x04 != 0)
	assert.NotEqual(t, uint8(0), p.Interrupt())
}
