package gameboy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blankROM returns a minimal 32 KiB ROM-only cartridge image: header
// fields filled in, body left at zero so execution from 0x100 is an
// infinite stream of NOPs.
func blankROM(title string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], title)
	rom[0x147] = 0x00 // ROM ONLY
	rom[0x148] = 0x00 // 2 banks (32 KiB)
	rom[0x149] = 0x00 // no RAM
	return rom
}

func newTestGameBoy(t *testing.T) *GameBoy {
	t.Helper()
	g, err := New(blankROM("TESTROM"), WithSkipChecks())
	require.NoError(t, err)
	return g
}

func TestNewRejectsCorruptHeaderUnlessSkipped(t *testing.T) {
	rom := blankROM("BAD")
	_, err := New(rom)
	assert.Error(t, err, "zeroed Nintendo logo should fail validation")

	_, err = New(rom, WithSkipChecks())
	assert.NoError(t, err)
}

func TestStepAdvancesAtLeastOneMachineCycle(t *testing.T) {
	g := newTestGameBoy(t)
	cycles := g.Step()
	assert.GreaterOrEqual(t, cycles, 4)
}

func TestScreenUpdatesExactlyOncePerFrame(t *testing.T) {
	g := newTestGameBoy(t)
	updates := 0
	total := 0
	for total < 70224 {
		total += g.Step()
		if g.HasScreenUpdated() {
			updates++
		}
	}
	assert.Equal(t, 1, updates)
}

func TestKeyDownAndUpRoundTripThroughJoypad(t *testing.T) {
	g := newTestGameBoy(t)
	g.MMU.Write(0xFF00, 0x20) // select direction group (P14 low)

	g.HandleKeyDown(Right)
	assert.Equal(t, uint8(0), g.MMU.Read(0xFF00)&0x01, "Right pressed clears bit 0")

	g.HandleKeyUp(Right)
	assert.NotEqual(t, uint8(0), g.MMU.Read(0xFF00)&0x01)
}

func TestGetROMTitleReadsHeaderField(t *testing.T) {
	g, err := New(blankROM("ZELDA"), WithSkipChecks())
	require.NoError(t, err)
	assert.Equal(t, "ZELDA", g.GetROMTitle())
}

func TestSaveIsNoOpWithoutSavePath(t *testing.T) {
	g := newTestGameBoy(t)
	assert.NoError(t, g.Save())
	assert.NoError(t, g.Shutdown())
}

func TestGetScreenDimensionsMatchesHardware(t *testing.T) {
	g := newTestGameBoy(t)
	w, h := g.GetScreenDimensions()
	assert.Equal(t, 160, w)
	assert.Equal(t, 144, h)
}
