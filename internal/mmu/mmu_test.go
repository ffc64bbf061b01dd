package mmu

import (
	"testing"

	"github.com/cormacvale/goboycore/internal/cartridge"
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	rom := make([]byte, 0x8000)
	header := &cartridge.Header{MBCType: 0x00, ROMBanks: 2}
	cart, err := cartridge.New(rom, header, "")
	require.NoError(t, err)
	return New(cart, false, nil)
}

func TestWRAMBankSwitchLeavesBank0Untouched(t *testing.T) {
	m := newTestMMU(t)

	m.Write(0xC050, 0xAA) // fixed bank 0
	m.Write(types.SVBK, 3)
	m.Write(0xD050, 0xBB) // switchable bank 3

	assert.Equal(t, uint8(0xAA), m.Read(0xC050))
	assert.Equal(t, uint8(0xBB), m.Read(0xD050))

	m.Write(types.SVBK, 1)
	assert.NotEqual(t, uint8(0xBB), m.Read(0xD050))
}

func TestEchoRAMMirrorsWorkRAM(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC100, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0xE100))
}

func TestOAMDMACopiesAllBytesSynchronouslyOnTrigger(t *testing.T) {
	m := newTestMMU(t)
	for i := uint16(0); i < 160; i++ {
		m.Write(0xC000+i, uint8(i))
	}

	m.Write(types.DMA, 0xC0)

	// The transfer must already be complete before any Step call —
	// nothing drives it incrementally.
	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, uint8(i), m.PPU.Read(0xFE00+i))
	}

	// Driving Step afterward with ordinary instruction-sized cycle
	// counts must not disturb the already-finished transfer.
	for n := 0; n < 6; n++ {
		m.Step(4)
	}
	for i := uint16(0); i < 160; i++ {
		assert.Equal(t, uint8(i), m.PPU.Read(0xFE00+i))
	}
}

func TestOAMDMARejectsSourceAboveF1(t *testing.T) {
	m := newTestMMU(t)
	assert.Panics(t, func() { m.Write(types.DMA, 0xF2) })
}

func TestSpeedSwitchTogglesOnlyWhenArmed(t *testing.T) {
	m := newTestMMU(t)
	assert.Equal(t, uint8(1), m.Speed())

	m.TriggerSpeedSwitch()
	assert.Equal(t, uint8(1), m.Speed(), "unarmed switch is a no-op")

	m.Write(types.KEY1, 0x01)
	m.TriggerSpeedSwitch()
	assert.Equal(t, uint8(2), m.Speed())
}

func TestInterruptFlagsAggregateFromPeripherals(t *testing.T) {
	m := newTestMMU(t)
	m.Write(types.TAC, 0x05) // enabled, fastest period (16 cycles)
	m.Write(types.TIMA, 0xFF)
	m.Step(16)

	// The timer overflow raised during Step must be folded into IF.
	assert.NotEqual(t, uint8(0), m.Read(types.IF)&0x04)
}
