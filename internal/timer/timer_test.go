package timer

import (
	"testing"

	"github.com/cormacvale/goboycore/internal/interrupts"
	"github.com/stretchr/testify/assert"
)

func TestOverflowReloadsFromTMAAndRaisesInterrupt(t *testing.T) {
	tm := New()
	tm.Write(0xFF07, 0x05) // TAC: enabled, period 16 (written first: a period change reloads TIMA)
	tm.Write(0xFF06, 0xFD) // TMA
	tm.Write(0xFF05, 0xFE) // TIMA

	tm.Tick(32)

	assert.Equal(t, uint8(0xFD), tm.Read(0xFF05))
	assert.Equal(t, interrupts.TimerFlag, tm.Interrupt())
}

func TestWritingDIVAlwaysResetsToZero(t *testing.T) {
	tm := New()
	tm.Tick(1000)
	assert.NotEqual(t, uint8(0), tm.Read(0xFF04))

	tm.Write(0xFF04, 0x42)
	assert.Equal(t, uint8(0), tm.Read(0xFF04))
}

func TestIncrementCountMatchesCyclesOverPeriod(t *testing.T) {
	tm := New()
	tm.Write(0xFF07, 0x06) // enabled, period 64
	tm.Tick(64 * 10)
	assert.Equal(t, uint8(10), tm.Read(0xFF05))
}

func TestChangingPeriodResetsCounterAndReloadsFromTMA(t *testing.T) {
	tm := New()
	tm.Write(0xFF06, 0x10)
	tm.Write(0xFF05, 0x99)
	tm.Write(0xFF07, 0x04) // enabled, period 1024
	tm.Tick(500)

	tm.Write(0xFF07, 0x05) // period changes to 16
	assert.Equal(t, uint8(0x10), tm.Read(0xFF05))
}
