package apu

import (
	"testing"

	"github.com/cormacvale/goboycore/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPowerOffSilencesChannelsAndClearsRegisters(t *testing.T) {
	a := New()
	a.Write(types.NR52, 0x80)
	a.Write(types.NR12, 0xF0) // channel 1 max volume, DAC on
	a.Write(types.NR14, 0x80) // trigger

	assert.True(t, a.ch1.enabled)

	a.Write(types.NR52, 0x00)
	assert.False(t, a.enabled)
	assert.Equal(t, uint8(0), a.Read(types.NR12))

	a.Write(types.NR12, 0xF0)
	assert.Equal(t, uint8(0), a.Read(types.NR12), "writes while powered off are ignored")
}

func TestLengthCounterDisablesChannelWhenExhausted(t *testing.T) {
	a := New()
	a.Write(types.NR52, 0x80)
	a.Write(types.NR12, 0xF0)
	a.Write(types.NR11, 0x3F) // length load = 63, counter = 1
	a.Write(types.NR14, 0xC0) // trigger, length enabled

	assert.True(t, a.ch1.enabled)

	a.stepFrameSequencer() // step 0: clocks length
	assert.False(t, a.ch1.enabled)
}

func TestWaveRAMReadWriteIndependentOfPower(t *testing.T) {
	a := New()
	a.Write(0xFF30, 0xAB)
	assert.Equal(t, uint8(0xAB), a.Read(0xFF30))

	a.Write(types.NR52, 0x00)
	a.Write(0xFF31, 0xCD)
	assert.Equal(t, uint8(0xCD), a.Read(0xFF31))
}

func TestMixerRespectsChannelPanning(t *testing.T) {
	a := New()
	a.Write(types.NR52, 0x80)
	a.Write(types.NR50, 0x77) // full volume both sides
	a.Write(types.NR51, 0x11) // channel 1 only, both sides... bit0=ch1 right, bit4=ch1 left
	a.Write(types.NR12, 0xF0)
	a.Write(types.NR10, 0x00)
	a.Write(types.NR11, 0x80) // 50% duty
	a.Write(types.NR14, 0x87) // trigger, frequency high bits

	a.ch1.dutyPos = 7 // duty table index with amplitude 1 for pattern 2 (50%)

	s := a.mix()
	assert.NotEqual(t, float32(0), s.Left)
	assert.NotEqual(t, float32(0), s.Right)
}
