// Package apu implements the Game Boy's audio processing unit: four
// sound channels driven by a shared 512 Hz frame sequencer, mixed
// down to stereo float samples and handed off to a ring buffer for a
// host audio device to consume.
package apu

import (
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/cormacvale/goboycore/pkg/audio"
)

const masterClockHz = 4194304

// SampleRate is the fixed output rate the mixer resamples to.
const SampleRate = 44100

const frameSequencerPeriod = masterClockHz / 512

// APU owns the four sound channels, the master enable/mix registers
// (NR50-NR52), and the sample-rate conversion that feeds the output
// ring.
type APU struct {
	enabled bool

	ch1 *squareChannel
	ch2 *squareChannel
	ch3 *waveChannel
	ch4 *noiseChannel

	vinLeft, vinRight       bool
	volumeLeft, volumeRight uint8
	leftEnable, rightEnable [4]bool

	frameSeqCounter int32
	frameSeqStep    uint8

	sampleCounter int32

	Out *audio.Ring
}

// New returns an APU with its output ring sized for one second of
// audio at SampleRate.
func New() *APU {
	return &APU{
		ch1: newSquareChannel(true),
		ch2: newSquareChannel(false),
		ch3: newWaveChannel(),
		ch4: newNoiseChannel(),
		Out: audio.NewRing(SampleRate),
	}
}

// firstHalfOfLengthPeriod reports whether the next frame-sequencer
// step to run is an odd one (1,3,5,7), which do not additionally
// clock the length counters. The length-enable "extra clock" glitch
// on trigger depends on this.
func (a *APU) firstHalfOfLengthPeriod() bool {
	return a.frameSeqStep%2 == 1
}

// Tick advances the APU by cycles master clock cycles: the frame
// sequencer, the four channels' frequency timers, and the output
// sample-rate converter.
func (a *APU) Tick(cycles int) {
	if !a.enabled {
		return
	}

	for i := 0; i < cycles; i++ {
		a.ch1.step(1)
		a.ch2.step(1)
		a.ch3.step(1)
		a.ch4.step(1)

		a.frameSeqCounter++
		if a.frameSeqCounter >= frameSequencerPeriod {
			a.frameSeqCounter -= frameSequencerPeriod
			a.stepFrameSequencer()
		}

		a.sampleCounter += SampleRate
		if a.sampleCounter >= masterClockHz {
			a.sampleCounter -= masterClockHz
			a.Out.Push(a.mix())
		}
	}
}

func (a *APU) stepFrameSequencer() {
	switch a.frameSeqStep {
	case 0, 4:
		a.ch1.lengthClock()
		a.ch2.lengthClock()
		a.ch3.lengthClock()
		a.ch4.lengthClock()
	case 2, 6:
		a.ch1.lengthClock()
		a.ch2.lengthClock()
		a.ch3.lengthClock()
		a.ch4.lengthClock()
		a.ch1.sweepClock()
	case 7:
		a.ch1.env.clock()
		a.ch2.env.clock()
		a.ch4.env.clock()
	}
	a.frameSeqStep = (a.frameSeqStep + 1) & 0x07
}

func (a *APU) mix() audio.Sample {
	amps := [4]float32{a.ch1.amplitude(), a.ch2.amplitude(), a.ch3.amplitude(), a.ch4.amplitude()}

	var left, right float32
	for i, amp := range amps {
		if a.leftEnable[i] {
			left += amp
		}
		if a.rightEnable[i] {
			right += amp
		}
	}
	left = left / 4 * (float32(a.volumeLeft) + 1) / 8
	right = right / 4 * (float32(a.volumeRight) + 1) / 8
	return audio.Sample{Left: left, Right: right}
}

// Read answers a bus read in the sound I/O register range.
func (a *APU) Read(addr uint16) uint8 {
	switch addr {
	case types.NR10:
		return a.ch1.readNRx0()
	case types.NR11:
		return a.ch1.readNRx1()
	case types.NR12:
		return a.ch1.env.read()
	case types.NR13:
		return 0xFF
	case types.NR14:
		return a.ch1.readNRx4()
	case types.NR21:
		return a.ch2.readNRx1()
	case types.NR22:
		return a.ch2.env.read()
	case types.NR23:
		return 0xFF
	case types.NR24:
		return a.ch2.readNRx4()
	case types.NR30:
		return a.ch3.readNR30()
	case types.NR31:
		return 0xFF
	case types.NR32:
		return a.ch3.readNR32()
	case types.NR33:
		return 0xFF
	case types.NR34:
		return a.ch3.readNR34()
	case types.NR41:
		return 0xFF
	case types.NR42:
		return a.ch4.env.read()
	case types.NR43:
		return a.ch4.readNR43()
	case types.NR44:
		return a.ch4.readNR44()
	case types.NR50:
		return a.readNR50()
	case types.NR51:
		return a.readNR51()
	case types.NR52:
		return a.readNR52()
	}
	if addr >= types.WaveRAMStart && addr <= types.WaveRAMEnd {
		return a.ch3.readRAM(addr)
	}
	return 0xFF
}

// Write answers a bus write in the sound I/O register range.
func (a *APU) Write(addr uint16, v uint8) {
	if addr >= types.WaveRAMStart && addr <= types.WaveRAMEnd {
		a.ch3.writeRAM(addr, v)
		return
	}

	if addr == types.NR52 {
		a.writeNR52(v)
		return
	}
	if !a.enabled {
		return
	}

	firstHalf := a.firstHalfOfLengthPeriod()
	switch addr {
	case types.NR10:
		a.ch1.writeNRx0(v)
	case types.NR11:
		a.ch1.writeNRx1(v)
	case types.NR12:
		a.ch1.writeNRx2(v)
	case types.NR13:
		a.ch1.writeNRx3(v)
	case types.NR14:
		a.ch1.writeNRx4(v, firstHalf)
	case types.NR21:
		a.ch2.writeNRx1(v)
	case types.NR22:
		a.ch2.writeNRx2(v)
	case types.NR23:
		a.ch2.writeNRx3(v)
	case types.NR24:
		a.ch2.writeNRx4(v, firstHalf)
	case types.NR30:
		a.ch3.writeNR30(v)
	case types.NR31:
		a.ch3.writeNR31(v)
	case types.NR32:
		a.ch3.writeNR32(v)
	case types.NR33:
		a.ch3.writeNR33(v)
	case types.NR34:
		a.ch3.writeNR34(v, firstHalf)
	case types.NR41:
		a.ch4.writeNR41(v)
	case types.NR42:
		a.ch4.writeNR42(v)
	case types.NR43:
		a.ch4.writeNR43(v)
	case types.NR44:
		a.ch4.writeNR44(v, firstHalf)
	case types.NR50:
		a.writeNR50(v)
	case types.NR51:
		a.writeNR51(v)
	}
}

func (a *APU) writeNR50(v uint8) {
	a.volumeRight = v & 0x07
	a.volumeLeft = (v >> 4) & 0x07
	a.vinRight = v&types.Bit3 != 0
	a.vinLeft = v&types.Bit7 != 0
}

func (a *APU) readNR50() uint8 {
	b := a.volumeRight | a.volumeLeft<<4
	if a.vinRight {
		b |= types.Bit3
	}
	if a.vinLeft {
		b |= types.Bit7
	}
	return b
}

func (a *APU) writeNR51(v uint8) {
	for i := 0; i < 4; i++ {
		a.rightEnable[i] = v&(1<<uint(i)) != 0
		a.leftEnable[i] = v&(1<<uint(i+4)) != 0
	}
}

func (a *APU) readNR51() uint8 {
	b := uint8(0)
	for i := 0; i < 4; i++ {
		if a.rightEnable[i] {
			b |= 1 << uint(i)
		}
		if a.leftEnable[i] {
			b |= 1 << uint(i+4)
		}
	}
	return b
}

// writeNR52 handles the master power switch. Powering off zeroes
// every other sound register and silences all channels; powering on
// resets the frame sequencer's phase.
func (a *APU) writeNR52(v uint8) {
	wantEnabled := v&types.Bit7 != 0
	if a.enabled && !wantEnabled {
		*a = APU{Out: a.Out}
		a.ch1 = newSquareChannel(true)
		a.ch2 = newSquareChannel(false)
		a.ch3 = newWaveChannel()
		a.ch4 = newNoiseChannel()
	} else if !a.enabled && wantEnabled {
		a.enabled = true
		a.frameSeqStep = 0
	}
}

func (a *APU) readNR52() uint8 {
	b := uint8(0)
	if a.enabled {
		b |= types.Bit7
	}
	if a.ch1.enabled {
		b |= types.Bit0
	}
	if a.ch2.enabled {
		b |= types.Bit1
	}
	if a.ch3.enabled {
		b |= types.Bit2
	}
	if a.ch4.enabled {
		b |= types.Bit3
	}
	return b | 0x70
}
