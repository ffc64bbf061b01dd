package mmu

import "github.com/cormacvale/goboycore/internal/types"

// Step advances every peripheral by the instruction's cycle cost,
// forwarding post-step cycles first to the timer, then to the PPU and
// APU, and finally folding each device's pending interrupt bits into
// IF. OAM DMA is not stepped here: it completes synchronously inside
// startOAMDMA on the triggering write.
func (m *MMU) Step(cycles int) {
	m.Timer.Tick(cycles)
	m.if |= m.Timer.Interrupt()
	m.Timer.ClearInterrupt()

	ppuCycles := cycles
	if m.speed == 2 {
		ppuCycles = cycles / 2
	}
	m.PPU.Tick(ppuCycles)
	m.if |= m.PPU.Interrupt()
	m.PPU.ClearInterrupt()

	if m.PPU.HasHBlank() {
		m.HDMA.SetHBlank()
	}
	if m.HDMA.IsCopying() {
		m.HDMA.Tick()
	}

	m.APU.Tick(ppuCycles)

	m.if |= m.Joypad.Interrupt()
	m.Joypad.ClearInterrupt()
}

// startOAMDMA performs the entire 160-byte OAM DMA transfer
// synchronously on the triggering write to 0xFF46, matching the
// documented atomicity of the real transfer: nothing in this core
// models sub-instruction bus contention, so there is no intermediate
// state for another Step call to observe. A source page above 0xF1
// reads from the echo/I-O/unusable region and is a hard hardware
// contract violation.
func (m *MMU) startOAMDMA(page uint8) {
	if page > 0xF1 {
		panic(types.Fatalf("mmu", "OAM DMA source page 0x%02X exceeds 0xF1", page))
	}
	source := uint16(page) << 8
	for i := uint16(0); i < 160; i++ {
		m.PPU.Write(0xFE00+i, m.Read(source+i))
	}
}

func (m *MMU) readKEY1() uint8 {
	b := m.key1 & 0x01
	if m.speed == 2 {
		b |= 0x80
	}
	return b | 0x7E
}

func (m *MMU) writeKEY1(value uint8) {
	m.key1 = value & 0x01
}

// TriggerSpeedSwitch applies a pending CGB double-speed switch,
// toggling between normal and double clock speed and clearing the
// arm bit. It is a no-op if KEY1 bit 0 was never set.
func (m *MMU) TriggerSpeedSwitch() {
	if m.key1&0x01 == 0 {
		return
	}
	if m.speed == 1 {
		m.speed = 2
	} else {
		m.speed = 1
	}
	m.key1 = 0
}

// Speed reports the current CPU clock multiplier (1 or 2).
func (m *MMU) Speed() uint8 { return uint8(m.speed) }
