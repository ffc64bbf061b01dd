package cartridge

import "strings"

// mbc3 has a 7-bit ROM bank register, a RAM-bank-or-RTC-register
// select, and an onboard real-time clock latched by a 0->1 transition
// written to 0x6000-0x7FFF.
type mbc3 struct {
	rom      []byte
	ram      []byte
	savePath string
	rtcPath  string

	ramRTCEnable bool
	romBankN     uint8
	sel          uint8 // 0x00-0x03 RAM bank, or 0x08-0x0C RTC register
	lastLatch    uint8

	clock *rtc

	romBanks int
	ramBanks int
}

func newMBC3(rom, ram []byte, savePath string, header *Header) (*mbc3, error) {
	rtcPath := ""
	if header.HasRTC {
		rtcPath = rtcSidecarPath(savePath)
	}
	return &mbc3{
		rom:      rom,
		ram:      ram,
		savePath: savePath,
		rtcPath:  rtcPath,
		romBankN: 1,
		clock:    newRTC(rtcPath),
		romBanks: romBankCount(rom),
		ramBanks: ramBankCount(ram),
	}, nil
}

// rtcSidecarPath derives "<rom>.rtc" from the "<rom>.sav" save path.
func rtcSidecarPath(savePath string) string {
	if savePath == "" {
		return ""
	}
	if strings.HasSuffix(savePath, ".sav") {
		return strings.TrimSuffix(savePath, ".sav") + ".rtc"
	}
	return savePath + ".rtc"
}

func (m *mbc3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
	case addr <= 0x7FFF:
		bank := int(m.romBankN)
		if m.romBanks > 0 {
			bank %= m.romBanks
		}
		offset := bank*0x4000 + int(addr-0x4000)
		if offset < len(m.rom) {
			return m.rom[offset]
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramRTCEnable {
			return 0xFF
		}
		if m.sel >= 0x08 && m.sel <= 0x0C {
			return m.clock.registerValue(m.sel)
		}
		if int(m.sel) < m.ramBanks {
			offset := int(m.sel)*0x2000 + int(addr-0xA000)
			if offset < len(m.ram) {
				return m.ram[offset]
			}
		}
	}
	return 0xFF
}

func (m *mbc3) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		m.ramRTCEnable = value&0x0F == 0x0A
	case addr <= 0x3FFF:
		value &= 0x7F
		if value == 0 {
			value = 1
		}
		m.romBankN = value
	case addr <= 0x5FFF:
		m.sel = value
	case addr <= 0x7FFF:
		if m.lastLatch == 0x00 && value == 0x01 {
			m.clock.latch()
		}
		m.lastLatch = value
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramRTCEnable {
			return
		}
		if m.sel >= 0x08 && m.sel <= 0x0C {
			m.clock.writeRegister(m.sel, value)
			return
		}
		if int(m.sel) < m.ramBanks {
			offset := int(m.sel)*0x2000 + int(addr-0xA000)
			if offset < len(m.ram) {
				m.ram[offset] = value
			}
		}
	}
}

func (m *mbc3) Flush() error {
	if err := saveRAM(m.savePath, m.ram); err != nil {
		return err
	}
	return m.clock.save(m.rtcPath)
}
