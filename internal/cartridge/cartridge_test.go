package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHeaderedROM(size int, mbcType, romSizeCode, ramSizeCode byte) []byte {
	rom := make([]byte, size)
	copy(rom[0x0104:0x0134], nintendoLogo[:])
	rom[0x0147] = mbcType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	sum := 0
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - int(rom[i]) - 1
	}
	rom[0x014D] = byte(sum)
	return rom
}

func TestMBC1BankSwitch(t *testing.T) {
	rom := buildHeaderedROM(0x200000, 0x01, 0x06, 0x00) // 128 banks, no RAM
	header, err := ParseHeader(rom, false)
	require.NoError(t, err)

	mbc, err := New(rom, header, "")
	require.NoError(t, err)

	mbc.Write(0x0000, 0x0A) // RAM enable
	mbc.Write(0x2000, 0x05) // lower 5 bits
	mbc.Write(0x4000, 0x01) // upper bits
	mbc.Write(0x6000, 0x00) // ROM mode

	assert.Equal(t, rom[0x25*0x4000], mbc.Read(0x4000))
	assert.Equal(t, rom[0x0000], mbc.Read(0x0000))
}

func TestROMAddressSpaceWritesNeverMutateROM(t *testing.T) {
	rom := buildHeaderedROM(0x8000, 0x00, 0x00, 0x00)
	header, err := ParseHeader(rom, false)
	require.NoError(t, err)

	before := append([]byte(nil), rom...)
	mbc, err := New(rom, header, "")
	require.NoError(t, err)

	mbc.Write(0x2000, 0xFF)
	assert.Equal(t, before, rom)
}

func TestHeaderChecksumMismatchIsFatal(t *testing.T) {
	rom := buildHeaderedROM(0x8000, 0x00, 0x00, 0x00)
	rom[0x014D] ^= 0xFF
	_, err := ParseHeader(rom, false)
	assert.Error(t, err)
}

func TestMBC3LatchTwiceWithoutTimePassingIsStable(t *testing.T) {
	rom := buildHeaderedROM(0x8000, 0x0F, 0x00, 0x00)
	header, err := ParseHeader(rom, false)
	require.NoError(t, err)

	mbc, err := New(rom, header, "")
	require.NoError(t, err)

	mbc.Write(0x0000, 0x0A)
	mbc.Write(0x6000, 0x00)
	mbc.Write(0x6000, 0x01)
	mbc.Write(0x4000, 0x08) // select seconds register
	first := mbc.Read(0xA000)

	mbc.Write(0x6000, 0x00)
	mbc.Write(0x6000, 0x01)
	second := mbc.Read(0xA000)

	assert.Equal(t, first, second)
}
