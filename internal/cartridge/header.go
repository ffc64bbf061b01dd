package cartridge

import (
	"github.com/cespare/xxhash"
	"github.com/cormacvale/goboycore/internal/types"
)

// nintendoLogo is the 48-byte bitmap every licensed cartridge carries
// at 0x0104-0x0133; the boot ROM refuses to run anything that doesn't
// match it byte for byte.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header is the parsed cartridge header: title, hardware features,
// and the ROM/RAM sizes the mapper needs to build its backing
// storage.
type Header struct {
	Title       string
	CGBFlag     uint8
	CGB         bool
	MBCType     uint8
	ROMBanks    int
	RAMSize     int
	HasBattery  bool
	HasRTC      bool
	HasRumble   bool
	ChecksumOK  bool
	// Identity is a 64-bit xxhash of the whole ROM image. It is only
	// recorded here: no save or RTC file name is derived from it, and
	// an empty save path disables persistence.
	Identity uint64
}

// ParseHeader validates (unless skipChecks) and parses a cartridge
// header out of rom. Validation failures and unknown MBC type bytes
// are fatal corruption per spec.md §7.1.
func ParseHeader(rom []byte, skipChecks bool) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, types.Fatalf("cartridge", "rom too small: %d bytes", len(rom))
	}

	if !skipChecks {
		for i, b := range nintendoLogo {
			if rom[0x0104+i] != b {
				return nil, types.Fatalf("cartridge", "nintendo logo mismatch at offset 0x%04X", 0x0104+i)
			}
		}

		sum := 0
		for i := 0x0134; i <= 0x014C; i++ {
			sum = sum - int(rom[i]) - 1
		}
		want := uint8(sum)
		got := rom[0x014D]
		if want != got {
			return nil, types.Fatalf("cartridge", "header checksum mismatch: want 0x%02X got 0x%02X", want, got)
		}
	}

	h := &Header{
		CGBFlag:  rom[0x0143],
		MBCType:  rom[0x0147],
		Identity: xxhash.Sum64(rom),
	}
	h.CGB = h.CGBFlag&0x80 != 0

	titleLen := 16
	if h.CGB {
		titleLen = 11
	}
	title := make([]byte, 0, titleLen)
	for i := 0; i < titleLen; i++ {
		b := rom[0x0134+i]
		if b == 0 {
			break
		}
		title = append(title, b)
	}
	h.Title = string(title)

	h.ROMBanks = 2 << rom[0x0148]
	maxROMBytes := h.ROMBanks * 0x4000
	if len(rom) > maxROMBytes {
		return nil, types.Fatalf("cartridge", "rom size 0x%X exceeds advertised maximum 0x%X", len(rom), maxROMBytes)
	}

	switch rom[0x0149] {
	case 0x00:
		h.RAMSize = 0
	case 0x01:
		h.RAMSize = 2 * 1024
	case 0x02:
		h.RAMSize = 8 * 1024
	case 0x03:
		h.RAMSize = 32 * 1024
	case 0x04:
		h.RAMSize = 128 * 1024
	case 0x05:
		h.RAMSize = 64 * 1024
	default:
		h.RAMSize = 0
	}

	switch h.MBCType {
	case 0x00, 0x08, 0x09:
	case 0x01, 0x02, 0x03:
		h.HasBattery = h.MBCType == 0x03
	case 0x05, 0x06:
		h.HasBattery = h.MBCType == 0x06
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		h.HasRTC = h.MBCType == 0x0F || h.MBCType == 0x10
		h.HasBattery = h.MBCType != 0x11 && h.MBCType != 0x12
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		h.HasBattery = h.MBCType == 0x1B || h.MBCType == 0x1E
		h.HasRumble = h.MBCType >= 0x1C
	default:
		return nil, types.Fatalf("cartridge", "unknown mbc type byte 0x%02X", h.MBCType)
	}

	h.ChecksumOK = true
	return h, nil
}
