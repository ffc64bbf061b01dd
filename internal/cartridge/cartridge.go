// Package cartridge parses the cartridge header and implements the
// memory bank controller (MBC) family that maps the cartridge's
// 0x0000-0x7FFF and 0xA000-0xBFFF address windows onto banked ROM/RAM.
package cartridge

import (
	"fmt"
	"os"

	"github.com/cormacvale/goboycore/internal/types"
)

// MBC is the capability every memory bank controller exposes to the
// MMU: a memory-mapped read/write surface plus the ability to flush
// battery-backed RAM (and, for MBC3, its RTC anchor) to disk. It is
// safe to hold across goroutines only in the sense that the core
// never touches it outside the single cooperative execution thread.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// Flush persists RAM (and RTC state, where applicable) to the
	// save path given at construction. A save path of "" makes this
	// a no-op, per spec.md §6.
	Flush() error
}

// New builds the MBC matching the header's type byte, backed by rom
// and loading any existing save file at savePath.
func New(rom []byte, header *Header, savePath string) (MBC, error) {
	ram := make([]byte, header.RAMSize)
	if savePath != "" && header.RAMSize > 0 {
		if data, err := os.ReadFile(savePath); err == nil {
			copy(ram, data)
		}
		// A read failure (including "file does not exist") is
		// silently treated as "no save": ram stays zero-filled.
	}

	switch header.MBCType {
	case 0x00, 0x08, 0x09:
		return newROMOnly(rom, ram, savePath), nil
	case 0x01, 0x02, 0x03:
		return newMBC1(rom, ram, savePath, header), nil
	case 0x05, 0x06:
		return newMBC2(rom, ram, savePath), nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return newMBC3(rom, ram, savePath, header)
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return newMBC5(rom, ram, savePath), nil
	}
	return nil, types.Fatalf("cartridge", "unknown mbc type byte 0x%02X", header.MBCType)
}

// saveRAM writes ram to path. An empty path disables persistence.
// Write failures propagate per spec.md §7.3.
func saveRAM(path string, ram []byte) error {
	if path == "" || len(ram) == 0 {
		return nil
	}
	if err := os.WriteFile(path, ram, 0o644); err != nil {
		return fmt.Errorf("cartridge: failed to write save file %q: %w", path, err)
	}
	return nil
}

// romBankCount returns the number of 16 KiB banks backing rom.
func romBankCount(rom []byte) int {
	return len(rom) / 0x4000
}

// ramBankCount returns the number of 8 KiB banks backing ram.
func ramBankCount(ram []byte) int {
	if len(ram) == 0 {
		return 0
	}
	n := len(ram) / 0x2000
	if n == 0 {
		return 1
	}
	return n
}
