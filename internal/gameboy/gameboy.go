// Package gameboy assembles the CPU, MMU, and every peripheral behind
// it into the single facade a frontend drives: one Step call at a
// time, polling for screen updates and input readiness in between.
package gameboy

import (
	"fmt"

	"github.com/cormacvale/goboycore/internal/cartridge"
	"github.com/cormacvale/goboycore/internal/cpu"
	"github.com/cormacvale/goboycore/internal/joypad"
	"github.com/cormacvale/goboycore/internal/mmu"
	"github.com/cormacvale/goboycore/internal/ppu"
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/cormacvale/goboycore/pkg/log"
)

// ScreenWidth and ScreenHeight mirror the PPU's framebuffer
// dimensions, exposed here so callers don't need to import the PPU
// package just to size a buffer.
const (
	ScreenWidth  = ppu.ScreenWidth
	ScreenHeight = ppu.ScreenHeight
)

// Button re-exports the joypad's 8-key enumeration on the facade
// surface a frontend actually imports.
type Button = joypad.Button

const (
	Right  = joypad.Right
	Left   = joypad.Left
	Up     = joypad.Up
	Down   = joypad.Down
	A      = joypad.A
	B      = joypad.B
	Select = joypad.Select
	Start  = joypad.Start
)

// startingRegisterValues is the fixed post-boot-ROM I/O register
// table the real boot ROM leaves behind, applied directly since this
// core never executes a boot ROM image.
var startingRegisterValues = map[types.HardwareAddress]uint8{
	types.NR10: 0x80,
	types.NR11: 0xBF,
	types.NR12: 0xF3,
	types.NR14: 0xBF,
	types.NR21: 0x3F,
	types.NR24: 0xBF,
	types.NR30: 0x7F,
	types.NR31: 0xFF,
	types.NR32: 0x9F,
	types.NR33: 0xBF,
	types.NR41: 0xFF,
	types.NR50: 0x77,
	types.NR51: 0xF3,
	types.NR52: 0xF1,
	types.LCDC: 0x91,
	types.STAT: 0x85,
	types.BGP:  0xFC,
}

// GameBoy is the top-level facade: it owns the MMU (and, through it,
// every peripheral except the cartridge) and a CPU wired to that MMU.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	log.Logger

	pacer      *pacer
	screenSeen bool

	savePath string
	title    string

	fatal *types.FatalError
}

// New constructs a GameBoy from ROM bytes. Validation (Nintendo logo
// and header checksum) runs unless WithSkipChecks is given; a
// validation failure is fatal corruption and is returned as an error
// rather than panicking, since construction is the one place the core
// still has a caller able to react to it.
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	cfg := config{logger: log.NewNull()}
	for _, opt := range opts {
		opt(&cfg)
	}

	header, err := cartridge.ParseHeader(rom, cfg.skipChecks)
	if err != nil {
		return nil, err
	}

	cgb := header.CGB
	switch cfg.model {
	case types.ModelDMG:
		cgb = false
	case types.ModelCGB:
		cgb = true
	}

	mbc, err := cartridge.New(rom, header, cfg.savePath)
	if err != nil {
		return nil, err
	}

	bus := mmu.New(mbc, cgb, cfg.logger)
	core := cpu.New(bus, cgb)

	g := &GameBoy{
		CPU:      core,
		MMU:      bus,
		Logger:   cfg.logger,
		pacer:    newPacer(),
		savePath: cfg.savePath,
		title:    header.Title,
	}

	for addr, v := range startingRegisterValues {
		bus.Write(addr, v)
	}
	bus.PPU.Write(types.LCDC, 0x91)

	return g, nil
}

// Step performs interrupt dispatch or one instruction, forwards the
// elapsed cycles (scaled for CGB double speed) to every peripheral,
// and paces real time against them. It returns the number of
// master-clock cycles elapsed.
//
// A hardware contract violation (an unmapped opcode, an out-of-range
// OAM DMA source, corrupted cartridge state) panics with a
// *types.FatalError from deep inside the CPU or MMU; Step recovers it
// here, at the facade boundary, rather than letting it crash the
// process. Once recovered, Err reports it and every further Step call
// is a no-op.
func (g *GameBoy) Step() (cycles int) {
	if g.fatal != nil {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*types.FatalError); ok {
				g.fatal = fe
			} else {
				g.fatal = types.Fatalf("gameboy", "%v", r)
			}
			cycles = 0
		}
	}()

	cycles = g.CPU.Step()

	scaled := cycles
	if g.MMU.Speed() == 2 {
		scaled = cycles / 2
	}
	g.MMU.Step(cycles)

	if g.MMU.PPU.HasVBlank() {
		g.screenSeen = true
	}

	g.pacer.add(scaled)
	return cycles
}

// Err returns the fatal hardware error recovered by Step, or nil if
// none has occurred yet.
func (g *GameBoy) Err() error {
	if g.fatal == nil {
		return nil
	}
	return g.fatal
}

// HasScreenUpdated reports and consumes whether a VBlank has occurred
// since the last call, i.e. whether a new frame is ready in
// GetScreenData.
func (g *GameBoy) HasScreenUpdated() bool {
	v := g.screenSeen
	g.screenSeen = false
	return v
}

// GetScreenData returns the current framebuffer: 144 rows of 160
// 24-bit RGB pixels.
func (g *GameBoy) GetScreenData() [ScreenHeight][ScreenWidth][3]uint8 {
	return g.MMU.PPU.FrameBuffer
}

// GetScreenDimensions returns (width, height) in pixels.
func (g *GameBoy) GetScreenDimensions() (int, int) {
	return ScreenWidth, ScreenHeight
}

// CanTakeInput reports and consumes whether the pacer just completed
// a real-time frame, the point at which a frontend is expected to
// poll its input devices.
func (g *GameBoy) CanTakeInput() bool {
	return g.pacer.takeReady()
}

// HandleKeyDown presses button, raising the Joypad interrupt.
func (g *GameBoy) HandleKeyDown(button Button) {
	g.MMU.Joypad.KeyDown(button)
}

// HandleKeyUp releases button.
func (g *GameBoy) HandleKeyUp(button Button) {
	g.MMU.Joypad.KeyUp(button)
}

// GetROMTitle returns the cartridge's title field, already truncated
// to 11 (CGB) or 16 (DMG) ASCII characters by header parsing.
func (g *GameBoy) GetROMTitle() string {
	return g.title
}

// Save flushes battery-backed RAM (and, for MBC3, the RTC anchor) to
// the configured save path. It is a no-op if no save path was given.
func (g *GameBoy) Save() error {
	return g.MMU.Cart.Flush()
}

// Shutdown flushes cartridge state exactly like Save; it is the call
// a frontend makes once, when dropping the facade for good.
func (g *GameBoy) Shutdown() error {
	if err := g.Save(); err != nil {
		return fmt.Errorf("gameboy: shutdown flush failed: %w", err)
	}
	return nil
}
