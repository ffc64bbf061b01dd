package gameboy

import (
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/cormacvale/goboycore/pkg/log"
)

// Option configures a GameBoy at construction time, following the
// teacher's functional-options layering for optional knobs that most
// callers never touch.
type Option func(*config)

type config struct {
	savePath   string
	skipChecks bool
	model      types.Model
	logger     log.Logger
}

// WithSavePath sets the path battery-backed RAM (and, for MBC3, the
// RTC anchor) is loaded from and flushed to. An empty path (the
// default) disables persistence entirely.
func WithSavePath(path string) Option {
	return func(c *config) { c.savePath = path }
}

// WithSkipChecks disables Nintendo-logo and header-checksum
// validation, for ROMs the caller already trusts (e.g. test fixtures
// that don't carry a real header).
func WithSkipChecks() Option {
	return func(c *config) { c.skipChecks = true }
}

// WithModel forces DMG or CGB behavior instead of deferring to the
// cartridge header's CGB flag.
func WithModel(m types.Model) Option {
	return func(c *config) { c.model = m }
}

// WithLogger overrides the facade's default null logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}
