// Command goboycore is a thin headless runner around the emulation
// core: it loads a ROM (and an optional save file), steps the
// emulator for a fixed number of frames, and flushes cartridge state
// on exit. It owns no window and no audio device — both are core
// Non-goals — and exists only to give the library a runnable
// argument-parsing shell.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cormacvale/goboycore/internal/gameboy"
	"github.com/cormacvale/goboycore/internal/types"
	"github.com/cormacvale/goboycore/pkg/log"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "goboycore"
	app.Usage = "goboycore [options] <ROM file>"
	app.Description = "Headless runner for the Game Boy / Game Boy Color emulation core"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to a battery-RAM save file (created if missing)",
		},
		cli.StringFlag{
			Name:  "model",
			Usage: "Force the emulated model: auto, dmg, or cgb",
			Value: "auto",
		},
		cli.BoolFlag{
			Name:  "skip-checks",
			Usage: "Skip Nintendo logo and header checksum validation",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run before shutting down",
			Value: 60,
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "Suppress core log output",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("goboycore: no ROM path provided")
	}
	romPath := c.Args().Get(0)

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("goboycore: %w", err)
	}

	logger := log.New()
	if c.Bool("quiet") {
		logger = log.NewNull()
	}

	opts := []gameboy.Option{gameboy.WithLogger(logger)}
	if c.Bool("skip-checks") {
		opts = append(opts, gameboy.WithSkipChecks())
	}
	if savePath := c.String("save"); savePath != "" {
		opts = append(opts, gameboy.WithSavePath(savePath))
	}
	if model := modelFromString(c.String("model")); model != types.ModelAutomatic {
		opts = append(opts, gameboy.WithModel(model))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return fmt.Errorf("goboycore: %w", err)
	}

	logger.Infof("loaded %q", gb.GetROMTitle())

	frames := c.Int("frames")
	for f := 0; f < frames; {
		gb.Step()
		if err := gb.Err(); err != nil {
			return err
		}
		if gb.HasScreenUpdated() {
			f++
		}
	}

	if err := gb.Shutdown(); err != nil {
		return fmt.Errorf("goboycore: %w", err)
	}
	return nil
}

func modelFromString(s string) types.Model {
	switch strings.ToLower(s) {
	case "dmg":
		return types.ModelDMG
	case "cgb":
		return types.ModelCGB
	default:
		return types.ModelAutomatic
	}
}
