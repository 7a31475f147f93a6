package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/deckodds/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`
	Profile string           `help:"Path to an HCL analysis profile" default:"deckodds.hcl" type:"path"`

	Sample   SampleCmd   `cmd:"" help:"Report one concrete shuffle, step by step"`
	Simulate SimulateCmd `cmd:"" help:"Monte Carlo averages over many shuffles"`
	Odds     OddsCmd     `cmd:"" help:"Closed-form draw odds for a target card"`
	Traits   TraitsCmd   `cmd:"" help:"Trait coverage and draw chances"`
	Slots    SlotsCmd    `cmd:"" help:"Equipment slot coverage and draw chances"`
}

// runContext carries the shared logger and profile into subcommands.
type runContext struct {
	Logger  *log.Logger
	Profile *config.Profile
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("deckodds"),
		kong.Description("Draw probability and simulation toolkit for trading-card decks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := setupLogger(cli.Debug)

	profile, err := config.Load(cli.Profile)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&runContext{Logger: logger, Profile: profile})
	ctx.FatalIfErrorf(err)
}

// setupLogger configures the shared logger; debug raises the level.
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}
