package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var version = "dev"

// CLI represents the pokerhand command-line interface
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`
	Config  string           `short:"c" default:"pokerhand.hcl" help:"Path to the HCL configuration file"`
	Debug   bool             `help:"Enable debug logging"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play hands at the console against bots"`
	Simulate SimulateCmd `cmd:"" help:"Run bot-only sessions and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerhand"),
		kong.Description("No-limit hold'em betting engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the stderr logger, the level comes from config unless --debug is set
func newLogger(level string, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
}
