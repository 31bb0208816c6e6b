package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot game simulations"`
	Catalog  CatalogCmd       `cmd:"" help:"Inspect the embedded card catalogue"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("splendorbots"),
		kong.Description("Splendor rules engine and bot simulation harness"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
