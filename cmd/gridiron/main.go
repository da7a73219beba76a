package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run a batch of seeded game simulations"`
	Serve    ServeCmd         `cmd:"" help:"Play one game and stream it over websockets"`
	Validate ValidateCmd      `cmd:"" help:"Check recorded score transitions for rule violations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gridiron"),
		kong.Description("Deterministic football play-result engine and simulator"),
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
