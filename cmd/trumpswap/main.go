package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Server   ServerCmd        `cmd:"" help:"Run the game server"`
	Client   ClientCmd        `cmd:"" help:"Connect as an interactive player"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only hands for balance testing"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("trumpswap"),
		kong.Description("Multiplayer trick-taking card game with community-card betting and paid swaps"),
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
