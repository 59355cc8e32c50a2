package main

import (
	"fmt"
	"os"

	"github.com/lox/trumpswap/cmd/trumpswap/shared"
	"github.com/lox/trumpswap/internal/tui"
)

// ClientCmd connects to a server as an interactive player
type ClientCmd struct {
	URL   string `kong:"default='ws://localhost:8080/ws',help='Server websocket URL'"`
	Name  string `kong:"required,help='Display name at the table'"`
	Debug bool   `kong:"help='Enable debug logging to file'"`
}

func (c *ClientCmd) Run() error {
	logger := shared.SetupLogger(c.Debug, "warn")
	if c.Debug {
		// keep debug output off the alternate screen
		f, err := os.CreateTemp("", "trumpswap-client-*.log")
		if err != nil {
			return err
		}
		defer f.Close()
		logger.SetOutput(f)
		fmt.Fprintf(os.Stderr, "debug log: %s\n", f.Name())
	}

	client, err := tui.Dial(c.URL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	return tui.Run(client, c.Name, logger)
}
