package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/trumpswap/cmd/trumpswap/shared"
	"github.com/lox/trumpswap/internal/randutil"
	"github.com/lox/trumpswap/internal/server"
)

// ServerCmd runs the websocket game server
type ServerCmd struct {
	Config     string `kong:"default='trumpswap.hcl',help='Path to HCL config file'"`
	Addr       string `kong:"help='Listen address, overrides config'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	StartChips int    `kong:"help='Starting chip count, overrides config'"`
	BotDelayMs int    `kong:"help='Bot think delay in milliseconds, overrides config'"`
	Bots       int    `kong:"help='Seat this many bots on startup'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.StartChips > 0 {
		cfg.Table.StartChips = c.StartChips
	}
	if c.BotDelayMs > 0 {
		cfg.Table.BotDelayMs = c.BotDelayMs
	}
	addr := cfg.ListenAddr()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := shared.SetupLogger(c.Debug, cfg.Server.LogLevel)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Seeding RNG", "seed", seed)
	rng := randutil.New(seed)

	botDelay := time.Duration(cfg.Table.BotDelayMs) * time.Millisecond
	svc := server.NewService(cfg.GameConfig(), botDelay, rng, quartz.NewReal(), logger)

	ctx := shared.SetupSignalHandler(logger)
	go svc.Run(ctx)

	for _, botCfg := range cfg.Bots {
		for i := 0; i < botCfg.Count; i++ {
			name := botCfg.Name
			if botCfg.Count > 1 {
				name = ""
			}
			if _, err := svc.AddBot(name); err != nil {
				return err
			}
		}
	}
	for i := 0; i < c.Bots; i++ {
		if _, err := svc.AddBot(""); err != nil {
			return err
		}
	}

	srv := server.NewServer(addr, svc, logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		return srv.Stop()
	}
}
