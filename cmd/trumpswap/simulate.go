package main

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/trumpswap/cmd/trumpswap/shared"
	"github.com/lox/trumpswap/internal/bot"
	"github.com/lox/trumpswap/internal/game"
	"github.com/lox/trumpswap/internal/randutil"
)

// SimulateCmd runs bot-only tables to exercise the rules and heuristics
type SimulateCmd struct {
	Tables int    `kong:"default='1',help='Concurrent tables to run'"`
	Hands  int    `kong:"default='100',help='Hands to play per table'"`
	Bots   int    `kong:"default='4',help='Bots per table (2-6)'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

// maxActionsPerHand bounds a hand so a rules bug cannot hang the run
const maxActionsPerHand = 10000

type tableResult struct {
	table  int
	hands  int
	stacks map[string]int
}

func (c *SimulateCmd) Run() error {
	if c.Bots < 2 || c.Bots > game.DefaultMaxSeats {
		return fmt.Errorf("bots must be between 2 and %d, got %d", game.DefaultMaxSeats, c.Bots)
	}

	logger := shared.SetupLogger(c.Debug, "info")
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Simulating", "tables", c.Tables, "hands", c.Hands, "bots", c.Bots, "seed", seed)

	results := make([]tableResult, c.Tables)
	var g errgroup.Group
	for i := 0; i < c.Tables; i++ {
		g.Go(func() error {
			res, err := c.runTable(i, seed+int64(i))
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		fmt.Printf("table %d: %d hands\n", res.table, res.hands)
		for name, stack := range res.stacks {
			fmt.Printf("  %-12s %6d chips (%+d)\n", name, stack, stack-game.DefaultStartChips)
		}
	}
	return nil
}

func (c *SimulateCmd) runTable(idx int, seed int64) (tableResult, error) {
	rng := randutil.New(seed)
	session := game.NewSession(game.DefaultConfig(), rng, nil)

	for b := 0; b < c.Bots; b++ {
		if _, err := session.AddSeat(fmt.Sprintf("Bot %d.%d", idx, b+1), true); err != nil {
			return tableResult{}, err
		}
	}

	played := 0
	for h := 0; h < c.Hands; h++ {
		if err := session.StartHand(); err != nil {
			return tableResult{}, err
		}
		if err := playOut(session, rng); err != nil {
			return tableResult{}, err
		}
		played++
	}

	res := tableResult{table: idx, hands: played, stacks: make(map[string]int)}
	for _, seat := range session.Seats() {
		res.stacks[seat.Name] = seat.Stack
	}
	return res, nil
}

// playOut drives every seat with the bot policy until the hand settles
func playOut(session *game.Session, rng *rand.Rand) error {
	for actions := 0; session.Phase() != game.PhaseWaiting; actions++ {
		if actions >= maxActionsPerHand {
			return fmt.Errorf("hand exceeded %d actions", maxActionsPerHand)
		}

		seat := session.TurnSeat()
		action := bot.Decide(session.Snapshot(seat.ID), rng)
		if err := session.Apply(seat.ID, action); err != nil {
			// the policy should only emit legal actions
			return fmt.Errorf("%s: %s rejected: %w", seat.Name, action.ActionName(), err)
		}
	}
	return nil
}
