package server

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/trumpswap/internal/bot"
	"github.com/lox/trumpswap/internal/game"
)

// Service owns one game session. Every mutation runs on the single Run
// goroutine via the command channel, so no two actions are ever evaluated
// against the same state; the engine itself carries no locks.
type Service struct {
	logger   *log.Logger
	clock    quartz.Clock
	rng      *rand.Rand
	botDelay time.Duration

	session *game.Session
	subs    map[string]func(game.Snapshot)
	botSeq  int

	// botPending dedupes turn timers; only touched on the run goroutine
	botPending bool

	cmds chan func()
	done chan struct{}
}

// NewService creates a service for a fresh session. The rng drives both
// shuffling and bot decisions; clock injects time for tests.
func NewService(cfg game.Config, botDelay time.Duration, rng *rand.Rand, clock quartz.Clock, logger *log.Logger) *Service {
	s := &Service{
		logger:   logger.WithPrefix("service"),
		clock:    clock,
		rng:      rng,
		botDelay: botDelay,
		subs:     make(map[string]func(game.Snapshot)),
		cmds:     make(chan func(), 64),
		done:     make(chan struct{}),
	}
	s.session = game.NewSession(cfg, rng, s.onEvent)
	return s
}

// Run processes commands until ctx is cancelled
func (s *Service) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.cmds:
			cmd()
		case <-ctx.Done():
			return
		}
	}
}

// do runs f on the service goroutine and waits for it to finish
func (s *Service) do(f func()) {
	ran := make(chan struct{})
	select {
	case s.cmds <- func() { f(); close(ran) }:
		select {
		case <-ran:
		case <-s.done:
		}
	case <-s.done:
	}
}

// Join seats a human and subscribes their snapshot sender
func (s *Service) Join(name string, send func(game.Snapshot)) (string, error) {
	var seatID string
	var err error
	s.do(func() {
		var seat *game.Seat
		seat, err = s.session.AddSeat(name, false)
		if err != nil {
			return
		}
		seatID = seat.ID
		if send != nil {
			s.subs[seatID] = send
		}
		s.logger.Info("Player joined", "seat", seatID, "name", name)
		s.afterMutation()
	})
	return seatID, err
}

// AddBot seats a bot, naming it automatically when name is empty
func (s *Service) AddBot(name string) (string, error) {
	var seatID string
	var err error
	s.do(func() {
		if name == "" {
			s.botSeq++
			name = fmt.Sprintf("Bot %d", s.botSeq)
		}
		var seat *game.Seat
		seat, err = s.session.AddSeat(name, true)
		if err != nil {
			return
		}
		seatID = seat.ID
		s.logger.Info("Bot added", "seat", seatID, "name", name)
		s.afterMutation()
	})
	return seatID, err
}

// Leave removes a seat from the table
func (s *Service) Leave(seatID string) error {
	var err error
	s.do(func() {
		delete(s.subs, seatID)
		err = s.session.RemoveSeat(seatID)
		if err != nil {
			return
		}
		s.logger.Info("Player left", "seat", seatID)
		s.afterMutation()
	})
	return err
}

// Disconnected records a dropped connection for a seat
func (s *Service) Disconnected(seatID string) {
	s.do(func() {
		delete(s.subs, seatID)
		if err := s.session.SeatDisconnected(seatID); err != nil {
			return
		}
		s.logger.Info("Player disconnected", "seat", seatID)
		s.afterMutation()
	})
}

// StartHand deals a new hand
func (s *Service) StartHand() error {
	var err error
	s.do(func() {
		err = s.session.StartHand()
		if err != nil {
			return
		}
		s.afterMutation()
	})
	return err
}

// Act applies a seat's action through the engine's validation
func (s *Service) Act(seatID string, action game.Action) error {
	var err error
	s.do(func() {
		err = s.session.Apply(seatID, action)
		if err != nil {
			return
		}
		s.afterMutation()
	})
	return err
}

// Reset returns the table to its initial state
func (s *Service) Reset() {
	s.do(func() {
		s.session.Reset()
		s.afterMutation()
	})
}

// Snapshot returns the viewer-scoped state for a seat
func (s *Service) Snapshot(seatID string) game.Snapshot {
	var snap game.Snapshot
	s.do(func() {
		snap = s.session.Snapshot(seatID)
	})
	return snap
}

// afterMutation pushes fresh snapshots and lines up the next bot turn.
// Runs on the service goroutine.
func (s *Service) afterMutation() {
	for seatID, send := range s.subs {
		send(s.session.Snapshot(seatID))
	}
	s.scheduleBot()
}

func (s *Service) scheduleBot() {
	seat := s.session.TurnSeat()
	if seat == nil || !seat.Bot || s.botPending {
		return
	}
	s.botPending = true
	seatID := seat.ID

	// the delay is for watchability, not correctness; the turn is
	// re-validated when the timer fires
	s.clock.AfterFunc(s.botDelay, func() {
		select {
		case s.cmds <- func() { s.botAct(seatID) }:
		case <-s.done:
		}
	})
}

func (s *Service) botAct(seatID string) {
	s.botPending = false
	seat := s.session.TurnSeat()
	if seat == nil || seat.ID != seatID {
		return
	}

	snap := s.session.Snapshot(seatID)
	action := bot.Decide(snap, s.rng)
	if err := s.session.Apply(seatID, action); err != nil {
		s.logger.Error("Bot action rejected", "seat", seatID, "action", action.ActionName(), "error", err)
		if err := s.session.Apply(seatID, game.Fold{}); err != nil {
			s.logger.Error("Bot fallback fold rejected", "seat", seatID, "error", err)
			return
		}
	}
	s.afterMutation()
}

// onEvent logs the engine's structured events. Winners and payouts come
// from the event values themselves, never from parsing log text.
func (s *Service) onEvent(e game.Event) {
	switch ev := e.(type) {
	case game.HandStarted:
		s.logger.Info("Hand started", "hand", ev.Number, "dealer", ev.DealerID)
	case game.ActionApplied:
		s.logger.Debug("Action applied", "seat", ev.SeatID, "action", ev.Action, "amount", ev.Amount)
	case game.CommunityRevealed:
		s.logger.Debug("Community revealed", "phase", ev.Phase, "cards", len(ev.Cards))
	case game.CardSwapped:
		s.logger.Info("Card swapped", "seat", ev.SeatID, "cost", ev.Cost)
	case game.TrickWon:
		s.logger.Info("Trick won", "seat", ev.SeatID, "trick", ev.Number)
	case game.HandSettled:
		s.logger.Info("Hand settled", "reason", ev.Reason, "payouts", ev.Payouts)
	case game.HandAborted:
		s.logger.Warn("Hand aborted", "reason", ev.Reason)
	}
}
