package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/trumpswap/internal/deck"
)

const (
	// HandSize is the number of cards dealt to each seat. Swaps exchange
	// 1-for-1, so a hand plays exactly HandSize tricks.
	HandSize = 7

	// DefaultMaxSeats bounds the deal: 6 seats x 7 cards + 3 burns +
	// 7 community reveals consumes all 52 cards.
	DefaultMaxSeats = 6

	// DefaultStartChips is each seat's stack on joining
	DefaultStartChips = 1000

	logLimit = 40
)

// Config holds the table parameters a Session is created with
type Config struct {
	MaxSeats   int
	StartChips int
}

// DefaultConfig returns the standard table parameters
func DefaultConfig() Config {
	return Config{MaxSeats: DefaultMaxSeats, StartChips: DefaultStartChips}
}

// Session is the authoritative state of one table. It is deliberately
// unsynchronized: callers must serialize all mutating calls behind a single
// goroutine or lock, so no two actions ever see the same state snapshot.
type Session struct {
	cfg     Config
	rng     *rand.Rand
	sink    EventSink
	newDeck func() *deck.Deck

	seats      []*Seat
	nextSeatID int

	phase      Phase
	handNum    int
	dealer     int
	turn       int
	deck       *deck.Deck
	community  []deck.Card
	pot        int
	currentBet int
	trick      trickState

	log []string
}

type trickState struct {
	Number   int
	LeadSuit *deck.Suit
	Plays    []Play
}

// Play is one card played into the current trick
type Play struct {
	SeatID string    `json:"seatId"`
	Card   deck.Card `json:"card"`
}

// Option customizes a Session at construction time
type Option func(*Session)

// WithDeckFactory overrides how hands draw their deck. Tests use it with
// deck.NewStacked to force exact deals.
func WithDeckFactory(f func() *deck.Deck) Option {
	return func(s *Session) { s.newDeck = f }
}

// NewSession creates an empty table. The rng drives shuffling only; bot
// randomness lives with the bot policy. sink may be nil.
func NewSession(cfg Config, rng *rand.Rand, sink EventSink, opts ...Option) *Session {
	if cfg.MaxSeats <= 0 || cfg.MaxSeats > DefaultMaxSeats {
		cfg.MaxSeats = DefaultMaxSeats
	}
	if cfg.StartChips <= 0 {
		cfg.StartChips = DefaultStartChips
	}
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		sink:  sink,
		phase: PhaseWaiting,
	}
	s.newDeck = func() *deck.Deck { return deck.New(s.rng) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase
func (s *Session) Phase() Phase { return s.phase }

// Pot returns the current pot
func (s *Session) Pot() int { return s.pot }

// CurrentBet returns the highest standing round bet
func (s *Session) CurrentBet() int { return s.currentBet }

// HandNumber returns the count of hands started this session
func (s *Session) HandNumber() int { return s.handNum }

// Community returns the revealed community cards. Callers must not mutate
// the returned slice.
func (s *Session) Community() []deck.Card { return s.community }

// TrumpSuit returns the active trump suit, nil before the flop
func (s *Session) TrumpSuit() *deck.Suit { return ResolveTrump(s.community) }

// Seats returns the table roster in seat order
func (s *Session) Seats() []*Seat { return s.seats }

// TurnSeat returns the seat whose turn it is, or nil outside a hand
func (s *Session) TurnSeat() *Seat {
	if s.phase == PhaseWaiting || len(s.seats) == 0 {
		return nil
	}
	return s.seats[s.turn]
}

// StartHand deals a new hand. It requires phase Waiting and at least two
// connected seats; every connected seat is dealt in.
func (s *Session) StartHand() error {
	if s.phase != PhaseWaiting {
		return ErrHandInProgress
	}
	connected := 0
	for _, seat := range s.seats {
		if seat.Connected {
			connected++
		}
	}
	if connected < 2 {
		return ErrNotEnoughPlayers
	}

	s.handNum++
	s.dealer = (s.dealer + 1) % len(s.seats)
	s.deck = s.newDeck()
	s.community = nil
	s.pot = 0
	s.currentBet = 0
	s.trick = trickState{}

	for _, seat := range s.seats {
		seat.resetForHand(seat.Connected)
		if seat.InHand {
			seat.Hand = s.deck.DealN(HandSize)
		}
	}

	s.phase = PhasePreflopBet
	s.turn = s.nextActive(s.dealer)

	s.emit(HandStarted{Number: s.handNum, DealerID: s.seats[s.dealer].ID})
	s.addLog(fmt.Sprintf("Hand %d begins, %s deals", s.handNum, s.seats[s.dealer].Name))
	return nil
}

// Apply validates and executes an action for a seat. A non-nil error means
// the action was rejected and state is unchanged.
func (s *Session) Apply(seatID string, action Action) error {
	idx := s.seatIndex(seatID)
	if idx < 0 {
		return ErrUnknownSeat
	}

	switch act := action.(type) {
	case Fold, Check, Call, Bet, Raise:
		return s.applyBetting(idx, action)
	case Swap:
		return s.applySwap(idx, act)
	case PlayCard:
		return s.applyPlay(idx, act)
	default:
		return &RuleError{"unknown_action", fmt.Sprintf("unsupported action %T", action)}
	}
}

func (s *Session) applyBetting(idx int, action Action) error {
	seat := s.seats[idx]
	if !s.phase.IsBetting() {
		return ErrWrongPhase
	}
	if idx != s.turn {
		return ErrNotYourTurn
	}
	if !seat.Contesting() {
		return ErrNotInHand
	}

	need := s.currentBet - seat.RoundBet
	amount := 0

	switch act := action.(type) {
	case Fold:
		seat.Folded = true
		s.addLog(fmt.Sprintf("%s folds", seat.Name))

	case Check:
		if need != 0 {
			return ErrCannotCheck
		}
		seat.Acted = true
		s.addLog(fmt.Sprintf("%s checks", seat.Name))

	case Call:
		if need <= 0 {
			return ErrNothingToCall
		}
		if seat.Stack < need {
			return ErrInsufficientStack
		}
		s.commit(seat, need)
		seat.Acted = true
		amount = need
		s.addLog(fmt.Sprintf("%s calls %d", seat.Name, need))

	case Bet:
		if s.currentBet != 0 {
			return ErrBetAlreadyOpen
		}
		if act.Amount < 1 {
			return ErrInvalidAmount
		}
		if seat.Stack < act.Amount {
			return ErrInsufficientStack
		}
		s.currentBet = act.Amount
		s.commit(seat, act.Amount)
		s.reopenAction(seat)
		seat.Acted = true
		amount = act.Amount
		s.addLog(fmt.Sprintf("%s bets %d", seat.Name, act.Amount))

	case Raise:
		if s.currentBet == 0 {
			return ErrNoBetToRaise
		}
		if act.Amount < 1 {
			return ErrInvalidAmount
		}
		if seat.Stack < need+act.Amount {
			return ErrInsufficientStack
		}
		s.currentBet += act.Amount
		s.commit(seat, need+act.Amount)
		s.reopenAction(seat)
		seat.Acted = true
		amount = need + act.Amount
		s.addLog(fmt.Sprintf("%s raises by %d", seat.Name, act.Amount))
	}

	s.emit(ActionApplied{SeatID: seat.ID, Action: action.ActionName(), Amount: amount})
	s.afterBettingAction()
	return nil
}

// commit moves chips from a seat's stack into the pot and round bet
func (s *Session) commit(seat *Seat, chips int) {
	seat.Stack -= chips
	seat.RoundBet += chips
	s.pot += chips
}

// reopenAction clears Acted for every other contester after a bet or raise
func (s *Session) reopenAction(actor *Seat) {
	for _, seat := range s.seats {
		if seat != actor && seat.Contesting() {
			seat.Acted = false
		}
	}
}

func (s *Session) afterBettingAction() {
	contesters := s.contesters()
	if len(contesters) <= 1 {
		s.settleByFold()
		return
	}
	if s.roundComplete(contesters) {
		s.advanceStage()
		return
	}
	s.turn = s.nextActive(s.turn)
}

func (s *Session) roundComplete(contesters []*Seat) bool {
	for _, seat := range contesters {
		if !seat.Acted || seat.RoundBet != s.currentBet {
			return false
		}
	}
	return true
}

// advanceStage reveals the next community tranche (burn then 3/2/2) or
// enters the trick phase after the river round.
func (s *Session) advanceStage() {
	s.currentBet = 0
	for _, seat := range s.seats {
		seat.RoundBet = 0
		seat.Acted = false
	}

	switch s.phase {
	case PhasePreflopBet:
		s.reveal(3, PhaseFlopBet)
	case PhaseFlopBet:
		s.reveal(2, PhaseTurnBet)
	case PhaseTurnBet:
		s.reveal(2, PhaseRiverBet)
	case PhaseRiverBet:
		s.phase = PhaseTrick
		s.trick = trickState{Number: 1}
		s.turn = s.nextActive(s.dealer)
		s.addLog(fmt.Sprintf("Trick play begins, trump is %s", s.TrumpSuit()))
		return
	}

	s.turn = s.nextActive(s.dealer)
}

func (s *Session) reveal(n int, next Phase) {
	s.deck.Burn()
	cards := s.deck.DealN(n)
	s.community = append(s.community, cards...)
	s.phase = next

	s.emit(CommunityRevealed{Phase: next, Cards: cards})
	s.addLog(fmt.Sprintf("Community: %s (trump %s)", deck.CardsString(s.community), s.TrumpSuit()))
}

func (s *Session) applySwap(idx int, act Swap) error {
	seat := s.seats[idx]
	if !s.phase.IsBetting() {
		return ErrWrongPhase
	}
	if idx != s.turn {
		return ErrNotYourTurn
	}
	if !seat.Contesting() {
		return ErrNotInHand
	}
	if seat.HasSwapped {
		return ErrAlreadySwapped
	}
	if len(s.community) == 0 {
		return ErrEmptyCommunity
	}
	if act.HandIndex < 0 || act.HandIndex >= len(seat.Hand) {
		return ErrInvalidIndex
	}
	if act.CommunityIndex < 0 || act.CommunityIndex >= len(s.community) {
		return ErrInvalidIndex
	}

	// cost is fixed by the pot at the instant of the action
	cost := (s.pot + 1) / 2
	if seat.Stack < cost {
		return ErrInsufficientStack
	}

	seat.Stack -= cost
	s.pot += cost
	handCard := seat.Hand[act.HandIndex]
	commCard := s.community[act.CommunityIndex]
	seat.Hand[act.HandIndex] = commCard
	s.community[act.CommunityIndex] = handCard
	seat.HasSwapped = true

	s.emit(CardSwapped{SeatID: seat.ID, Cost: cost, HandCard: handCard, CommunityCard: commCard})
	s.addLog(fmt.Sprintf("%s pays %d to swap %s for %s (trump %s)",
		seat.Name, cost, handCard, commCard, s.TrumpSuit()))

	// the swap does not close the turn; a betting action must follow
	return nil
}

// contesters returns the seats still competing, in seat order
func (s *Session) contesters() []*Seat {
	var out []*Seat
	for _, seat := range s.seats {
		if seat.Contesting() {
			out = append(out, seat)
		}
	}
	return out
}

// nextActive scans forward circularly from the seat after `from` for the
// next contester, skipping empty-handed seats during the trick phase.
func (s *Session) nextActive(from int) int {
	n := len(s.seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		seat := s.seats[idx]
		if !seat.Contesting() {
			continue
		}
		if s.phase == PhaseTrick && len(seat.Hand) == 0 {
			continue
		}
		return idx
	}
	return from
}

func (s *Session) seatIndex(id string) int {
	for i, seat := range s.seats {
		if seat.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink(e)
	}
}

func (s *Session) addLog(line string) {
	s.log = append(s.log, line)
	if len(s.log) > logLimit {
		s.log = s.log[len(s.log)-logLimit:]
	}
}
