package game

import (
	"encoding/json"
	"fmt"
)

// Phase is the top-level state of a session. Exactly one phase is active at
// any time; transitions only happen inside the engine.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePreflopBet
	PhaseFlopBet
	PhaseTurnBet
	PhaseRiverBet
	PhaseTrick
)

// IsBetting reports whether the phase is one of the four betting rounds
func (p Phase) IsBetting() bool {
	switch p {
	case PhasePreflopBet, PhaseFlopBet, PhaseTurnBet, PhaseRiverBet:
		return true
	}
	return false
}

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreflopBet:
		return "preflopBet"
	case PhaseFlopBet:
		return "flopBet"
	case PhaseTurnBet:
		return "turnBet"
	case PhaseRiverBet:
		return "riverBet"
	case PhaseTrick:
		return "trick"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalJSON encodes the phase as its wire name
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase wire name
func (p *Phase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	phase, err := ParsePhase(name)
	if err != nil {
		return err
	}
	*p = phase
	return nil
}

// ParsePhase maps a wire name back to a Phase
func ParsePhase(name string) (Phase, error) {
	for p := PhaseWaiting; p <= PhaseTrick; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return PhaseWaiting, fmt.Errorf("unknown phase %q", name)
}
