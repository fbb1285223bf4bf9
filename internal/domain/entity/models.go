package entity

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownState = errors.New("unknown state")

// State is the lifecycle stage of an event. Declaration order is the sort order.
type State int

const (
	StateStarted State = iota
	StateFinished
)

var stateNames = map[State]string{
	StateStarted:  "STARTED",
	StateFinished: "FINISHED",
}

func ParseState(name string) (State, error) {
	for state, stateName := range stateNames {
		if stateName == name {
			return state, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return name
}

func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}

	return []byte(name), nil
}

func (s *State) UnmarshalText(text []byte) error {
	state, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = state

	return nil
}

// Event is one observed lifecycle transition. It is handled by value and never modified after ingestion.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Host      string    `json:"host"`
	State     State     `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// Result is the persisted outcome for one event id. Duration is nil until a pair completes.
type Result struct {
	ID       string
	Type     string
	Host     string
	Duration *time.Duration
	Alert    bool
}

func NewResult(event Event) Result {
	return Result{
		ID:   event.ID,
		Type: event.Type,
		Host: event.Host,
	}
}
