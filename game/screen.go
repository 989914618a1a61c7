package game

import (
	"errors"
	"fmt"
)

// ScreenState is the coarse mode of the application
type ScreenState int

const (
	ScreenLoading ScreenState = iota
	ScreenMenu
	ScreenPlaying
	ScreenGameOver
)

func (s ScreenState) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("ScreenState(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when a screen change is not in the table
var ErrInvalidTransition = errors.New("invalid screen transition")

// screenTransitions lists every allowed change. Nothing in the game loop moves
// playing to game-over yet; the edge exists so restart has a source state.
var screenTransitions = map[ScreenState][]ScreenState{
	ScreenLoading:  {ScreenMenu},
	ScreenMenu:     {ScreenPlaying},
	ScreenPlaying:  {ScreenGameOver},
	ScreenGameOver: {ScreenPlaying},
}

// Screen tracks the current screen state
type Screen struct {
	state ScreenState
}

// NewScreen returns a screen machine in the loading state
func NewScreen() *Screen {
	return &Screen{state: ScreenLoading}
}

// State returns the current screen state
func (s *Screen) State() ScreenState {
	return s.state
}

// CanTransition reports whether from -> to is an allowed change
func CanTransition(from, to ScreenState) bool {
	for _, next := range screenTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves to the given state if the table allows it
func (s *Screen) Transition(to ScreenState) error {
	if !CanTransition(s.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.state = to
	return nil
}
