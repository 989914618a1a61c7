package game

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	all := []ScreenState{ScreenLoading, ScreenMenu, ScreenPlaying, ScreenGameOver}
	valid := map[ScreenState]map[ScreenState]bool{
		ScreenLoading:  {ScreenMenu: true},
		ScreenMenu:     {ScreenPlaying: true},
		ScreenPlaying:  {ScreenGameOver: true},
		ScreenGameOver: {ScreenPlaying: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := valid[from][to]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestScreenStartsLoading(t *testing.T) {
	s := NewScreen()
	if s.State() != ScreenLoading {
		t.Fatalf("initial state = %s, want loading", s.State())
	}
}

func TestInvalidTransitionKeepsState(t *testing.T) {
	s := NewScreen()
	err := s.Transition(ScreenPlaying)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("loading -> playing error = %v, want ErrInvalidTransition", err)
	}
	if s.State() != ScreenLoading {
		t.Fatalf("state after rejected transition = %s", s.State())
	}

	if err := s.Transition(ScreenMenu); err != nil {
		t.Fatalf("loading -> menu: %v", err)
	}
	if err := s.Transition(ScreenGameOver); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("menu -> game-over error = %v, want ErrInvalidTransition", err)
	}
}

func TestScreenStateString(t *testing.T) {
	tests := map[ScreenState]string{
		ScreenLoading:   "loading",
		ScreenMenu:      "menu",
		ScreenPlaying:   "playing",
		ScreenGameOver:  "game-over",
		ScreenState(42): "ScreenState(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
