// Package domain implements the reward mini-games. Each game is a small
// state machine behind the Game interface; timers are driven from outside.
package domain

import (
	"math/rand/v2"
)

type Kind string

const (
	KindMemory   Kind = "memory"
	KindTrivia   Kind = "trivia"
	KindQuickTap Kind = "quicktap"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMemory, KindTrivia, KindQuickTap:
		return true
	}
	return false
}

// Input carries a card index for memory, an option index for trivia and is
// ignored by quick tap.
type Input struct {
	Index int `json:"index"`
}

// Outcome describes what a single input or tick did.
type Outcome struct {
	Accepted bool
	// Completed is set only on the transition into the completed state.
	Completed bool
	// FlipBack asks the driver to call ResolveMismatch after the flip delay.
	FlipBack bool
}

type Game interface {
	Kind() Kind
	// Start resets the session.
	Start(rng *rand.Rand)
	HandleInput(in Input) Outcome
	IsComplete() bool
	View() View
}

// Timed games are advanced by a repeating tick.
type Timed interface {
	Game
	Tick() Outcome
}

type View struct {
	Kind     Kind          `json:"kind"`
	Complete bool          `json:"complete"`
	Score    int           `json:"score"`
	Memory   *MemoryView   `json:"memory,omitempty"`
	Trivia   *TriviaView   `json:"trivia,omitempty"`
	QuickTap *QuickTapView `json:"quick_tap,omitempty"`
}
