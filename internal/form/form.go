// Package form holds the in-memory answers and palette selection.
package form

import (
	"errors"
	"fmt"
)

// Count is the fixed number of prompts and answers.
const Count = 5

// Prompts are shown in this order; the order also decides colour assignment.
var Prompts = [Count]string{
	"My purpose is",
	"Who I am for you",
	"Who you are for me",
	"What my work makes possible",
	"In service of my purpose you can count on me to",
}

// Errors returned by State setters. The state is unchanged when they occur.
var (
	// ErrAnswerIndex reports an answer slot outside [0, Count).
	ErrAnswerIndex = errors.New("answer index out of range")
	// ErrPaletteIndex reports a palette index the registry does not have.
	ErrPaletteIndex = errors.New("palette index out of range")
)

// Snapshot is an immutable copy of the form handed to renderers.
type Snapshot struct {
	Answers [Count]string
	Palette int
}

// State is the form state holder. It is not safe for concurrent use; the
// TUI mutates it from its update loop only.
type State struct {
	answers  [Count]string
	palette  int
	palettes int
}

// New returns an empty form. paletteCount bounds SelectPalette.
func New(paletteCount int) *State {
	return &State{palettes: paletteCount}
}

// SetAnswer replaces slot i. Any text, including empty, is accepted.
func (s *State) SetAnswer(i int, text string) error {
	if i < 0 || i >= Count {
		return fmt.Errorf("%w: %d", ErrAnswerIndex, i)
	}
	s.answers[i] = text
	return nil
}

// Answer returns slot i, or "" when i is out of range.
func (s *State) Answer(i int) string {
	if i < 0 || i >= Count {
		return ""
	}
	return s.answers[i]
}

// Answers returns a copy of all five answers.
func (s *State) Answers() [Count]string { return s.answers }

// SelectPalette replaces the current palette selection.
func (s *State) SelectPalette(p int) error {
	if p < 0 || p >= s.palettes {
		return fmt.Errorf("%w: %d (have %d)", ErrPaletteIndex, p, s.palettes)
	}
	s.palette = p
	return nil
}

// Palette returns the selected palette index.
func (s *State) Palette() int { return s.palette }

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Answers: s.answers, Palette: s.palette}
}
