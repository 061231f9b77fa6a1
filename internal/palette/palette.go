package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Size is the number of colours in every palette: five answer colours
// followed by the shared label colour.
const Size = 6

// LabelIndex is the palette slot used for prompt labels on every card.
const LabelIndex = Size - 1

// ErrUnknownPalette is returned for out-of-range indexes and unmatched names.
var ErrUnknownPalette = errors.New("unknown palette")

// Color is a "#rrggbb" hex string.
type Color string

// Palette is a named, fixed-length set of colours.
type Palette struct {
	Name   string
	Colors [Size]Color
}

// AnswerColor returns the colour for answer slot i. i must be in [0,5).
func (p Palette) AnswerColor(i int) Color {
	return p.Colors[i]
}

// LabelColor returns the colour shared by every prompt label.
func (p Palette) LabelColor() Color {
	return p.Colors[LabelIndex]
}

// ---------------------------------------------------------------------------
// Built-in palettes
// ---------------------------------------------------------------------------

var builtin = [...]Palette{
	{Name: "Neon", Colors: [Size]Color{"#1AE8FF", "#FF26A2", "#FF8226", "#0DFF8E", "#960DFF", "#999999"}},
	{Name: "Blaze", Colors: [Size]Color{"#FF5A0D", "#FFD60D", "#19FFE9", "#110AC4", "#FF00D3", "#999999"}},
	{Name: "Forest", Colors: [Size]Color{"#1DB312", "#1EFF0D", "#12A7B3", "#0DEEFF", "#FF1D00", "#999999"}},
	{Name: "Pastel", Colors: [Size]Color{"#B5F8FF", "#FFC2E4", "#FFBE8F", "#A0FF9C", "#A9FFD7", "#BBBBBB"}},
	{Name: "Slate", Colors: [Size]Color{"#45526B", "#6B544A", "#705D34", "#3A6B65", "#3F5F6B", "#555555"}},
}

// Background is the slide fill colour shared by all palettes.
const Background Color = "#000000"

// Registry is the read-only, ordered list of palettes.
type Registry struct {
	palettes []Palette
}

// Default returns the registry of built-in palettes.
func Default() *Registry {
	return &Registry{palettes: builtin[:]}
}

// Len returns the number of palettes.
func (r *Registry) Len() int { return len(r.palettes) }

// Get returns palette i, bounds-checked.
func (r *Registry) Get(i int) (Palette, error) {
	if i < 0 || i >= len(r.palettes) {
		return Palette{}, fmt.Errorf("%w: index %d (have %d)", ErrUnknownPalette, i, len(r.palettes))
	}
	return r.palettes[i], nil
}

// All returns a copy of the palette list in order.
func (r *Registry) All() []Palette {
	out := make([]Palette, len(r.palettes))
	copy(out, r.palettes)
	return out
}

// Lookup resolves a palette by index ("0".."4") or case-insensitive name.
// A miss reports the closest known name.
func (r *Registry) Lookup(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if _, err := r.Get(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	want := strings.ToLower(ref)
	best, bestDist := "", -1
	for i, p := range r.palettes {
		name := strings.ToLower(p.Name)
		if name == want {
			return i, nil
		}
		d := levenshtein.ComputeDistance(want, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	if best == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPalette, ref)
	}
	return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownPalette, ref, best)
}
