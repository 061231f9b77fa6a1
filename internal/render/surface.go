// Package render builds the styled cards shown in the preview and the
// full-resolution surfaces that become exported slides.
package render

import (
	"fmt"
	"math"

	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/palette"
)

// Card geometry at the reference width. Export surfaces scale every length
// by width/BaseWidth so they keep the preview's proportions.
const (
	BaseWidth  = 400
	BaseHeight = BaseWidth * 9 / 16

	basePadding    = 20.0
	baseLabelSize  = 14.0
	baseAnswerSize = 20.0

	// LineHeight is the line box height as a multiple of the font size.
	LineHeight = 1.5
)

// Display is the target screen. Captured once at startup; never re-read.
type Display struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Size returns the device pixel size of the display.
func (d Display) Size() (w, h int) {
	ratio := d.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return int(math.Round(float64(d.Width) * ratio)), int(math.Round(float64(d.Height) * ratio))
}

// Validate rejects displays that cannot produce an image.
func (d Display) Validate() error {
	w, h := d.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("display %dx%d@%g has no pixels", d.Width, d.Height, d.PixelRatio)
	}
	return nil
}

// Card is one styled answer at a given pixel size.
type Card struct {
	Width      int
	Height     int
	Prompt     string
	Text       string
	TextColor  palette.Color
	LabelColor palette.Color
	Background palette.Color
}

// Scale is the factor applied to padding and font sizes.
func (c Card) Scale() float64 {
	return float64(c.Width) / BaseWidth
}

// Padding is the inset on every side; the text block is centred inside it.
func (c Card) Padding() float64 { return basePadding * c.Scale() }

// LabelSize is the prompt label font size in pixels.
func (c Card) LabelSize() float64 { return baseLabelSize * c.Scale() }

// AnswerSize is the answer font size in pixels.
func (c Card) AnswerSize() float64 { return baseAnswerSize * c.Scale() }

// Surface is a full-resolution card for one answer, ready to rasterize.
type Surface struct {
	Card
	Index int
}

// Preview builds the small 16:9 card for the first answer.
func Preview(snap form.Snapshot, reg *palette.Registry) (Card, error) {
	p, err := reg.Get(snap.Palette)
	if err != nil {
		return Card{}, err
	}
	return Card{
		Width:      BaseWidth,
		Height:     BaseHeight,
		Prompt:     form.Prompts[0],
		Text:       snap.Answers[0],
		TextColor:  p.AnswerColor(0),
		LabelColor: p.LabelColor(),
		Background: palette.Background,
	}, nil
}

// Surfaces builds one export surface per answer, in prompt order. Each call
// returns fresh surfaces owned by the caller.
func Surfaces(snap form.Snapshot, reg *palette.Registry, d Display) ([form.Count]*Surface, error) {
	var out [form.Count]*Surface
	p, err := reg.Get(snap.Palette)
	if err != nil {
		return out, err
	}
	if err := d.Validate(); err != nil {
		return out, err
	}
	w, h := d.Size()
	for i := range out {
		out[i] = &Surface{
			Index: i,
			Card: Card{
				Width:      w,
				Height:     h,
				Prompt:     form.Prompts[i],
				Text:       snap.Answers[i],
				TextColor:  p.AnswerColor(i),
				LabelColor: p.LabelColor(),
				Background: palette.Background,
			},
		}
	}
	return out, nil
}
