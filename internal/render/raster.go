package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jask/declaration/internal/palette"
)

// Rasterizer draws cards into off-screen gg contexts and encodes them as PNG.
// Safe for concurrent use: the font source is shared, contexts are per call.
type Rasterizer struct {
	font *text.FontSource
	log  *slog.Logger
}

// NewRasterizer loads Go Regular. Call Close when done.
func NewRasterizer(log *slog.Logger) (*Rasterizer, error) {
	if log == nil {
		log = slog.Default()
	}
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Rasterizer{font: font, log: log}, nil
}

// Close releases the font source.
func (r *Rasterizer) Close() error {
	return r.font.Close()
}

// Rasterize renders an export surface to PNG bytes.
func (r *Rasterizer) Rasterize(ctx context.Context, s *Surface) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	r.log.Debug("rasterize surface", "index", s.Index, "width", s.Width, "height", s.Height)
	return r.RasterizeCard(ctx, s.Card)
}

// RasterizeCard renders any card to PNG bytes.
func (r *Rasterizer) RasterizeCard(ctx context.Context, c Card) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("card size %dx%d", c.Width, c.Height)
	}
	dc := gg.NewContext(c.Width, c.Height)
	defer func() { _ = dc.Close() }()
	r.draw(dc, c)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// block is one run of wrapped lines sharing a face and colour.
type block struct {
	face       text.Face
	color      palette.Color
	lines      []string
	lineHeight float64
}

func (b block) height() float64 { return b.lineHeight * float64(len(b.lines)) }

// draw lays out the prompt label above the answer as one block, centred on
// both axes inside the padding. Lines within the block are left aligned.
// A block taller than the padded area starts at the top padding and loses
// the lines that fall past the bottom one.
func (r *Rasterizer) draw(dc *gg.Context, c Card) {
	dc.ClearWithColor(gg.Hex(string(c.Background)))

	pad := c.Padding()
	maxWidth := float64(c.Width) - 2*pad
	blocks := []block{
		r.layout(c.LabelSize(), c.LabelColor, c.Prompt, maxWidth),
		r.layout(c.AnswerSize(), c.TextColor, c.Text, maxWidth),
	}

	var blockW, blockH float64
	for _, b := range blocks {
		for _, line := range b.lines {
			blockW = max(blockW, b.face.Advance(line))
		}
		blockH += b.height()
	}
	x := (float64(c.Width) - blockW) / 2
	y := max((float64(c.Height)-blockH)/2, pad)
	bottom := float64(c.Height) - pad

	for _, b := range blocks {
		m := b.face.Metrics()
		lh := b.lineHeight
		// Glyphs sit in the middle of their line box.
		baseline := (lh-(m.Ascent+m.Descent))/2 + m.Ascent
		dc.SetFont(b.face)
		dc.SetHexColor(string(b.color))
		for _, line := range b.lines {
			if y+lh > bottom+0.5 {
				r.log.Debug("text truncated", "width", c.Width, "height", c.Height)
				return
			}
			dc.DrawString(line, x, y+baseline)
			y += lh
		}
	}
}

// layout wraps s at size and measures it. An empty string has no height.
func (r *Rasterizer) layout(size float64, color palette.Color, s string, maxWidth float64) block {
	face := r.font.Face(size)
	return block{face: face, color: color, lines: wrap(face, s, maxWidth), lineHeight: size * LineHeight}
}

// wrap splits s into lines no wider than maxWidth where word boundaries
// allow it. Explicit newlines start new lines; a single word wider than
// maxWidth gets a line of its own.
func wrap(face text.Face, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if face.Advance(candidate) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
