package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/palette"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDisplaySize(t *testing.T) {
	tests := []struct {
		name  string
		d     Display
		wantW int
		wantH int
	}{
		{"1x", Display{Width: 1920, Height: 1080, PixelRatio: 1}, 1920, 1080},
		{"retina", Display{Width: 1440, Height: 900, PixelRatio: 2}, 2880, 1800},
		{"fractional", Display{Width: 1280, Height: 720, PixelRatio: 1.5}, 1920, 1080},
		{"zero ratio means 1", Display{Width: 800, Height: 600}, 800, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.d.Size()
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
		})
	}
	require.Error(t, Display{Width: 0, Height: 1080, PixelRatio: 1}.Validate())
}

func TestPreviewColors(t *testing.T) {
	reg := palette.Default()
	for p := 0; p < reg.Len(); p++ {
		snap := form.Snapshot{Answers: [form.Count]string{"first", "b", "c", "d", "e"}, Palette: p}
		card, err := Preview(snap, reg)
		require.NoError(t, err)
		pal, _ := reg.Get(p)
		require.Equal(t, pal.Colors[5], card.LabelColor)
		require.Equal(t, pal.Colors[0], card.TextColor)
		require.Equal(t, "first", card.Text)
		require.Equal(t, form.Prompts[0], card.Prompt)
		require.Equal(t, BaseWidth, card.Width)
		require.Equal(t, BaseWidth*9/16, card.Height)
		require.InDelta(t, 1.0, card.Scale(), 1e-9)
	}
}

func TestSurfacesColorsAndSize(t *testing.T) {
	reg := palette.Default()
	d := Display{Width: 1440, Height: 900, PixelRatio: 2}
	for p := 0; p < reg.Len(); p++ {
		snap := form.Snapshot{Answers: [form.Count]string{"A", "B", "C", "D", "E"}, Palette: p}
		surfaces, err := Surfaces(snap, reg, d)
		require.NoError(t, err)
		pal, _ := reg.Get(p)
		for i, s := range surfaces {
			require.NotNil(t, s)
			require.Equal(t, i, s.Index)
			require.Equal(t, pal.Colors[i], s.TextColor)
			require.Equal(t, pal.Colors[5], s.LabelColor)
			require.Equal(t, form.Prompts[i], s.Prompt)
			require.Equal(t, snap.Answers[i], s.Text)
			require.Equal(t, 2880, s.Width)
			require.Equal(t, 1800, s.Height)
			require.InDelta(t, 2880.0/400, s.Scale(), 1e-9)
			require.InDelta(t, 20*7.2, s.Padding(), 1e-9)
				require.InDelta(t, 14*7.2, s.LabelSize(), 1e-9)
				require.InDelta(t, 20*7.2, s.AnswerSize(), 1e-9)
				require.Equal(t, palette.Background, s.Background)
		}
	}
}

func TestSurfacesAreFreshPerCall(t *testing.T) {
	reg := palette.Default()
	d := Display{Width: 100, Height: 50, PixelRatio: 1}
	a, err := Surfaces(form.Snapshot{}, reg, d)
	require.NoError(t, err)
	b, err := Surfaces(form.Snapshot{}, reg, d)
	require.NoError(t, err)
	for i := range a {
		require.NotSame(t, a[i], b[i])
	}
}

func TestSurfacesRejectBadPalette(t *testing.T) {
	_, err := Surfaces(form.Snapshot{Palette: 9}, palette.Default(), Display{Width: 10, Height: 10, PixelRatio: 1})
	require.ErrorIs(t, err, palette.ErrUnknownPalette)
}

func TestRasterizeProducesPNGAtSurfaceSize(t *testing.T) {
	r, err := NewRasterizer(quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	snap := form.Snapshot{Answers: [form.Count]string{"to help people do their best work", "", "c", "d", "e"}}
	surfaces, err := Surfaces(snap, palette.Default(), Display{Width: 320, Height: 180, PixelRatio: 1.5})
	require.NoError(t, err)

	for _, s := range surfaces[:2] {
		data, err := r.Rasterize(context.Background(), s)
		require.NoError(t, err)
		require.NotEmpty(t, data)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, 480, img.Bounds().Dx())
		require.Equal(t, 270, img.Bounds().Dy())
	}
}

// inkBounds returns the bounding box of every pixel that is not pure black.
func inkBounds(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	var ink image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r|g|bl == 0 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return ink
}

func TestRasterizeCentresTextBlock(t *testing.T) {
	r, err := NewRasterizer(quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	snap := form.Snapshot{Answers: [form.Count]string{"to help people do their best work", "", "", "", ""}}
	surfaces, err := Surfaces(snap, palette.Default(), Display{Width: 800, Height: 450, PixelRatio: 1})
	require.NoError(t, err)

	for _, s := range surfaces[:2] {
		data, err := r.Rasterize(context.Background(), s)
		require.NoError(t, err)
		ink := inkBounds(t, data)
		require.False(t, ink.Empty(), "surface %d has no ink", s.Index)

		cx := float64(ink.Min.X+ink.Max.X) / 2
		cy := float64(ink.Min.Y+ink.Max.Y) / 2
		require.InDelta(t, 400, cx, 40, "surface %d ink %v", s.Index, ink)
		require.InDelta(t, 225, cy, 30, "surface %d ink %v", s.Index, ink)
		require.GreaterOrEqual(t, float64(ink.Min.X), s.Padding()-1)
	}
}

func TestRasterizeKeepsPromptCase(t *testing.T) {
	r, err := NewRasterizer(quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	card := Card{Width: 400, Height: 225, Prompt: "My purpose is", TextColor: "#FFFFFF", LabelColor: "#FFFFFF", Background: palette.Background}
	lower := r.layout(card.LabelSize(), card.LabelColor, card.Prompt, 360)
	upper := r.layout(card.LabelSize(), card.LabelColor, "MY PURPOSE IS", 360)
	require.Equal(t, []string{"My purpose is"}, lower.lines)

	plain, err := r.RasterizeCard(context.Background(), card)
	require.NoError(t, err)
	card.Prompt = "MY PURPOSE IS"
	shouted, err := r.RasterizeCard(context.Background(), card)
	require.NoError(t, err)
	require.Less(t, lower.face.Advance(lower.lines[0]), upper.face.Advance(upper.lines[0]))
	require.Less(t, inkBounds(t, plain).Dx(), inkBounds(t, shouted).Dx())
}

func TestRasterizeCardHonoursContext(t *testing.T) {
	r, err := NewRasterizer(quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.RasterizeCard(ctx, Card{Width: 10, Height: 10})
	require.ErrorIs(t, err, context.Canceled)

	_, err = r.RasterizeCard(context.Background(), Card{})
	require.Error(t, err)
}

func TestWrap(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	face := src.Face(16)

	require.Empty(t, wrap(face, "", 100))
	require.Empty(t, wrap(face, "   \n  ", 100))
	require.Equal(t, []string{"hello"}, wrap(face, "hello", 1000))

	long := "the quick brown fox jumps over the lazy dog and keeps on running"
	lines := wrap(face, long, 120)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		if len(bytes.Fields([]byte(l))) > 1 {
			require.LessOrEqual(t, face.Advance(l), 120.0)
		}
	}

	require.Equal(t, []string{"one", "", "two"}, wrap(face, "one\n\ntwo", 1000))
	require.Equal(t, []string{"supercalifragilistic"}, wrap(face, "supercalifragilistic", 5))
}
