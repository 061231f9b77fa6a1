// Package export turns the five export surfaces into a saved zip archive.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/render"
)

// ErrNoImageData fails the whole export when any slot produced nothing.
var ErrNoImageData = errors.New("no image data")

// Rasterizer converts one surface into PNG bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, s *render.Surface) ([]byte, error)
}

// Sink receives the finished archive.
type Sink interface {
	Save(name string, data []byte) (string, error)
}

// Pipeline runs rasterize -> join -> archive -> save. It does not retry.
type Pipeline struct {
	Rasterizer Rasterizer
	Sink       Sink
	Log        *slog.Logger
	Now        func() time.Time
}

// Result describes a completed export.
type Result struct {
	ID    string
	Path  string
	Size  int
	Count int
}

// Run exports the surfaces. Any failure aborts before anything is saved.
func (p *Pipeline) Run(ctx context.Context, surfaces [form.Count]*render.Surface) (Result, error) {
	id := uuid.NewString()
	log := p.logger().With("export_id", id)
	start := time.Now()
	log.Info("export started")

	data, err := p.Archive(ctx, surfaces)
	if err != nil {
		log.Error("export failed", "err", err)
		return Result{ID: id}, err
	}
	path, err := p.Sink.Save(ArchiveName, data)
	if err != nil {
		log.Error("save failed", "err", err)
		return Result{ID: id}, fmt.Errorf("save %s: %w", ArchiveName, err)
	}
	log.Info("export saved", "path", path, "bytes", len(data), "elapsed", time.Since(start))
	return Result{ID: id, Path: path, Size: len(data), Count: form.Count}, nil
}

// Archive rasterizes every surface and returns the serialized zip without
// saving it.
func (p *Pipeline) Archive(ctx context.Context, surfaces [form.Count]*render.Surface) ([]byte, error) {
	images, err := p.rasterizeAll(ctx, surfaces)
	if err != nil {
		return nil, err
	}
	return BuildArchive(images, p.now())
}

// rasterizeAll rasterizes the surfaces concurrently and returns their images
// in input order. Unmounted (nil) surfaces are skipped without stopping the
// others; the join then reports their slot as missing.
func (p *Pipeline) rasterizeAll(ctx context.Context, surfaces [form.Count]*render.Surface) ([][]byte, error) {
	images := make([][]byte, len(surfaces))
	var g errgroup.Group
	for i, s := range surfaces {
		if s == nil {
			p.logger().Warn("surface not mounted, skipping", "index", i)
			continue
		}
		g.Go(func() error {
			img, err := p.Rasterizer.Rasterize(ctx, s)
			if err != nil {
				return fmt.Errorf("rasterize answer %d: %w", i+1, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, img := range images {
		if len(img) == 0 {
			return nil, fmt.Errorf("answer %d: %w", i+1, ErrNoImageData)
		}
	}
	return images, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Log == nil {
		return slog.Default()
	}
	return p.Log
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
