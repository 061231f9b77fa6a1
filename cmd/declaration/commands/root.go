package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/declaration/internal/config"
	"github.com/jask/declaration/internal/export"
	"github.com/jask/declaration/internal/logging"
	"github.com/jask/declaration/internal/palette"
	"github.com/jask/declaration/internal/render"
	"github.com/jask/declaration/internal/tui"
)

// app is the dependency graph shared by every subcommand.
type app struct {
	cfg        config.Config
	log        *slog.Logger
	logCloser  io.Closer
	palettes   *palette.Registry
	rasterizer *render.Rasterizer
	closed     bool
}

var (
	configPath string
	appCtx     *app
)

func Execute() error {
	if err := execute(context.Background(), newRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, errorText.Sprint("error: ")+err.Error())
		return err
	}
	return nil
}

// execute runs root and then releases whatever PersistentPreRunE opened.
// Cobra skips post-run hooks when RunE fails, so closing happens here.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if cerr := appCtx.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "declaration",
		Short:         "Turn your leadership declaration into screensaver slides",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("DECLARATION_CONFIG", configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				return err
			}
			r, err := render.NewRasterizer(log)
			if err != nil {
				_ = closer.Close()
				return err
			}
			appCtx = &app{cfg: cfg, log: log, logCloser: closer, palettes: palette.Default(), rasterizer: r}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/declaration/config.toml)")

	root.AddCommand(exportCmd(), palettesCmd(), previewCmd(), configCmd())
	return root
}

func (a *app) close() error {
	if a == nil || a.closed {
		return nil
	}
	a.closed = true
	err := a.rasterizer.Close()
	if cerr := a.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) pipeline(dir string) *export.Pipeline {
	return &export.Pipeline{
		Rasterizer: a.rasterizer,
		Sink:       export.NewSaver(dir),
		Log:        a.log,
	}
}

func runTUI(ctx context.Context) error {
	// Screen geometry is fixed for the whole session.
	display := appCtx.cfg.Screen()
	appCtx.log.Info("starting", "display", fmt.Sprintf("%dx%d@%g", display.Width, display.Height, display.PixelRatio))

	p := tea.NewProgram(tui.New(ctx, tui.Deps{
		Palettes:       appCtx.palettes,
		Display:        display,
		Exporter:       appCtx.pipeline(appCtx.cfg.Export.Dir),
		Log:            appCtx.log,
		Platform:       appCtx.cfg.UI.Platform,
		DefaultPalette: appCtx.cfg.UI.DefaultPalette,
	}), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
