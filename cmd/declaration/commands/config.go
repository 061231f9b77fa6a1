package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/declaration/internal/config"
	"github.com/jask/declaration/internal/tui"
)

func configCmd() *cobra.Command {
	var (
		paletteRef string
		platform   string
		dir        string
		width      int
		height     int
		ratio      float64
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the current settings, or change and save them",
		Example: `  declaration config
  declaration config --palette slate --platform windows
  declaration config --width 1440 --height 900 --pixel-ratio 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.cfg
			flags := cmd.Flags()
			changed := false
			for _, name := range []string{"palette", "platform", "dir", "width", "height", "pixel-ratio"} {
				changed = changed || flags.Changed(name)
			}
			if !changed {
				printConfig(cmd, cfg)
				return nil
			}

			if flags.Changed("palette") {
				p, err := appCtx.palettes.Lookup(paletteRef)
				if err != nil {
					return err
				}
				cfg.UI.DefaultPalette = p
			}
			if flags.Changed("platform") {
				if !tui.KnownPlatform(platform) {
					return fmt.Errorf("unknown platform %q (want one of %s)", platform, strings.Join(tui.Platforms(), ", "))
				}
				cfg.UI.Platform = platform
			}
			if flags.Changed("dir") {
				cfg.Export.Dir = dir
			}
			if flags.Changed("width") {
				cfg.Display.Width = width
			}
			if flags.Changed("height") {
				cfg.Display.Height = height
			}
			if flags.Changed("pixel-ratio") {
				cfg.Display.PixelRatio = ratio
			}
			if err := cfg.Screen().Validate(); err != nil {
				return err
			}

			if err := config.Save(cfg); err != nil {
				return err
			}
			appCtx.cfg = cfg
			appCtx.log.Info("config saved", "path", config.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okText.Sprint("saved"), config.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&paletteRef, "palette", "p", "", "default palette name or index")
	cmd.Flags().StringVar(&platform, "platform", "", "instructions tab shown first ("+strings.Join(tui.Platforms(), " or ")+")")
	cmd.Flags().StringVarP(&dir, "dir", "o", "", "directory downloads are saved to")
	cmd.Flags().IntVar(&width, "width", 0, "screen width in points")
	cmd.Flags().IntVar(&height, "height", 0, "screen height in points")
	cmd.Flags().Float64Var(&ratio, "pixel-ratio", 0, "device pixels per point")
	return cmd
}

func printConfig(cmd *cobra.Command, cfg config.Config) {
	out := cmd.OutOrStdout()
	name := "?"
	if p, err := appCtx.palettes.Get(cfg.UI.DefaultPalette); err == nil {
		name = p.Name
	}
	w, h := cfg.Screen().Size()
	fmt.Fprintln(out, dimText.Sprint(config.Path()))
	fmt.Fprintf(out, "display   %dx%d @%g (%dx%d px)\n", cfg.Display.Width, cfg.Display.Height, cfg.Display.PixelRatio, w, h)
	fmt.Fprintf(out, "palette   %d %s\n", cfg.UI.DefaultPalette, name)
	fmt.Fprintf(out, "platform  %s\n", cfg.UI.Platform)
	fmt.Fprintf(out, "export    %s\n", cfg.Export.Dir)
	fmt.Fprintf(out, "log       %s (%s)\n", cfg.Log.Path, cfg.Log.Level)
}
