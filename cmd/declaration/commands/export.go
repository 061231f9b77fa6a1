package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/render"
)

var (
	okText    = color.New(color.FgGreen, color.Bold)
	errorText = color.New(color.FgRed, color.Bold)
	dimText   = color.New(color.FgHiBlack)
)

// buildForm fills a form from --answer and --palette values.
func buildForm(answers []string, paletteRef string) (*form.State, error) {
	if len(answers) > form.Count {
		return nil, fmt.Errorf("at most %d answers, got %d", form.Count, len(answers))
	}
	st := form.New(appCtx.palettes.Len())
	for i, a := range answers {
		if err := st.SetAnswer(i, a); err != nil {
			return nil, err
		}
	}
	p := appCtx.cfg.UI.DefaultPalette
	if paletteRef != "" {
		var err error
		if p, err = appCtx.palettes.Lookup(paletteRef); err != nil {
			return nil, err
		}
	}
	if err := st.SelectPalette(p); err != nil {
		return nil, err
	}
	return st, nil
}

func exportCmd() *cobra.Command {
	var (
		answers    []string
		paletteRef string
		outDir     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the five slides and save them as a zip without the TUI",
		Example: `  declaration export --palette pastel \
    -a "to build teams that thrive" -a "a steady coach" -a "my teacher" \
    -a "people doing their best work" -a "show up prepared"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildForm(answers, paletteRef)
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = appCtx.cfg.Export.Dir
			}
			surfaces, err := render.Surfaces(st.Snapshot(), appCtx.palettes, appCtx.cfg.Screen())
			if err != nil {
				return err
			}
			res, err := appCtx.pipeline(dir).Run(cmd.Context(), surfaces)
			if err != nil {
				return err
			}
			w, h := appCtx.cfg.Screen().Size()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okText.Sprint("saved"), res.Path)
			fmt.Fprintln(cmd.OutOrStdout(), dimText.Sprintf("%d images at %dx%d, %d bytes", res.Count, w, h, res.Size))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "answer text, in prompt order (repeat up to 5 times)")
	cmd.Flags().StringVarP(&paletteRef, "palette", "p", "", "palette name or index")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the zip (default export.dir)")
	return cmd
}
