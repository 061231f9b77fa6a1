package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/render"
)

func palettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the available colour palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, p := range appCtx.palettes.All() {
				var sw strings.Builder
				for _, c := range p.Colors {
					sw.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(string(c))).Render("██"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %s\n", i, sw.String(), p.Name)
			}
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	var (
		answer     string
		paletteRef string
		out        string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Write the small preview card for the first answer as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildForm([]string{answer}, paletteRef)
			if err != nil {
				return err
			}
			card, err := render.Preview(st.Snapshot(), appCtx.palettes)
			if err != nil {
				return err
			}
			data, err := appCtx.rasterizer.RasterizeCard(cmd.Context(), card)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okText.Sprint("wrote"), out, dimText.Sprint(form.Prompts[0]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "text for the first prompt")
	cmd.Flags().StringVarP(&paletteRef, "palette", "p", "", "palette name or index")
	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "output file")
	return cmd
}
