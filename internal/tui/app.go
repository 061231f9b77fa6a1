package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/declaration/internal/export"
	"github.com/jask/declaration/internal/form"
	"github.com/jask/declaration/internal/palette"
	"github.com/jask/declaration/internal/render"
)

// Exporter runs the export pipeline for a set of surfaces.
type Exporter interface {
	Run(ctx context.Context, surfaces [form.Count]*render.Surface) (export.Result, error)
}

// Deps are the collaborators the App needs.
type Deps struct {
	Palettes       *palette.Registry
	Display        render.Display
	Exporter       Exporter
	Log            *slog.Logger
	Platform       string
	DefaultPalette int
}

type keyMap struct {
	Next         key.Binding
	Prev         key.Binding
	NextPalette  key.Binding
	PrevPalette  key.Binding
	Instructions key.Binding
	Download     key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Next:         key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:         key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	NextPalette:  key.NewBinding(key.WithKeys("ctrl+p", "ctrl+right"), key.WithHelp("ctrl+p", "next palette")),
	PrevPalette:  key.NewBinding(key.WithKeys("ctrl+o", "ctrl+left"), key.WithHelp("ctrl+o", "prev palette")),
	Instructions: key.NewBinding(key.WithKeys("f1", "ctrl+g"), key.WithHelp("f1", "show instructions")),
	Download:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "download images")),
	Quit:         key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

// App is the declaration form.
type App struct {
	ctx    context.Context
	deps   Deps
	log    *slog.Logger
	form   *form.State
	inputs [form.Count]textinput.Model
	focus  int

	instructions *Instructions // nil when the overlay is closed
	exporting    bool
	status       string
	statusErr    bool

	width  int
	height int
}

func New(ctx context.Context, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		ctx:  ctx,
		deps: deps,
		log:  log,
		form: form.New(deps.Palettes.Len()),
	}
	if err := a.form.SelectPalette(deps.DefaultPalette); err != nil {
		log.Warn("ignoring default palette", "err", err)
	}
	for i := range a.inputs {
		inp := textinput.New()
		inp.Prompt = ""
		inp.Placeholder = "…"
		inp.CharLimit = 280
		inp.Width = 60
		a.inputs[i] = inp
	}
	a.inputs[0].Focus()
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// messages
type exportDoneMsg struct {
	Result export.Result
	Err    error
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case exportDoneMsg:
		a.exporting = false
		if m.Err != nil {
			a.setStatus("export failed: "+m.Err.Error(), true)
			return a, nil
		}
		a.setStatus("saved "+m.Result.Path, false)
		return a, nil
	case tea.KeyMsg:
		if a.instructions != nil {
			return a, a.instructions.Update(m)
		}
		return a.handleKey(m)
	}
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, keys.Quit):
		return a, tea.Quit
	case key.Matches(m, keys.Next):
		a.moveFocus(1)
		return a, nil
	case key.Matches(m, keys.Prev):
		a.moveFocus(-1)
		return a, nil
	case key.Matches(m, keys.NextPalette):
		a.cyclePalette(1)
		return a, nil
	case key.Matches(m, keys.PrevPalette):
		a.cyclePalette(-1)
		return a, nil
	case key.Matches(m, keys.Instructions):
		a.instructions = NewInstructions(a.deps.Platform, func() { a.instructions = nil })
		return a, nil
	case key.Matches(m, keys.Download):
		return a, a.downloadCmd()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(m)
	if err := a.form.SetAnswer(a.focus, a.inputs[a.focus].Value()); err != nil {
		a.setStatus(err.Error(), true)
	}
	return a, cmd
}

func (a *App) moveFocus(dir int) {
	a.inputs[a.focus].Blur()
	a.focus = (a.focus + dir + form.Count) % form.Count
	a.inputs[a.focus].Focus()
}

func (a *App) cyclePalette(dir int) {
	n := a.deps.Palettes.Len()
	next := (a.form.Palette() + dir + n) % n
	if err := a.form.SelectPalette(next); err != nil {
		a.setStatus(err.Error(), true)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// downloadCmd snapshots the form now and exports in the background.
func (a *App) downloadCmd() tea.Cmd {
	if a.exporting {
		return nil
	}
	surfaces, err := render.Surfaces(a.form.Snapshot(), a.deps.Palettes, a.deps.Display)
	if err != nil {
		a.setStatus("export failed: "+err.Error(), true)
		return nil
	}
	a.exporting = true
	a.setStatus("rendering images...", false)
	exporter, ctx := a.deps.Exporter, a.ctx
	return func() tea.Msg {
		res, err := exporter.Run(ctx, surfaces)
		return exportDoneMsg{Result: res, Err: err}
	}
}

func (a *App) View() string {
	body := a.renderBody()
	if a.instructions != nil {
		return renderPopup(body, a.instructions.View(), a.width, a.height)
	}
	return body
}

func (a *App) renderBody() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Leadership Declaration"))
	b.WriteString("\n\n")
	for i, inp := range a.inputs {
		style := promptStyle
		marker := "  "
		if i == a.focus {
			style = focusPromptStyle
			marker = cursorStyle.Render("▶ ")
		}
		b.WriteString(marker + style.Render(form.Prompts[i]) + "\n")
		b.WriteString("  " + inp.View() + "\n")
	}
	b.WriteString("\n")

	left := sectionStyle.Render(a.renderPalettes())
	right := sectionStyle.Render(a.renderPreview())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	status := a.status
	switch {
	case status == "":
	case a.statusErr:
		status = errorStyle.Render(status)
	default:
		status = successStyle.Render(status)
	}
	b.WriteString(renderStatus(status, a.width))
	b.WriteString("\n")
	b.WriteString(renderFooter([]key.Binding{keys.Next, keys.NextPalette, keys.PrevPalette, keys.Instructions, keys.Download, keys.Quit}, a.width))
	return b.String()
}

func (a *App) renderPalettes() string {
	lines := []string{titleStyle.Render("Palette")}
	for i, p := range a.deps.Palettes.All() {
		marker := "  "
		if i == a.form.Palette() {
			marker = cursorStyle.Render("▶ ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, swatch(p), p.Name))
	}
	return strings.Join(lines, "\n")
}

// previewCols is the terminal width of the live preview card.
const previewCols = 40

func (a *App) renderPreview() string {
	card, err := render.Preview(a.form.Snapshot(), a.deps.Palettes)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return titleStyle.Render("Preview") + "\n" + previewCard(card, previewCols)
}

// previewCard draws a card as terminal cells. Cells are about twice as tall
// as wide, so rows = cols*9/16/2 keeps the card near 16:9. The label and
// answer form one left-aligned block centred in the card.
func previewCard(c render.Card, cols int) string {
	rows := cols * 9 / 16 / 2
	inner := cols - 4
	bg := lg(c.Background)
	label := lipgloss.NewStyle().Foreground(lg(c.LabelColor)).Background(bg).
		Render(c.Prompt)
	block := label
	if c.Text != "" {
		answer := lipgloss.NewStyle().Foreground(lg(c.TextColor)).Background(bg).
			Width(min(lipgloss.Width(c.Text), inner)).
			Render(c.Text)
		block = lipgloss.JoinVertical(lipgloss.Left, label, answer)
	}
	return lipgloss.NewStyle().
		Background(bg).
		Width(cols).
		Height(rows).
		MaxHeight(rows).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(block)
}
