package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// platformGuide is the static help for one operating system. Aliases are
// other names ui.platform may use for it.
type platformGuide struct {
	Name    string
	Aliases []string
	Steps   []string
}

var guides = []platformGuide{
	{
		Name:    "Mac",
		Aliases: []string{"macos", "darwin"},
		Steps: []string{
			"Download & open the zip file. You'll get a folder of images.",
			"Put that folder anywhere you want, like your Documents folder.",
			"Open System Preferences",
			"Click Desktop & Screen Saver",
			"Click the tab labeled Screen Saver",
			"Choose the screen saver \"Classic\" or any other one that supports using photos",
			"In the right panel where it says \"Source\", click the choice menu and click \"Choose Folder\"",
			"Navigate to the folder from step 2 and click Choose",
		},
	},
	{
		Name:    "Windows",
		Aliases: []string{"win"},
		Steps: []string{
			"Download & open the zip file. You'll get a folder of images.",
			"Put that folder anywhere you want, like your Documents folder.",
			"Open the Start Menu (a.k.a. Windows Menu) and click on the search box",
			"Type \"Screen Saver\" and click the result that says \"Change the Screen Saver\"",
			"Choose the \"Photos\" screen saver",
			"Click \"Settings\"",
			"Under \"Use Pictures From\" click the Browse button",
			"Navigate to the folder from step 2 and then click Ok",
		},
	},
}

// Platforms lists the instruction tabs in display order.
func Platforms() []string {
	names := make([]string, len(guides))
	for i, g := range guides {
		names[i] = g.Name
	}
	return names
}

// KnownPlatform reports whether platform names an instructions tab.
func KnownPlatform(platform string) bool {
	for _, g := range guides {
		if g.matches(platform) {
			return true
		}
	}
	return false
}

func (g platformGuide) matches(platform string) bool {
	if strings.EqualFold(g.Name, platform) {
		return true
	}
	for _, a := range g.Aliases {
		if strings.EqualFold(a, platform) {
			return true
		}
	}
	return false
}

type instructionKeys struct {
	Next  key.Binding
	Prev  key.Binding
	Close key.Binding
}

var instructionKeyMap = instructionKeys{
	Next:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next tab")),
	Prev:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev tab")),
	Close: key.NewBinding(key.WithKeys("esc", "q", "enter", "f1"), key.WithHelp("esc", "close")),
}

// Instructions shows platform setup steps with one tab per platform.
// Visibility belongs to the parent; closing calls onClose.
type Instructions struct {
	selected int
	onClose  func()
}

// NewInstructions starts on the tab named platform, or the first tab.
func NewInstructions(platform string, onClose func()) *Instructions {
	m := &Instructions{onClose: onClose}
	for i, g := range guides {
		if g.matches(platform) {
			m.selected = i
		}
	}
	return m
}

// Selected returns the current tab name.
func (m *Instructions) Selected() string { return guides[m.selected].Name }

// Update handles keys while the overlay is visible.
func (m *Instructions) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, instructionKeyMap.Close):
		if m.onClose != nil {
			m.onClose()
		}
	case key.Matches(msg, instructionKeyMap.Next):
		m.selected = (m.selected + 1) % len(guides)
	case key.Matches(msg, instructionKeyMap.Prev):
		m.selected = (m.selected - 1 + len(guides)) % len(guides)
	}
	return nil
}

func (m *Instructions) View() string {
	tabs := make([]string, 0, len(guides))
	for i, g := range guides {
		if i == m.selected {
			tabs = append(tabs, activeTabStyle.Render(g.Name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(g.Name))
		}
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("How To Use These As A Screen Saver"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")
	for i, step := range guides[m.selected].Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")
	b.WriteString(renderFooter([]key.Binding{instructionKeyMap.Prev, instructionKeyMap.Next, instructionKeyMap.Close}, 0))
	return b.String()
}
