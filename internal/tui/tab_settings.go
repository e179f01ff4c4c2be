package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingDef defines a setting's display metadata.
type settingDef struct {
	key         string
	label       string
	description string
	defaultVal  string
}

var settingDefs = []settingDef{
	{key: "command_timeout_ms", label: "Command Timeout", description: "Timeout for networksetup batches (ms)", defaultVal: "30000"},
	{key: "test_timeout_ms", label: "Test Timeout", description: "Connectivity test timeout (ms)", defaultVal: "10000"},
	{key: "test_url", label: "Test URL", description: "URL fetched through the proxy", defaultVal: "http://www.gstatic.com/generate_204"},
}

type settingsModel struct {
	settings map[string]string
	cursor   int
	editing  bool
	input    textinput.Model
	width    int
	height   int
}

func newSettingsModel() settingsModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPurple)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorFg)

	return settingsModel{
		settings: make(map[string]string),
		input:    ti,
	}
}

func (sm *settingsModel) setSize(w, h int) {
	sm.width = w
	sm.height = h
	sm.input.Width = w / 2
}

func (sm *settingsModel) setSettings(s map[string]string) {
	sm.settings = s
}

func (sm *settingsModel) currentDef() settingDef {
	if sm.cursor >= 0 && sm.cursor < len(settingDefs) {
		return settingDefs[sm.cursor]
	}
	return settingDefs[0]
}

func (sm *settingsModel) currentValue() string {
	def := sm.currentDef()
	if v, ok := sm.settings[def.key]; ok {
		return v
	}
	return def.defaultVal
}

func (sm *settingsModel) Update(msg tea.Msg, root *Model) tea.Cmd {
	if sm.editing {
		return sm.updateEditing(msg, root)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if sm.cursor > 0 {
				sm.cursor--
			}
		case "down", "j":
			if sm.cursor < len(settingDefs)-1 {
				sm.cursor++
			}
		case "enter":
			sm.editing = true
			sm.input.SetValue(sm.currentValue())
			sm.input.Focus()
			return textinput.Blink
		}
	}
	return nil
}

func (sm *settingsModel) updateEditing(msg tea.Msg, root *Model) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			sm.editing = false
			sm.input.Blur()
			return nil
		case msg.String() == "enter":
			sm.editing = false
			sm.input.Blur()
			def := sm.currentDef()
			val := strings.TrimSpace(sm.input.Value())
			sm.settings[def.key] = val
			return saveSetting(root.store, def.key, val)
		}
	}

	var cmd tea.Cmd
	sm.input, cmd = sm.input.Update(msg)
	return cmd
}

func (sm *settingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	for i, def := range settingDefs {
		isSelected := i == sm.cursor

		val := def.defaultVal
		if v, ok := sm.settings[def.key]; ok {
			val = v
		}

		var line string
		if isSelected {
			label := lipgloss.NewStyle().Bold(true).Foreground(colorPurple).Width(18).Render("> " + def.label)
			if sm.editing {
				line = label + sm.input.View()
			} else {
				line = label + lipgloss.NewStyle().Foreground(colorFg).Render(val)
			}
		} else {
			label := lipgloss.NewStyle().Foreground(colorFg).Width(18).Render("  " + def.label)
			line = label + lipgloss.NewStyle().Foreground(colorDimFg).Render(val)
		}

		b.WriteString(line + "\n")

		if isSelected && !sm.editing {
			hint := fmt.Sprintf("%s  (enter to edit, default: %s)", def.description, def.defaultVal)
			b.WriteString(lipgloss.NewStyle().
				Foreground(colorDimFg).
				PaddingLeft(2).
				Render("  "+hint) + "\n")
		}
	}

	return forceHeight(b.String(), sm.width, sm.height)
}
