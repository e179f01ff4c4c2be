package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
)

// fieldKind distinguishes free-text fields from toggles and choice fields.
type fieldKind int

const (
	fieldText   fieldKind = iota // Free-text input (host, ports, bypass).
	fieldToggle                  // Protocol on/off.
	fieldChoice                  // Cycle through network services.
)

// fieldDef describes one editable row of the profile tab.
type fieldDef struct {
	label       string
	description string
	kind        fieldKind
	protocol    types.Protocol // Only for fieldToggle.

	get func(*models.Profile) string
	set func(*models.Profile, string)
}

var fieldDefs = []fieldDef{
	{
		label:       "Host",
		description: "Proxy server address",
		kind:        fieldText,
		get:         func(p *models.Profile) string { return p.Host },
		set:         func(p *models.Profile, v string) { p.Host = v },
	},
	{
		label:       "HTTP port",
		description: "Port for the HTTP proxy",
		kind:        fieldText,
		get:         func(p *models.Profile) string { return p.HTTPPort },
		set:         func(p *models.Profile, v string) { p.HTTPPort = v },
	},
	{
		label:       "HTTPS port",
		description: "Port for the HTTPS proxy",
		kind:        fieldText,
		get:         func(p *models.Profile) string { return p.HTTPSPort },
		set:         func(p *models.Profile, v string) { p.HTTPSPort = v },
	},
	{
		label:       "SOCKS5 port",
		description: "Port for the SOCKS5 proxy",
		kind:        fieldText,
		get:         func(p *models.Profile) string { return p.SOCKSPort },
		set:         func(p *models.Profile, v string) { p.SOCKSPort = v },
	},
	{
		label:       "HTTP",
		description: "Include HTTP when enabling",
		kind:        fieldToggle,
		protocol:    types.ProtocolHTTP,
	},
	{
		label:       "HTTPS",
		description: "Include HTTPS when enabling",
		kind:        fieldToggle,
		protocol:    types.ProtocolHTTPS,
	},
	{
		label:       "SOCKS5",
		description: "Include SOCKS5 when enabling",
		kind:        fieldToggle,
		protocol:    types.ProtocolSOCKS5,
	},
	{
		label:       "Service",
		description: "Network service to configure",
		kind:        fieldChoice,
		get:         func(p *models.Profile) string { return p.Service },
		set:         func(p *models.Profile, v string) { p.Service = v },
	},
	{
		label:       "Bypass",
		description: "Comma-separated bypass domains",
		kind:        fieldText,
		get:         func(p *models.Profile) string { return p.BypassDomains },
		set:         func(p *models.Profile, v string) { p.BypassDomains = v },
	},
}

type profileModel struct {
	profile  *models.Profile
	services []string

	cursor  int
	editing bool
	input   textinput.Model

	width  int
	height int
}

func newProfileModel(profile *models.Profile) profileModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPurple)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorFg)

	return profileModel{
		profile: profile,
		input:   ti,
	}
}

func (pm *profileModel) setSize(w, h int) {
	pm.width = w
	pm.height = h
	pm.input.Width = w / 2
}

func (pm *profileModel) setServices(services []string) {
	pm.services = services
}

func (pm *profileModel) currentDef() fieldDef {
	if pm.cursor >= 0 && pm.cursor < len(fieldDefs) {
		return fieldDefs[pm.cursor]
	}
	return fieldDefs[0]
}

func (pm *profileModel) Update(msg tea.Msg, root *Model) tea.Cmd {
	if pm.editing {
		return pm.updateEditing(msg, root)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		def := pm.currentDef()

		switch msg.String() {
		case "up", "k":
			if pm.cursor > 0 {
				pm.cursor--
			}
		case "down", "j":
			if pm.cursor < len(fieldDefs)-1 {
				pm.cursor++
			}
		case "enter":
			switch def.kind {
			case fieldToggle:
				pm.toggleProtocol(def.protocol)
				return saveProfile(root.store, pm.profile)
			case fieldChoice:
				return pm.cycleService(root, 1)
			default:
				pm.editing = true
				pm.input.SetValue(def.get(pm.profile))
				pm.input.Focus()
				return textinput.Blink
			}
		case "left", "h":
			if def.kind == fieldChoice {
				return pm.cycleService(root, -1)
			}
		case "right", "l":
			if def.kind == fieldChoice {
				return pm.cycleService(root, 1)
			}
		}
	}
	return nil
}

// toggleProtocol adds or removes the protocol, keeping the canonical order.
// Always builds a fresh slice: pending command snapshots may still alias the
// old backing array.
func (pm *profileModel) toggleProtocol(proto types.Protocol) {
	if pm.profile.HasProtocol(proto) {
		kept := make([]types.Protocol, 0, len(pm.profile.Protocols))
		for _, p := range pm.profile.Protocols {
			if p != proto {
				kept = append(kept, p)
			}
		}
		pm.profile.Protocols = kept
		return
	}
	var next []types.Protocol
	for _, p := range types.All() {
		if p == proto || pm.profile.HasProtocol(p) {
			next = append(next, p)
		}
	}
	pm.profile.Protocols = next
}

// cycleService moves to the next/prev network service and saves it.
func (pm *profileModel) cycleService(root *Model, dir int) tea.Cmd {
	if len(pm.services) == 0 {
		return nil
	}
	idx := 0
	for i, svc := range pm.services {
		if svc == pm.profile.Service {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(pm.services)) % len(pm.services)
	pm.profile.Service = pm.services[idx]
	return saveProfile(root.store, pm.profile)
}

func (pm *profileModel) updateEditing(msg tea.Msg, root *Model) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			pm.editing = false
			pm.input.Blur()
			return nil
		case msg.String() == "enter":
			pm.editing = false
			pm.input.Blur()
			def := pm.currentDef()
			def.set(pm.profile, strings.TrimSpace(pm.input.Value()))
			return saveProfile(root.store, pm.profile)
		}
	}

	var cmd tea.Cmd
	pm.input, cmd = pm.input.Update(msg)
	return cmd
}

func (pm *profileModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")

	for i, def := range fieldDefs {
		isSelected := i == pm.cursor

		var val string
		switch def.kind {
		case fieldToggle:
			if pm.profile.HasProtocol(def.protocol) {
				val = "on"
			} else {
				val = "off"
			}
		default:
			val = def.get(pm.profile)
		}

		var line string
		if isSelected {
			label := lipgloss.NewStyle().Bold(true).Foreground(colorPurple).Width(16).Render("> " + def.label)
			switch {
			case pm.editing:
				line = label + pm.input.View()
			case def.kind == fieldToggle:
				line = label + pm.renderToggle(val)
			default:
				line = label + lipgloss.NewStyle().Foreground(colorFg).Render(val)
			}
		} else {
			label := lipgloss.NewStyle().Foreground(colorFg).Width(16).Render("  " + def.label)
			if def.kind == fieldToggle && val == "on" {
				line = label + successStyle.Render(val)
			} else {
				line = label + lipgloss.NewStyle().Foreground(colorDimFg).Render(val)
			}
		}

		b.WriteString(line + "\n")

		if isSelected && !pm.editing {
			hint := def.description
			switch def.kind {
			case fieldToggle:
				hint += "  (enter to toggle)"
			case fieldChoice:
				hint += "  (enter/arrows to change)"
			default:
				hint += "  (enter to edit)"
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(colorDimFg).
				PaddingLeft(2).
				Render("  "+hint) + "\n")
		}
	}

	return forceHeight(b.String(), pm.width, pm.height)
}

func (pm *profileModel) renderToggle(val string) string {
	if val == "on" {
		return successStyle.Render("[on]") + dimStyle.Render(" off ")
	}
	return dimStyle.Render(" on ") + lipgloss.NewStyle().Bold(true).Foreground(colorRed).Render("[off]")
}
