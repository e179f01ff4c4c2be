package tui

import (
	"github.com/charmbracelet/lipgloss"

	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
)

type statusModel struct {
	width  int
	height int

	statuses []types.ProtocolStatus
	summary  string
	loaded   bool
	err      error
}

func newStatusModel() statusModel {
	return statusModel{}
}

func (sm *statusModel) setSize(w, h int) {
	sm.width = w
	sm.height = h
}

func (sm *statusModel) setStatuses(statuses []types.ProtocolStatus, summary string) {
	sm.statuses = statuses
	sm.summary = summary
	sm.loaded = true
	sm.err = nil
}

// setError records a failed probe; the next successful probe clears it.
func (sm *statusModel) setError(err error) {
	sm.err = err
}

func (sm *statusModel) View(profile *models.Profile) string {
	var content string
	switch {
	case sm.err != nil:
		content = sm.viewError()
	case !sm.loaded:
		content = sm.viewLoading()
	default:
		content = sm.viewStatuses(profile)
	}
	return forceHeight(content, sm.width, sm.height)
}

func (sm *statusModel) viewError() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("System Proxy"),
		"",
		lipgloss.NewStyle().Foreground(colorRed).Render(sm.err.Error()),
		"",
		dimStyle.Render("Press 'r' to retry"),
	)
	return cardStyle.Width(sm.cardWidth()).Render(content)
}

func (sm *statusModel) viewLoading() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("System Proxy"),
		"",
		dimStyle.Render("Querying networksetup..."),
	)
	return cardStyle.Width(sm.cardWidth()).Render(content)
}

func (sm *statusModel) viewStatuses(profile *models.Profile) string {
	// Per-protocol state card.
	stateRows := make([]string, 0, len(sm.statuses))
	for _, st := range sm.statuses {
		var value string
		if st.Enabled {
			value = successStyle.Render("on") + "  " +
				cardValueStyle.Render(st.Server+":"+st.Port)
		} else {
			value = dimStyle.Render("off")
		}
		stateRows = append(stateRows, sm.row(st.Protocol.Label(), value))
	}
	stateRows = append(stateRows, "", sm.row("Summary", cardValueStyle.Render(sm.summary)))

	stateCard := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{cardTitleStyle.Render("System Proxy")}, stateRows...)...,
	)

	// Profile card.
	profileRows := []string{
		sm.row("Service", cardValueStyle.Render(profile.Service)),
		sm.row("Host", cardValueStyle.Render(profile.Host)),
		sm.row("Protocols", cardValueStyle.Render(profile.ProtocolsString())),
		sm.row("Bypass", cardValueStyle.Render(profile.BypassDomains)),
	}
	profileCard := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{cardTitleStyle.Render("Profile")}, profileRows...)...,
	)

	// Side by side if wide enough.
	if sm.width > 80 {
		halfW := (sm.cardWidth() - 4) / 2
		left := cardStyle.Width(halfW).Render(stateCard)
		right := cardStyle.Width(halfW).Render(profileCard)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	w := sm.cardWidth()
	return lipgloss.JoinVertical(lipgloss.Left,
		cardStyle.Width(w).Render(stateCard),
		cardStyle.Width(w).Render(profileCard),
	)
}

func (sm *statusModel) cardWidth() int {
	w := sm.width - 6
	if w < 30 {
		w = 30
	}
	return w
}

func (sm *statusModel) row(label, value string) string {
	return cardLabelStyle.Render(label+":") + " " + value
}
