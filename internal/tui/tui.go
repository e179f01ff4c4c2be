package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"setproxy/internal/core"
	"setproxy/internal/storage"
	"setproxy/internal/storage/models"
)

// Tab indices.
const (
	tabProfile  = 0
	tabStatus   = 1
	tabSettings = 2
	tabCount    = 3
)

// Model is the root BubbleTea model.
type Model struct {
	// Dependencies.
	store   storage.Storage
	profile *models.Profile
	manager *core.Manager

	// Dimensions.
	width  int
	height int

	// Navigation.
	activeTab int
	showHelp  bool

	// Operation state. While busy, enable/disable/test keys are ignored so
	// command batches never interleave.
	busy bool

	// Tab models.
	profileTab  profileModel
	statusTab   statusModel
	settingsTab settingsModel

	// Notification: only the latest message is kept.
	notification    string
	notificationErr bool
	notifVersion    int

	// Spinner for async operations.
	spinner spinner.Model
}

// Deps holds all dependencies injected into the TUI.
type Deps struct {
	Storage storage.Storage
	Profile *models.Profile
	Manager *core.Manager
}

// NewModel creates a new root Model.
func NewModel(deps Deps) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return &Model{
		store:       deps.Storage,
		profile:     deps.Profile,
		manager:     deps.Manager,
		activeTab:   tabProfile,
		spinner:     s,
		profileTab:  newProfileModel(deps.Profile),
		statusTab:   newStatusModel(),
		settingsTab: newSettingsModel(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		loadStatus(m.manager, m.profile),
		loadServices(),
		loadSettings(m.store),
		m.spinner.Tick,
		statusTick(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	prevNotifVersion := m.notifVersion

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ch := m.contentHeight()
		m.profileTab.setSize(msg.Width, ch)
		m.statusTab.setSize(msg.Width, ch)
		m.settingsTab.setSize(msg.Width, ch)
		return m, nil

	case tea.KeyMsg:
		if cmd := m.handleGlobalKey(msg); cmd != nil {
			return m, cmd
		}

	// Data loading.
	case statusLoadedMsg:
		if msg.err != nil {
			m.statusTab.setError(msg.err)
			m.setNotification(fmt.Sprintf("Status probe failed: %v", msg.err), true)
		} else {
			m.statusTab.setStatuses(msg.statuses, msg.summary)
			m.profile.Enabled = msg.enabled
		}
	case servicesLoadedMsg:
		if msg.err != nil {
			m.setNotification(fmt.Sprintf("Service listing failed: %v", msg.err), true)
		} else {
			m.profileTab.setServices(msg.services)
		}
	case settingsLoadedMsg:
		if msg.err != nil {
			m.setNotification(fmt.Sprintf("Loading settings failed: %v", msg.err), true)
		} else {
			m.settingsTab.setSettings(msg.settings)
		}

	// Operations.
	case opResultMsg:
		m.busy = false
		m.profile.Enabled = msg.enabled
		if msg.err != nil {
			m.setNotification(fmt.Sprintf("%s failed: %v", msg.action, msg.err), true)
		} else {
			m.setNotification(fmt.Sprintf("Proxy %sd", msg.action), false)
		}
		cmds = append(cmds, loadStatus(m.manager, m.profile))
	case testResultMsg:
		m.busy = false
		m.setNotification(msg.result.Summary(), msg.result.Err != nil)

	// Persistence.
	case profileSavedMsg:
		if msg.err != nil {
			m.setNotification(fmt.Sprintf("Save failed: %v", msg.err), true)
		}
	case settingSavedMsg:
		if msg.err != nil {
			m.setNotification(fmt.Sprintf("Save failed: %v", msg.err), true)
		} else {
			m.setNotification(fmt.Sprintf("Saved %s", msg.key), false)
		}

	// Status polling.
	case statusTickMsg:
		if !m.busy {
			cmds = append(cmds, loadStatus(m.manager, m.profile))
		}
		cmds = append(cmds, statusTick())

	// Notification.
	case clearNotificationMsg:
		if msg.version == m.notifVersion {
			m.notification = ""
			m.notificationErr = false
		}
	}

	// Spinner.
	if m.busy {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Schedule notification auto-clear when a new notification was set.
	if m.notifVersion > prevNotifVersion && m.notification != "" {
		cmds = append(cmds, clearNotification(4*time.Second, m.notifVersion))
	}

	// Delegate to the active tab. The status tab is display-only and has no
	// input of its own.
	switch m.activeTab {
	case tabProfile:
		cmds = append(cmds, m.profileTab.Update(msg, m))
	case tabSettings:
		cmds = append(cmds, m.settingsTab.Update(msg, m))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := renderHeader(m.activeTab, m.profile.Enabled, m.busy, m.width)

	var content string
	switch m.activeTab {
	case tabProfile:
		content = m.profileTab.View()
	case tabStatus:
		content = m.statusTab.View(m.profile)
	case tabSettings:
		content = m.settingsTab.View()
	}

	var notif string
	switch {
	case m.busy:
		notif = m.spinner.View() + dimStyle.Render(" working...")
	case m.notification != "":
		if m.notificationErr {
			notif = notifErrorStyle.Render("! " + m.notification)
		} else {
			notif = notifSuccessStyle.Render("* " + m.notification)
		}
	}

	helpText := renderHelpBar(m.showHelp)
	footer := renderFooter(helpText, m.width)

	parts := []string{header}
	if notif != "" {
		parts = append(parts, notif)
	}
	parts = append(parts, content, footer)
	output := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Force exactly m.height lines to prevent BubbleTea rendering drift.
	return forceHeight(output, m.width, m.height)
}

// forceHeight ensures the string has exactly `height` lines, each padded to
// `width`. This prevents BubbleTea from leaving ghost lines when switching
// tabs.
func forceHeight(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	blank := strings.Repeat(" ", width)
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) contentHeight() int {
	overhead := 5
	if m.showHelp {
		overhead += 2
	}
	h := m.height - overhead
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	// Don't intercept while a text field is being edited.
	if m.activeTab == tabProfile && m.profileTab.editing {
		return nil
	}
	if m.activeTab == tabSettings && m.settingsTab.editing {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return nil

	case key.Matches(msg, keys.TabNext):
		m.activeTab = (m.activeTab + 1) % tabCount
		return nil

	case key.Matches(msg, keys.TabPrev):
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		return nil

	case key.Matches(msg, keys.Enable):
		if !m.busy {
			m.busy = true
			return enableProxy(m.manager, m.profile)
		}
		return nil

	case key.Matches(msg, keys.Disable):
		if !m.busy {
			m.busy = true
			return disableProxy(m.manager, m.profile)
		}
		return nil

	case key.Matches(msg, keys.Test):
		if !m.busy {
			m.busy = true
			return runTest(m.store, m.profile)
		}
		return nil

	case key.Matches(msg, keys.Refresh):
		return tea.Batch(
			loadStatus(m.manager, m.profile),
			loadServices(),
			loadSettings(m.store),
		)
	}

	return nil
}

func (m *Model) setNotification(text string, isErr bool) {
	m.notification = text
	m.notificationErr = isErr
	m.notifVersion++
}

// NewProgram creates a bubbletea program with alt screen.
func NewProgram(deps Deps) *tea.Program {
	m := NewModel(deps)
	return tea.NewProgram(m, tea.WithAltScreen())
}
