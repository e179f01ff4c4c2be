package tui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"setproxy/internal/conncheck"
	"setproxy/internal/core"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/core/types"
	"setproxy/internal/storage"
	"setproxy/internal/storage/models"
)

// Commands that touch the profile take a snapshot at creation time, on the
// UI goroutine. The background goroutine only ever sees the snapshot;
// refreshed state travels back inside the message and is applied in Update.

// snapshotProfile deep-copies the profile, including the protocol slice.
func snapshotProfile(p *models.Profile) *models.Profile {
	snapshot := *p
	snapshot.Protocols = append([]types.Protocol(nil), p.Protocols...)
	return &snapshot
}

// loadStatus probes the per-protocol proxy state.
func loadStatus(mgr *core.Manager, profile *models.Profile) tea.Cmd {
	snapshot := snapshotProfile(profile)
	return func() tea.Msg {
		ctx := context.Background()
		statuses, err := mgr.Status(ctx, snapshot)
		if err != nil {
			return statusLoadedMsg{err: err}
		}
		return statusLoadedMsg{
			statuses: statuses,
			summary:  sysproxy.Summary(statuses),
			enabled:  snapshot.Enabled,
		}
	}
}

// loadServices enumerates network services for the profile tab's service
// selector.
func loadServices() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		services, err := sysproxy.ListServices(ctx)
		return servicesLoadedMsg{services: services, err: err}
	}
}

// loadSettings fetches all application settings.
func loadSettings(store storage.Storage) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		settings, err := store.GetAllSettings(ctx)
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

// enableProxy applies the profile to the OS.
func enableProxy(mgr *core.Manager, profile *models.Profile) tea.Cmd {
	snapshot := snapshotProfile(profile)
	return func() tea.Msg {
		err := mgr.Enable(context.Background(), snapshot)
		return opResultMsg{action: "enable", enabled: snapshot.Enabled, err: err}
	}
}

// disableProxy turns every protocol off.
func disableProxy(mgr *core.Manager, profile *models.Profile) tea.Cmd {
	snapshot := snapshotProfile(profile)
	return func() tea.Msg {
		err := mgr.Disable(context.Background(), snapshot)
		return opResultMsg{action: "disable", enabled: snapshot.Enabled, err: err}
	}
}

// runTest issues one request through the configured proxy.
func runTest(store storage.Storage, profile *models.Profile) tea.Cmd {
	snapshot := snapshotProfile(profile)
	return func() tea.Msg {
		ctx := context.Background()

		timeout := 10 * time.Second
		if v, err := store.GetSetting(ctx, "test_timeout_ms"); err == nil {
			if ms, perr := strconv.ParseInt(v, 10, 64); perr == nil && ms > 0 {
				timeout = time.Duration(ms) * time.Millisecond
			}
		}
		testURL := ""
		if v, err := store.GetSetting(ctx, "test_url"); err == nil {
			testURL = v
		}

		tester := conncheck.NewTester(conncheck.TesterConfig{
			Timeout: timeout,
			TestURL: testURL,
		})
		return testResultMsg{result: tester.TestProfile(ctx, snapshot)}
	}
}

// saveProfile persists the profile after an edit.
func saveProfile(store storage.Storage, profile *models.Profile) tea.Cmd {
	snapshot := snapshotProfile(profile)
	return func() tea.Msg {
		ctx := context.Background()
		return profileSavedMsg{err: store.SaveProfile(ctx, snapshot)}
	}
}

// saveSetting saves a single setting.
func saveSetting(store storage.Storage, key, value string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		err := store.SetSetting(ctx, key, value)
		return settingSavedMsg{key: key, err: err}
	}
}

// statusTick returns a tea.Cmd that fires after 5 seconds.
func statusTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// clearNotification returns a command that fires after a delay.
func clearNotification(d time.Duration, version int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNotificationMsg{version: version}
	})
}
