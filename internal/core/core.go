package core

import (
	"context"
	"sync"
	"time"

	"setproxy/internal/core/privilege"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/core/types"
	"setproxy/internal/paths"
	"setproxy/internal/storage"
	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

// DefaultTimeout bounds every child-process wait. A hung networksetup or
// helper invocation fails the operation instead of blocking forever.
const DefaultTimeout = 30 * time.Second

// Manager applies the profile to the OS proxy settings and keeps the stored
// Enabled flag in sync with the outcome. Operations are serialized: a second
// enable/disable waits for the first instead of interleaving command
// batches.
type Manager struct {
	mu         sync.Mutex
	store      storage.Storage
	helperPath string
	timeout    time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithHelperPath overrides the helper binary location.
func WithHelperPath(path string) Option {
	return func(m *Manager) { m.helperPath = path }
}

// WithTimeout overrides the per-operation child-process timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// NewManager creates a new Manager.
func NewManager(store storage.Storage, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		helperPath: paths.DefaultHelperPath,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Executor returns the execution path that would be used right now.
func (m *Manager) Executor() privilege.Executor {
	return privilege.Select(m.helperPath)
}

// HelperPath returns the configured helper location.
func (m *Manager) HelperPath() string { return m.helperPath }

// Enable applies the profile's enabled protocols to the OS. The profile's
// Enabled flag becomes true only when every command succeeds; any failure
// forces it false. The flag is persisted either way.
func (m *Manager) Enable(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(profile.Protocols) == 0 {
		return apperrors.ErrNoProtocols
	}
	if profile.Host == "" {
		return apperrors.ErrNoHost
	}

	cmds := sysproxy.BuildEnable(profile)
	err := m.run(ctx, cmds)

	profile.Enabled = err == nil
	m.store.SaveProfile(ctx, profile)
	return err
}

// Disable turns every protocol off, regardless of which were enabled. The
// Enabled flag is forced false whether or not the batch succeeded.
func (m *Manager) Disable(ctx context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmds := sysproxy.BuildDisable(profile.Service)
	err := m.run(ctx, cmds)

	profile.Enabled = false
	m.store.SaveProfile(ctx, profile)
	return err
}

// Status probes the OS per-protocol state and refreshes the profile's
// Enabled flag from it. Persistence of the refreshed flag is best-effort.
// It takes the same lock as Enable/Disable so a periodic probe cannot
// interleave with an in-flight command batch.
func (m *Manager) Status(ctx context.Context, profile *models.Profile) ([]types.ProtocolStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	statuses, err := sysproxy.QueryStatus(ctx, profile.Service)
	if err != nil {
		return nil, err
	}

	profile.Enabled = sysproxy.AnyEnabled(statuses)
	m.store.SaveProfile(ctx, profile)
	return statuses, nil
}

// InstallHelper installs the no-password helper behind one elevated prompt.
func (m *Manager) InstallHelper(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return privilege.InstallHelper(ctx, m.helperPath)
}

// UninstallHelper removes the helper behind one elevated prompt.
func (m *Manager) UninstallHelper(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return privilege.UninstallHelper(ctx, m.helperPath)
}

func (m *Manager) run(ctx context.Context, cmds []sysproxy.Command) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return privilege.Select(m.helperPath).Run(ctx, cmds)
}
