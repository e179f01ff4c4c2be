package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"setproxy/internal/core"
	"setproxy/internal/core/sysproxy"
	"setproxy/internal/paths"
	"setproxy/internal/storage"
	"setproxy/internal/storage/models"
	"setproxy/internal/storage/sqlite"
)

// App represents the application context
type App struct {
	Storage storage.Storage
	Profile *models.Profile
	Manager *core.Manager
	Config  *Config
}

// Config represents application configuration
type Config struct {
	DBPath     string
	HelperPath string
}

// New creates a new application instance
func New() (*App, error) {
	dataDir, err := paths.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "setproxy.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	// Missing or undecodable record keeps hardcoded defaults, silently.
	profile, err := store.GetProfile(ctx)
	if err != nil || profile == nil {
		profile = models.Default()
	}

	opts := []core.Option{core.WithHelperPath(paths.DefaultHelperPath)}
	if v, err := store.GetSetting(ctx, "command_timeout_ms"); err == nil {
		if ms, perr := strconv.ParseInt(v, 10, 64); perr == nil && ms > 0 {
			opts = append(opts, core.WithTimeout(time.Duration(ms)*time.Millisecond))
		}
	}
	manager := core.NewManager(store, opts...)

	app := &App{
		Storage: store,
		Profile: profile,
		Manager: manager,
		Config: &Config{
			DBPath:     dbPath,
			HelperPath: paths.DefaultHelperPath,
		},
	}

	// Refresh the service list once at startup; when the configured service
	// disappeared, fall back to the first available one. Best-effort — on a
	// machine without networksetup this is a no-op.
	app.refreshService(ctx)

	return app, nil
}

// Close closes the application and releases resources
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}

// SaveProfile persists the current profile. Persistence is fire-and-forget
// for callers that ignore the error.
func (a *App) SaveProfile(ctx context.Context) error {
	return a.Storage.SaveProfile(ctx, a.Profile)
}

func (a *App) refreshService(ctx context.Context) {
	listCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	services, err := sysproxy.ListServices(listCtx)
	if err != nil {
		return
	}
	if picked, changed := sysproxy.PickService(a.Profile.Service, services); changed {
		a.Profile.Service = picked
		a.Storage.SaveProfile(ctx, a.Profile)
	}
}
