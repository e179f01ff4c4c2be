package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

// fakeStore records profile saves without touching disk.
type fakeStore struct {
	saved    *models.Profile
	saves    int
	settings map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: make(map[string]string)}
}

func (f *fakeStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	if f.saved == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return f.saved, nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	copied := *p
	f.saved = &copied
	f.saves++
	return nil
}

func (f *fakeStore) GetSetting(ctx context.Context, key string) (string, error) {
	v, ok := f.settings[key]
	if !ok {
		return "", apperrors.ErrProfileNotFound
	}
	return v, nil
}

func (f *fakeStore) SetSetting(ctx context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func (f *fakeStore) GetAllSettings(ctx context.Context) (map[string]string, error) {
	return f.settings, nil
}

func (f *fakeStore) Close() error { return nil }

func TestEnableNoProtocols(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store)

	profile := models.Default()
	profile.Protocols = nil

	err := mgr.Enable(context.Background(), profile)
	assert.ErrorIs(t, err, apperrors.ErrNoProtocols)
	assert.Zero(t, store.saves, "validation failures must not persist")
}

func TestEnableNoHost(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store)

	profile := models.Default()
	profile.Host = ""

	err := mgr.Enable(context.Background(), profile)
	assert.ErrorIs(t, err, apperrors.ErrNoHost)
}

func TestEnablePersistsFlagOnSuccess(t *testing.T) {
	store := newFakeStore()
	// /bin/echo stands in for the helper: every command "succeeds".
	mgr := NewManager(store, WithHelperPath("/bin/echo"), WithTimeout(5*time.Second))

	profile := models.Default()
	require.NoError(t, mgr.Enable(context.Background(), profile))

	assert.True(t, profile.Enabled)
	require.NotNil(t, store.saved)
	assert.True(t, store.saved.Enabled)
}

func TestEnableForcesFlagFalseOnFailure(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, WithHelperPath("/bin/false"), WithTimeout(5*time.Second))

	profile := models.Default()
	profile.Enabled = true

	err := mgr.Enable(context.Background(), profile)
	require.Error(t, err)

	assert.False(t, profile.Enabled)
	require.NotNil(t, store.saved)
	assert.False(t, store.saved.Enabled)
}

func TestDisableForcesFlagFalse(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, WithHelperPath("/bin/echo"), WithTimeout(5*time.Second))

	profile := models.Default()
	profile.Enabled = true

	require.NoError(t, mgr.Disable(context.Background(), profile))
	assert.False(t, profile.Enabled)
	require.NotNil(t, store.saved)
	assert.False(t, store.saved.Enabled)
}

// Enable and Disable hammer the same profile from many goroutines; the
// manager's lock must keep the flag writes and saves from interleaving.
// Meaningful under the race detector.
func TestConcurrentEnableDisable(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, WithHelperPath("/bin/echo"), WithTimeout(5*time.Second))
	profile := models.Default()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			mgr.Enable(context.Background(), profile)
		}()
		go func() {
			defer wg.Done()
			mgr.Disable(context.Background(), profile)
		}()
	}
	wg.Wait()

	require.NotNil(t, store.saved)
	assert.Equal(t, 16, store.saves)
}

func TestExecutorSelection(t *testing.T) {
	store := newFakeStore()

	mgr := NewManager(store, WithHelperPath("/bin/echo"))
	assert.Equal(t, "helper", mgr.Executor().Name())

	mgr = NewManager(store, WithHelperPath("/nonexistent/helper"))
	assert.Equal(t, "osascript", mgr.Executor().Name())
}
