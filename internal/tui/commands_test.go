package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setproxy/internal/core"
	"setproxy/internal/core/types"
	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

// stubStore records saves in memory.
type stubStore struct {
	saved    *models.Profile
	settings map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{settings: make(map[string]string)}
}

func (s *stubStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	if s.saved == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return s.saved, nil
}

func (s *stubStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	copied := *p
	s.saved = &copied
	return nil
}

func (s *stubStore) GetSetting(ctx context.Context, key string) (string, error) {
	v, ok := s.settings[key]
	if !ok {
		return "", apperrors.ErrProfileNotFound
	}
	return v, nil
}

func (s *stubStore) SetSetting(ctx context.Context, key, value string) error {
	s.settings[key] = value
	return nil
}

func (s *stubStore) GetAllSettings(ctx context.Context) (map[string]string, error) {
	return s.settings, nil
}

func (s *stubStore) Close() error { return nil }

func TestSnapshotProfileIsIndependent(t *testing.T) {
	profile := models.Default()
	snapshot := snapshotProfile(profile)

	profile.Host = "10.0.0.9"
	profile.Protocols[0] = types.ProtocolSOCKS5

	assert.Equal(t, "127.0.0.1", snapshot.Host)
	assert.Equal(t, []types.Protocol{types.ProtocolHTTP}, snapshot.Protocols)
}

func TestEnableProxyLeavesModelProfileUntouched(t *testing.T) {
	store := newStubStore()
	mgr := core.NewManager(store, core.WithHelperPath("/bin/echo"), core.WithTimeout(5*time.Second))
	profile := models.Default()

	msg, ok := enableProxy(mgr, profile)().(opResultMsg)
	require.True(t, ok)

	require.NoError(t, msg.err)
	assert.True(t, msg.enabled)
	// The flag travels back in the message and is applied in Update, never
	// written by the command goroutine.
	assert.False(t, profile.Enabled)
}

func TestDisableProxyReportsFlag(t *testing.T) {
	store := newStubStore()
	mgr := core.NewManager(store, core.WithHelperPath("/bin/echo"), core.WithTimeout(5*time.Second))
	profile := models.Default()
	profile.Enabled = true

	msg, ok := disableProxy(mgr, profile)().(opResultMsg)
	require.True(t, ok)

	require.NoError(t, msg.err)
	assert.False(t, msg.enabled)
	assert.True(t, profile.Enabled, "model copy stays untouched")
}

func TestSaveProfileUsesSnapshot(t *testing.T) {
	store := newStubStore()
	profile := models.Default()

	cmd := saveProfile(store, profile)
	profile.Host = "10.0.0.9" // edit after scheduling must not leak into the save

	msg, ok := cmd().(profileSavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	require.NotNil(t, store.saved)
	assert.Equal(t, "127.0.0.1", store.saved.Host)
}
