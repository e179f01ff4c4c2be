package storage

import (
	"context"

	"setproxy/internal/storage/models"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Profile operations. GetProfile returns errors.ErrProfileNotFound when
	// nothing has been persisted yet; callers fall back to defaults.
	GetProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error

	// Settings operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetAllSettings(ctx context.Context) (map[string]string, error)

	// Close closes the storage connection
	Close() error
}
