package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"setproxy/internal/storage/models"
	apperrors "setproxy/pkg/errors"
)

// DB implements the Storage interface using SQLite
type DB struct {
	db *sql.DB
}

// New creates a new SQLite storage instance
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &DB{db: db}

	// Run migrations
	if err := runMigrations(store); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// ─── Profile operations ─────────────────────────────────────────────────────

func (d *DB) GetProfile(ctx context.Context) (*models.Profile, error) {
	query := `
		SELECT id, host, http_port, https_port, socks_port, enabled,
		       protocols, service, bypass_domains, created_at, updated_at
		FROM profile WHERE id = 1
	`
	profile := &models.Profile{}
	var protocols string
	err := d.db.QueryRowContext(ctx, query).Scan(
		&profile.ID, &profile.Host, &profile.HTTPPort, &profile.HTTPSPort,
		&profile.SOCKSPort, &profile.Enabled, &protocols, &profile.Service,
		&profile.BypassDomains, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	profile.Protocols = models.ParseProtocols(protocols)
	return profile, nil
}

func (d *DB) SaveProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profile (id, host, http_port, https_port, socks_port, enabled, protocols, service, bypass_domains)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			host = excluded.host,
			http_port = excluded.http_port,
			https_port = excluded.https_port,
			socks_port = excluded.socks_port,
			enabled = excluded.enabled,
			protocols = excluded.protocols,
			service = excluded.service,
			bypass_domains = excluded.bypass_domains
	`
	_, err := d.db.ExecContext(ctx, query,
		profile.Host, profile.HTTPPort, profile.HTTPSPort, profile.SOCKSPort,
		profile.Enabled, profile.ProtocolsString(), profile.Service,
		profile.BypassDomains,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	profile.ID = 1
	return nil
}

// ─── Settings operations ────────────────────────────────────────────────────

func (d *DB) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("setting not found: %s", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (d *DB) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := d.db.ExecContext(ctx, query, key, value)
	return err
}

func (d *DB) GetAllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
