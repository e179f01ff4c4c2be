package sqlite

const schema = `
-- Single proxy profile record (id is always 1)
CREATE TABLE IF NOT EXISTS profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    host TEXT NOT NULL,
    http_port TEXT NOT NULL,
    https_port TEXT NOT NULL,
    socks_port TEXT NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT 0,
    protocols TEXT NOT NULL,
    service TEXT NOT NULL,
    bypass_domains TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Application settings
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Triggers for updated_at
CREATE TRIGGER IF NOT EXISTS update_profile_timestamp AFTER UPDATE ON profile
BEGIN
    UPDATE profile SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
END;

CREATE TRIGGER IF NOT EXISTS update_settings_timestamp AFTER UPDATE ON settings
BEGIN
    UPDATE settings SET updated_at = CURRENT_TIMESTAMP WHERE key = NEW.key;
END;
`

// runMigrations applies the schema. Statements are idempotent so this is
// safe to run on every startup.
func runMigrations(d *DB) error {
	_, err := d.db.Exec(schema)
	return err
}
