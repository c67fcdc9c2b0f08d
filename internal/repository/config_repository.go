package repository // repository for site feature flags

import (
	"context"
	"database/sql"
)

// ConfigStore reads and writes the site_config feature flags.
type ConfigStore interface {
	Get(ctx context.Context, key string) (string, error)
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// ConfigRepo persists feature flags in MySQL. Flags are tiny and read
// on nearly every page load; the response cache middleware keeps the
// hot path off the database.
type ConfigRepo struct {
	db *sql.DB
}

// NewConfigRepo constructs a ConfigRepo given a DB handle.
func NewConfigRepo(db *sql.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

// Get returns the value for one key, or ErrNotFound when the key was
// never seeded.
func (r *ConfigRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT config_value FROM site_config WHERE config_key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// All returns every configured flag.
func (r *ConfigRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT config_key, config_value FROM site_config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	flags := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		flags[k] = v
	}
	return flags, rows.Err()
}

// Set upserts one flag, keeping the at-most-one-row-per-key invariant
// in the database rather than in application code.
func (r *ConfigRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO site_config (config_key, config_value) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE config_value = VALUES(config_value)`,
		key, value)
	return err
}
