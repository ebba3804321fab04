package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// DefaultProfile is the settings profile used by local play.
const DefaultProfile = "local"

// SaveSettings persists a settings profile as a YAML document.
func (s *Store) SaveSettings(profile string, st config.Settings) error {
	body, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode settings: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (profile, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		profile, string(body),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// LoadSettings returns a stored profile decoded over the defaults.
// The bool is false when the profile has never been saved.
func (s *Store) LoadSettings(profile string) (config.Settings, bool, error) {
	st := config.DefaultSettings()

	var body string
	err := s.db.QueryRow("SELECT body FROM settings WHERE profile = ?", profile).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return st, false, nil
	}
	if err != nil {
		return st, false, fmt.Errorf("storage: cannot query settings: %w", err)
	}

	if err := yaml.Unmarshal([]byte(body), &st); err != nil {
		return config.DefaultSettings(), false, fmt.Errorf("storage: cannot decode settings: %w", err)
	}
	// A tier that no longer exists falls back to normal.
	st.Difficulty, _ = config.ParseTier(string(st.Difficulty))
	return st, true, nil
}
