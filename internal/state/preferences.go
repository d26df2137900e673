package state

import (
	"database/sql"
	"errors"
	"time"
)

// GetPreference returns the value stored under key; found is false when the
// key was never written.
func (m *Manager) GetPreference(key string) (value string, found bool, err error) {
	return getPreference(m.db, key)
}

// SetPreference stores value under key, replacing any previous value.
func (m *Manager) SetPreference(key, value string) error {
	return setPreference(m.db, key, value)
}

// DeletePreference removes key. Removing a missing key is not an error.
func (m *Manager) DeletePreference(key string) error {
	_, err := m.db.Exec(`DELETE FROM preferences WHERE key = ?`, key)
	return err
}

func getPreference(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setPreference(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}
