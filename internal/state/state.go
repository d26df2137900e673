// Package state persists small client-side preferences in SQLite.
package state

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "lofi"
	dbFileName = "lofi.db"
)

// Interface is the preference store used by the app.
type Interface interface {
	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error
	DeletePreference(key string) error
	Close() error
}

var _ Interface = (*Manager)(nil)

// Manager is the SQLite-backed store.
type Manager struct {
	db *sql.DB
}

// Open opens the store at its XDG data location.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at dbPath, creating it if needed.
func OpenPath(dbPath string) (*Manager, error) {
	// Ensure directory exists
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection so :memory: databases are shared by every query.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	return m.db.Close()
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
