// Package store defines the permanent storage service.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/deskcalc/deskcalc/pkg/logutil"
	. "github.com/deskcalc/deskcalc/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for history.
type DBStore interface {
	Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file, creating its directory if
// needed.
func NewStore(dbname string) (DBStore, error) {
	if dir := filepath.Dir(dbname); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbname, err)
	}
	return newStore(db)
}

func newStore(db *bolt.DB) (*dbStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("initialized database", db.Path())
	return &dbStore{db}, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
