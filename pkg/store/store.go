// Package store defines the persistent storage service of dpm: the history
// of evaluated lines and variables shared between sessions.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.dpm.sh/pkg/logutil"
	"src.dpm.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketCmd        = "cmd"
	bucketCmdSession = "cmd_session"
	bucketSharedVar  = "shared_var"
)

var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for dpm.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	return bolt.Open(dbname, 0644, &bolt.Options{Timeout: 1 * time.Second})
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
