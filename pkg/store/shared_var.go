package store

import (
	bolt "go.etcd.io/bbolt"
	. "src.dpm.sh/pkg/store/storedefs"
)

func init() {
	initDB["create the shared variable bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSharedVar))
		return err
	}
}

func (s *dbStore) SharedVar(name string) (string, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSharedVar)).Get([]byte(name))
		if v == nil {
			return ErrNoVar
		}
		// v is only valid during the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	return string(value), err
}

func (s *dbStore) SetSharedVar(name, value string) error {
	return s.update(bucketSharedVar, func(b *bolt.Bucket) error {
		return b.Put([]byte(name), []byte(value))
	})
}

// DelSharedVar deletes a shared variable. Deleting a missing variable is not
// an error.
func (s *dbStore) DelSharedVar(name string) error {
	return s.update(bucketSharedVar, func(b *bolt.Bucket) error {
		return b.Delete([]byte(name))
	})
}

// SharedVarNames returns the names of all shared variables in lexical order.
func (s *dbStore) SharedVarNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSharedVar)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (s *dbStore) update(bucket string, f func(*bolt.Bucket) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return f(tx.Bucket([]byte(bucket)))
	})
}
