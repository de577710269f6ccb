package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	. "src.dpm.sh/pkg/store/storedefs"
)

func init() {
	initDB["create the history buckets"] = func(tx *bolt.Tx) error {
		for _, name := range []string{bucketCmd, bucketCmdSession} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}
}

// NextCmdSeq returns the sequence number the next history entry will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmdInSession appends text to the history and returns its sequence
// number. A non-empty session is recorded alongside the entry.
func (s *dbStore) AddCmdInSession(text, session string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		key := marshalSeq(seq)
		if err := b.Put(key, []byte(text)); err != nil {
			return err
		}
		if session == "" {
			return nil
		}
		return tx.Bucket([]byte(bucketCmdSession)).Put(key, []byte(session))
	})
	return int(seq), err
}

// DelCmd deletes the history entry with the given sequence number. Deleting a
// missing entry is not an error.
func (s *dbStore) DelCmd(seq int) error {
	key := marshalSeq(uint64(seq))
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketCmd)).Delete(key); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketCmdSession)).Delete(key)
	})
}

// Cmd returns the text of the history entry with the given sequence number,
// or ErrNoMatchingCmd.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCmd)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns the entries with from <= seq < upto, oldest first.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.eachCmd(from, upto, func(cmd Cmd) {
		cmds = append(cmds, cmd)
	})
	return cmds, err
}

// SessionCmds returns the entries recorded by session, oldest first.
func (s *dbStore) SessionCmds(session string) ([]Cmd, error) {
	var cmds []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		texts := tx.Bucket([]byte(bucketCmd))
		return tx.Bucket([]byte(bucketCmdSession)).ForEach(func(k, v []byte) error {
			if string(v) != session {
				return nil
			}
			if text := texts.Get(k); text != nil {
				cmds = append(cmds, Cmd{Text: string(text), Seq: int(unmarshalSeq(k)), Session: session})
			}
			return nil
		})
	})
	return cmds, err
}

func (s *dbStore) eachCmd(from, upto int, f func(Cmd)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		sessions := tx.Bucket([]byte(bucketCmdSession))
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			f(Cmd{Text: string(v), Seq: int(unmarshalSeq(k)), Session: string(sessions.Get(k))})
		}
		return nil
	})
}

// Keys are big-endian so that bolt's byte order is the numeric order.
func marshalSeq(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
