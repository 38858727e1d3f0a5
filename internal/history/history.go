// Package history records performed rotations in a BoltDB file.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketRotations = []byte("rotations")
)

// Record is one rotation as it was performed.
type Record struct {
	ID     uint64          `json:"id"`
	Source string          `json:"source"`
	Name   string          `json:"name,omitempty"`
	D      int             `json:"d"`
	Shift  int             `json:"shift"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
	At     time.Time       `json:"at"`
}

type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

// Open opens or creates the history file described by config.
// It panics if the file cannot be opened.
func Open(config Config) *Store {
	if config.File == "" {
		panic("history: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		panic(fmt.Errorf("history: create db dir: %w", err))
	}

	db, err := bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		panic(fmt.Errorf("history: open bbolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRotations)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRotations, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		panic(fmt.Errorf("history: initialize buckets: %w", err))
	}

	return &Store{
		db:  db,
		now: time.Now,
	}
}

func (s *Store) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("history: close bbolt db: %w", err)
	}
	return nil
}

var _ io.Closer = (*Store)(nil)

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Add stores a rotation of before into after and returns its id.
func (s *Store) Add(source, name string, d, shift int, before, after any) (uint64, error) {
	b, err := json.Marshal(before)
	if err != nil {
		return 0, fmt.Errorf("history: marshal input of %q: %w", name, err)
	}
	a, err := json.Marshal(after)
	if err != nil {
		return 0, fmt.Errorf("history: marshal output of %q: %w", name, err)
	}

	var id uint64
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRotations)
		if bucket == nil {
			return fmt.Errorf("history: rotations bucket not found")
		}

		id, err = bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("history: next id: %w", err)
		}

		data, err := json.Marshal(Record{
			ID:     id,
			Source: source,
			Name:   name,
			D:      d,
			Shift:  shift,
			Before: b,
			After:  a,
			At:     s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("history: marshal record: %w", err)
		}

		return bucket.Put(itob(id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

var errStop = fmt.Errorf("stop iteration")

// All iterates over every record, oldest first.
// It panics if the db cannot be read.
func (s *Store) All() iter.Seq2[uint64, Record] {
	return func(yield func(uint64, Record) bool) {
		err := s.db.View(func(tx *bbolt.Tx) error {
			b := tx.Bucket(bucketRotations)
			if b == nil {
				return fmt.Errorf("history: rotations bucket not found")
			}

			return b.ForEach(func(k, v []byte) error {
				var record Record
				err := json.Unmarshal(v, &record)
				if err != nil {
					return fmt.Errorf("history: unmarshal record %x: %w", k, err)
				}

				if !yield(binary.BigEndian.Uint64(k), record) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("history: read all records: %w", err))
		}
	}
}

// Recent returns up to limit records, newest first.
// A limit <= 0 returns all of them.
func (s *Store) Recent(limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRotations)
		if b == nil {
			return fmt.Errorf("history: rotations bucket not found")
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}

			var record Record
			err := json.Unmarshal(v, &record)
			if err != nil {
				return fmt.Errorf("history: unmarshal record %x: %w", k, err)
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
