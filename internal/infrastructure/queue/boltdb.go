package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps BoltDB to persist provisioning events until a drain pass
// processes them.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "provision"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores an event under a timestamp-ordered key.
func (s *Store) Enqueue(event Event) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	event.normalize()
	event.bucketKey = []byte(buildKey(event))

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(event.bucketKey, payload)
	})
}

// GetBatch returns up to limit events without removing them.
func (s *Store) GetBatch(limit int) ([]Event, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var events []Event
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(events) < limit; k, v = c.Next() {
			var event Event
			if err := json.Unmarshal(v, &event); err != nil {
				continue
			}
			event.bucketKey = append([]byte(nil), k...)
			events = append(events, event)
		}
		return nil
	})
	return events, err
}

// Remove deletes the provided event from the queue.
func (s *Store) Remove(event Event) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(event.bucketKey) == 0 {
		return s.deleteByID(event.ID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(event.bucketKey)
	})
}

// Requeue re-inserts an event after bumping its timestamp.
func (s *Store) Requeue(event Event) error {
	event.bucketKey = nil
	event.Timestamp = time.Now()
	return s.Enqueue(event)
}

// Size returns the number of queued events.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) deleteByID(id string) error {
	if id == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var event Event
			if err := json.Unmarshal(v, &event); err != nil {
				continue
			}
			if event.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

func buildKey(event Event) string {
	return fmt.Sprintf("%020d_%s", event.Timestamp.UnixNano(), event.ID)
}
