// Package instances persists the player's game instances: named
// version selections stored in a bbolt database under the launcher
// directory, guarded by a lock file against concurrent launchers.
package instances

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// Record is one stored instance.
type Record struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Loader    string    `json:"loader,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the locked instance database. Close releases the lock, so a
// Store must not outlive the operation that opened it.
type Store struct {
	db      *bolt.DB
	release func() error
	now     func() time.Time
}

// Open locks launcherDir and opens the instance database inside it.
func Open(launcherDir string) (*Store, error) {
	if err := os.MkdirAll(launcherDir, helpers.DirMod); err != nil {
		return nil, err
	}
	release, err := acquireLock(launcherDir)
	if err != nil {
		return nil, err
	}
	db, err := bolt.Open(filepath.Join(launcherDir, helpers.InstancesDBFile), helpers.FileMod, nil)
	if err != nil {
		_ = release()
		return nil, err
	}
	return &Store{db: db, release: release, now: time.Now}, nil
}

// Close closes the database and releases the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	err := s.db.Close()
	if releaseErr := s.release(); err == nil {
		err = releaseErr
	}
	return err
}

// Create stores a new instance record. The name doubles as the game
// directory name, so it must be a plain path segment.
func (s *Store) Create(record Record) error {
	if !helpers.IsSingleSegment(record.Name) {
		return fmt.Errorf("%w: %q", helpers.ErrInvalidInstanceName, record.Name)
	}
	if record.Version == "" {
		return fmt.Errorf("%w: instance %q has no version", helpers.ErrVersionNotFound, record.Name)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}
	encoded, err := json.Marshal(&record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(helpers.InstancesBucket))
		if err != nil {
			return err
		}
		if bucket.Get([]byte(record.Name)) != nil {
			return fmt.Errorf("%w: %q", helpers.ErrInstanceExists, record.Name)
		}
		return bucket.Put([]byte(record.Name), encoded)
	})
}

// Get returns one instance by name.
func (s *Store) Get(name string) (Record, error) {
	var record Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(helpers.InstancesBucket))
		if bucket == nil {
			return fmt.Errorf("%w: %q", helpers.ErrInstanceNotFound, name)
		}
		encoded := bucket.Get([]byte(name))
		if encoded == nil {
			return fmt.Errorf("%w: %q", helpers.ErrInstanceNotFound, name)
		}
		return json.Unmarshal(encoded, &record)
	})
	return record, err
}

// List returns every instance sorted by name.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(helpers.InstancesBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Delete removes an instance record. The game directory stays on disk.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(helpers.InstancesBucket))
		if bucket == nil || bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", helpers.ErrInstanceNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}
