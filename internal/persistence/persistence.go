package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/markusressel/smartfan/internal/ui"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"time"
)

const (
	BucketRuns = "runs"
)

// RunRecord is a single invocation of smartfan as stored in the history
type RunRecord struct {
	Time time.Time `json:"time"`
	Mode string    `json:"mode"`
	// Temperature is nil when it could not be sampled (or was not sampled at all)
	Temperature    *int   `json:"temperature,omitempty"`
	SensorId       string `json:"sensorId,omitempty"`
	Speed          int    `json:"speed"`
	EncodedSpeed   string `json:"encodedSpeed"`
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallbackReason,omitempty"`
	Applied        bool   `json:"applied"`
	Error          string `json:"error,omitempty"`
}

type Persistence interface {
	Init() error

	// SaveRun stores the given record and prunes the history down to retain records (0 = unlimited)
	SaveRun(record RunRecord, retain int) error
	// LoadRuns returns up to limit records, newest first (0 = all)
	LoadRuns(limit int) ([]RunRecord, error)
	DeleteRuns() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// keys are big endian unix nanos, so the bucket is ordered by time
func runKey(t time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return key
}

func (p persistence) SaveRun(record RunRecord, retain int) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}

		key := runKey(record.Time)
		// runs within the same nanosecond must not overwrite each other
		for b.Get(key) != nil {
			binary.BigEndian.PutUint64(key, binary.BigEndian.Uint64(key)+1)
		}
		err = b.Put(key, data)
		if err != nil {
			return err
		}

		return prune(b, retain)
	})
}

// prune deletes the oldest records until at most retain records are left
func prune(b *bolt.Bucket, retain int) error {
	if retain <= 0 {
		return nil
	}

	c := b.Cursor()
	count := 0
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}

	excess := count - retain
	if excess <= 0 {
		return nil
	}

	for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
		if err := c.Delete(); err != nil {
			return err
		}
		excess--
	}
	return nil
}

func (p persistence) LoadRuns(limit int) ([]RunRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []RunRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}

			var record RunRecord
			err := json.Unmarshal(v, &record)
			if err != nil {
				// skip corrupt entries
				ui.Warning("Unable to unmarshal saved run data %x: %v", k, err)
				continue
			}
			result = append(result, record)
		}
		return nil
	})

	return result, err
}

func (p persistence) DeleteRuns() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(BucketRuns))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
