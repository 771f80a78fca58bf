package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"cslint/internal/domain"
	"cslint/internal/port"
)

var (
	bucketFiles = []byte("files")
	bucketMeta  = []byte("meta")
)

// BoltStore is the on-disk report cache. Reports live in one nested bucket
// per analysis mode under "files", keyed by file path.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketFiles, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type fileEntry struct {
	ModTime int64          `json:"mod_time"`
	Report  *domain.Report `json:"report"`
}

func (s *BoltStore) Get(mode domain.Mode, path string) (*port.CachedReport, error) {
	var entry *port.CachedReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles).Bucket([]byte(mode))
		if b == nil {
			return nil
		}
		data := b.Get([]byte(path))
		if data == nil {
			return nil
		}
		var fe fileEntry
		if err := json.Unmarshal(data, &fe); err != nil {
			return fmt.Errorf("decode cached report for %s: %w", path, err)
		}
		entry = &port.CachedReport{ModTime: fe.ModTime, Report: fe.Report}
		return nil
	})
	return entry, err
}

func (s *BoltStore) Put(mode domain.Mode, path string, entry port.CachedReport) error {
	data, err := json.Marshal(fileEntry{ModTime: entry.ModTime, Report: entry.Report})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(bucketFiles).CreateBucketIfNotExists([]byte(mode))
		if err != nil {
			return err
		}
		return b.Put([]byte(path), data)
	})
}

func (s *BoltStore) Delete(mode domain.Mode, path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles).Bucket([]byte(mode))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(path))
	})
}

func (s *BoltStore) Paths(mode domain.Mode) ([]string, error) {
	var paths []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFiles).Bucket([]byte(mode))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	sort.Strings(paths)
	return paths, err
}

// Clear drops every cached report. Schema information in "meta" survives.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketFiles); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketFiles)
		return err
	})
}

// Len returns the number of cached reports across all modes.
func (s *BoltStore) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		return files.ForEach(func(k, v []byte) error {
			if v != nil {
				return nil
			}
			return files.Bucket(k).ForEach(func(_, _ []byte) error {
				n++
				return nil
			})
		})
	})
	return n, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
