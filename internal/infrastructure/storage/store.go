package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/pantrymatch/backend/internal/domain"
)

// Options configures where the store keeps its data
type Options struct {
	Dir      string
	InMemory bool
}

// Store is a JSON key/value store on top of BadgerDB
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the Badger database described by opts
func Open(opts Options) (*Store, error) {
	var badgerOpts badger.Options
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		absPath, err := filepath.Abs(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		badgerOpts = badger.DefaultOptions(absPath)
	}
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open BadgerDB: %v", domain.ErrStorageUnavailable, err)
	}

	if opts.InMemory {
		log.Printf("[STORAGE] BadgerDB opened in memory")
	} else {
		log.Printf("[STORAGE] BadgerDB opened at %s", opts.Dir)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Set stores value as JSON under key
func (s *Store) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Get decodes the JSON stored under key into value.
// A missing key yields domain.ErrItemNotFound.
func (s *Store) Get(key string, value interface{}) error {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, key)
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	return json.Unmarshal(data, value)
}

// Delete removes key. A missing key yields domain.ErrItemNotFound.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrItemNotFound, key)
			}
			return err
		}
		return txn.Delete([]byte(key))
	})
}

// Each calls fn with the raw JSON of every value whose key has the given prefix
func (s *Store) Each(prefix string, fn func(key string, data []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(string(item.Key()), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// StartGCRoutine periodically runs value-log garbage collection until the store is closed
func (s *Store) StartGCRoutine(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if s.db.IsClosed() {
				return
			}
			err := s.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Printf("[STORAGE] BadgerDB GC error: %v", err)
			}
		}
	}()
	log.Printf("[STORAGE] Started BadgerDB GC routine with interval %v", interval)
}
