package auditlog

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// recordPrefix namespaces auction records so the store can host other key
// spaces later without a migration.
const recordPrefix = "auction:"

// ErrNotFound is returned when no record exists for an auction id.
var ErrNotFound = errors.New("auditlog: record not found")

// Store persists auction records in Badger. Records are keyed by auction id
// and encoded as CBOR.
type Store struct {
	db *badger.DB
}

type OpenOptions struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string
	// InMemory backs the store with memory only, for tests and dry runs.
	InMemory bool
}

func Open(opts OpenOptions) (*Store, error) {
	if !opts.InMemory && opts.Path == "" {
		return nil, errors.New("auditlog: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(nil).
		WithInMemory(opts.InMemory)
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("auditlog: open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes the record under its auction id. Appending twice for the
// same auction id is rejected: settled outcomes are immutable.
func (s *Store) Append(r *Record) error {
	if r.AuctionID == "" {
		return errors.New("auditlog: record has no auction id")
	}
	data, err := r.encode()
	if err != nil {
		return fmt.Errorf("auditlog: encode record: %w", err)
	}
	key := []byte(recordPrefix + r.AuctionID)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("auditlog: record %s already exists", r.AuctionID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
}

// Get returns the record for an auction id, or ErrNotFound.
func (s *Store) Get(auctionID string) (*Record, error) {
	var out *Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordPrefix + auctionID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			out, err = decodeRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every stored record in key order.
func (s *Store) List() ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				r, err := decodeRecord(val)
				if err != nil {
					return err
				}
				out = append(out, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
