// Package payloadstore persists built block payloads, keyed by their
// builder commitment, for the CLI and test harness (spec §4.8). The codec
// itself (package payload) has no persistence story — per spec's Non-goals,
// "we do not specify transport or persistence of payload bytes" — this
// package is an ambient collaborator around it, the same relationship the
// teacher's node/store package has to its consensus package.
//
// Grounded on clients/go/node/store/db.go: one bbolt database, one bucket
// per concern, Put/Get pairs wrapping bolt.Tx.
package payloadstore

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketNsPayloads = []byte("ns_payloads_by_commitment")
	bucketNsTables   = []byte("ns_table_by_commitment")
)

// Store is a bbolt-backed key-value store of built payloads.
type Store struct {
	datadir string
	db      *bolt.DB
}

// Open creates (if needed) and opens the payload store rooted at datadir.
func Open(datadir string) (*Store, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := ensureDir(datadir); err != nil {
		return nil, err
	}

	bdb, err := bolt.Open(dbPath(datadir), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	s := &Store{datadir: datadir, db: bdb}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketNsPayloads, bucketNsTables} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores a built payload's ns_payloads bytes and encoded NsTable under
// commitment.
func (s *Store) Put(commitment [32]byte, nsPayloads []byte, nsTableEncoded []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketNsPayloads).Put(commitment[:], nsPayloads); err != nil {
			return err
		}
		return tx.Bucket(bucketNsTables).Put(commitment[:], nsTableEncoded)
	})
}

// Get retrieves a previously-stored payload by commitment. ok is false if
// no payload was stored under that commitment.
func (s *Store) Get(commitment [32]byte) (nsPayloads []byte, nsTableEncoded []byte, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		p := tx.Bucket(bucketNsPayloads).Get(commitment[:])
		if p == nil {
			return nil
		}
		t := tx.Bucket(bucketNsTables).Get(commitment[:])
		nsPayloads = append([]byte(nil), p...)
		nsTableEncoded = append([]byte(nil), t...)
		ok = true
		return nil
	})
	return nsPayloads, nsTableEncoded, ok, err
}
