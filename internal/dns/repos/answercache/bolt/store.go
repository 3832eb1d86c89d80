package bolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/repos/answercache"
)

var bucketAnswers = []byte("answers")

// valueHeaderSize is the two big-endian unix-nano timestamps that precede
// the wire bytes in every stored value.
const valueHeaderSize = 16

// ErrCorruptValue reports a stored value too short to hold its timestamps.
var ErrCorruptValue = errors.New("corrupt cache value")

// boltStore implements answercache.Store using bbolt.
type boltStore struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures the bucket exists.
func New(path string) (answercache.Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAnswers)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

func (s *boltStore) Get(key string) (domain.CachedResponse, bool, error) {
	var (
		resp  domain.CachedResponse
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketAnswers).Get([]byte(key))
		if v == nil {
			return nil
		}
		var err error
		resp, err = decodeValue(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return domain.CachedResponse{}, false, err
	}
	return resp, found, nil
}

func (s *boltStore) Put(key string, resp domain.CachedResponse) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAnswers).Put([]byte(key), encodeValue(resp))
	})
}

func (s *boltStore) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAnswers).Delete([]byte(key))
	})
}

// VisitKeys walks every key in byte order. Keys handed to visit are copies.
func (s *boltStore) VisitKeys(visit func(key []byte) bool) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketAnswers).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			kk := make([]byte, len(k))
			copy(kk, k)
			if !visit(kk) {
				return nil
			}
		}
		return nil
	})
}

func (s *boltStore) Stats() answercache.StoreStats {
	st := answercache.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketAnswers); b != nil {
			st.Keys = uint64(b.Stats().KeyN)
		}
		return nil
	})
	return st
}

// encodeValue lays out [storedAt][expiresAt][wire].
func encodeValue(resp domain.CachedResponse) []byte {
	buf := make([]byte, valueHeaderSize, valueHeaderSize+len(resp.Wire))
	//gosec:disable G115 -- unix nanos round-trip through uint64 unchanged
	binary.BigEndian.PutUint64(buf[0:8], uint64(resp.StoredAt.UnixNano()))
	//gosec:disable G115 -- unix nanos round-trip through uint64 unchanged
	binary.BigEndian.PutUint64(buf[8:16], uint64(resp.ExpiresAt.UnixNano()))
	return append(buf, resp.Wire...)
}

// decodeValue copies out of v, which bbolt only guarantees for the life of
// the transaction.
func decodeValue(v []byte) (domain.CachedResponse, error) {
	if len(v) < valueHeaderSize {
		return domain.CachedResponse{}, fmt.Errorf("%w: %d bytes", ErrCorruptValue, len(v))
	}
	wire := make([]byte, len(v)-valueHeaderSize)
	copy(wire, v[valueHeaderSize:])
	return domain.CachedResponse{
		//gosec:disable G115 -- written by encodeValue from an int64
		StoredAt: time.Unix(0, int64(binary.BigEndian.Uint64(v[0:8]))),
		//gosec:disable G115 -- written by encodeValue from an int64
		ExpiresAt: time.Unix(0, int64(binary.BigEndian.Uint64(v[8:16]))),
		Wire:      wire,
	}, nil
}

var _ answercache.Store = (*boltStore)(nil)
