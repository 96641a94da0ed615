package escrutinio

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	boltBucket  = []byte("escrutinio")
	snapshotKey = []byte("snapshot")
)

// BoltStore persists the snapshot to a bbolt database file: one bucket, one
// key, JSON-encoded value.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens the database at path, creating the file and bucket if
// they do not exist yet.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, bolt.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

func (bs *BoltStore) Load() (*Snapshot, error) {
	var data []byte
	err := bs.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(boltBucket).Get(snapshotKey); value != nil {
			data = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		return nil, ErrNoSnapshot
	}
	return decodeSnapshot(data)
}

func (bs *BoltStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(snapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (bs *BoltStore) Clear() error {
	err := bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(snapshotKey)
	})
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}
