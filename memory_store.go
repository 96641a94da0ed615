package escrutinio

import "encoding/json"

// MemoryStore keeps the serialized snapshot in memory. Useful for tests and
// ephemeral runs; the bytes pass through the same JSON layout as the durable
// store, so round-trip behavior is identical.
type MemoryStore struct {
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load() (*Snapshot, error) {
	if ms.data == nil {
		return nil, ErrNoSnapshot
	}
	return decodeSnapshot(ms.data)
}

func (ms *MemoryStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	ms.data = data
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.data = nil
	return nil
}
