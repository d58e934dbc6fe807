// Package store persists named collections as JSON documents in a local
// key-value backend, the way the original storefront used browser
// localStorage.
//
// Access is last-write-wins: the backend serializes individual reads and
// writes, but the load-mutate-save sequences of the managers built on top are
// not transactional. Two concurrent writers to the same collection silently
// overwrite each other, matching the multi-tab behavior of the storage this
// replaces. Corrupt or unreadable entries are treated as collections that
// never existed, never as errors.
package store

import "encoding/json"

// Collection keys. These are part of the persisted format and must not change.
const (
	Products    = "products"
	Users       = "users"
	CurrentUser = "currentUser"
	Cart        = "cart"
)

type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Load reads a collection of records. A missing key, a backend read error or
// malformed JSON all yield an empty collection.
func Load[T any](b Backend, collection string) []T {
	raw, ok, err := b.Get(collection)
	if err != nil || !ok {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func Save[T any](b Backend, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return b.Put(collection, raw)
}

// LoadOne reads a singleton collection such as the current session. Absence
// and corruption are both reported as (zero, false).
func LoadOne[T any](b Backend, collection string) (T, bool) {
	var record T
	raw, ok, err := b.Get(collection)
	if err != nil || !ok {
		return record, false
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		var zero T
		return zero, false
	}
	return record, true
}

func SaveOne[T any](b Backend, collection string, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return b.Put(collection, raw)
}

// Clear removes the collection entry entirely, a logical delete rather than
// a null record.
func Clear(b Backend, collection string) error {
	return b.Delete(collection)
}
