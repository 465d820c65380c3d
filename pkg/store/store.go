// Package store provides the key-scoped shared state store that pages and
// application code use to exchange state (background color, current page,
// visibility flags). The store is injected into the widget tree alongside
// the event bus; it never owns either.
package store

import (
	"github.com/go-kiosk/kiosk/pkg/events"
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
)

// ChangedTopicPrefix is the bus topic prefix for per-key change events.
// A write to key "bg.color" publishes on "store.changed.bg.color" with the
// new value as payload.
const ChangedTopicPrefix = "store.changed."

// Store is an in-memory byte-blob store keyed by string.
//
// Like the rest of the core it is single-threaded: all access must happen
// on the owning thread. Change notification goes through the event bus so
// interested widgets can subscribe without holding a store reference.
type Store struct {
	values map[string][]byte
	bus    *events.Bus
}

// New creates an empty store. The bus may be nil, in which case writes
// do not publish change events.
func New(bus *events.Bus) *Store {
	return &Store{values: make(map[string][]byte), bus: bus}
}

// Set stores a copy of value under key and publishes a change event.
// A nil value is stored as an empty blob.
func (s *Store) Set(key string, value []byte) error {
	if key == "" {
		return kioskerrors.E("store.Set", kioskerrors.KindInvalidParam, "key is empty")
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	if s.bus != nil {
		s.bus.Publish(ChangedTopicPrefix+key, stored)
	}
	return nil
}

// Get returns a copy of the value for key. The second result reports
// whether the key was present; an absent key is not an error.
func (s *Store) Get(key string) ([]byte, bool) {
	value, ok := s.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Delete removes key and publishes a change event with a nil payload.
// Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	if s.bus != nil {
		s.bus.Publish(ChangedTopicPrefix+key, nil)
	}
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}
