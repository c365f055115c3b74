package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"tickethub-cli/model"
)

const (
	BookingsKey      = "bookings"
	ContactsKey      = "contactSubmissions"
	SelectedEventKey = "selectedEvent"
	TermsKey         = "tos_accepted"

	appDirName = "tickethub"
)

// ErrStorageCorrupt marks a slot whose content could not be decoded.
var ErrStorageCorrupt = errors.New("storage corrupt")

// Repository loads and saves a whole ordered collection at once.
type Repository[T any] interface {
	Load() ([]T, error)
	Save(items []T) error
}

// Slot is one durable key-value entry holding raw JSON.
type Slot struct {
	path string
}

func NewSlot(dir string, key string) Slot {
	return Slot{path: filepath.Join(dir, key+".json")}
}

func (s Slot) Path() string {
	return s.path
}

// Read returns nil data when the slot was never written.
func (s Slot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	return data, nil
}

// Write replaces the slot content through a rename so a reader never sees a
// half-written file.
func (s Slot) Write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "replace %s", s.path)
	}
	return nil
}

func (s Slot) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", s.path)
	}
	return nil
}

// File is a Repository backed by one Slot holding a JSON array.
type File[T any] struct {
	slot Slot
	log  logrus.FieldLogger
}

func NewFile[T any](dir string, key string, log logrus.FieldLogger) *File[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &File[T]{
		slot: NewSlot(dir, key),
		log:  log.WithField("slot", key),
	}
}

// Load never reports corrupt content as an error: it logs and returns an
// empty collection so the caller stays usable.
func (f *File[T]) Load() ([]T, error) {
	data, err := f.slot.Read()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		f.log.WithError(errors.Mark(err, ErrStorageCorrupt)).Warn("ignoring unreadable storage")
		return nil, nil
	}
	return items, nil
}

func (f *File[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode collection")
	}
	return f.slot.Write(payload)
}

// Memory is an in-process Repository, used by tests and as a scratch store.
type Memory[T any] struct {
	mu    sync.Mutex
	items []T
	saves int
}

func NewMemory[T any](items ...T) *Memory[T] {
	return &Memory[T]{items: append([]T(nil), items...)}
}

func (m *Memory[T]) Load() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.items...), nil
}

func (m *Memory[T]) Save(items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *Memory[T]) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Handoff passes the chosen event from the listing to the details view.
type Handoff struct {
	slot Slot
}

func NewHandoff(dir string) Handoff {
	return Handoff{slot: NewSlot(dir, SelectedEventKey)}
}

func (h Handoff) Put(event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode selected event")
	}
	return h.slot.Write(payload)
}

// Take returns the pending event and clears the slot. ok is false when
// nothing was handed off or the slot is unreadable.
func (h Handoff) Take() (model.Event, bool, error) {
	data, err := h.slot.Read()
	if err != nil {
		return model.Event{}, false, err
	}
	if len(data) == 0 {
		return model.Event{}, false, nil
	}
	if err := h.slot.Remove(); err != nil {
		return model.Event{}, false, err
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return model.Event{}, false, nil
	}
	return event, true, nil
}

// Consent remembers that the terms of service were accepted.
type Consent struct {
	slot Slot
}

func NewConsent(dir string) Consent {
	return Consent{slot: NewSlot(dir, TermsKey)}
}

func (c Consent) Accept() error {
	return c.slot.Write([]byte("1"))
}

func (c Consent) Accepted() (bool, error) {
	data, err := c.slot.Read()
	if err != nil {
		return false, err
	}
	return string(data) == "1", nil
}

// DefaultDir is the per-user directory holding every slot.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate user config dir")
	}
	return filepath.Join(dir, appDirName), nil
}
