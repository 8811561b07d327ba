package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/eugenenazirov/distribution/internal/options"
)

var (
	// ErrNoOptions indicates no project options have been stored yet.
	ErrNoOptions = errors.New("no project options configured")
)

// Storage provides access to the project-fixed webpack options.
type Storage interface {
	GetOptions() (*options.Options, time.Time, error)
	SetOptions(o *options.Options) error
}

// MemoryStorage keeps the options in memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu        sync.RWMutex
	opts      *options.Options
	updatedAt time.Time
	clock     func() time.Time
}

// NewMemoryStorage initialises empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewMemoryStorageWithClock initialises empty storage stamping updates with clock.
func NewMemoryStorageWithClock(clock func() time.Time) *MemoryStorage {
	s := NewMemoryStorage()
	s.clock = clock
	return s
}

// GetOptions returns a copy of the stored options and when they were last set.
func (s *MemoryStorage) GetOptions() (*options.Options, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.opts == nil {
		return nil, time.Time{}, ErrNoOptions
	}
	return s.opts.Clone(), s.updatedAt, nil
}

// SetOptions stores a copy of o. Sections are shared with the caller, so o
// must not be modified afterwards.
func (s *MemoryStorage) SetOptions(o *options.Options) error {
	if o == nil {
		return ErrNoOptions
	}

	s.mu.Lock()
	s.opts = o.Clone()
	s.updatedAt = s.clock()
	s.mu.Unlock()

	return nil
}
