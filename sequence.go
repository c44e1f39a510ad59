package ksuid

import (
	"sync"
	"time"
)

// Sequence generates KSUIDs that are strictly increasing within a
// process, even when many are created inside the same clock second.
//
// Each call stamps the current second with a fresh random payload. When
// the result would not sort after the previous ID - the clock has not
// ticked, or moved backwards - the successor of the previous ID is used
// instead, so ordering never depends on the clock advancing.
type Sequence struct {
	mu   sync.Mutex
	last KSUID
}

// NewSequence creates a new Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Generate creates the next KSUID in the sequence.
func (s *Sequence) Generate() (KSUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(time.Now())
}

// MustGenerate is like Generate but panics on error.
func (s *Sequence) MustGenerate() KSUID {
	id, err := s.Generate()
	if err != nil {
		panic(err)
	}
	return id
}

// generate holds the ordering logic; callers hold the lock.
func (s *Sequence) generate(now time.Time) (KSUID, error) {
	id, err := NewWithTime(now)
	if err != nil {
		return Min, err
	}

	if s.last.IsNil() || s.last.Less(id) {
		s.last = id
		return id, nil
	}

	// Clock stalled or regressed: continue from the previous ID. Next
	// fails only at Max, the very end of the ID space.
	next, err := s.last.Next()
	if err != nil {
		return Min, err
	}
	s.last = next
	return next, nil
}

// GenerateBatch creates count KSUIDs in ascending order.
func (s *Sequence) GenerateBatch(count int) ([]KSUID, error) {
	if count <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]KSUID, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.generate(time.Now())
		if err != nil {
			return result, err
		}
		result = append(result, id)
	}
	return result, nil
}

// Last returns the most recently generated KSUID, or Min if nothing has
// been generated yet.
func (s *Sequence) Last() KSUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last
}

// Convenience functions

// Generate creates a KSUID using the default sequence.
func Generate() (KSUID, error) {
	return defaultSequence.Generate()
}

// GenerateBatch creates multiple ascending KSUIDs using the default sequence.
func GenerateBatch(count int) ([]KSUID, error) {
	return defaultSequence.GenerateBatch(count)
}

// NewBatch creates multiple ascending KSUIDs, panicking on error.
func NewBatch(count int) []KSUID {
	ids, err := GenerateBatch(count)
	if err != nil {
		panic(err)
	}
	return ids
}

// Default sequence instance
var defaultSequence = NewSequence()
