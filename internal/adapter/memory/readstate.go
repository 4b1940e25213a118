package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ReadState keeps alert read flags per passenger for the process lifetime.
type ReadState struct {
	mu   sync.Mutex
	read map[uuid.UUID][]string
}

func NewReadState() *ReadState {
	return &ReadState{read: make(map[uuid.UUID][]string)}
}

func (s *ReadState) ReadIDs(_ context.Context, passengerID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.read[passengerID]), nil
}

func (s *ReadState) MarkRead(_ context.Context, passengerID uuid.UUID, alertIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.read[passengerID]
	for _, id := range alertIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	s.read[passengerID] = ids
	return nil
}
