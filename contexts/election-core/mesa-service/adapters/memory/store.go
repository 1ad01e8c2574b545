package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"sufragio/contexts/election-core/mesa-service/domain/entities"
	domainerrors "sufragio/contexts/election-core/mesa-service/domain/errors"
	"sufragio/contexts/election-core/mesa-service/ports"
)

// Store is the in-memory MesaStateRepository used by unit tests.
type Store struct {
	mu sync.RWMutex

	states    map[int64]entities.MesaState
	officials map[string]bool // cedula/circuit composite key
	locations map[int64]entities.OpenMesa
}

func NewStore() *Store {
	return &Store{
		states:    make(map[int64]entities.MesaState),
		officials: make(map[string]bool),
		locations: make(map[int64]entities.OpenMesa),
	}
}

func (s *Store) SetOfficial(cedula string, circuitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.officials[officialKey(cedula, circuitID)] = true
}

func (s *Store) SetLocation(circuitID int64, city string, neighborhood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[circuitID] = entities.OpenMesa{
		CircuitID:    circuitID,
		City:         city,
		Neighborhood: neighborhood,
	}
}

func (s *Store) GetState(_ context.Context, circuitID int64) (entities.MesaState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[circuitID]
	if !ok {
		return entities.MesaState{}, domainerrors.ErrMesaNotFound
	}
	return state, nil
}

func (s *Store) Open(_ context.Context, circuitID int64, openedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opened := openedAt.UTC()
	s.states[circuitID] = entities.MesaState{
		CircuitID: circuitID,
		IsOpen:    true,
		OpenedAt:  &opened,
	}
	return nil
}

func (s *Store) Close(_ context.Context, circuitID int64, officialID string, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[circuitID]
	if !ok {
		return domainerrors.ErrMesaNotFound
	}
	if !state.IsOpen {
		return domainerrors.ErrMesaAlreadyClosed
	}
	closed := closedAt.UTC()
	state.IsOpen = false
	state.ClosedAt = &closed
	state.ClosingOfficialID = strings.TrimSpace(officialID)
	s.states[circuitID] = state
	return nil
}

func (s *Store) IsOfficialOf(_ context.Context, cedula string, circuitID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.officials[officialKey(cedula, circuitID)], nil
}

func (s *Store) ListOpen(_ context.Context) ([]entities.OpenMesa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.OpenMesa, 0, len(s.states))
	for circuitID, state := range s.states {
		if !state.IsOpen {
			continue
		}
		item := s.locations[circuitID]
		item.CircuitID = circuitID
		if state.OpenedAt != nil {
			item.OpenedAt = *state.OpenedAt
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CircuitID < items[j].CircuitID
	})
	return items, nil
}

func officialKey(cedula string, circuitID int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSpace(cedula), circuitID)
}

var _ ports.MesaStateRepository = (*Store)(nil)
