package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sufragio/contexts/identity-access/voter-directory/domain/entities"
	"sufragio/contexts/identity-access/voter-directory/ports"
)

// Store is the in-memory VoterRepository used by unit tests and local wiring.
type Store struct {
	mu sync.RWMutex

	voters       map[string]entities.Voter // keyed by cedula
	byCredential map[string]string
	locations    map[int64]entities.CircuitLocation
	officials    map[string]entities.Role
	voted        map[string]bool // cedula/election composite key
	election     *ports.ElectionProjection
}

func NewStore() *Store {
	return &Store{
		voters:       make(map[string]entities.Voter),
		byCredential: make(map[string]string),
		locations:    make(map[int64]entities.CircuitLocation),
		officials:    make(map[string]entities.Role),
		voted:        make(map[string]bool),
	}
}

func (s *Store) SetVoter(voter entities.Voter, location entities.CircuitLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voter.Cedula] = voter
	s.byCredential[strings.TrimSpace(voter.Credential)] = voter.Cedula
	s.locations[location.CircuitID] = location
}

func (s *Store) SetOfficial(cedula string, role string, circuitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.officials[strings.TrimSpace(cedula)] = entities.Role{
		Kind:      entities.RoleKindMesaOfficial,
		Role:      role,
		CircuitID: circuitID,
	}
}

func (s *Store) SetActiveElection(election ports.ElectionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.election = &election
}

func (s *Store) MarkVoted(cedula string, electionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voted[votedKey(cedula, electionID)] = true
}

func (s *Store) VoterByCredential(
	_ context.Context,
	credential string,
) (entities.Voter, entities.CircuitLocation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cedula, ok := s.byCredential[strings.TrimSpace(credential)]
	if !ok {
		return entities.Voter{}, entities.CircuitLocation{}, false, nil
	}
	voter := s.voters[cedula]
	return voter, s.locations[voter.CircuitID], true, nil
}

func (s *Store) RoleByCedula(_ context.Context, cedula string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if role, ok := s.officials[strings.TrimSpace(cedula)]; ok {
		return role, nil
	}
	return entities.OrdinaryVoterRole(), nil
}

func (s *Store) HasVoted(_ context.Context, cedula string, electionID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voted[votedKey(cedula, electionID)], nil
}

func (s *Store) ActiveElection(_ context.Context) (ports.ElectionProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.election == nil {
		return ports.ElectionProjection{}, false, nil
	}
	return *s.election, true, nil
}

func votedKey(cedula string, electionID int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSpace(cedula), electionID)
}

var _ ports.VoterRepository = (*Store)(nil)
