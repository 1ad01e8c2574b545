package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"sufragio/contexts/election-core/voting-engine/domain/entities"
	domainerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	"sufragio/contexts/election-core/voting-engine/ports"
)

type castRecord struct {
	ballot   entities.Ballot
	optionID int64
	cedula   string
}

// Store is the in-memory ledger/catalog/directory used by unit tests. It
// mirrors the postgres adapter's behavior including the uniqueness guard.
type Store struct {
	mu sync.Mutex

	election *entities.Election
	options  map[int64]entities.BallotOption
	voters   map[string]ports.VoterProjection // keyed by credential
	mesaOpen map[int64]bool
	casts    []castRecord
	voted    map[string]bool // cedula/election composite key
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		options:  make(map[int64]entities.BallotOption),
		voters:   make(map[string]ports.VoterProjection),
		mesaOpen: make(map[int64]bool),
		voted:    make(map[string]bool),
		nextID:   1,
	}
}

func (s *Store) SetActiveElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	election.IsActive = true
	s.election = &election
}

func (s *Store) SetOption(option entities.BallotOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[option.OptionID] = option
}

func (s *Store) SetVoter(credential string, cedula string, circuitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(credential)] = ports.VoterProjection{
		Cedula:    strings.TrimSpace(cedula),
		CircuitID: circuitID,
	}
}

func (s *Store) SetMesaOpen(circuitID int64, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mesaOpen[circuitID] = open
}

// Ballots returns all recorded ballots in cast order, for test assertions.
func (s *Store) Ballots() []entities.Ballot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.Ballot, 0, len(s.casts))
	for _, cast := range s.casts {
		items = append(items, cast.ballot)
	}
	return items
}

func (s *Store) CastBallot(_ context.Context, cast ports.BallotCast) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mesaOpen[cast.CircuitID] {
		return 0, domainerrors.ErrMesaClosed
	}
	option, ok := s.options[cast.OptionID]
	if !ok || option.ElectionID != cast.ElectionID {
		return 0, domainerrors.ErrBallotOptionNotFound
	}
	key := votedKey(cast.Cedula, cast.ElectionID)
	if s.voted[key] {
		return 0, domainerrors.ErrAlreadyVoted
	}

	ballot := entities.Ballot{
		BallotID:  s.nextID,
		CircuitID: cast.CircuitID,
		CastAt:    cast.CastAt.UTC(),
		Observed:  cast.Observed,
		Status:    entities.BallotStatusValid,
	}
	s.nextID++
	s.casts = append(s.casts, castRecord{
		ballot:   ballot,
		optionID: cast.OptionID,
		cedula:   strings.TrimSpace(cast.Cedula),
	})
	s.voted[key] = true
	return ballot.BallotID, nil
}

func (s *Store) ListObserved(_ context.Context) ([]entities.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.Ballot, 0, len(s.casts))
	for _, cast := range s.casts {
		if cast.ballot.Observed {
			items = append(items, cast.ballot)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CastAt.Equal(items[j].CastAt) {
			return items[i].BallotID > items[j].BallotID
		}
		return items[i].CastAt.After(items[j].CastAt)
	})
	return items, nil
}

func (s *Store) ActiveElection(_ context.Context) (entities.Election, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.election == nil {
		return entities.Election{}, false, nil
	}
	return *s.election, true, nil
}

func (s *Store) BallotOptions(_ context.Context, electionID int64) ([]entities.BallotOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]entities.BallotOption, 0, len(s.options))
	for _, option := range s.options {
		if option.ElectionID == electionID {
			items = append(items, option)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].OptionID < items[j].OptionID
	})
	return items, nil
}

func (s *Store) VoterByCredential(_ context.Context, credential string) (ports.VoterProjection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(credential)]
	if !ok {
		return ports.VoterProjection{}, false, nil
	}
	return voter, true, nil
}

func (s *Store) HasVoted(_ context.Context, cedula string, electionID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voted[votedKey(cedula, electionID)], nil
}

func votedKey(cedula string, electionID int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSpace(cedula), electionID)
}

var _ ports.BallotLedger = (*Store)(nil)
var _ ports.ElectionCatalog = (*Store)(nil)
var _ ports.VoterLookup = (*Store)(nil)
