package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"sufragio/contexts/election-core/tally-service/domain/entities"
	"sufragio/contexts/election-core/tally-service/ports"
)

type optionRecord struct {
	OptionID   int64
	Color      string
	ListNumber *int
}

type ballotRecord struct {
	OptionID  int64
	CircuitID int64
	Valid     bool
}

type circuitRecord struct {
	CircuitID    int64
	DepartmentID int64
	City         string
	Neighborhood string
}

// Store keeps tally inputs in memory for tests and local development.
type Store struct {
	mu        sync.RWMutex
	options   []optionRecord
	ballots   []ballotRecord
	circuits  map[int64]circuitRecord
	mesas     map[int64]ports.MesaStateProjection
	officials map[string]struct{}
	voters    int64
}

func NewStore() *Store {
	return &Store{
		circuits:  make(map[int64]circuitRecord),
		mesas:     make(map[int64]ports.MesaStateProjection),
		officials: make(map[string]struct{}),
	}
}

func (s *Store) SetOption(optionID int64, color string, listNumber *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = append(s.options, optionRecord{
		OptionID:   optionID,
		Color:      color,
		ListNumber: listNumber,
	})
}

func (s *Store) SetCircuit(circuitID, departmentID int64, city, neighborhood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.circuits[circuitID] = circuitRecord{
		CircuitID:    circuitID,
		DepartmentID: departmentID,
		City:         city,
		Neighborhood: neighborhood,
	}
}

func (s *Store) SetMesaState(state ports.MesaStateProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mesas[state.CircuitID] = state
}

func (s *Store) SetOfficial(cedula string, circuitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.officials[officialKey(cedula, circuitID)] = struct{}{}
}

func (s *Store) SetTotalVoters(total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters = total
}

func (s *Store) AddBallot(optionID, circuitID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots = append(s.ballots, ballotRecord{
		OptionID:  optionID,
		CircuitID: circuitID,
		Valid:     true,
	})
}

func (s *Store) TallyNational(ctx context.Context) ([]entities.TallyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tally(func(ballotRecord) bool { return true }), nil
}

func (s *Store) TallyByCircuit(ctx context.Context, circuitID int64) ([]entities.TallyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tally(func(b ballotRecord) bool { return b.CircuitID == circuitID }), nil
}

func (s *Store) TallyByDepartment(ctx context.Context, departmentID int64) ([]entities.TallyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tally(func(b ballotRecord) bool {
		circuit, ok := s.circuits[b.CircuitID]
		return ok && circuit.DepartmentID == departmentID
	}), nil
}

func (s *Store) ParticipationStats(ctx context.Context) (entities.ParticipationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perCircuit := make(map[int64]int64, len(s.circuits))
	for id := range s.circuits {
		perCircuit[id] = 0
	}
	var total int64
	for _, ballot := range s.ballots {
		if !ballot.Valid {
			continue
		}
		total++
		perCircuit[ballot.CircuitID]++
	}

	stats := entities.ParticipationStats{
		TotalVoters:  s.voters,
		TotalBallots: total,
		PerCircuit:   make([]entities.CircuitTurnout, 0, len(perCircuit)),
	}
	for id, count := range perCircuit {
		circuit := s.circuits[id]
		stats.PerCircuit = append(stats.PerCircuit, entities.CircuitTurnout{
			CircuitID:    id,
			City:         circuit.City,
			Neighborhood: circuit.Neighborhood,
			Ballots:      count,
		})
	}
	sort.Slice(stats.PerCircuit, func(i, j int) bool {
		left, right := stats.PerCircuit[i], stats.PerCircuit[j]
		if left.Ballots == right.Ballots {
			return left.CircuitID < right.CircuitID
		}
		return left.Ballots > right.Ballots
	})
	return stats, nil
}

func (s *Store) MesaState(ctx context.Context, circuitID int64) (ports.MesaStateProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.mesas[circuitID]
	if !ok {
		return ports.MesaStateProjection{}, false, nil
	}
	return state, true, nil
}

func (s *Store) IsOfficialOf(ctx context.Context, cedula string, circuitID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.officials[officialKey(cedula, circuitID)]
	return ok, nil
}

func (s *Store) tally(inScope func(ballotRecord) bool) []entities.TallyRow {
	counts := make(map[int64]int64, len(s.options))
	for _, ballot := range s.ballots {
		if !ballot.Valid || !inScope(ballot) {
			continue
		}
		counts[ballot.OptionID]++
	}
	rows := make([]entities.TallyRow, 0, len(s.options))
	for _, option := range s.options {
		rows = append(rows, entities.TallyRow{
			OptionID:   option.OptionID,
			Color:      option.Color,
			Label:      entities.OptionLabel(option.ListNumber),
			ListNumber: option.ListNumber,
			Count:      counts[option.OptionID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].OptionID < rows[j].OptionID
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

func officialKey(cedula string, circuitID int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSpace(cedula), circuitID)
}

var _ ports.TallyRepository = (*Store)(nil)
var _ ports.MesaStateReader = (*Store)(nil)
