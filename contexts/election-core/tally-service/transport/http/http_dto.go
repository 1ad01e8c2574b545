package http

import (
	"strconv"
	"time"
)

// Percentage renders a share of the vote the way result consumers expect:
// the JSON number 0 when there is no total to divide by, otherwise a string
// with exactly two decimals, each row rounded independently.
type Percentage struct {
	Count int64
	Total int64
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	if p.Total == 0 {
		return []byte("0"), nil
	}
	value := float64(p.Count) * 100 / float64(p.Total)
	return strconv.AppendQuote(nil, strconv.FormatFloat(value, 'f', 2, 64)), nil
}

type TallyRowItem struct {
	OptionID   int64      `json:"option_id"`
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	ListNumber *int       `json:"list_number,omitempty"`
	Count      int64      `json:"count"`
	Percentage Percentage `json:"percentage"`
}

type MesaStatus struct {
	CircuitID int64      `json:"circuit_id"`
	IsOpen    bool       `json:"is_open"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

type CircuitResultsResponse struct {
	CircuitID int64          `json:"circuit_id"`
	Mesa      MesaStatus     `json:"mesa"`
	Official  bool           `json:"official"`
	Total     int64          `json:"total"`
	Items     []TallyRowItem `json:"items"`
}

type DepartmentResultsResponse struct {
	DepartmentID int64          `json:"department_id"`
	Total        int64          `json:"total"`
	Items        []TallyRowItem `json:"items"`
}

type NationalResultsResponse struct {
	Total int64          `json:"total"`
	Items []TallyRowItem `json:"items"`
}

type CircuitTurnoutItem struct {
	CircuitID    int64  `json:"circuit_id"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Ballots      int64  `json:"ballots"`
}

type ParticipationResponse struct {
	TotalVoters  int64                `json:"total_voters"`
	TotalBallots int64                `json:"total_ballots"`
	Turnout      Percentage           `json:"turnout"`
	PerCircuit   []CircuitTurnoutItem `json:"per_circuit"`
}
