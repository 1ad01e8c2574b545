package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CastVoteRequest struct {
	Credential     string `json:"credential"`
	BallotOptionID int64  `json:"ballot_option_id"`
	CircuitID      int64  `json:"circuit_id"`
}

type CastVoteResponse struct {
	BallotID int64  `json:"ballot_id"`
	Observed bool   `json:"observed"`
	Message  string `json:"message"`
}

type ElectionResponse struct {
	ElectionID int64     `json:"election_id"`
	Name       string    `json:"name"`
	HeldOn     time.Time `json:"held_on"`
	IsActive   bool      `json:"is_active"`
}

type BallotOptionItem struct {
	OptionID   int64  `json:"option_id"`
	Color      string `json:"color"`
	Label      string `json:"label"`
	ListNumber *int   `json:"list_number,omitempty"`
	Blank      bool   `json:"blank"`
}

type BallotOptionsResponse struct {
	ElectionID int64              `json:"election_id"`
	Items      []BallotOptionItem `json:"items"`
}

type ObservedBallotItem struct {
	BallotID  int64     `json:"ballot_id"`
	CircuitID int64     `json:"circuit_id"`
	CastAt    time.Time `json:"cast_at"`
	Status    string    `json:"status"`
}

type ObservedBallotsResponse struct {
	Items []ObservedBallotItem `json:"items"`
}
