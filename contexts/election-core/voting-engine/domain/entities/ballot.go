package entities

import (
	"fmt"
	"time"
)

type Election struct {
	ElectionID int64
	Name       string
	HeldOn     time.Time
	IsActive   bool
}

// BallotOption is one selectable papeleta in an election. A nil ListNumber
// marks the distinguished blank/abstention option.
type BallotOption struct {
	OptionID   int64
	ElectionID int64
	Color      string
	ListNumber *int
}

func (o BallotOption) Label() string {
	if o.ListNumber == nil {
		return "Voto en Blanco"
	}
	return fmt.Sprintf("Lista %d", *o.ListNumber)
}

func (o BallotOption) IsBlank() bool {
	return o.ListNumber == nil
}

type BallotStatus string

// Rejected votes are never persisted, so every ledger row is valid.
const BallotStatusValid BallotStatus = "Válido"

// Ballot is one accepted vote. Immutable after creation; content links live
// in separate rows owned by the ledger.
type Ballot struct {
	BallotID  int64
	CircuitID int64
	CastAt    time.Time
	Observed  bool
	Status    BallotStatus
}
