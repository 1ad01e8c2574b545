package entities

import "fmt"

// TallyRow is one ranked aggregation row: a ballot option of the active
// election and the number of valid ballots linked to it in scope. Options
// with no ballots still appear with Count zero.
type TallyRow struct {
	OptionID   int64
	Color      string
	Label      string
	ListNumber *int
	Count      int64
}

// OptionLabel renders the display label for a papeleta: the distinguished
// blank option or its list number.
func OptionLabel(listNumber *int) string {
	if listNumber == nil {
		return "Voto en Blanco"
	}
	return fmt.Sprintf("Lista %d", *listNumber)
}

// CircuitTurnout is one per-circuit row of the participation stats view.
type CircuitTurnout struct {
	CircuitID    int64
	City         string
	Neighborhood string
	Ballots      int64
}

type ParticipationStats struct {
	TotalVoters  int64
	TotalBallots int64
	PerCircuit   []CircuitTurnout
}
