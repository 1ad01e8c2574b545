package entities

import "time"

// MesaState is the open/closed record for one circuit's polling station.
// ClosedAt and ClosingOfficialID are set together, exactly when the mesa has
// been closed; an open mesa carries neither.
type MesaState struct {
	CircuitID         int64
	IsOpen            bool
	OpenedAt          *time.Time
	ClosedAt          *time.Time
	ClosingOfficialID string
}

// OpenMesa is a listing row for dashboards showing which circuits still
// accept ballots.
type OpenMesa struct {
	CircuitID    int64
	OpenedAt     time.Time
	City         string
	Neighborhood string
}
