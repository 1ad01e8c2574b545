package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sufragio/contexts/election-core/tally-service/domain/entities"
	"sufragio/contexts/election-core/tally-service/ports"

	"gorm.io/gorm"
)

const validBallotStatus = "Válido"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) TallyNational(ctx context.Context) ([]entities.TallyRow, error) {
	rows, err := r.scanTally(r.tallyBase(ctx).
		Joins("LEFT JOIN ballots AS b ON b.id = bc.ballot_id AND b.status = ?", validBallotStatus))
	if err != nil {
		return nil, r.logError("tally_repo_national_failed", err)
	}
	return rows, nil
}

func (r *Repository) TallyByCircuit(ctx context.Context, circuitID int64) ([]entities.TallyRow, error) {
	rows, err := r.scanTally(r.tallyBase(ctx).
		Joins("LEFT JOIN ballots AS b ON b.id = bc.ballot_id AND b.status = ? AND b.circuit_id = ?",
			validBallotStatus, circuitID))
	if err != nil {
		return nil, r.logError("tally_repo_circuit_failed", err, "circuit_id", circuitID)
	}
	return rows, nil
}

func (r *Repository) TallyByDepartment(ctx context.Context, departmentID int64) ([]entities.TallyRow, error) {
	rows, err := r.scanTally(r.tallyBase(ctx).
		Joins("LEFT JOIN ballots AS b ON b.id = bc.ballot_id AND b.status = ? AND b.circuit_id IN "+
			"(SELECT c.id FROM circuits AS c JOIN zones AS z ON z.id = c.zone_id WHERE z.department_id = ?)",
			validBallotStatus, departmentID))
	if err != nil {
		return nil, r.logError("tally_repo_department_failed", err, "department_id", departmentID)
	}
	return rows, nil
}

func (r *Repository) ParticipationStats(ctx context.Context) (entities.ParticipationStats, error) {
	var stats entities.ParticipationStats
	if err := r.db.WithContext(ctx).
		Table("voters").
		Count(&stats.TotalVoters).Error; err != nil {
		return entities.ParticipationStats{}, r.logError("tally_repo_total_voters_failed", err)
	}
	if err := r.db.WithContext(ctx).
		Table("voter_ballots").
		Count(&stats.TotalBallots).Error; err != nil {
		return entities.ParticipationStats{}, r.logError("tally_repo_total_ballots_failed", err)
	}

	var turnout []turnoutRow
	err := r.db.WithContext(ctx).
		Table("circuits AS c").
		Select("c.id AS circuit_id, z.city, z.neighborhood, COUNT(b.id) AS ballots").
		Joins("JOIN zones AS z ON z.id = c.zone_id").
		Joins("LEFT JOIN ballots AS b ON b.circuit_id = c.id AND b.status = ?", validBallotStatus).
		Group("c.id, z.city, z.neighborhood").
		Order("ballots DESC, c.id ASC").
		Scan(&turnout).
		Error
	if err != nil {
		return entities.ParticipationStats{}, r.logError("tally_repo_turnout_failed", err)
	}
	stats.PerCircuit = make([]entities.CircuitTurnout, 0, len(turnout))
	for _, row := range turnout {
		stats.PerCircuit = append(stats.PerCircuit, entities.CircuitTurnout{
			CircuitID:    row.CircuitID,
			City:         row.City,
			Neighborhood: row.Neighborhood,
			Ballots:      row.Ballots,
		})
	}
	return stats, nil
}

func (r *Repository) MesaState(ctx context.Context, circuitID int64) (ports.MesaStateProjection, bool, error) {
	var row mesaStateProjection
	err := r.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MesaStateProjection{}, false, nil
		}
		return ports.MesaStateProjection{}, false,
			r.logError("tally_repo_mesa_state_failed", err, "circuit_id", circuitID)
	}
	projection := ports.MesaStateProjection{
		CircuitID: row.CircuitID,
		IsOpen:    row.IsOpen,
		OpenedAt:  row.OpenedAt,
		ClosedAt:  row.ClosedAt,
	}
	if row.ClosingOfficialID != nil {
		projection.ClosingOfficialID = strings.TrimSpace(*row.ClosingOfficialID)
	}
	return projection, true, nil
}

func (r *Repository) IsOfficialOf(ctx context.Context, cedula string, circuitID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("mesa_officials").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Where("circuit_id = ?", circuitID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("tally_repo_is_official_failed", err, "circuit_id", circuitID)
	}
	return count > 0, nil
}

// tallyBase starts the options-of-active-election frame every tally scope
// shares; callers add the scoped LEFT JOIN onto ballots.
func (r *Repository) tallyBase(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("ballot_options AS p").
		Select("p.id AS option_id, p.color, p.list_number, COUNT(b.id) AS votes").
		Joins("JOIN elections AS e ON e.id = p.election_id AND e.is_active = TRUE").
		Joins("LEFT JOIN ballot_options_cast AS bc ON bc.option_id = p.id")
}

func (r *Repository) scanTally(tx *gorm.DB) ([]entities.TallyRow, error) {
	var rows []tallyRow
	err := tx.
		Group("p.id, p.color, p.list_number").
		Order("votes DESC, p.id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.TallyRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.TallyRow{
			OptionID:   row.OptionID,
			Color:      row.Color,
			Label:      entities.OptionLabel(row.ListNumber),
			ListNumber: row.ListNumber,
			Count:      row.Votes,
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/tally-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("tally repository operation failed", fields...)
	return err
}

type tallyRow struct {
	OptionID   int64  `gorm:"column:option_id"`
	Color      string `gorm:"column:color"`
	ListNumber *int   `gorm:"column:list_number"`
	Votes      int64  `gorm:"column:votes"`
}

type turnoutRow struct {
	CircuitID    int64  `gorm:"column:circuit_id"`
	City         string `gorm:"column:city"`
	Neighborhood string `gorm:"column:neighborhood"`
	Ballots      int64  `gorm:"column:ballots"`
}

type mesaStateProjection struct {
	CircuitID         int64      `gorm:"column:circuit_id;primaryKey"`
	IsOpen            bool       `gorm:"column:is_open"`
	OpenedAt          *time.Time `gorm:"column:opened_at"`
	ClosedAt          *time.Time `gorm:"column:closed_at"`
	ClosingOfficialID *string    `gorm:"column:closing_official_id"`
}

func (mesaStateProjection) TableName() string {
	return "mesa_states"
}

var _ ports.TallyRepository = (*Repository)(nil)
var _ ports.MesaStateReader = (*Repository)(nil)
