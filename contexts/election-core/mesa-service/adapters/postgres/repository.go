package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sufragio/contexts/election-core/mesa-service/domain/entities"
	domainerrors "sufragio/contexts/election-core/mesa-service/domain/errors"
	"sufragio/contexts/election-core/mesa-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

func (r *Repository) GetState(ctx context.Context, circuitID int64) (entities.MesaState, error) {
	var row mesaStateModel
	err := r.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MesaState{}, domainerrors.ErrMesaNotFound
		}
		return entities.MesaState{}, r.logError("mesa_repo_get_state_failed", err,
			"circuit_id", circuitID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) Open(ctx context.Context, circuitID int64, openedAt time.Time) error {
	opened := openedAt.UTC()
	row := mesaStateModel{
		CircuitID: circuitID,
		IsOpen:    true,
		OpenedAt:  &opened,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "circuit_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"is_open":             true,
			"opened_at":           opened,
			"closed_at":           nil,
			"closing_official_id": nil,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("mesa_repo_open_failed", create.Error, "circuit_id", circuitID)
	}
	return nil
}

func (r *Repository) Close(
	ctx context.Context,
	circuitID int64,
	officialID string,
	closedAt time.Time,
) error {
	officialID = strings.TrimSpace(officialID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row mesaStateModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("circuit_id = ?", circuitID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrMesaNotFound
			}
			return err
		}
		if !row.IsOpen {
			return domainerrors.ErrMesaAlreadyClosed
		}
		return tx.Model(&mesaStateModel{}).
			Where("circuit_id = ?", circuitID).
			Updates(map[string]any{
				"is_open":             false,
				"closed_at":           closedAt.UTC(),
				"closing_official_id": officialID,
			}).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrMesaNotFound) ||
			errors.Is(err, domainerrors.ErrMesaAlreadyClosed) {
			return err
		}
		return r.logError("mesa_repo_close_failed", err, "circuit_id", circuitID)
	}
	return nil
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
		return false, r.logError("mesa_repo_is_official_failed", err, "circuit_id", circuitID)
	}
	return count > 0, nil
}

func (r *Repository) ListOpen(ctx context.Context) ([]entities.OpenMesa, error) {
	var rows []openMesaRow
	err := r.db.WithContext(ctx).
		Table("mesa_states AS m").
		Select("m.circuit_id, m.opened_at, z.city, z.neighborhood").
		Joins("JOIN circuits AS c ON c.id = m.circuit_id").
		Joins("JOIN zones AS z ON z.id = c.zone_id").
		Where("m.is_open = ?", true).
		Order("m.circuit_id ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("mesa_repo_list_open_failed", err)
	}
	items := make([]entities.OpenMesa, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.OpenMesa{
			CircuitID:    row.CircuitID,
			OpenedAt:     row.OpenedAt.UTC(),
			City:         row.City,
			Neighborhood: row.Neighborhood,
		})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/mesa-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("mesa repository operation failed", fields...)
	return err
}

type mesaStateModel struct {
	CircuitID         int64      `gorm:"column:circuit_id;primaryKey"`
	IsOpen            bool       `gorm:"column:is_open"`
	OpenedAt          *time.Time `gorm:"column:opened_at"`
	ClosedAt          *time.Time `gorm:"column:closed_at"`
	ClosingOfficialID *string    `gorm:"column:closing_official_id"`
}

func (mesaStateModel) TableName() string {
	return "mesa_states"
}

func (m mesaStateModel) toEntity() entities.MesaState {
	state := entities.MesaState{
		CircuitID: m.CircuitID,
		IsOpen:    m.IsOpen,
		OpenedAt:  normalizeOptionalTime(m.OpenedAt),
		ClosedAt:  normalizeOptionalTime(m.ClosedAt),
	}
	if m.ClosingOfficialID != nil {
		state.ClosingOfficialID = strings.TrimSpace(*m.ClosingOfficialID)
	}
	return state
}

type openMesaRow struct {
	CircuitID    int64     `gorm:"column:circuit_id"`
	OpenedAt     time.Time `gorm:"column:opened_at"`
	City         string    `gorm:"column:city"`
	Neighborhood string    `gorm:"column:neighborhood"`
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

// SystemClock satisfies ports.Clock for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.MesaStateRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
