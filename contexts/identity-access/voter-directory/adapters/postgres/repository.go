package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sufragio/contexts/identity-access/voter-directory/domain/entities"
	"sufragio/contexts/identity-access/voter-directory/ports"

	"gorm.io/gorm"
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

func (r *Repository) VoterByCredential(
	ctx context.Context,
	credential string,
) (entities.Voter, entities.CircuitLocation, bool, error) {
	var row voterLocationRow
	err := r.db.WithContext(ctx).
		Table("voters AS v").
		Select("v.cedula, v.credential, v.full_name, v.circuit_id, "+
			"c.accessible, z.city, z.place, z.neighborhood, "+
			"d.id AS department_id, d.name AS department").
		Joins("JOIN circuits AS c ON c.id = v.circuit_id").
		Joins("JOIN zones AS z ON z.id = c.zone_id").
		Joins("JOIN departments AS d ON d.id = z.department_id").
		Where("v.credential = ?", strings.TrimSpace(credential)).
		Limit(1).
		Scan(&row).
		Error
	if err != nil {
		return entities.Voter{}, entities.CircuitLocation{}, false,
			r.logError("directory_repo_voter_by_credential_failed", err)
	}
	if row.Cedula == "" {
		return entities.Voter{}, entities.CircuitLocation{}, false, nil
	}
	voter := entities.Voter{
		Cedula:     row.Cedula,
		Credential: row.Credential,
		FullName:   row.FullName,
		CircuitID:  row.CircuitID,
	}
	location := entities.CircuitLocation{
		CircuitID:    row.CircuitID,
		Accessible:   row.Accessible,
		City:         row.City,
		Place:        row.Place,
		Neighborhood: row.Neighborhood,
		DepartmentID: row.DepartmentID,
		Department:   row.Department,
	}
	return voter, location, true, nil
}

func (r *Repository) RoleByCedula(ctx context.Context, cedula string) (entities.Role, error) {
	var row mesaOfficialModel
	err := r.db.WithContext(ctx).
		Where("cedula = ?", strings.TrimSpace(cedula)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OrdinaryVoterRole(), nil
		}
		return entities.Role{}, r.logError("directory_repo_role_by_cedula_failed", err,
			"cedula", strings.TrimSpace(cedula),
		)
	}
	return entities.Role{
		Kind:      entities.RoleKindMesaOfficial,
		Role:      row.Role,
		CircuitID: row.CircuitID,
	}, nil
}

func (r *Repository) HasVoted(ctx context.Context, cedula string, electionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("voter_ballots").
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Where("election_id = ?", electionID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("directory_repo_has_voted_failed", err,
			"election_id", electionID,
		)
	}
	return count > 0, nil
}

func (r *Repository) ActiveElection(ctx context.Context) (ports.ElectionProjection, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionProjection{}, false, nil
		}
		return ports.ElectionProjection{}, false,
			r.logError("directory_repo_active_election_failed", err)
	}
	return ports.ElectionProjection{
		ElectionID: row.ID,
		Name:       row.Name,
		Active:     row.IsActive,
	}, true, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/voter-directory",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voter directory repository operation failed", fields...)
	return err
}

type voterLocationRow struct {
	Cedula       string `gorm:"column:cedula"`
	Credential   string `gorm:"column:credential"`
	FullName     string `gorm:"column:full_name"`
	CircuitID    int64  `gorm:"column:circuit_id"`
	Accessible   bool   `gorm:"column:accessible"`
	City         string `gorm:"column:city"`
	Place        string `gorm:"column:place"`
	Neighborhood string `gorm:"column:neighborhood"`
	DepartmentID int64  `gorm:"column:department_id"`
	Department   string `gorm:"column:department"`
}

type mesaOfficialModel struct {
	Cedula    string `gorm:"column:cedula;primaryKey"`
	CircuitID int64  `gorm:"column:circuit_id"`
	Role      string `gorm:"column:role"`
	Organism  string `gorm:"column:organism"`
}

func (mesaOfficialModel) TableName() string {
	return "mesa_officials"
}

type electionModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	IsActive bool   `gorm:"column:is_active"`
}

func (electionModel) TableName() string {
	return "elections"
}

var _ ports.VoterRepository = (*Repository)(nil)
