package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sufragio/contexts/election-core/voting-engine/domain/entities"
	domainerrors "sufragio/contexts/election-core/voting-engine/domain/errors"
	"sufragio/contexts/election-core/voting-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
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

// CastBallot runs the full ledger write in one transaction: mesa gate, option
// membership, duplicate re-check, then the ballot row and its two link rows.
// Any failure rolls every partial write back. A unique violation on the
// voter-ballot link is the authoritative already-voted signal.
func (r *Repository) CastBallot(ctx context.Context, cast ports.BallotCast) (int64, error) {
	var ballotID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mesa mesaStateProjection
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("circuit_id = ?", cast.CircuitID).
			First(&mesa).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrMesaClosed
			}
			return err
		}
		if !mesa.IsOpen {
			return domainerrors.ErrMesaClosed
		}

		var option ballotOptionModel
		err = tx.
			Where("id = ?", cast.OptionID).
			Where("election_id = ?", cast.ElectionID).
			First(&option).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrBallotOptionNotFound
			}
			return err
		}

		var voted int64
		if err := tx.Model(&voterBallotModel{}).
			Where("cedula = ?", cast.Cedula).
			Where("election_id = ?", cast.ElectionID).
			Count(&voted).Error; err != nil {
			return err
		}
		if voted > 0 {
			return domainerrors.ErrAlreadyVoted
		}

		ballot := ballotModel{
			CircuitID: cast.CircuitID,
			CastAt:    cast.CastAt.UTC(),
			Observed:  cast.Observed,
			Status:    string(entities.BallotStatusValid),
		}
		if err := tx.Create(&ballot).Error; err != nil {
			return err
		}
		if err := tx.Create(&ballotOptionCastModel{
			BallotID: ballot.ID,
			OptionID: cast.OptionID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&voterBallotModel{
			BallotID:   ballot.ID,
			Cedula:     strings.TrimSpace(cast.Cedula),
			ElectionID: cast.ElectionID,
			CastAt:     cast.CastAt.UTC(),
		}).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}
		ballotID = ballot.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrMesaClosed) ||
			errors.Is(err, domainerrors.ErrBallotOptionNotFound) ||
			errors.Is(err, domainerrors.ErrAlreadyVoted) {
			return 0, err
		}
		return 0, r.logError("voting_repo_cast_ballot_failed", err,
			"election_id", cast.ElectionID,
			"circuit_id", cast.CircuitID,
		)
	}
	return ballotID, nil
}

func (r *Repository) ListObserved(ctx context.Context) ([]entities.Ballot, error) {
	var rows []ballotModel
	err := r.db.WithContext(ctx).
		Where("observed = ?", true).
		Order("cast_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_repo_list_observed_failed", err)
	}
	items := make([]entities.Ballot, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ActiveElection(ctx context.Context) (entities.Election, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, false, nil
		}
		return entities.Election{}, false, r.logError("voting_repo_active_election_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) BallotOptions(ctx context.Context, electionID int64) ([]entities.BallotOption, error) {
	var rows []ballotOptionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_repo_ballot_options_failed", err,
			"election_id", electionID,
		)
	}
	items := make([]entities.BallotOption, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) VoterByCredential(ctx context.Context, credential string) (ports.VoterProjection, bool, error) {
	var row voterProjection
	err := r.db.WithContext(ctx).
		Where("credential = ?", strings.TrimSpace(credential)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VoterProjection{}, false, nil
		}
		return ports.VoterProjection{}, false,
			r.logError("voting_repo_voter_by_credential_failed", err)
	}
	return ports.VoterProjection{
		Cedula:    row.Cedula,
		CircuitID: row.CircuitID,
	}, true, nil
}

func (r *Repository) HasVoted(ctx context.Context, cedula string, electionID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voterBallotModel{}).
		Where("cedula = ?", strings.TrimSpace(cedula)).
		Where("election_id = ?", electionID).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("voting_repo_has_voted_failed", err,
			"election_id", electionID,
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	Name     string    `gorm:"column:name"`
	HeldOn   time.Time `gorm:"column:held_on"`
	IsActive bool      `gorm:"column:is_active"`
}

func (electionModel) TableName() string {
	return "elections"
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID: m.ID,
		Name:       m.Name,
		HeldOn:     m.HeldOn.UTC(),
		IsActive:   m.IsActive,
	}
}

type ballotOptionModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	ElectionID int64  `gorm:"column:election_id"`
	Color      string `gorm:"column:color"`
	ListNumber *int   `gorm:"column:list_number"`
}

func (ballotOptionModel) TableName() string {
	return "ballot_options"
}

func (m ballotOptionModel) toEntity() entities.BallotOption {
	return entities.BallotOption{
		OptionID:   m.ID,
		ElectionID: m.ElectionID,
		Color:      m.Color,
		ListNumber: m.ListNumber,
	}
}

type ballotModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CircuitID int64     `gorm:"column:circuit_id"`
	CastAt    time.Time `gorm:"column:cast_at"`
	Observed  bool      `gorm:"column:observed"`
	Status    string    `gorm:"column:status"`
}

func (ballotModel) TableName() string {
	return "ballots"
}

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		BallotID:  m.ID,
		CircuitID: m.CircuitID,
		CastAt:    m.CastAt.UTC(),
		Observed:  m.Observed,
		Status:    entities.BallotStatus(m.Status),
	}
}

type ballotOptionCastModel struct {
	BallotID int64 `gorm:"column:ballot_id;primaryKey"`
	OptionID int64 `gorm:"column:option_id"`
}

func (ballotOptionCastModel) TableName() string {
	return "ballot_options_cast"
}

// voterBallotModel carries the unique (cedula, election_id) pair that makes
// double voting impossible regardless of request interleaving.
type voterBallotModel struct {
	BallotID   int64     `gorm:"column:ballot_id;primaryKey"`
	Cedula     string    `gorm:"column:cedula;uniqueIndex:uniq_voter_election"`
	ElectionID int64     `gorm:"column:election_id;uniqueIndex:uniq_voter_election"`
	CastAt     time.Time `gorm:"column:cast_at"`
}

func (voterBallotModel) TableName() string {
	return "voter_ballots"
}

type voterProjection struct {
	Cedula    string `gorm:"column:cedula;primaryKey"`
	CircuitID int64  `gorm:"column:circuit_id"`
}

func (voterProjection) TableName() string {
	return "voters"
}

type mesaStateProjection struct {
	CircuitID int64 `gorm:"column:circuit_id;primaryKey"`
	IsOpen    bool  `gorm:"column:is_open"`
}

func (mesaStateProjection) TableName() string {
	return "mesa_states"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SystemClock satisfies ports.Clock for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.BallotLedger = (*Repository)(nil)
var _ ports.ElectionCatalog = (*Repository)(nil)
var _ ports.VoterLookup = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
