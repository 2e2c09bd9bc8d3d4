package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// ProgrammeRepository handles programme database operations. Nested
// structures (coordinators, budget, claim) are stored as JSON columns; the
// claim column is NULL until a claim bill is submitted.
type ProgrammeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProgrammeRepository creates a new programme repository
func NewProgrammeRepository(db *sql.DB, logger *zap.Logger) *ProgrammeRepository {
	return &ProgrammeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new programme
func (r *ProgrammeRepository) Create(p *entity.Programme) error {
	coordinators, budget, audience, resources, claim, err := marshalNested(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO programmes (
			public_id, title, start_date, end_date, venue, mode, duration,
			status, coordinators, target_audience, resource_persons, budget, claim
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		p.PublicID, p.Title, p.StartDate, p.EndDate, p.Venue, p.Mode,
		p.Duration, p.Status, coordinators, audience, resources, budget, claim,
	)
	if err != nil {
		r.logger.Error("Failed to create programme", zap.Error(err))
		return fmt.Errorf("failed to create programme: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	p.ID = id
	return nil
}

// Update persists programme mutations, including claim submission and
// review outcomes
func (r *ProgrammeRepository) Update(p *entity.Programme) error {
	coordinators, budget, audience, resources, claim, err := marshalNested(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE programmes SET
			title = ?, start_date = ?, end_date = ?, venue = ?, mode = ?,
			duration = ?, status = ?, coordinators = ?, target_audience = ?,
			resource_persons = ?, budget = ?, claim = ?, updated_at = ?
		WHERE id = ?
	`

	_, err = r.db.Exec(query,
		p.Title, p.StartDate, p.EndDate, p.Venue, p.Mode, p.Duration,
		p.Status, coordinators, audience, resources, budget, claim,
		time.Now().UTC(), p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update programme", zap.Int64("id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to update programme: %w", err)
	}

	return nil
}

const programmeColumns = `
	id, public_id, title, start_date, end_date, venue, mode, duration,
	status, coordinators, target_audience, resource_persons, budget, claim,
	created_at, updated_at
`

// GetByPublicID retrieves a programme by its public identifier. Returns
// nil, nil when no programme exists.
func (r *ProgrammeRepository) GetByPublicID(publicID string) (*entity.Programme, error) {
	query := "SELECT" + programmeColumns + "FROM programmes WHERE public_id = ?"
	row := r.db.QueryRow(query, publicID)

	p, err := scanProgramme(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get programme", zap.String("public_id", publicID), zap.Error(err))
		return nil, fmt.Errorf("failed to get programme: %w", err)
	}
	return p, nil
}

// List returns programmes ordered by creation, newest first
func (r *ProgrammeRepository) List(limit, offset int) ([]*entity.Programme, error) {
	query := "SELECT" + programmeColumns + "FROM programmes ORDER BY created_at DESC LIMIT ? OFFSET ?"

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list programmes", zap.Error(err))
		return nil, fmt.Errorf("failed to list programmes: %w", err)
	}
	defer rows.Close()

	return collectProgrammes(rows)
}

// ListWithClaims returns every programme that carries a claim bill. The
// consistency audit job walks this set.
func (r *ProgrammeRepository) ListWithClaims() ([]*entity.Programme, error) {
	query := "SELECT" + programmeColumns + "FROM programmes WHERE claim IS NOT NULL ORDER BY id"

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Failed to list programmes with claims", zap.Error(err))
		return nil, fmt.Errorf("failed to list programmes with claims: %w", err)
	}
	defer rows.Close()

	return collectProgrammes(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgramme(row rowScanner) (*entity.Programme, error) {
	var p entity.Programme
	var coordinators, audience, resources, budget string
	var claim sql.NullString

	err := row.Scan(
		&p.ID, &p.PublicID, &p.Title, &p.StartDate, &p.EndDate, &p.Venue,
		&p.Mode, &p.Duration, &p.Status, &coordinators, &audience,
		&resources, &budget, &claim, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(coordinators), &p.Coordinators); err != nil {
		return nil, fmt.Errorf("failed to decode coordinators: %w", err)
	}
	if err := json.Unmarshal([]byte(audience), &p.TargetAudience); err != nil {
		return nil, fmt.Errorf("failed to decode target audience: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &p.ResourcePersons); err != nil {
		return nil, fmt.Errorf("failed to decode resource persons: %w", err)
	}
	if err := json.Unmarshal([]byte(budget), &p.Budget); err != nil {
		return nil, fmt.Errorf("failed to decode budget: %w", err)
	}
	if claim.Valid {
		var bill entity.ClaimBill
		if err := json.Unmarshal([]byte(claim.String), &bill); err != nil {
			return nil, fmt.Errorf("failed to decode claim bill: %w", err)
		}
		p.Claim = &bill
	}

	return &p, nil
}

func collectProgrammes(rows *sql.Rows) ([]*entity.Programme, error) {
	var programmes []*entity.Programme
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, err
		}
		programmes = append(programmes, p)
	}
	return programmes, rows.Err()
}

func marshalNested(p *entity.Programme) (coordinators, budget, audience, resources string, claim interface{}, err error) {
	c, err := json.Marshal(p.Coordinators)
	if err != nil {
		return "", "", "", "", nil, fmt.Errorf("failed to encode coordinators: %w", err)
	}
	b, err := json.Marshal(p.Budget)
	if err != nil {
		return "", "", "", "", nil, fmt.Errorf("failed to encode budget: %w", err)
	}
	a, err := json.Marshal(p.TargetAudience)
	if err != nil {
		return "", "", "", "", nil, fmt.Errorf("failed to encode target audience: %w", err)
	}
	rp, err := json.Marshal(p.ResourcePersons)
	if err != nil {
		return "", "", "", "", nil, fmt.Errorf("failed to encode resource persons: %w", err)
	}

	claim = nil
	if p.Claim != nil {
		cl, err := json.Marshal(p.Claim)
		if err != nil {
			return "", "", "", "", nil, fmt.Errorf("failed to encode claim bill: %w", err)
		}
		claim = string(cl)
	}

	return string(c), string(b), string(a), string(rp), claim, nil
}
