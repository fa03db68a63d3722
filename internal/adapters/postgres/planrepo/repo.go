package planrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/irondistrict/membership-api/internal/adapters/postgres"
	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/planrepo"
)

// Repo is a Postgres implementation of planrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p planrepo.Plan) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(p.ID))
	if err != nil {
		return fmt.Errorf("invalid plan id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO membership_plans (
			external_id,
			name,
			duration_months,
			fee,
			description,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		id,
		p.Name,
		p.DurationMonths,
		p.Fee,
		p.Description,
		p.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "membership_plans_external_id_unique" {
			return planrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.PlanID) (planrepo.Plan, error) {
	if r.pool == nil {
		return planrepo.Plan{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return planrepo.Plan{}, planrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT external_id, name, duration_months, fee, description, created_at
		FROM membership_plans
		WHERE external_id = $1
	`, uid)
	return scanPlan(row)
}

func (r *Repo) List(ctx context.Context) ([]planrepo.Plan, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT external_id, name, duration_months, fee, description, created_at
		FROM membership_plans
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]planrepo.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPlan(row interface {
	Scan(dest ...any) error
}) (planrepo.Plan, error) {
	var (
		externalID     uuid.UUID
		name           string
		durationMonths int
		fee            float64
		description    *string
		createdAt      time.Time
	)
	if err := row.Scan(&externalID, &name, &durationMonths, &fee, &description, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return planrepo.Plan{}, planrepo.ErrNotFound
		}
		return planrepo.Plan{}, err
	}
	return planrepo.Plan{
		ID:             domain.PlanID(externalID.String()),
		Name:           name,
		DurationMonths: durationMonths,
		Fee:            fee,
		Description:    description,
		CreatedAt:      createdAt.UTC(),
	}, nil
}
