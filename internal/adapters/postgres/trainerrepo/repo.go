package trainerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/irondistrict/membership-api/internal/adapters/postgres"
	"github.com/irondistrict/membership-api/internal/domain"
	"github.com/irondistrict/membership-api/internal/ports/out/trainerrepo"
)

// Repo is a Postgres implementation of trainerrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t trainerrepo.Trainer) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(t.ID))
	if err != nil {
		return fmt.Errorf("invalid trainer id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO trainers (
			external_id,
			first_name,
			last_name,
			specialization,
			phone,
			email,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		id,
		t.FirstName,
		t.LastName,
		t.Specialization,
		t.Phone,
		t.Email,
		t.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "trainers_external_id_unique" {
			return trainerrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]trainerrepo.Trainer, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT external_id, first_name, last_name, specialization, phone, email, created_at
		FROM trainers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]trainerrepo.Trainer, 0)
	for rows.Next() {
		var (
			externalID     uuid.UUID
			firstName      string
			lastName       string
			specialization *string
			phone          *string
			email          *string
			createdAt      time.Time
		)
		if err := rows.Scan(&externalID, &firstName, &lastName, &specialization, &phone, &email, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, trainerrepo.Trainer{
			ID:             domain.TrainerID(externalID.String()),
			FirstName:      firstName,
			LastName:       lastName,
			Specialization: specialization,
			Phone:          phone,
			Email:          email,
			CreatedAt:      createdAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
