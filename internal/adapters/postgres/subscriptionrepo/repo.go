package subscriptionrepo

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
	"github.com/irondistrict/membership-api/internal/ports/out/subscriptionrepo"
)

// Repo is a Postgres implementation of subscriptionrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const subscriptionColumns = `
	external_id,
	member_id,
	plan_id,
	start_date,
	end_date,
	status,
	created_at,
	updated_at
`

// Create runs the overlap check and the insert in one transaction. The
// member row is locked first so two concurrent creations for the same member
// serialize even when the member holds no active subscription yet.
func (r *Repo) Create(ctx context.Context, s subscriptionrepo.Subscription) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid subscription id: %w", err)
	}
	memberID, err := uuid.Parse(string(s.MemberID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}
	planID, err := uuid.Parse(string(s.PlanID))
	if err != nil {
		return fmt.Errorf("invalid plan id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM members WHERE external_id = $1 FOR UPDATE
		`, memberID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("member %s vanished before subscription insert", s.MemberID)
			}
			return err
		}

		var overlaps bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM subscriptions
				WHERE member_id = $1
				  AND status = $2
				  AND start_date < $4
				  AND $3 < end_date
			)
		`, memberID, string(domain.SubscriptionStatusActive), s.StartDate, s.EndDate).Scan(&overlaps)
		if err != nil {
			return err
		}
		if overlaps {
			return subscriptionrepo.ErrActiveOverlap
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO subscriptions (
				external_id,
				member_id,
				plan_id,
				start_date,
				end_date,
				status,
				created_at,
				updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			id,
			memberID,
			planID,
			s.StartDate,
			s.EndDate,
			string(s.Status),
			s.CreatedAt.UTC(),
			s.UpdatedAt.UTC(),
		)
		if err != nil {
			if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "subscriptions_external_id_unique" {
				return subscriptionrepo.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r *Repo) Save(ctx context.Context, s subscriptionrepo.Subscription) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid subscription id: %w", err)
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET status = $2, updated_at = $3
		WHERE external_id = $1
	`, id, string(s.Status), s.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return subscriptionrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.SubscriptionID) (subscriptionrepo.Subscription, error) {
	if r.pool == nil {
		return subscriptionrepo.Subscription{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return subscriptionrepo.Subscription{}, subscriptionrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE external_id = $1
	`, uid)
	return scanSubscription(row)
}

func (r *Repo) List(ctx context.Context) ([]subscriptionrepo.Subscription, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

func (r *Repo) ListByMember(ctx context.Context, memberID domain.MemberID) ([]subscriptionrepo.Subscription, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(memberID))
	if err != nil {
		return []subscriptionrepo.Subscription{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE member_id = $1
		ORDER BY id ASC
	`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubscriptions(rows)
}

func (r *Repo) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1, updated_at = $2
		WHERE status = $3 AND end_date <= $4
	`,
		string(domain.SubscriptionStatusExpired),
		asOf.UTC(),
		string(domain.SubscriptionStatusActive),
		domain.DateOnly(asOf),
	)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *Repo) DeleteByMember(ctx context.Context, memberID domain.MemberID) (int64, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(memberID))
	if err != nil {
		return 0, nil
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE member_id = $1`, uid)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// --- helpers ---

func collectSubscriptions(rows pgx.Rows) ([]subscriptionrepo.Subscription, error) {
	out := make([]subscriptionrepo.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSubscription(row interface {
	Scan(dest ...any) error
}) (subscriptionrepo.Subscription, error) {
	var (
		externalID uuid.UUID
		memberID   uuid.UUID
		planID     uuid.UUID
		startDate  time.Time
		endDate    time.Time
		status     string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&memberID,
		&planID,
		&startDate,
		&endDate,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscriptionrepo.Subscription{}, subscriptionrepo.ErrNotFound
		}
		return subscriptionrepo.Subscription{}, err
	}
	return subscriptionrepo.Subscription{
		ID:        domain.SubscriptionID(externalID.String()),
		MemberID:  domain.MemberID(memberID.String()),
		PlanID:    domain.PlanID(planID.String()),
		StartDate: domain.DateOnly(startDate),
		EndDate:   domain.DateOnly(endDate),
		Status:    domain.SubscriptionStatus(status),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}
