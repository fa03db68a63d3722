package memberrepo

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
	"github.com/irondistrict/membership-api/internal/ports/out/memberrepo"
)

// Repo is a Postgres implementation of memberrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const memberColumns = `
	m.external_id,
	m.first_name,
	m.last_name,
	m.gender,
	m.dob,
	m.phone,
	m.email,
	m.address,
	m.join_date,
	m.membership_status,
	m.created_at,
	m.updated_at
`

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO members (
			external_id,
			first_name,
			last_name,
			gender,
			dob,
			phone,
			email,
			address,
			join_date,
			membership_status,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		id,
		m.FirstName,
		m.LastName,
		m.Gender,
		m.DOB,
		m.Phone,
		m.Email,
		m.Address,
		m.JoinDate,
		string(m.MembershipStatus),
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			if pe.ConstraintName == "members_external_id_unique" {
				return memberrepo.ErrAlreadyExists
			}
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	// join_date is deliberately absent from the SET list: it is immutable.
	ct, err := r.pool.Exec(ctx, `
		UPDATE members
		SET first_name = $2,
		    last_name = $3,
		    gender = $4,
		    dob = $5,
		    phone = $6,
		    email = $7,
		    address = $8,
		    membership_status = $9,
		    updated_at = $10
		WHERE external_id = $1
	`,
		id,
		m.FirstName,
		m.LastName,
		m.Gender,
		m.DOB,
		m.Phone,
		m.Email,
		m.Address,
		string(m.MembershipStatus),
		m.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return memberrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.MemberID) (int64, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return 0, nil
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM members WHERE external_id = $1`, uid)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM members m
		WHERE m.external_id = $1
	`, uid)
	return scanMember(row)
}

func (r *Repo) List(ctx context.Context) ([]memberrepo.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+`
		FROM members m
		ORDER BY m.join_date DESC, m.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMembers(rows)
}

func (r *Repo) SearchByName(ctx context.Context, query string, limit int) ([]memberrepo.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	pattern := "%" + escapeLike(query) + "%"
	sql := `
		SELECT ` + memberColumns + `
		FROM members m
		WHERE m.first_name ILIKE $1 OR m.last_name ILIKE $1
		ORDER BY lower(m.last_name) ASC, lower(m.first_name) ASC, m.id ASC
	`
	args := []any{pattern}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMembers(rows)
}

// --- helpers ---

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func collectMembers(rows pgx.Rows) ([]memberrepo.Member, error) {
	out := make([]memberrepo.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMember(row interface {
	Scan(dest ...any) error
}) (memberrepo.Member, error) {
	var (
		externalID uuid.UUID
		firstName  string
		lastName   string
		gender     *string
		dob        *time.Time
		phone      *string
		email      *string
		address    *string
		joinDate   time.Time
		status     string
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&firstName,
		&lastName,
		&gender,
		&dob,
		&phone,
		&email,
		&address,
		&joinDate,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memberrepo.Member{}, memberrepo.ErrNotFound
		}
		return memberrepo.Member{}, err
	}
	if dob != nil {
		v := domain.DateOnly(*dob)
		dob = &v
	}
	return memberrepo.Member{
		ID:               domain.MemberID(externalID.String()),
		FirstName:        firstName,
		LastName:         lastName,
		Gender:           gender,
		DOB:              dob,
		Phone:            phone,
		Email:            email,
		Address:          address,
		JoinDate:         domain.DateOnly(joinDate),
		MembershipStatus: domain.MembershipStatus(status),
		CreatedAt:        createdAt.UTC(),
		UpdatedAt:        updatedAt.UTC(),
	}, nil
}
