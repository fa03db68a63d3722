package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the idempotent DDL for the four entity tables.
//
// Subscriptions reference members/plans by their external UUID so repository
// records never leak the serial storage identity. Cancelled leftovers are
// removed alongside their member via ON DELETE CASCADE.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id BIGSERIAL PRIMARY KEY,
		external_id UUID NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		gender TEXT,
		dob DATE,
		phone TEXT,
		email TEXT,
		address TEXT,
		join_date DATE NOT NULL,
		membership_status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT members_external_id_unique UNIQUE (external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS membership_plans (
		id BIGSERIAL PRIMARY KEY,
		external_id UUID NOT NULL,
		name TEXT NOT NULL,
		duration_months INTEGER NOT NULL,
		fee DOUBLE PRECISION NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT membership_plans_external_id_unique UNIQUE (external_id),
		CONSTRAINT membership_plans_duration_positive CHECK (duration_months > 0),
		CONSTRAINT membership_plans_fee_non_negative CHECK (fee >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id BIGSERIAL PRIMARY KEY,
		external_id UUID NOT NULL,
		member_id UUID NOT NULL REFERENCES members (external_id) ON DELETE CASCADE,
		plan_id UUID NOT NULL REFERENCES membership_plans (external_id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT subscriptions_external_id_unique UNIQUE (external_id),
		CONSTRAINT subscriptions_window_valid CHECK (end_date > start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS subscriptions_member_status_idx
		ON subscriptions (member_id, status)`,
	`CREATE TABLE IF NOT EXISTS trainers (
		id BIGSERIAL PRIMARY KEY,
		external_id UUID NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		specialization TEXT,
		phone TEXT,
		email TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT trainers_external_id_unique UNIQUE (external_id)
	)`,
}

// Migrate applies the schema. Safe to run at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
