package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	return pool, nil
}

// Migrate creates the schema idempotently. Every statement is additive so
// repeated startups against an existing database are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS workshops (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			phone TEXT,
			email TEXT,
			billing_email TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			notes TEXT,
			subscription_amount DOUBLE PRECISION,
			subscription_start_date TIMESTAMPTZ,
			subscription_initial_amount DOUBLE PRECISION,
			subscription_initial_note TEXT,
			license_start TIMESTAMPTZ NOT NULL,
			license_end TIMESTAMPTZ NOT NULL,
			contract_fixed_end TIMESTAMPTZ NOT NULL,
			contract_indefinite_since TIMESTAMPTZ,
			termination_notice_date TIMESTAMPTZ,
			termination_end_date TIMESTAMPTZ,
			terminated_at TIMESTAMPTZ,
			contract_status TEXT NOT NULL DEFAULT 'fixed',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS workshop_users (
			id UUID PRIMARY KEY,
			workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'workshop',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS workshop_billing (
			id UUID PRIMARY KEY,
			workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
			month TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			invoice_number TEXT,
			status TEXT NOT NULL DEFAULT 'unpaid',
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY,
			vin TEXT NOT NULL,
			registration_number TEXT,
			workshop_name TEXT NOT NULL,
			workshop_id UUID REFERENCES workshops(id) ON DELETE SET NULL,
			mileage_km INTEGER,
			first_registration_date TEXT,
			status TEXT NOT NULL,
			approval_status TEXT NOT NULL DEFAULT 'pending',
			summary TEXT,
			moderation_note TEXT,
			moderated_by TEXT,
			moderated_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_vin_approved ON reports (vin) WHERE approval_status = 'approved'`,
		`CREATE TABLE IF NOT EXISTS media (
			id UUID PRIMARY KEY,
			report_id UUID REFERENCES reports(id) ON DELETE SET NULL,
			file_name TEXT NOT NULL,
			object_key TEXT NOT NULL UNIQUE,
			mime_type TEXT NOT NULL,
			size BIGINT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY,
			type TEXT NOT NULL,
			message TEXT NOT NULL,
			actor_email TEXT,
			payload JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at)`,
		`CREATE TABLE IF NOT EXISTS parts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			price DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
			part_name TEXT NOT NULL,
			part_code TEXT,
			quantity INTEGER NOT NULL,
			price DOUBLE PRECISION,
			status TEXT NOT NULL DEFAULT 'submitted',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY,
			workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
			number TEXT NOT NULL,
			client_name TEXT NOT NULL,
			client_nip TEXT,
			client_address TEXT,
			date_issued TIMESTAMPTZ NOT NULL,
			date_due TIMESTAMPTZ NOT NULL,
			items JSONB NOT NULL,
			total_net DOUBLE PRECISION NOT NULL,
			total_vat DOUBLE PRECISION NOT NULL,
			total_gross DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'issued',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("Database schema is up to date")
	return nil
}

// SeedParts loads a starter parts catalogue when the table is empty.
func SeedParts(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM parts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name  string
		code  string
		price float64
	}{
		{"Klocki hamulcowe przod", "BRK-1001", 129.99},
		{"Tarcza hamulcowa", "BRK-2001", 199.00},
		{"Filtr oleju", "FLT-0100", 24.50},
		{"Filtr powietrza", "FLT-0200", 39.90},
		{"Swieca zaplonowa", "IGN-0300", 18.75},
		{"Pasek rozrzadu", "ENG-0400", 249.00},
		{"Amortyzator przedni", "SUS-0500", 312.40},
		{"Akumulator 74Ah", "ELE-0600", 449.00},
	}
	for _, p := range seed {
		if _, err := pool.Exec(ctx,
			`INSERT INTO parts (id, name, code, price) VALUES (gen_random_uuid(), $1, $2, $3)`,
			p.name, p.code, p.price,
		); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d catalogue parts", len(seed))
	return nil
}
