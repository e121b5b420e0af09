package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// Record is one persisted valuation: the input profile, the full result, and
// the persistence metadata kept off the engine result on purpose.
type Record struct {
	ID        uuid.UUID               `json:"id"`
	Profile   *models.BusinessProfile `json:"profile"`
	Result    *valuation.Result       `json:"result"`
	CreatedAt time.Time               `json:"created_at"`
}

// ValuationRepository stores and retrieves valuation records.
type ValuationRepository interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id uuid.UUID) (*Record, error)
}

// PostgresRepo is the pgx-backed repository.
//
// Expected schema:
//
//	CREATE TABLE valuations (
//	    id         UUID PRIMARY KEY,
//	    profile    JSONB NOT NULL,
//	    result     JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo wraps a connection pool. Pass store.GetPool() after InitDB.
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// ParseRecordID parses a record id from its string form.
func ParseRecordID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// NewRecord stamps a result with its persistence metadata.
func NewRecord(profile *models.BusinessProfile, result *valuation.Result) *Record {
	return &Record{
		ID:        uuid.New(),
		Profile:   profile,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}

// Save inserts the record.
func (r *PostgresRepo) Save(ctx context.Context, rec *Record) error {
	if r.pool == nil {
		return fmt.Errorf("store not initialized")
	}
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO valuations (id, profile, result, created_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, profileJSON, resultJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert valuation %s: %w", rec.ID, err)
	}
	return nil
}

// Load fetches a record by id.
func (r *PostgresRepo) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("store not initialized")
	}

	var profileJSON, resultJSON []byte
	rec := &Record{ID: id}
	err := r.pool.QueryRow(ctx,
		`SELECT profile, result, created_at FROM valuations WHERE id = $1`, id).
		Scan(&profileJSON, &resultJSON, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("load valuation %s: %w", id, err)
	}

	if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return rec, nil
}
