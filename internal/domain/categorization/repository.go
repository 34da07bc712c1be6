package categorization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmptyMerchantKey rejects learning updates for descriptions that carry
// no retainable merchant identity.
var ErrEmptyMerchantKey = errors.New("merchant key is empty")

// Mapping is one learned merchant-to-category association. HitCount tracks
// how often the user has reinforced it.
type Mapping struct {
	MerchantKey string
	Category    string
	HitCount    int
	UpdatedAt   time.Time
}

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists learned merchant mappings.
type Repository struct {
	db DB
}

// NewRepository creates a merchant-mapping repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// GetAll loads every learned mapping as a lookup map for the engine.
func (r *Repository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT merchant_key, category
		FROM merchant_mappings
	`)
	if err != nil {
		return nil, fmt.Errorf("load merchant mappings: %w", err)
	}
	defer rows.Close()

	learned := make(map[string]string)
	for rows.Next() {
		var key, category string
		if err := rows.Scan(&key, &category); err != nil {
			return nil, err
		}
		learned[key] = category
	}
	return learned, rows.Err()
}

// List returns full mapping rows, most-reinforced first, for the
// correction UI and for suggestions.
func (r *Repository) List(ctx context.Context) ([]Mapping, error) {
	rows, err := r.db.Query(ctx, `
		SELECT merchant_key, category, hit_count, updated_at
		FROM merchant_mappings
		ORDER BY hit_count DESC, updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list merchant mappings: %w", err)
	}
	defer rows.Close()

	var mappings []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.MerchantKey, &m.Category, &m.HitCount, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Upsert records a user categorization for a merchant key. Re-learning the
// same key bumps the hit counter; mappings are never deleted here.
func (r *Repository) Upsert(ctx context.Context, merchantKey, category string) error {
	if merchantKey == "" {
		return ErrEmptyMerchantKey
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO merchant_mappings (merchant_key, category, hit_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (merchant_key) DO UPDATE SET
			category = EXCLUDED.category,
			hit_count = merchant_mappings.hit_count + 1,
			updated_at = now()
	`, merchantKey, category)
	if err != nil {
		return fmt.Errorf("upsert merchant mapping: %w", err)
	}
	return nil
}
