package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kakeibo-dev/kakeibo/internal/domain/categorization"
)

// ErrNotFound is returned by single-row lookups with no match.
var ErrNotFound = errors.New("transaction not found")

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore is the pgx-backed transaction store.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a transaction store on the given connection.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const transactionColumns = `
	id, tx_date, amount, description, category, account, wallet,
	source, dedup_hash, merchant_key, category_source, confidence, created_at
`

// FindByHash returns the stored transaction carrying the given dedup hash,
// or ErrNotFound.
func (s *PostgresStore) FindByHash(ctx context.Context, hash string) (*Transaction, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE dedup_hash = $1
	`, hash)

	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction by hash: %w", err)
	}
	return tx, nil
}

// FindByHashes returns the subset of hashes that already exist, as a set.
// One round trip regardless of batch size.
func (s *PostgresStore) FindByHashes(ctx context.Context, hashes []string) (map[string]struct{}, error) {
	if len(hashes) == 0 {
		return map[string]struct{}{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT dedup_hash
		FROM transactions
		WHERE dedup_hash = ANY($1)
	`, hashes)
	if err != nil {
		return nil, fmt.Errorf("find transactions by hashes: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]struct{})
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		existing[hash] = struct{}{}
	}
	return existing, rows.Err()
}

const insertTransactionSQL = `
	INSERT INTO transactions (
		id, tx_date, amount, description, category, account, wallet,
		source, dedup_hash, merchant_key, category_source, confidence
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (dedup_hash) DO NOTHING
`

// Insert stores one transaction. A hash collision with an existing row is
// silently ignored so that a concurrent import racing the dedup gate can
// never produce a second row.
func (s *PostgresStore) Insert(ctx context.Context, tx *Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	_, err := s.db.Exec(ctx, insertTransactionSQL, insertArgs(tx)...)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// InsertMany stores a batch of records already gated for duplicates in one
// pipelined round trip; the ON CONFLICT clause only covers races.
func (s *PostgresStore) InsertMany(ctx context.Context, txs []*Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range txs {
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		batch.Queue(insertTransactionSQL, insertArgs(tx)...)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()
	for range txs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert transaction batch: %w", err)
		}
	}
	return nil
}

func insertArgs(tx *Transaction) []any {
	return []any{
		tx.ID, tx.Date, tx.Amount, tx.Description, tx.Category, tx.Account,
		tx.Wallet, tx.Source, tx.Hash, nullableKey(tx.MerchantKey),
		string(tx.CategorySource), tx.Confidence,
	}
}

// ListByMonth returns transactions dated within the given month
// ("YYYY-MM"), oldest first, for reporting.
func (s *PostgresStore) ListByMonth(ctx context.Context, month string) ([]*Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tx_date LIKE $1
		ORDER BY tx_date, created_at
	`, month+"-%")
	if err != nil {
		return nil, fmt.Errorf("list transactions for month: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var tx Transaction
	var merchantKey *string
	var categorySource string
	err := row.Scan(&tx.ID, &tx.Date, &tx.Amount, &tx.Description, &tx.Category,
		&tx.Account, &tx.Wallet, &tx.Source, &tx.Hash, &merchantKey,
		&categorySource, &tx.Confidence, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	if merchantKey != nil {
		tx.MerchantKey = *merchantKey
	}
	tx.CategorySource = categorization.Source(categorySource)
	return &tx, nil
}

func nullableKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}
