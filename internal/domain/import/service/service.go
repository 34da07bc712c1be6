// Package service runs the ingestion pipeline: decode, parse, categorize,
// deduplicate, persist. All producers (CSV files, manual entries, mail
// sync) converge on the same insert gate, so duplicate suppression behaves
// identically no matter where a transaction came from.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/kakeibo-dev/kakeibo/internal/domain/categorization"
	"github.com/kakeibo-dev/kakeibo/internal/domain/import/charset"
	"github.com/kakeibo-dev/kakeibo/internal/domain/import/parser"
	"github.com/kakeibo-dev/kakeibo/internal/domain/import/repository"
	"github.com/kakeibo-dev/kakeibo/internal/domain/mail"
)

// TransactionStore is the persistence collaborator for canonical records.
type TransactionStore interface {
	FindByHash(ctx context.Context, hash string) (*repository.Transaction, error)
	FindByHashes(ctx context.Context, hashes []string) (map[string]struct{}, error)
	Insert(ctx context.Context, tx *repository.Transaction) error
	InsertMany(ctx context.Context, txs []*repository.Transaction) error
}

// MappingStore supplies and records learned merchant categorizations.
type MappingStore interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, merchantKey, category string) error
}

// MailSource yields raw card-notification bodies for SyncMail.
type MailSource interface {
	FetchUnread(ctx context.Context) ([]string, error)
}

// Summary reports exactly what happened to one ingestion run. Counts are
// always populated so callers can show them verbatim.
type Summary struct {
	Format      parser.Format
	RowsParsed  int
	RowsSkipped int
	Inserted    int
	Skipped     int
}

// ManualEntry is a hand-entered transaction. Amount is absolute yen; the
// sign is derived from Income.
type ManualEntry struct {
	Date        string
	Amount      int64
	Description string
	Category    string
	Account     string
	Wallet      string
	Income      bool
}

// InsertOutcome is the result of a single-record insert attempt. When the
// record was a duplicate, Existing carries the already-stored row.
type InsertOutcome struct {
	Inserted bool
	Existing *repository.Transaction
}

var (
	// ErrInvalidDate rejects manual entries whose date is not ISO formed.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrInvalidAmount rejects zero or negative manual amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrEmptyDescription rejects manual entries with no description.
	ErrEmptyDescription = errors.New("description is required")
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Service orchestrates the ingestion pipeline.
type Service struct {
	txs      TransactionStore
	mappings MappingStore
	engine   *categorization.Engine
	mail     MailSource
	logger   *slog.Logger
}

// NewService wires the pipeline. mailSource may be nil when mail sync is
// not configured; SyncMail then fails with a clear error.
func NewService(txs TransactionStore, mappings MappingStore, engine *categorization.Engine, mailSource MailSource, logger *slog.Logger) *Service {
	return &Service{
		txs:      txs,
		mappings: mappings,
		engine:   engine,
		mail:     mailSource,
		logger:   logger,
	}
}

// ImportCSV ingests one exported statement file. The byte payload may be
// UTF-8, Shift_JIS, or EUC-JP; format detection and row-level error
// handling follow the parser's contract. Returns a summary even when zero
// rows survive the dedup gate.
func (s *Service) ImportCSV(ctx context.Context, raw []byte, account, wallet string) (*Summary, error) {
	text := charset.Decode(raw)

	result, err := parser.ParseRows(text)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	learned, err := s.mappings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load learned mappings: %w", err)
	}

	staged := make([]*repository.Transaction, 0, len(result.Rows))
	for _, row := range result.Rows {
		staged = append(staged, s.stage(row, learned, account, wallet, repository.SourceCSV))
	}

	inserted, skipped, err := s.insertBatch(ctx, staged)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Format:      result.Format,
		RowsParsed:  len(result.Rows),
		RowsSkipped: result.RowsSkipped,
		Inserted:    inserted,
		Skipped:     skipped,
	}
	s.logger.Info("csv import finished",
		slog.String("format", string(summary.Format)),
		slog.Int("rows_parsed", summary.RowsParsed),
		slog.Int("rows_skipped", summary.RowsSkipped),
		slog.Int("inserted", summary.Inserted),
		slog.Int("duplicates", summary.Skipped))
	return summary, nil
}

// AddEntry stores a manual transaction. Expenses are stored negative;
// Income flips the sign. A duplicate is not an error: the existing record
// is returned so the caller can show it.
func (s *Service) AddEntry(ctx context.Context, entry ManualEntry) (*InsertOutcome, error) {
	if !isoDateRe.MatchString(entry.Date) {
		return nil, ErrInvalidDate
	}
	if entry.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if entry.Description == "" {
		return nil, ErrEmptyDescription
	}

	candidate := parser.RawCandidate{
		Date:        entry.Date,
		Amount:      entry.Amount,
		Description: entry.Description,
	}

	learned, err := s.mappings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load learned mappings: %w", err)
	}

	tx := s.stage(candidate, learned, entry.Account, entry.Wallet, repository.SourceManual)
	if entry.Income {
		tx.Amount = entry.Amount
	}
	if entry.Category != "" {
		tx.Category = entry.Category
		tx.CategorySource = categorization.SourceLearned
		tx.Confidence = 1.0
	}

	existing, err := s.txs.FindByHash(ctx, tx.Hash)
	switch {
	case err == nil:
		s.logger.Info("manual entry is a duplicate", slog.String("hash", tx.Hash))
		return &InsertOutcome{Inserted: false, Existing: existing}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if err := s.txs.Insert(ctx, tx); err != nil {
		return nil, err
	}

	// A user-chosen category on a keyed merchant is a learning signal.
	if entry.Category != "" && tx.MerchantKey != "" {
		if err := s.mappings.Upsert(ctx, tx.MerchantKey, entry.Category); err != nil {
			return nil, fmt.Errorf("learn manual categorization: %w", err)
		}
	}

	return &InsertOutcome{Inserted: true, Existing: tx}, nil
}

// Correct re-categorizes a merchant by key and records the choice so every
// future import of that merchant follows it.
func (s *Service) Correct(ctx context.Context, description, category string) error {
	result := s.engine.Categorize(description, nil)
	if result.MerchantKey == "" {
		return categorization.ErrEmptyMerchantKey
	}
	return s.mappings.Upsert(ctx, result.MerchantKey, category)
}

// SyncMail ingests pending card-notification emails. Bodies that do not
// match the notification template are skipped, not fatal.
func (s *Service) SyncMail(ctx context.Context) (*Summary, error) {
	if s.mail == nil {
		return nil, errors.New("mail source is not configured")
	}

	bodies, err := s.mail.FetchUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch mail: %w", err)
	}

	learned, err := s.mappings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load learned mappings: %w", err)
	}

	var staged []*repository.Transaction
	skippedBodies := 0
	for _, body := range bodies {
		candidate, err := mail.Extract(body)
		if err != nil {
			skippedBodies++
			continue
		}
		staged = append(staged, s.stage(*candidate, learned, "card", "default", repository.SourceMail))
	}

	inserted, skipped, err := s.insertBatch(ctx, staged)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RowsParsed:  len(staged),
		RowsSkipped: skippedBodies,
		Inserted:    inserted,
		Skipped:     skipped,
	}
	s.logger.Info("mail sync finished",
		slog.Int("notifications", summary.RowsParsed),
		slog.Int("unrecognized", summary.RowsSkipped),
		slog.Int("inserted", summary.Inserted),
		slog.Int("duplicates", summary.Skipped))
	return summary, nil
}

// stage turns one parsed candidate into a persistable record: categorize,
// apply the expense sign, compute the dedup hash.
func (s *Service) stage(row parser.RawCandidate, learned map[string]string, account, wallet, source string) *repository.Transaction {
	result := s.engine.Categorize(row.Description, learned)

	return &repository.Transaction{
		Date:           row.Date,
		Amount:         -row.Amount,
		Description:    row.Description,
		Category:       result.Category,
		Account:        account,
		Wallet:         wallet,
		Source:         source,
		Hash:           dedupHash(row.Date, row.Amount, row.Description),
		MerchantKey:    result.MerchantKey,
		CategorySource: result.Source,
		Confidence:     result.Confidence,
	}
}

// insertBatch is the dedup gate. Existing hashes are loaded in one round
// trip, each candidate's hash is marked seen the moment it is examined so
// an intra-batch duplicate is caught, and survivors are persisted in one
// call. Inserted plus skipped always equals the candidate count.
func (s *Service) insertBatch(ctx context.Context, candidates []*repository.Transaction) (inserted, skipped int, err error) {
	if len(candidates) == 0 {
		return 0, 0, nil
	}

	hashes := make([]string, len(candidates))
	for i, tx := range candidates {
		hashes[i] = tx.Hash
	}

	seen, err := s.txs.FindByHashes(ctx, hashes)
	if err != nil {
		return 0, 0, err
	}

	fresh := make([]*repository.Transaction, 0, len(candidates))
	for _, tx := range candidates {
		if _, dup := seen[tx.Hash]; dup {
			skipped++
			continue
		}
		seen[tx.Hash] = struct{}{}
		fresh = append(fresh, tx)
	}

	if err := s.txs.InsertMany(ctx, fresh); err != nil {
		return 0, 0, err
	}
	return len(fresh), skipped, nil
}

// dedupHash derives the content identity of a transaction. The absolute
// amount is used so the expense sign convention cannot split one source
// row into two identities. Changing any part of this derivation orphans
// every stored hash.
func dedupHash(date string, amount int64, description string) string {
	if amount < 0 {
		amount = -amount
	}
	sum := sha256.Sum256([]byte(date + "|" + strconv.FormatInt(amount, 10) + "|" + description))
	return hex.EncodeToString(sum[:])
}
