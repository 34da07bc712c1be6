// Package repository persists canonical transactions. The dedup hash has a
// unique index, so the database is the last line of defense against double
// insertion even under concurrent imports.
package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo-dev/kakeibo/internal/domain/categorization"
)

// Transaction is the canonical stored form of one money movement. Amount
// is signed yen: negative for expenses, positive for income.
type Transaction struct {
	ID          uuid.UUID
	Date        string // ISO YYYY-MM-DD
	Amount      int64
	Description string
	Category    string
	Account     string
	Wallet      string
	Source      string // "csv", "manual", "mail"
	Hash        string

	MerchantKey    string // "" persists as NULL
	CategorySource categorization.Source
	Confidence     float64

	CreatedAt time.Time
}

// Ingestion source labels stored on each transaction.
const (
	SourceCSV    = "csv"
	SourceManual = "manual"
	SourceMail   = "mail"
)
