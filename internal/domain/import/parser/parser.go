// Package parser splits decoded CSV text into transaction candidates. It
// auto-detects which of two supported layouts the file uses: a generic
// header-driven export and a positional card-issuer export.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// Format identifies the detected file layout.
type Format string

const (
	// FormatGeneric is a header-driven CSV with date, amount and
	// description columns in any position.
	FormatGeneric Format = "generic"
	// FormatBankExport is the positional card-issuer layout: a masked
	// account metadata row followed by YYYY/MM/DD data rows with at least
	// six fields.
	FormatBankExport Format = "bank_export"
)

var (
	ErrEmptyFile     = errors.New("file contains no rows")
	ErrUnknownFormat = errors.New("unrecognized file format")
	ErrNoUsableRows  = errors.New("detected format but no usable rows")
)

var (
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	bankDateRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
)

// RawCandidate is a parsed row before categorization. Amount is always the
// absolute value in whole yen; the sign convention is applied by the caller.
type RawCandidate struct {
	Date        string // ISO YYYY-MM-DD
	Amount      int64
	Description string
}

// Result holds the extracted candidates plus row accounting so callers can
// report exact parsed/skipped counts.
type Result struct {
	Format      Format
	Rows        []RawCandidate
	RowsTotal   int
	RowsSkipped int
}

// genericRow binds Format A columns by header name.
type genericRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
}

func init() {
	// Header lookup is by lower-cased name; LazyQuotes tolerates the stray
	// quotes some issuers emit.
	gocsv.SetHeaderNormalizer(strings.ToLower)
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r
	})
}

// ParseRows tokenizes decoded CSV text, detects the layout, and extracts
// candidates. Individual malformed rows are skipped, never fatal; an
// undetectable layout or a detected layout with zero surviving rows is an
// error so callers can distinguish "nothing to import" from a garbage file.
func ParseRows(text string) (*Result, error) {
	records, err := readRecords(text)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	switch {
	case isGenericHeader(records[0]):
		return parseGeneric(text)
	case isBankExport(records):
		return parseBankExport(records)
	default:
		return nil, ErrUnknownFormat
	}
}

// readRecords tokenizes with quoted-field handling; blank lines are dropped
// by the csv reader.
func readRecords(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A torn line is a row-level problem, not a file-level one.
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// isGenericHeader reports whether the first row carries the three required
// generic column names, in any position.
func isGenericHeader(header []string) bool {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return seen["date"] && seen["amount"] && seen["description"]
}

// isBankExport checks the second row: at least six fields and a
// YYYY/MM/DD first field. The first row of this layout is masked account
// metadata and is never inspected beyond its existence.
func isBankExport(records [][]string) bool {
	if len(records) < 2 {
		return false
	}
	second := records[1]
	return len(second) >= 6 && bankDateRe.MatchString(strings.TrimSpace(second[0]))
}

func parseGeneric(text string) (*Result, error) {
	var rows []genericRow
	if err := gocsv.UnmarshalString(text, &rows); err != nil {
		return nil, fmt.Errorf("bind generic rows: %w", err)
	}

	// Row accounting comes from the same pass that bound the rows, so the
	// counts cannot drift from what was actually extracted.
	result := &Result{Format: FormatGeneric, RowsTotal: len(rows)}
	for _, row := range rows {
		date := strings.TrimSpace(row.Date)
		desc := strings.TrimSpace(row.Description)
		amount, err := parseAmount(row.Amount)
		if !isoDateRe.MatchString(date) || desc == "" || err != nil {
			continue
		}
		result.Rows = append(result.Rows, RawCandidate{
			Date:        date,
			Amount:      amount,
			Description: desc,
		})
	}
	result.RowsSkipped = result.RowsTotal - len(result.Rows)

	if len(result.Rows) == 0 {
		return nil, ErrNoUsableRows
	}
	return result, nil
}

func parseBankExport(records [][]string) (*Result, error) {
	// records[0] is the masked account metadata row. It must not be stored,
	// logged, or surfaced anywhere downstream.
	data := records[1:]

	result := &Result{Format: FormatBankExport, RowsTotal: len(data)}
	for _, rec := range data {
		if len(rec) < 3 {
			continue
		}
		date := strings.TrimSpace(rec[0])
		if !bankDateRe.MatchString(date) {
			continue
		}
		desc := strings.TrimSpace(rec[1])
		if desc == "" {
			continue
		}

		// The issuer shifts the amount to column 6 when a note field is
		// present and leaves column 3 blank.
		amountStr := strings.TrimSpace(rec[2])
		if amountStr == "" && len(rec) >= 6 {
			amountStr = strings.TrimSpace(rec[5])
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			continue
		}

		result.Rows = append(result.Rows, RawCandidate{
			Date:        strings.ReplaceAll(date, "/", "-"),
			Amount:      amount,
			Description: desc,
		})
	}
	result.RowsSkipped = result.RowsTotal - len(result.Rows)

	if len(result.Rows) == 0 {
		return nil, ErrNoUsableRows
	}
	return result, nil
}

// parseAmount accepts an optionally comma-grouped integer and returns its
// absolute value.
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("empty amount")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = -n
	}
	return n, nil
}
