// Package mail extracts transaction candidates from card usage
// notification emails. Only the fixed Japanese notification template is
// supported; anything else is reported as unrecognized and skipped by the
// caller.
package mail

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/parser"
)

// ErrNotRecognized marks a body that does not follow the notification
// template. Callers skip the message rather than abort the sync.
var ErrNotRecognized = errors.New("mail body does not match a card notification")

var (
	usageDateRe   = regexp.MustCompile(`利用日[:：]\s*(\d{4})/(\d{2})/(\d{2})`)
	merchantRe    = regexp.MustCompile(`利用先[:：]\s*(.+)`)
	usageAmountRe = regexp.MustCompile(`利用金額[:：]\s*([\d,]+)\s*円`)
)

// Extract pulls the usage date, merchant, and amount out of a card
// notification body. The date is rewritten to ISO form and the amount is
// an absolute yen value.
func Extract(body string) (*parser.RawCandidate, error) {
	date := usageDateRe.FindStringSubmatch(body)
	merchant := merchantRe.FindStringSubmatch(body)
	amount := usageAmountRe.FindStringSubmatch(body)
	if date == nil || merchant == nil || amount == nil {
		return nil, ErrNotRecognized
	}

	yen, err := strconv.ParseInt(strings.ReplaceAll(amount[1], ",", ""), 10, 64)
	if err != nil {
		return nil, ErrNotRecognized
	}

	description := strings.TrimSpace(merchant[1])
	if description == "" {
		return nil, ErrNotRecognized
	}

	return &parser.RawCandidate{
		Date:        date[1] + "-" + date[2] + "-" + date[3],
		Amount:      yen,
		Description: description,
	}, nil
}
