// Package normalizer provides description normalization and merchant key
// derivation for imported transactions.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// dashVariants are unified to a single ASCII hyphen before matching. Bank
// descriptions mix the long vowel mark, minus sign, and several dash runes
// for the same merchant.
var dashVariants = map[rune]bool{
	'ー': true, // U+30FC katakana-hiragana prolonged sound mark
	'−': true, // U+2212 minus sign
	'‐': true, // U+2010 hyphen
	'‑': true, // U+2011 non-breaking hyphen
	'–': true, // U+2013 en dash
	'—': true, // U+2014 em dash
	'―': true, // U+2015 horizontal bar
	'－': true, // U+FF0D fullwidth hyphen-minus
}

// NormalizeDescription canonicalizes a raw transaction description for
// matching: lower-cases, folds full-width alphanumerics to half-width (and
// half-width kana to full-width), unifies dash variants, and collapses
// whitespace. This is the shared first stage for both rule matching and
// merchant key derivation.
func NormalizeDescription(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if dashVariants[r] {
			r = '-'
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// MerchantKey derives a stable merchant identity from a description by
// stripping digits, punctuation, and symbols after normalization, so branch
// numbers and POS terminal IDs collapse onto one key. Returns "" when
// nothing retainable remains (digits-only input, for example).
//
// The output is a durable lookup key for the learned-mapping store. Changing
// this algorithm invalidates every persisted mapping and must be treated as
// a schema migration.
func MerchantKey(description string) string {
	normalized := NormalizeDescription(description)
	if normalized == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
