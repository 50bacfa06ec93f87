package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SafeInt parses an integer defensively. Values like "12.0" are accepted by
// truncating through a float parse; anything unparsable yields nil instead
// of an error.
func SafeInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int64(f)
	return &n
}

// SafeDecimal parses a decimal defensively; unparsable or empty input yields
// an invalid NullDecimal, never an error.
func SafeDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParseDataNFe parses the ISO-8601-like timestamps found in NF-e documents,
// tolerating an optional UTC-offset suffix and an optional bracketed
// zone-name suffix ("2023-05-15T10:30:00-03:00[America/Sao_Paulo]").
// Unparsable input yields nil.
func ParseDataNFe(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i := strings.IndexByte(s, '['); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// somenteData drops the time-of-day component; header emission and exit
// dates keep only the date at this layer.
func somenteData(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// intOr is SafeInt with a schema default for required codes.
func intOr(s string, def int) int {
	if v := SafeInt(s); v != nil {
		return int(*v)
	}
	return def
}

// intPtrOr is SafeInt falling back to a default when the element is absent,
// but still nil when the value is present and garbage.
func intPtrOr(s, def string) *int64 {
	if strings.TrimSpace(s) == "" {
		s = def
	}
	return SafeInt(s)
}

// decimalOr is SafeDecimal with a zero default for required numeric fields.
func decimalOr(s string) decimal.Decimal {
	if d := SafeDecimal(s); d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}

// optStr maps an absent/empty element to nil for clearly-optional fields.
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}
