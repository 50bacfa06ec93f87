package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int64
	}{
		{"plain integer", "12", ptr(int64(12))},
		{"float truncates", "12.0", ptr(int64(12))},
		{"float with fraction truncates", "12.9", ptr(int64(12))},
		{"negative", "-3", ptr(int64(-3))},
		{"zero", "0", ptr(int64(0))},
		{"whitespace", "  7  ", ptr(int64(7))},
		{"garbage", "abc", nil},
		{"empty", "", nil},
		{"mixed", "12abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeInt(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSafeDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		want  string
	}{
		{"integer", "10", true, "10"},
		{"two decimals", "123.45", true, "123.45"},
		{"negative", "-0.01", true, "-0.01"},
		{"whitespace", " 5.5 ", true, "5.5"},
		{"garbage", "abc", false, ""},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDecimal(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParseDataNFe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{
			"rfc3339 with offset",
			"2023-05-15T10:30:00-03:00",
			ptr(time.Date(2023, 5, 15, 10, 30, 0, 0, time.FixedZone("", -3*3600))),
		},
		{
			"bracketed zone suffix",
			"2023-05-15T10:30:00-03:00[America/Sao_Paulo]",
			ptr(time.Date(2023, 5, 15, 10, 30, 0, 0, time.FixedZone("", -3*3600))),
		},
		{
			"no offset",
			"2023-05-15T10:30:00",
			ptr(time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)),
		},
		{
			"date only",
			"2023-05-15",
			ptr(time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)),
		},
		{"garbage", "not-a-date", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDataNFe(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSomenteData(t *testing.T) {
	in := time.Date(2023, 5, 15, 10, 30, 45, 0, time.FixedZone("", -3*3600))
	got := somenteData(&in)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, somenteData(nil))
}

func ptr[T any](v T) *T { return &v }
