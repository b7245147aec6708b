package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"numeric o-acute", "Polpharma Sp&#243;łka", "Polpharma Spółka"},
		{"uppercase o-acute", "&#211;", "Ó"},
		{"quote and ampersand", "&quot;A &amp; B&quot;", "\"A & B\""},
		{"angle brackets", "&lt;500 mg&gt;", "<500 mg>"},
		{"nbsp", "500&nbsp;mg", "500 mg"},
		{"unknown entity passes through", "&euro;100", "&euro;100"},
		{"empty", "", ""},
		{"plain text untouched", "Ibuprofen 200 mg", "Ibuprofen 200 mg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeEntities(tt.input))
		})
	}
}

func TestDecodeEntitiesIdempotent(t *testing.T) {
	inputs := []string{
		"Sp&#243;łka &quot;Centrala&quot;",
		"&amp;lt;",
		"ó ç ö ü",
	}
	for _, in := range inputs {
		once := DecodeEntities(in)
		assert.Equal(t, once, DecodeEntities(once), "decoding must be idempotent for %q", in)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{"iso format", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"day first format", "01-05-2024", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"iso wins over day-first", "2024-03-02", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"open-ended sentinel", "Bezterminowe", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"whitespace only", "   ", time.Time{}, false},
		{"garbage", "pierwszy maja", time.Time{}, false},
		{"leading whitespace trimmed", " 2024-05-01 ", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(got))
			}
		})
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jan", "01"},
		{"Dec", "12"},
		{"May", "05"},
		{"January", "01"},
		{"September", "09"},
		{"13", "13"},
		{"7", "07"},
		{"07", "07"},
		{"banana", "01"},
		{"", "01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthNumber(tt.input))
		})
	}
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "Ibuprofen 200 mg", Collapse("  Ibuprofen \n 200\t mg "))
	assert.Equal(t, "", Collapse("   "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "łół", Truncate("łółka", 3), "truncation counts runes, not bytes")
}
