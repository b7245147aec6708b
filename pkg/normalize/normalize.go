package normalize

import (
	"strings"
	"time"
)

// entityReplacements is the fixed table of HTML entities seen in RDG cell
// text. Entities outside this table are passed through unchanged.
var entityReplacements = []struct {
	entity string
	char   string
}{
	{"&#243;", "ó"},
	{"&#211;", "Ó"},
	{"&#231;", "ç"},
	{"&#246;", "ö"},
	{"&#252;", "ü"},
	{"&quot;", "\""},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&nbsp;", " "},
}

// DecodeEntities replaces the known HTML entities in text. The operation is
// idempotent over the entity table.
func DecodeEntities(text string) string {
	if text == "" {
		return text
	}
	for _, r := range entityReplacements {
		text = strings.ReplaceAll(text, r.entity, r.char)
	}
	return text
}

// openEndedSentinel marks permits with no expiry in the URPL registry.
const openEndedSentinel = "Bezterminowe"

// dateLayouts are tried in priority order: ISO first, then day-first.
var dateLayouts = []string{"2006-01-02", "02-01-2006"}

// ParseDate parses a date in one of the known upstream formats. The second
// return value is false when the text is empty, the open-ended sentinel, or
// matches no known layout. Unparsable input is not an error.
func ParseDate(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == openEndedSentinel {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var monthNumbers = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
	"January": "01", "February": "02", "March": "03", "April": "04",
	"June": "06", "July": "07", "August": "08",
	"September": "09", "October": "10", "November": "11", "December": "12",
}

// MonthNumber maps an English month name (abbreviated or full) to its
// two-digit number. Numeric input is zero-padded and passed through.
// Unrecognized input falls back to "01"; the loss is accepted because
// PubMed records without a usable month sort to the start of the year.
func MonthNumber(name string) string {
	if num, ok := monthNumbers[name]; ok {
		return num
	}
	if name != "" && isDigits(name) {
		if len(name) == 1 {
			return "0" + name
		}
		return name
	}
	return "01"
}

// Collapse trims text and collapses internal runs of whitespace into a
// single space.
func Collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate returns text cut to at most max runes.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
