package gif

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

const decisionPage = `
<html><body>
<table class="table-decisions">
<thead><tr><th>Data</th><th>Nr</th><th>Nazwa</th><th>Moc</th><th>Podmiot</th><th>Rodzaj</th><th>Seria</th><th>Inne</th></tr></thead>
<tbody>
<tr>
  <td>2026-08-20</td>
  <td>14/WC/2026</td>
  <td>Apap Extra</td>
  <td>500 mg</td>
  <td>US Pharmacia</td>
  <td>Wycofanie z obrotu</td>
  <td>A123</td>
  <td></td>
</tr>
<tr>
  <td>2026-08-21</td>
  <td>15/WS/2026</td>
  <td>
    <div class="column">Ibuprom</div>
    <div class="column">Ibuprom Max</div>
  </td>
  <td>
    <div class="column">200 mg</div>
    <div class="column">400 mg</div>
  </td>
  <td>
    <div class="column">US Pharmacia</div>
    <div class="column">US Pharmacia</div>
  </td>
  <td>
    <div class="column">Wstrzymanie w obrocie</div>
    <div class="column">Wstrzymanie w obrocie</div>
  </td>
  <td>B456</td>
  <td></td>
</tr>
<tr>
  <td>sierpie&#324; 2026</td>
  <td>16/WC/2026</td>
  <td>Polopiryna</td>
  <td>300 mg</td>
  <td>Polpharma</td>
  <td>Wycofanie z obrotu</td>
  <td>C789</td>
  <td></td>
</tr>
<tr>
  <td>2026-08-22</td>
  <td>17/WC/2026</td>
  <td>-</td>
  <td></td>
  <td></td>
  <td>Wycofanie z obrotu</td>
  <td>D000</td>
  <td></td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decisionPage))
	require.NoError(t, err)

	records, issues, err := parseDocument(doc)
	require.NoError(t, err)

	// Single row, two multi-value rows, one bad date, one dash name.
	require.Len(t, records, 3)

	assert.Equal(t, "Apap Extra", records[0].DrugName)
	assert.Equal(t, "500 mg", records[0].Strength)
	assert.Equal(t, "US Pharmacia", records[0].Holder)
	assert.Equal(t, "14/WC/2026", records[0].DecisionNumber)
	assert.Equal(t, entities.EventTypeWithdrawal, records[0].EventType)
	assert.Equal(t, "2026-08-20", records[0].DecisionDate.Format("2006-01-02"))

	assert.Equal(t, "Ibuprom", records[1].DrugName)
	assert.Equal(t, "Ibuprom Max", records[2].DrugName)
	assert.Equal(t, "400 mg", records[2].Strength)
	assert.Equal(t, entities.EventTypeSuspension, records[1].EventType)
	assert.Equal(t, entities.EventTypeSuspension, records[2].EventType)

	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Index)
	assert.Contains(t, issues[0].Reason, "unparseable decision date")
}

func TestFetchDropsDecisionsPastRetention(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(decisionPage))
	}))
	defer server.Close()

	client := NewClient(server.URL, 300)
	client.now = func() time.Time { return time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC) }

	records, issues, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records, "decisions from 2026-08 are outside a 300-day window ending 2027-08")
	assert.Len(t, issues, 1)

	client.now = func() time.Time { return time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC) }
	records, _, err = client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestParseDocumentFallsBackToFirstTable(t *testing.T) {
	page := `<html><body><table><tbody>
<tr><td>2026-08-20</td><td>1/WC/2026</td><td>Lek</td><td>10 mg</td><td>Firma</td><td>Wycofanie</td><td>X</td><td></td></tr>
</tbody></table></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	records, issues, err := parseDocument(doc)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, records, 1)
	assert.Equal(t, "Lek", records[0].DrugName)
}

func TestParseDocumentNoTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>empty</p></body></html>"))
	require.NoError(t, err)

	_, _, err = parseDocument(doc)
	assert.Error(t, err)
}

func TestMapDecisionType(t *testing.T) {
	tests := []struct {
		decisionType string
		want         entities.EventType
	}{
		{"Wycofanie z obrotu", entities.EventTypeWithdrawal},
		{"WYCOFANIE", entities.EventTypeWithdrawal},
		{"Wstrzymanie w obrocie", entities.EventTypeSuspension},
		{"Ponowne dopuszczenie do obrotu", entities.EventTypeRegistration},
		{"Zakaz wprowadzania do obrotu", entities.EventTypeWithdrawal},
		{"", entities.EventTypeWithdrawal},
		{"cokolwiek innego", entities.EventTypeWithdrawal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapDecisionType(tt.decisionType), "decision type %q", tt.decisionType)
	}
}
