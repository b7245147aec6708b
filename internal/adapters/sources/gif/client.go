package gif

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

const decisionDateLayout = "2006-01-02"

// Record is one decision entry parsed from the inspectorate table. Rows
// whose cells carry multiple values expand into one record per value.
type Record struct {
	EventType      entities.EventType
	DecisionDate   time.Time
	DecisionNumber string
	DrugName       string
	Strength       string
	Holder         string
	DecisionType   string
}

// Client fetches and parses the published decision table.
type Client struct {
	baseURL       string
	retentionDays int
	httpClient    *http.Client
	now           func() time.Time
}

// NewClient creates a new decision table client. Decisions older than
// the retention window never leave the adapter.
func NewClient(baseURL string, retentionDays int) *Client {
	if retentionDays <= 0 {
		retentionDays = 300
	}
	return &Client{
		baseURL:       baseURL,
		retentionDays: retentionDays,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// Fetch downloads the decision page and parses it, dropping decisions
// past the retention window.
func (c *Client) Fetch(ctx context.Context) ([]Record, []sources.RowIssue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("failed to fetch decision page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, apperrors.NewExternalError(fmt.Sprintf("decision page returned status %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("failed to parse decision page", err)
	}

	records, issues, err := parseDocument(doc)
	if err != nil {
		return nil, nil, err
	}

	cutoff := c.now().AddDate(0, 0, -c.retentionDays)
	return withinRetention(records, cutoff), issues, nil
}

// withinRetention keeps only decisions dated on or after the cutoff.
func withinRetention(records []Record, cutoff time.Time) []Record {
	kept := make([]Record, 0, len(records))
	for _, record := range records {
		if record.DecisionDate.Before(cutoff) {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

func parseDocument(doc *goquery.Document) ([]Record, []sources.RowIssue, error) {
	table := doc.Find("table.table-decisions").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, nil, apperrors.NewExternalError("decision table not found on page", nil)
	}

	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, nil, apperrors.NewExternalError("decision table has no body", nil)
	}

	var records []Record
	var issues []sources.RowIssue

	tbody.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 8 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		decisionDate, err := time.Parse(decisionDateLayout, dateText)
		if err != nil {
			issues = append(issues, sources.RowIssue{
				Index:  i,
				Reason: fmt.Sprintf("unparseable decision date %q", dateText),
			})
			return
		}

		decisionNumber := strings.TrimSpace(cells.Eq(1).Text())
		drugNames := cellValues(cells.Eq(2))
		strengths := cellValues(cells.Eq(3))
		holders := cellValues(cells.Eq(4))
		decisionTypes := cellValues(cells.Eq(5))

		for j, rawName := range drugNames {
			if rawName == "" || rawName == "-" {
				continue
			}

			record := Record{
				DecisionDate:   decisionDate,
				DecisionNumber: decisionNumber,
				DrugName:       normalize.DecodeEntities(rawName),
			}
			if j < len(strengths) {
				record.Strength = normalize.DecodeEntities(strengths[j])
			}
			if j < len(holders) {
				record.Holder = normalize.DecodeEntities(holders[j])
			}
			if j < len(decisionTypes) {
				record.DecisionType = normalize.DecodeEntities(decisionTypes[j])
			}
			record.EventType = MapDecisionType(record.DecisionType)

			records = append(records, record)
		}
	})

	return records, issues, nil
}

// cellValues extracts the values of a cell. Cells holding several entries
// mark each one with a div.column; plain cells yield a single value.
func cellValues(cell *goquery.Selection) []string {
	columns := cell.Find("div.column")
	if columns.Length() > 0 {
		values := make([]string, 0, columns.Length())
		columns.Each(func(_ int, col *goquery.Selection) {
			values = append(values, strings.TrimSpace(col.Text()))
		})
		return values
	}
	return []string{strings.TrimSpace(cell.Text())}
}

// MapDecisionType maps the Polish decision wording to an event type.
// Market bans count as withdrawals, and unrecognized wording defaults
// to withdrawal rather than dropping the record.
func MapDecisionType(decisionType string) entities.EventType {
	lower := strings.ToLower(decisionType)

	switch {
	case strings.Contains(lower, "wycofanie"):
		return entities.EventTypeWithdrawal
	case strings.Contains(lower, "wstrzymanie"):
		return entities.EventTypeSuspension
	case strings.Contains(lower, "dopuszczenie"):
		return entities.EventTypeRegistration
	case strings.Contains(lower, "zakaz"):
		return entities.EventTypeWithdrawal
	default:
		return entities.EventTypeWithdrawal
	}
}
