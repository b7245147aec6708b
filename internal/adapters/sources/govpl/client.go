package govpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

// Record is one planned regulation entry from the ministry register.
type Record struct {
	RegistryNumber     string
	Ordinal            string
	LegalBasis         string
	OriginalTitle      string
	ResignationReasons string
	PlannedTermText    string
	PlannedDate        *time.Time
	Essence            string
	ResponsiblePerson  string
	ReasonAndNeed      string
}

// Resigned reports whether work on the regulation has been abandoned.
func (r Record) Resigned() bool {
	return strings.TrimSpace(r.ResignationReasons) != ""
}

// registerEntry mirrors the register's verbatim Polish field names.
type registerEntry struct {
	RegistryNumber     string `json:"Nr w Wykazie"`
	Ordinal            string `json:"Lp."`
	LegalBasis         string `json:"Podstawa wydania"`
	OriginalTitle      string `json:"Tytuł rozporządzenia"`
	ResignationReasons string `json:"Przyczyny rezygnacji z prac nad projektem"`
	PlannedTerm        string `json:"Planowany termin wydania / Publikacja w Dz. U"`
	Essence            string `json:"Istota rozwiązań, które planuje się zawrzeć w projekcie:"`
	ResponsiblePerson  string `json:"Imię, nazwisko, stanowisko lub funkcja osoby odpowiedzialnej za opracowanie projektu:"`
	ReasonAndNeed      string `json:"Przyczyna i potrzeba wprowadzenia rozwiązań, które planuje się zawrzeć w projekcie:"`
}

// Client queries the gov.pl register search API.
type Client struct {
	baseURL    string
	pageID     string
	httpClient *http.Client
}

// NewClient creates a new register client for the given register page.
func NewClient(baseURL, pageID string) *Client {
	return &Client{
		baseURL: baseURL,
		pageID:  pageID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SourceURL returns the register URL records were fetched from.
func (c *Client) SourceURL() string {
	return c.baseURL + "?pageId=" + c.pageID
}

// Fetch retrieves all register entries. Entries without a registry
// number cannot be deduplicated and are reported as row issues.
func (c *Client) Fetch(ctx context.Context) ([]Record, []sources.RowIssue, error) {
	params := url.Values{}
	params.Set("pageId", c.pageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("failed to fetch regulation register", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, apperrors.NewExternalError(fmt.Sprintf("register search returned status %d", resp.StatusCode), nil)
	}

	var entries []registerEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, nil, apperrors.NewExternalError("failed to decode register response", err)
	}

	var records []Record
	var issues []sources.RowIssue

	for i, entry := range entries {
		registryNumber := strings.TrimSpace(entry.RegistryNumber)
		if registryNumber == "" {
			issues = append(issues, sources.RowIssue{Index: i, Reason: "entry has no registry number"})
			continue
		}

		records = append(records, Record{
			RegistryNumber:     registryNumber,
			Ordinal:            entry.Ordinal,
			LegalBasis:         entry.LegalBasis,
			OriginalTitle:      entry.OriginalTitle,
			ResignationReasons: entry.ResignationReasons,
			PlannedTermText:    entry.PlannedTerm,
			PlannedDate:        parsePlannedDate(entry.PlannedTerm),
			Essence:            entry.Essence,
			ResponsiblePerson:  entry.ResponsiblePerson,
			ReasonAndNeed:      entry.ReasonAndNeed,
		})
	}

	return records, issues, nil
}

// parsePlannedDate extracts a concrete date from the planned term text.
// The register often holds quarter or semester wording instead of a
// date; those entries keep a nil date.
func parsePlannedDate(text string) *time.Time {
	t, ok := normalize.ParseDate(text)
	if !ok {
		return nil
	}
	return &t
}
