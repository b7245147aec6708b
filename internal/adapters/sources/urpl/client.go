package urpl

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

// Record is one medicinal product entry from the registry search API.
type Record struct {
	EventType      entities.EventType
	DrugName       string
	Strength       string
	Form           string
	Holder         string
	DecisionNumber string
	ATCCode        string
	ExpiryDate     *time.Time
}

type product struct {
	MedicinalProductName        string `json:"medicinalProductName"`
	CommonName                  string `json:"commonName"`
	PharmaceuticalFormName      string `json:"pharmaceuticalFormName"`
	MedicinalProductPower       string `json:"medicinalProductPower"`
	ActiveSubstanceName         string `json:"activeSubstanceName"`
	SubjectMedicinalProductName string `json:"subjectMedicinalProductName"`
	RegistryNumber              string `json:"registryNumber"`
	ProcedureTypeName           string `json:"procedureTypeName"`
	ExpirationDateString        string `json:"expirationDateString"`
	ATCCode                     string `json:"atcCode"`
}

type searchResponse struct {
	Content []product `json:"content"`
}

// Client queries the medicinal product registry search API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a new registry search client.
func NewClient(baseURL string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch retrieves the first page of registry products sorted by name.
func (c *Client) Fetch(ctx context.Context) ([]Record, []sources.RowIssue, error) {
	params := url.Values{}
	params.Set("subjectRolesIds", "1")
	params.Set("isAdvancedSearch", "false")
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("page", "0")
	params.Set("sort", "name,ASC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, apperrors.NewExternalError("failed to fetch registry products", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, apperrors.NewExternalError(fmt.Sprintf("registry search returned status %d", resp.StatusCode), nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, apperrors.NewExternalError("failed to decode registry response", err)
	}

	var records []Record
	var issues []sources.RowIssue

	for i, p := range payload.Content {
		// The common name is preferred over the trade name.
		name := p.CommonName
		if name == "" {
			name = p.MedicinalProductName
		}
		if name == "" {
			issues = append(issues, sources.RowIssue{Index: i, Reason: "product has no usable name"})
			continue
		}

		records = append(records, Record{
			EventType:      mapProcedureType(p.ProcedureTypeName),
			DrugName:       name,
			Strength:       p.MedicinalProductPower,
			Form:           p.PharmaceuticalFormName,
			Holder:         p.SubjectMedicinalProductName,
			DecisionNumber: decisionNumber(p),
			ATCCode:        p.ATCCode,
			ExpiryDate:     parseExpiration(p.ExpirationDateString),
		})
	}

	return records, issues, nil
}

// decisionNumber derives a stable decision number from the registry
// number, falling back to a hash of the product identity when the
// registry number is missing so that reruns dedupe instead of piling up.
func decisionNumber(p product) string {
	if p.RegistryNumber != "" {
		return "REG/" + p.RegistryNumber
	}

	h := fnv.New32a()
	h.Write([]byte(p.MedicinalProductName))
	h.Write([]byte{0})
	h.Write([]byte(p.SubjectMedicinalProductName))
	return fmt.Sprintf("REG/D%d", h.Sum32())
}

// mapProcedureType maps the registry procedure name to an event type.
// National, decentralised and central procedures all record product
// registrations.
func mapProcedureType(procedureType string) entities.EventType {
	lower := strings.ToLower(procedureType)

	switch {
	case strings.Contains(lower, "nar"):
		return entities.EventTypeRegistration
	case strings.Contains(lower, "dcp"):
		return entities.EventTypeRegistration
	case strings.Contains(lower, "cen"):
		return entities.EventTypeRegistration
	default:
		return entities.EventTypeRegistration
	}
}

func parseExpiration(text string) *time.Time {
	t, ok := normalize.ParseDate(text)
	if !ok {
		return nil
	}
	return &t
}
