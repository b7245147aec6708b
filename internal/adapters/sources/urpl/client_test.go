package urpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

const searchPayload = `{
  "content": [
    {
      "medicinalProductName": "Apap",
      "commonName": "Paracetamolum",
      "pharmaceuticalFormName": "tabletki powlekane",
      "medicinalProductPower": "500 mg",
      "subjectMedicinalProductName": "US Pharmacia",
      "registryNumber": "12345",
      "procedureTypeName": "NAR",
      "expirationDateString": "Bezterminowe",
      "atcCode": "N02BE01"
    },
    {
      "medicinalProductName": "Ibuprom",
      "commonName": "",
      "pharmaceuticalFormName": "tabletki",
      "medicinalProductPower": "200 mg",
      "subjectMedicinalProductName": "US Pharmacia",
      "registryNumber": "",
      "procedureTypeName": "DCP",
      "expirationDateString": "2027-03-15",
      "atcCode": "M01AE01"
    },
    {
      "medicinalProductName": "",
      "commonName": "",
      "registryNumber": "9999"
    }
  ]
}`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("subjectRolesIds"))
		assert.Equal(t, "false", r.URL.Query().Get("isAdvancedSearch"))
		assert.Equal(t, "25", r.URL.Query().Get("size"))
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "name,ASC", r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 25)
	records, issues, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)

	assert.Equal(t, "Paracetamolum", records[0].DrugName)
	assert.Equal(t, "500 mg", records[0].Strength)
	assert.Equal(t, "tabletki powlekane", records[0].Form)
	assert.Equal(t, "REG/12345", records[0].DecisionNumber)
	assert.Equal(t, entities.EventTypeRegistration, records[0].EventType)
	assert.Nil(t, records[0].ExpiryDate, "open-ended permits have no expiry")

	// Trade name fills in when no common name is published.
	assert.Equal(t, "Ibuprom", records[1].DrugName)
	require.NotNil(t, records[1].ExpiryDate)
	assert.Equal(t, "2027-03-15", records[1].ExpiryDate.Format("2006-01-02"))

	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Index)
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10)
	_, _, err := client.Fetch(context.Background())
	assert.Error(t, err)
}

func TestDecisionNumberFallbackIsStable(t *testing.T) {
	p := product{MedicinalProductName: "Ibuprom", SubjectMedicinalProductName: "US Pharmacia"}

	first := decisionNumber(p)
	second := decisionNumber(p)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "REG/D")

	other := decisionNumber(product{MedicinalProductName: "Ibuprom Max", SubjectMedicinalProductName: "US Pharmacia"})
	assert.NotEqual(t, first, other)
}

func TestParseExpiration(t *testing.T) {
	require.Nil(t, parseExpiration(""))
	require.Nil(t, parseExpiration("Bezterminowe"))
	require.Nil(t, parseExpiration("kiedyś"))

	got := parseExpiration("15-03-2027")
	require.NotNil(t, got)
	assert.Equal(t, "2027-03-15", got.Format("2006-01-02"))
}
