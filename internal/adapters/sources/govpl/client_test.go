package govpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registerPayload = `[
  {
    "Nr w Wykazie": "MZ 1578",
    "Lp.": "1",
    "Podstawa wydania": "art. 11 ust. 1 ustawy",
    "Tytuł rozporządzenia": "Rozporządzenie Ministra Zdrowia w sprawie wykazu leków refundowanych",
    "Przyczyny rezygnacji z prac nad projektem": "",
    "Planowany termin wydania / Publikacja w Dz. U": "2026-09-30",
    "Istota rozwiązań, które planuje się zawrzeć w projekcie:": "Aktualizacja wykazu",
    "Imię, nazwisko, stanowisko lub funkcja osoby odpowiedzialnej za opracowanie projektu:": "Jan Kowalski, Dyrektor Departamentu",
    "Przyczyna i potrzeba wprowadzenia rozwiązań, które planuje się zawrzeć w projekcie:": "Konieczność aktualizacji"
  },
  {
    "Nr w Wykazie": "MZ 1600",
    "Tytuł rozporządzenia": "Rozporządzenie w sprawie recept",
    "Przyczyny rezygnacji z prac nad projektem": "Projekt wycofany",
    "Planowany termin wydania / Publikacja w Dz. U": "IV kwartał 2026"
  },
  {
    "Nr w Wykazie": "",
    "Tytuł rozporządzenia": "Wpis bez numeru"
  }
]`

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "21034488", r.URL.Query().Get("pageId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(registerPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "21034488")
	records, issues, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 2)

	assert.Equal(t, "MZ 1578", records[0].RegistryNumber)
	assert.Equal(t, "Rozporządzenie Ministra Zdrowia w sprawie wykazu leków refundowanych", records[0].OriginalTitle)
	assert.Equal(t, "Jan Kowalski, Dyrektor Departamentu", records[0].ResponsiblePerson)
	assert.False(t, records[0].Resigned())
	require.NotNil(t, records[0].PlannedDate)
	assert.Equal(t, "2026-09-30", records[0].PlannedDate.Format("2006-01-02"))

	assert.True(t, records[1].Resigned())
	assert.Nil(t, records[1].PlannedDate, "quarter wording carries no concrete date")
	assert.Equal(t, "IV kwartał 2026", records[1].PlannedTermText)

	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Index)
	assert.Contains(t, issues[0].Reason, "registry number")
}

func TestSourceURL(t *testing.T) {
	client := NewClient("https://www.gov.pl/api/data/registers/search", "21034488")
	assert.Equal(t, "https://www.gov.pl/api/data/registers/search?pageId=21034488", client.SourceURL())
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "1")
	_, _, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
