package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/providers"
)

type fakeGenerator struct {
	response string
	err      error
	lastReq  providers.GenerationRequest
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, req providers.GenerationRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func TestDrugDescription(t *testing.T) {
	gen := &fakeGenerator{response: "  Lek został wycofany z obrotu.  "}
	gateway := NewGateway(gen)

	text, ok := gateway.DrugDescription(context.Background(), DrugEventInput{
		EventType: entities.EventTypeWithdrawal,
		DrugName:  "Apap",
	})

	require.True(t, ok)
	assert.Equal(t, "Lek został wycofany z obrotu.", text)
	assert.Equal(t, 512, gen.lastReq.MaxTokens)
	assert.InDelta(t, 0.7, gen.lastReq.Temperature, 0.001)
	assert.Contains(t, gen.lastReq.User, "Apap")
}

func TestDrugDescriptionFailure(t *testing.T) {
	gateway := NewGateway(&fakeGenerator{err: errors.New("timeout")})

	text, ok := gateway.DrugDescription(context.Background(), DrugEventInput{DrugName: "Apap"})

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestDrugDescriptionNilGenerator(t *testing.T) {
	gateway := NewGateway(nil)

	text, ok := gateway.DrugDescription(context.Background(), DrugEventInput{DrugName: "Apap"})

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestRegulationTitleAndSummary(t *testing.T) {
	gen := &fakeGenerator{response: "TYTUŁ: Nowy wykaz leków\nPODSUMOWANIE: Rozporządzenie aktualizuje wykaz.\nDotyczy refundacji."}
	gateway := NewGateway(gen)

	title, summary, ok := gateway.RegulationTitleAndSummary(context.Background(), RegulationInput{RegistryNumber: "MZ 1578"})

	require.True(t, ok)
	assert.Equal(t, "Nowy wykaz leków", title)
	assert.Equal(t, "Rozporządzenie aktualizuje wykaz.\nDotyczy refundacji.", summary)
	assert.Equal(t, 400, gen.lastReq.MaxTokens)
}

func TestTranslateToPolish(t *testing.T) {
	gen := &fakeGenerator{response: "Szczepionka działa."}
	gateway := NewGateway(gen)

	text, ok := gateway.TranslateToPolish(context.Background(), "The vaccine works.")

	require.True(t, ok)
	assert.Equal(t, "Szczepionka działa.", text)
	assert.InDelta(t, 0.3, gen.lastReq.Temperature, 0.001)
}

func TestTranslateToPolishEmptyInput(t *testing.T) {
	gen := &fakeGenerator{}
	gateway := NewGateway(gen)

	text, ok := gateway.TranslateToPolish(context.Background(), "   ")

	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Zero(t, gen.calls, "empty input must not spend a request")
}

func TestTranslateToPolishFailureKeepsOriginal(t *testing.T) {
	gateway := NewGateway(&fakeGenerator{err: errors.New("rate limited")})

	text, ok := gateway.TranslateToPolish(context.Background(), "Original text")

	assert.False(t, ok)
	assert.Equal(t, "Original text", text)
}

func TestParseTitleAndSummary(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTitle   string
		wantSummary string
	}{
		{
			name:        "marker format",
			input:       "TYTUŁ: Tytuł A\nPODSUMOWANIE: Opis A",
			wantTitle:   "Tytuł A",
			wantSummary: "Opis A",
		},
		{
			name:        "summary marker on the same line",
			input:       "TYTUŁ: Tytuł B PODSUMOWANIE: Opis B",
			wantTitle:   "Tytuł B",
			wantSummary: "Opis B",
		},
		{
			name:        "no markers at all",
			input:       "Pierwsza linia\nReszta opisu",
			wantTitle:   "Pierwsza linia",
			wantSummary: "Reszta opisu",
		},
		{
			name:        "single line without markers",
			input:       "Tylko jedna linia",
			wantTitle:   "Tylko jedna linia",
			wantSummary: "Tylko jedna linia",
		},
		{
			name:        "empty response",
			input:       "",
			wantTitle:   "Brak tytułu",
			wantSummary: "Brak opisu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, summary := parseTitleAndSummary(tt.input)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantSummary, summary)
		})
	}
}

func TestParseTitleAndSummaryTruncatesTitle(t *testing.T) {
	long := strings.Repeat("t", 600)
	title, _ := parseTitleAndSummary("TYTUŁ: " + long + "\nPODSUMOWANIE: Opis")
	assert.Len(t, title, 500)
}
