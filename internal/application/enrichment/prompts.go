package enrichment

import (
	"fmt"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

const (
	drugSystemPrompt = "Jesteś ekspertem farmaceutycznym generującym profesjonalne opisy decyzji regulacyjnych."

	regulationSystemPrompt = "Jesteś ekspertem prawnym specjalizującym się w regulacjach Ministerstwa Zdrowia."

	translationSystemPrompt = "You are a professional translator. Translate the given text to Polish. Return ONLY the translation, nothing else."
)

func buildDrugUserPrompt(input DrugEventInput) string {
	var eventDesc, action string
	switch input.EventType {
	case entities.EventTypeWithdrawal:
		eventDesc = "wycofany z obrotu"
		action = "wycofania"
	case entities.EventTypeSuspension:
		eventDesc = "zawieszony w obrocie"
		action = "zawieszenia"
	default:
		eventDesc = "zarejestrowany"
		action = "rejestracji"
	}

	return fmt.Sprintf(`Produkt leczniczy został %s

Lek: %s
Moc: %s
Forma: %s
Producent: %s
Data decyzji: %s
Numer decyzji: %s

Wygeneruj krótki (2-3 zdania), profesjonalny opis przyczyny %s. Użyj profesjonalnego języka farmaceutycznego.`,
		eventDesc,
		input.DrugName,
		orMissing(input.Strength),
		orMissing(input.Form),
		orMissing(input.Holder),
		orMissingDate(input.PublicationDate),
		orMissing(input.DecisionNumber),
		action,
	)
}

func buildRegulationUserPrompt(input RegulationInput) string {
	status := "AKTYWNY"
	resignationLine := ""
	resignationNote := ""
	if strings.TrimSpace(input.ResignationReasons) != "" {
		status = "WYCOFANY"
		resignationLine = "Przyczyny rezygnacji: " + normalize.Truncate(input.ResignationReasons, 200)
		resignationNote = "- Wspomnij że projekt został WYCOFANY/ZAWIESZONY."
	}

	return fmt.Sprintf(`Jesteś ekspertem prawnym. Przeanalizuj poniższą regulację prawną i wygeneruj:
1. Krótki, trafny TYTUŁ (max 100 znaków)
2. Zwięzłe PODSUMOWANIE (2-3 zdania)

DANE REGULACJI:
Numer: %s
Status: %s
Podstawa prawna: %s
Tytuł oryginalny: %s
Istota rozwiązań: %s
Przyczyna i potrzeba: %s
%s

WYMAGANIA:
- TYTUŁ: Krótki, konkretny, opisujący istotę regulacji. Bez słów "Rozporządzenie" na początku.
- PODSUMOWANIE: Profesjonalny język prawniczy, zwięzłe wyjaśnienie celu i zakresu regulacji.
%s

FORMAT ODPOWIEDZI (DOKŁADNIE TAK):
TYTUŁ: [twój tytuł]
PODSUMOWANIE: [twoje podsumowanie]`,
		input.RegistryNumber,
		status,
		orBrak(normalize.Truncate(input.LegalBasis, 200)),
		orBrak(normalize.Truncate(input.OriginalTitle, 200)),
		orBrak(normalize.Truncate(input.Essence, 300)),
		orBrak(normalize.Truncate(input.ReasonAndNeed, 300)),
		resignationLine,
		resignationNote,
	)
}

func buildTranslationUserPrompt(text string) string {
	return "Translate this to Polish: " + text
}

func orMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return "nie podano"
	}
	return value
}

func orMissingDate(value *time.Time) string {
	if value == nil {
		return "nie podano"
	}
	return value.Format("2006-01-02")
}

func orBrak(value string) string {
	if strings.TrimSpace(value) == "" {
		return "brak"
	}
	return value
}
