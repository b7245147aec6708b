package enrichment

import (
	"context"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/providers"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

const (
	titleMaxLen = 500

	placeholderTitle   = "Brak tytułu"
	placeholderSummary = "Brak opisu"

	titleMarker   = "TYTUŁ:"
	summaryMarker = "PODSUMOWANIE:"
)

// DrugEventInput carries the fields a drug event description is built from.
type DrugEventInput struct {
	EventType       entities.EventType
	DrugName        string
	Strength        string
	Form            string
	Holder          string
	PublicationDate *time.Time
	DecisionNumber  string
}

// RegulationInput carries the register fields a regulation title and
// summary are built from.
type RegulationInput struct {
	RegistryNumber     string
	LegalBasis         string
	OriginalTitle      string
	Essence            string
	ReasonAndNeed      string
	ResignationReasons string
}

// Gateway wraps the text generator with the domain's prompt templates.
// Generation failures never propagate as errors; records are stored
// without enrichment and the caller is told via the ok flag.
type Gateway struct {
	generator providers.TextGenerator
}

// NewGateway creates a new enrichment gateway.
func NewGateway(generator providers.TextGenerator) *Gateway {
	return &Gateway{generator: generator}
}

// DrugDescription generates a short description of a regulatory decision.
func (g *Gateway) DrugDescription(ctx context.Context, input DrugEventInput) (string, bool) {
	if g.generator == nil {
		return "", false
	}

	text, err := g.generator.Generate(ctx, providers.GenerationRequest{
		System:      drugSystemPrompt,
		User:        buildDrugUserPrompt(input),
		MaxTokens:   512,
		Temperature: 0.7,
		TopP:        0.8,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("drug_name", input.DrugName).
			Msg("drug description generation failed")
		return "", false
	}

	return strings.TrimSpace(text), true
}

// RegulationTitleAndSummary generates a title and summary for a register
// entry. The model is asked for a marker-delimited response; when it does
// not comply, progressively weaker parsing keeps whatever is salvageable.
func (g *Gateway) RegulationTitleAndSummary(ctx context.Context, input RegulationInput) (string, string, bool) {
	if g.generator == nil {
		return "", "", false
	}

	text, err := g.generator.Generate(ctx, providers.GenerationRequest{
		System:      regulationSystemPrompt,
		User:        buildRegulationUserPrompt(input),
		MaxTokens:   400,
		Temperature: 0.7,
		TopP:        0.8,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("registry_number", input.RegistryNumber).
			Msg("regulation enrichment failed")
		return "", "", false
	}

	title, summary := parseTitleAndSummary(text)
	return title, summary, true
}

// TranslateToPolish translates text, returning the original text and
// ok=false when translation fails so the caller can retry later. Empty
// input short-circuits without a request and counts as not translated.
func (g *Gateway) TranslateToPolish(ctx context.Context, text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	if g.generator == nil {
		return text, false
	}

	translated, err := g.generator.Generate(ctx, providers.GenerationRequest{
		System:      translationSystemPrompt,
		User:        buildTranslationUserPrompt(text),
		MaxTokens:   512,
		Temperature: 0.3,
		TopP:        0.8,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("translation failed")
		return text, false
	}

	return strings.TrimSpace(translated), true
}

func parseTitleAndSummary(text string) (string, string) {
	text = strings.TrimSpace(text)

	var title, summary string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, titleMarker) {
			title = strings.TrimSpace(strings.TrimPrefix(line, titleMarker))
		} else if strings.HasPrefix(line, summaryMarker) {
			rest := strings.Join(lines[i:], "\n")
			summary = strings.TrimSpace(strings.Replace(rest, summaryMarker, "", 1))
			break
		}
	}

	// The model did not follow the requested format.
	if title == "" || summary == "" {
		if before, after, found := strings.Cut(text, summaryMarker); found {
			titlePart := strings.TrimSpace(strings.Replace(before, titleMarker, "", 1))
			title = strings.TrimSpace(strings.SplitN(titlePart, "\n", 2)[0])
			summary = strings.TrimSpace(after)
		} else {
			parts := strings.SplitN(text, "\n", 2)
			title = strings.TrimSpace(strings.Replace(parts[0], titleMarker, "", 1))
			if len(parts) > 1 {
				summary = strings.TrimSpace(parts[1])
			} else {
				summary = text
			}
		}
	}

	if title == "" {
		title = placeholderTitle
	}
	if summary == "" {
		summary = placeholderSummary
	}

	return normalize.Truncate(title, titleMaxLen), summary
}
