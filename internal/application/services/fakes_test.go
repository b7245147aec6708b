package services

import (
	"context"
	"strings"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/gif"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/urpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

// In-memory repositories with the same conflict and not-found semantics
// as the database adapters.

type fakeEventRepo struct {
	events map[entities.DrugEventKey]*entities.DrugEvent
	// createErr injects a Create failure for the named drug.
	createErr map[string]error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[entities.DrugEventKey]*entities.DrugEvent)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *entities.DrugEvent) error {
	if err, ok := r.createErr[event.DrugName]; ok {
		return err
	}
	key := event.Key()
	if _, ok := r.events[key]; ok {
		return apperrors.NewConflictError("drug event already exists")
	}
	r.events[key] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entities.DrugEvent, error) {
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, apperrors.NewNotFoundError("drug event not found")
}

func (r *fakeEventRepo) GetByKey(_ context.Context, key entities.DrugEventKey) (*entities.DrugEvent, error) {
	if e, ok := r.events[key]; ok {
		return e, nil
	}
	return nil, apperrors.NewNotFoundError("drug event not found")
}

func (r *fakeEventRepo) List(_ context.Context, _ repositories.DrugEventFilter) ([]*entities.DrugEvent, error) {
	out := make([]*entities.DrugEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) CountBySource(_ context.Context, source entities.DataSource) (int64, error) {
	var n int64
	for _, e := range r.events {
		if e.Source == source {
			n++
		}
	}
	return n, nil
}

func (r *fakeEventRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, e := range r.events {
		if !e.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeRegulationRepo struct {
	regulations map[string]*entities.LegalRegulation
}

func newFakeRegulationRepo() *fakeRegulationRepo {
	return &fakeRegulationRepo{regulations: make(map[string]*entities.LegalRegulation)}
}

func (r *fakeRegulationRepo) Create(_ context.Context, regulation *entities.LegalRegulation) error {
	if _, ok := r.regulations[regulation.RegistryNumber]; ok {
		return apperrors.NewConflictError("regulation already exists")
	}
	r.regulations[regulation.RegistryNumber] = regulation
	return nil
}

func (r *fakeRegulationRepo) GetByID(_ context.Context, id string) (*entities.LegalRegulation, error) {
	for _, reg := range r.regulations {
		if reg.ID == id {
			return reg, nil
		}
	}
	return nil, apperrors.NewNotFoundError("regulation not found")
}

func (r *fakeRegulationRepo) GetByRegistryNumber(_ context.Context, registryNumber string) (*entities.LegalRegulation, error) {
	if reg, ok := r.regulations[registryNumber]; ok {
		return reg, nil
	}
	return nil, apperrors.NewNotFoundError("regulation not found")
}

func (r *fakeRegulationRepo) List(_ context.Context, _ repositories.LegalRegulationFilter) ([]*entities.LegalRegulation, error) {
	out := make([]*entities.LegalRegulation, 0, len(r.regulations))
	for _, reg := range r.regulations {
		out = append(out, reg)
	}
	return out, nil
}

type fakeNewsRepo struct {
	news map[string]*entities.MedicalNews
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{news: make(map[string]*entities.MedicalNews)}
}

func (r *fakeNewsRepo) Create(_ context.Context, news *entities.MedicalNews) error {
	if _, ok := r.news[news.URL]; ok {
		return apperrors.NewConflictError("news already exists")
	}
	r.news[news.URL] = news
	return nil
}

func (r *fakeNewsRepo) GetByID(_ context.Context, id string) (*entities.MedicalNews, error) {
	for _, n := range r.news {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.NewNotFoundError("news not found")
}

func (r *fakeNewsRepo) GetByURL(_ context.Context, url string) (*entities.MedicalNews, error) {
	if n, ok := r.news[url]; ok {
		return n, nil
	}
	return nil, apperrors.NewNotFoundError("news not found")
}

func (r *fakeNewsRepo) Update(_ context.Context, news *entities.MedicalNews) error {
	if _, ok := r.news[news.URL]; !ok {
		return apperrors.NewNotFoundError("news not found")
	}
	r.news[news.URL] = news
	return nil
}

func (r *fakeNewsRepo) List(_ context.Context, _ repositories.MedicalNewsFilter) ([]*entities.MedicalNews, error) {
	out := make([]*entities.MedicalNews, 0, len(r.news))
	for _, n := range r.news {
		out = append(out, n)
	}
	return out, nil
}

type fakeDrugRepo struct {
	drugs map[string]*entities.Drug
}

func newFakeDrugRepo() *fakeDrugRepo {
	return &fakeDrugRepo{drugs: make(map[string]*entities.Drug)}
}

func drugKey(productName, activeSubstance string) string {
	return productName + "\x00" + activeSubstance
}

func (r *fakeDrugRepo) Create(_ context.Context, drug *entities.Drug) error {
	key := drugKey(drug.ProductName, drug.ActiveSubstance)
	if _, ok := r.drugs[key]; ok {
		return apperrors.NewConflictError("drug already exists")
	}
	r.drugs[key] = drug
	return nil
}

func (r *fakeDrugRepo) GetByID(_ context.Context, id string) (*entities.Drug, error) {
	for _, d := range r.drugs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NewNotFoundError("drug not found")
}

func (r *fakeDrugRepo) GetByProductAndSubstance(_ context.Context, productName, activeSubstance string) (*entities.Drug, error) {
	if d, ok := r.drugs[drugKey(productName, activeSubstance)]; ok {
		return d, nil
	}
	return nil, apperrors.NewNotFoundError("drug not found")
}

func (r *fakeDrugRepo) List(_ context.Context, _ repositories.DrugFilter) ([]*entities.Drug, error) {
	out := make([]*entities.Drug, 0, len(r.drugs))
	for _, d := range r.drugs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDrugRepo) SearchByName(_ context.Context, name string, _ int) ([]*entities.Drug, error) {
	needle := strings.ToLower(name)
	var out []*entities.Drug
	for _, d := range r.drugs {
		if strings.Contains(strings.ToLower(d.ProductName), needle) ||
			strings.Contains(strings.ToLower(d.CommonName), needle) ||
			strings.Contains(strings.ToLower(d.Holder), needle) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDrugRepo) SearchBySubstance(_ context.Context, substance string, _ int) ([]*entities.Drug, error) {
	needle := strings.ToLower(substance)
	var out []*entities.Drug
	for _, d := range r.drugs {
		if strings.Contains(strings.ToLower(d.ActiveSubstance), needle) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Fake sources and enrichers.

type fakeGIFSource struct {
	records []gif.Record
	issues  []sources.RowIssue
	err     error
}

func (s *fakeGIFSource) Fetch(_ context.Context) ([]gif.Record, []sources.RowIssue, error) {
	return s.records, s.issues, s.err
}

type fakeURPLSource struct {
	records []urpl.Record
	issues  []sources.RowIssue
	err     error
}

func (s *fakeURPLSource) Fetch(_ context.Context) ([]urpl.Record, []sources.RowIssue, error) {
	return s.records, s.issues, s.err
}

type fakeRegulationSource struct {
	records []govpl.Record
	issues  []sources.RowIssue
	err     error
}

func (s *fakeRegulationSource) Fetch(_ context.Context) ([]govpl.Record, []sources.RowIssue, error) {
	return s.records, s.issues, s.err
}

func (s *fakeRegulationSource) SourceURL() string {
	return "https://www.gov.pl/api/data/registers/search?pageId=1"
}

type fakeNewsSource struct {
	articles []pubmed.Article
	issues   []sources.RowIssue
	err      error
}

func (s *fakeNewsSource) Fetch(_ context.Context) ([]pubmed.Article, []sources.RowIssue, error) {
	return s.articles, s.issues, s.err
}

type fakeDrugEnricher struct {
	description string
	ok          bool
	calls       int
}

func (e *fakeDrugEnricher) DrugDescription(_ context.Context, _ enrichment.DrugEventInput) (string, bool) {
	e.calls++
	return e.description, e.ok
}

type fakeRegulationEnricher struct {
	title   string
	summary string
	ok      bool
	calls   int
}

func (e *fakeRegulationEnricher) RegulationTitleAndSummary(_ context.Context, _ enrichment.RegulationInput) (string, string, bool) {
	e.calls++
	return e.title, e.summary, e.ok
}

type fakeTranslator struct {
	prefix string
	ok     bool
	calls  int
}

func (t *fakeTranslator) TranslateToPolish(_ context.Context, text string) (string, bool) {
	t.calls++
	if !t.ok {
		return text, false
	}
	return t.prefix + text, true
}
