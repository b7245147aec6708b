package services

import (
	"context"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

// Outcome classifies what an upsert did with a record.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

// DrugEventUpserter inserts drug events with create-or-skip semantics
// keyed on (event_type, drug_name, source). Concurrent runs may both
// pass the existence check; the unique constraint arbitrates and the
// loser records a skip.
type DrugEventUpserter struct {
	repo repositories.DrugEventRepository
}

// NewDrugEventUpserter creates a new drug event upserter.
func NewDrugEventUpserter(repo repositories.DrugEventRepository) *DrugEventUpserter {
	return &DrugEventUpserter{repo: repo}
}

// Exists reports whether an event with the key is already stored.
func (u *DrugEventUpserter) Exists(ctx context.Context, key entities.DrugEventKey) (bool, error) {
	_, err := u.repo.GetByKey(ctx, key)
	if err == nil {
		return true, nil
	}
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Insert stores the event, mapping a duplicate-key conflict to a skip.
func (u *DrugEventUpserter) Insert(ctx context.Context, event *entities.DrugEvent) (Outcome, error) {
	if err := u.repo.Create(ctx, event); err != nil {
		if apperrors.IsConflict(err) {
			return OutcomeSkipped, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}

// RegulationUpserter inserts regulations with create-or-skip semantics
// keyed on the registry number.
type RegulationUpserter struct {
	repo repositories.LegalRegulationRepository
}

// NewRegulationUpserter creates a new regulation upserter.
func NewRegulationUpserter(repo repositories.LegalRegulationRepository) *RegulationUpserter {
	return &RegulationUpserter{repo: repo}
}

// Exists reports whether a regulation with the registry number is stored.
func (u *RegulationUpserter) Exists(ctx context.Context, registryNumber string) (bool, error) {
	_, err := u.repo.GetByRegistryNumber(ctx, registryNumber)
	if err == nil {
		return true, nil
	}
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Insert stores the regulation, mapping a duplicate-key conflict to a skip.
func (u *RegulationUpserter) Insert(ctx context.Context, regulation *entities.LegalRegulation) (Outcome, error) {
	if err := u.repo.Create(ctx, regulation); err != nil {
		if apperrors.IsConflict(err) {
			return OutcomeSkipped, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}

// NewsUpserter inserts news with create-or-backfill semantics keyed on
// the URL: known untranslated items get their translations filled in
// rather than being skipped.
type NewsUpserter struct {
	repo repositories.MedicalNewsRepository
}

// NewNewsUpserter creates a new news upserter.
func NewNewsUpserter(repo repositories.MedicalNewsRepository) *NewsUpserter {
	return &NewsUpserter{repo: repo}
}

// Get returns the stored item for the URL, or nil when there is none.
func (u *NewsUpserter) Get(ctx context.Context, url string) (*entities.MedicalNews, error) {
	news, err := u.repo.GetByURL(ctx, url)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return news, nil
}

// Insert stores the news item, mapping a duplicate-key conflict to a skip.
func (u *NewsUpserter) Insert(ctx context.Context, news *entities.MedicalNews) (Outcome, error) {
	if err := u.repo.Create(ctx, news); err != nil {
		if apperrors.IsConflict(err) {
			return OutcomeSkipped, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}

// Backfill updates a stored item with freshly translated fields.
func (u *NewsUpserter) Backfill(ctx context.Context, news *entities.MedicalNews) (Outcome, error) {
	if err := u.repo.Update(ctx, news); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

// DrugUpserter inserts drugs with create-or-skip semantics keyed on
// (product_name, active_substance).
type DrugUpserter struct {
	repo repositories.DrugRepository
}

// NewDrugUpserter creates a new drug upserter.
func NewDrugUpserter(repo repositories.DrugRepository) *DrugUpserter {
	return &DrugUpserter{repo: repo}
}

// Exists reports whether a drug with the natural key is stored.
func (u *DrugUpserter) Exists(ctx context.Context, productName, activeSubstance string) (bool, error) {
	_, err := u.repo.GetByProductAndSubstance(ctx, productName, activeSubstance)
	if err == nil {
		return true, nil
	}
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Insert stores the drug, mapping a duplicate-key conflict to a skip.
func (u *DrugUpserter) Insert(ctx context.Context, drug *entities.Drug) (Outcome, error) {
	if err := u.repo.Create(ctx, drug); err != nil {
		if apperrors.IsConflict(err) {
			return OutcomeSkipped, nil
		}
		return "", err
	}
	return OutcomeCreated, nil
}
