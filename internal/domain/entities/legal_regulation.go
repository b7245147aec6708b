package entities

import "time"

// LegalRegulation is a planned or published legal act from the government
// regulation registry, deduplicated by its registry number. The register's
// own wording is kept verbatim next to the generated title and summary so
// the generated fields can be audited against their inputs.
type LegalRegulation struct {
	ID                 string     `json:"id" db:"id"`
	Ordinal            string     `json:"ordinal" db:"ordinal"`
	RegistryNumber     string     `json:"registry_number" db:"registry_number"`
	LegalBasis         string     `json:"legal_basis" db:"legal_basis"`
	OriginalTitle      string     `json:"original_title" db:"original_title"`
	ResignationReasons string     `json:"resignation_reasons" db:"resignation_reasons"`
	PlannedTermText    string     `json:"planned_term_text" db:"planned_term_text"`
	PlannedDate        *time.Time `json:"planned_date" db:"planned_date"`
	Essence            string     `json:"essence" db:"essence"`
	ResponsiblePerson  string     `json:"responsible_person" db:"responsible_person"`
	ReasonAndNeed      string     `json:"reason_and_need" db:"reason_and_need"`
	Title              string     `json:"title" db:"title"`
	Summary            string     `json:"summary" db:"summary"`
	SourceURL          string     `json:"source_url" db:"source_url"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// Resigned reports whether work on the regulation has been abandoned.
func (r *LegalRegulation) Resigned() bool {
	return r.ResignationReasons != ""
}
