package entities

import "time"

// MedicalNews is a literature item fetched from PubMed, deduplicated by URL.
// Polish title and description are filled in by the translation backfill;
// IsTranslated stays false until both translations succeed so that failed
// items are retried on the next run.
type MedicalNews struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	TitlePL         string    `json:"title_pl" db:"title_pl"`
	DescriptionPL   string    `json:"description_pl" db:"description_pl"`
	URL             string    `json:"url" db:"url"`
	SourceName      string    `json:"source_name" db:"source_name"`
	ImageURL        string    `json:"image_url" db:"image_url"`
	PublicationDate time.Time `json:"publication_date" db:"publication_date"`
	IsTranslated    bool      `json:"is_translated" db:"is_translated"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
