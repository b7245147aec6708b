package entities

import (
	"fmt"
	"time"
)

// EventType classifies what happened to a medicinal product.
type EventType string

const (
	EventTypeWithdrawal   EventType = "WITHDRAWAL"
	EventTypeSuspension   EventType = "SUSPENSION"
	EventTypeRegistration EventType = "REGISTRATION"
)

// DataSource identifies which upstream registry produced an event.
type DataSource string

const (
	// DataSourceGIF is the Chief Pharmaceutical Inspectorate decision table.
	DataSourceGIF DataSource = "GIF"
	// DataSourceURPL is the Office for Registration of Medicinal Products.
	DataSourceURPL DataSource = "URPL"
)

// DrugEventKey is the natural key under which drug events are deduplicated.
// The repository enforces its uniqueness with a database constraint.
type DrugEventKey struct {
	EventType EventType
	DrugName  string
	Source    DataSource
}

func (k DrugEventKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Source, k.EventType, k.DrugName)
}

// DrugEvent is a single regulatory event for a medicinal product: a batch
// withdrawal or suspension from GIF, or a new registration from URPL.
type DrugEvent struct {
	ID              string     `json:"id" db:"id"`
	EventType       EventType  `json:"event_type" db:"event_type"`
	Source          DataSource `json:"source" db:"source"`
	PublicationDate time.Time  `json:"publication_date" db:"publication_date"`
	DecisionNumber  string     `json:"decision_number" db:"decision_number"`
	DrugName        string     `json:"drug_name" db:"drug_name"`
	DrugStrength    string     `json:"drug_strength" db:"drug_strength"`
	DrugForm        string     `json:"drug_form" db:"drug_form"`
	Holder          string     `json:"marketing_authorisation_holder" db:"marketing_authorisation_holder"`
	BatchNumber     string     `json:"batch_number" db:"batch_number"`
	ExpiryDate      *time.Time `json:"expiry_date" db:"expiry_date"`
	Description     string     `json:"description" db:"description"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Key returns the event's natural dedup key.
func (e *DrugEvent) Key() DrugEventKey {
	return DrugEventKey{EventType: e.EventType, DrugName: e.DrugName, Source: e.Source}
}
