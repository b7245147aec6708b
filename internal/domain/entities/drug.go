package entities

import "time"

// Drug is a medicinal product from the bulk registry import, deduplicated
// by the (product name, active substance) pair. CommonName holds the INN;
// AdministrationRoute carries the export's combined route, species, tissue
// and withdrawal-period text verbatim.
type Drug struct {
	ID                  string    `json:"id" db:"id"`
	ProductName         string    `json:"product_name" db:"product_name"`
	CommonName          string    `json:"common_name" db:"common_name"`
	AdministrationRoute string    `json:"administration_route" db:"administration_route"`
	Strength            string    `json:"strength" db:"strength"`
	ActiveSubstance     string    `json:"active_substance" db:"active_substance"`
	AuthorizationNumber string    `json:"authorization_number" db:"authorization_number"`
	Holder              string    `json:"marketing_authorisation_holder" db:"marketing_authorisation_holder"`
	Manufacturer        string    `json:"manufacturer" db:"manufacturer"`
	Price               *float64  `json:"price" db:"price"`
	Quantity            *int      `json:"quantity" db:"quantity"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
