package models

import "time"

// Tariff is one slab of a department's rate table. Overlapping
// effective_from ranges are not validated; readers order by effective_from
// and pick the latest applicable slab.
type Tariff struct {
	ID            string     `db:"id" json:"id"`
	Department    Department `db:"department" json:"department"`
	Category      string     `db:"category" json:"category"`
	UnitFrom      float64    `db:"unit_from" json:"unit_from"`
	UnitTo        float64    `db:"unit_to" json:"unit_to"`
	RatePerUnit   float64    `db:"rate_per_unit" json:"rate_per_unit"`
	FixedCharge   float64    `db:"fixed_charge" json:"fixed_charge"`
	EffectiveFrom *time.Time `db:"effective_from" json:"effective_from,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// TariffFilter constrains tariff listings.
type TariffFilter struct {
	Department Department
	Category   string
}
