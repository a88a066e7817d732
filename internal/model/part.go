package model

import "time"

// Part is a spare part tracked in the workshop inventory. MinQuantity is the
// reorder threshold: stock at or below it counts as low.
type Part struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Name          string     `gorm:"size:128;not null" json:"name"`
	PartNumber    string     `gorm:"size:64;index;not null" json:"part_number"`
	Category      string     `gorm:"size:64;index;not null" json:"category"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	MinQuantity   int        `gorm:"not null" json:"min_quantity"`
	UnitCost      float64    `json:"unit_cost"`
	Supplier      string     `gorm:"size:128" json:"supplier"`
	Location      string     `gorm:"size:128" json:"location"`
	LastRestocked *time.Time `json:"last_restocked"`
	UsedIn        StringList `gorm:"serializer:json" json:"used_in"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LowStock reports whether the part is at or below its reorder threshold.
func (p Part) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}
