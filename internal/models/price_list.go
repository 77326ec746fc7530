package models

import "time"

// PriceList is the master×service join carrying the master's own price and,
// optionally, the master's own duration. There is deliberately no uniqueness
// constraint on (master_id, service_id); one row per pair is expected but
// duplicates are representable.
type PriceList struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterID uint `gorm:"index" json:"master_id"`
	Master   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Price       float64 `json:"price"`
	DurationMin *int    `json:"duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
