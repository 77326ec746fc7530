package models

import "time"

// Event is a calendar appointment owned by one master. Temporal ordering of
// start/end is not enforced and overlapping events are allowed.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string `gorm:"size:255;not null" json:"title"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	MasterID uint `gorm:"index" json:"master_id"`
	Master   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
