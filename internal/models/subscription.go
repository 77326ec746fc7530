package models

import "time"

// Subscription links a customer to a master they follow.
type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index:idx_subscription_pair" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MasterID uint `gorm:"index:idx_subscription_pair" json:"master_id"`
	Master   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// CustomerService links a customer to a catalog service they bookmarked.
// It coexists with Subscription even though following a master already
// implies interest in that master's services.
type CustomerService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index:idx_customer_service_pair" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"index:idx_customer_service_pair" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
