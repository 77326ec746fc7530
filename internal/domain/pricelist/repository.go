package pricelist

import (
	"context"

	"github.com/nailroom/salon-scheduler/internal/models"
)

// Entry is one submitted (service, price) selection for a master.
type Entry struct {
	ServiceID   uint
	Price       float64
	DurationMin *int
}

type Repository interface {
	GetMaster(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	CountServices(
		ctx context.Context,
		ids []uint,
	) (int64, error)

	// ReplaceForMaster drops every price-list row of the master and creates
	// one row per entry, atomically.
	ReplaceForMaster(
		ctx context.Context,
		masterID uint,
		entries []Entry,
	) ([]models.PriceList, error)

	ListForMaster(
		ctx context.Context,
		masterID uint,
	) ([]models.PriceList, error)
}
