package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/nailroom/salon-scheduler/internal/domain/pricelist"
	"github.com/nailroom/salon-scheduler/internal/models"
)

type PriceListGormRepository struct {
	db *gorm.DB
}

func NewPriceListGormRepository(db *gorm.DB) *PriceListGormRepository {
	return &PriceListGormRepository{db: db}
}

// --------------------------------------------------
// Master / Service lookups
// --------------------------------------------------

func (r *PriceListGormRepository) GetMaster(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PriceListGormRepository) CountServices(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Replace
// --------------------------------------------------

func (r *PriceListGormRepository) ReplaceForMaster(
	ctx context.Context,
	masterID uint,
	entries []domain.Entry,
) ([]models.PriceList, error) {

	var created []models.PriceList

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("master_id = ?", masterID).
			Delete(&models.PriceList{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		rows := make([]models.PriceList, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, models.PriceList{
				MasterID:    masterID,
				ServiceID:   e.ServiceID,
				Price:       e.Price,
				DurationMin: e.DurationMin,
			})
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *PriceListGormRepository) ListForMaster(
	ctx context.Context,
	masterID uint,
) ([]models.PriceList, error) {

	var rows []models.PriceList
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("master_id = ?", masterID).
		Order("service_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*PriceListGormRepository)(nil)
