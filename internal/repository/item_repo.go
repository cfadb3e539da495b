package repository

import (
	"context"

	"github.com/lturcios/turicash-backend/internal/model"

	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, i *model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	// List returns the whole catalog (admin panel view).
	List(ctx context.Context) ([]model.Item, error)
	// ListActiveByLocation returns only active items of one location — the
	// mobile client's catalog, scoped by the token's location claim.
	ListActiveByLocation(ctx context.Context, locationID uint) ([]model.Item, error)
	Update(ctx context.Context, i *model.Item) error
	Delete(ctx context.Context, id uint) error
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var i model.Item
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Location").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListActiveByLocation(ctx context.Context, locationID uint) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("is_active = true AND location_id = ?", locationID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Save(i).Error
}

// Delete is a hard delete; the ticket_items FK blocks it for items that
// already appear on committed tickets.
func (r *itemRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
