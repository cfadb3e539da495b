package repository

import (
	"context"

	"github.com/lturcios/turicash-backend/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uint) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id uint) error
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) FindByID(ctx context.Context, id uint) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *locationRepo) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// Delete is a hard delete; FKs from users, items and tickets block it while
// the location is referenced.
func (r *locationRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
