package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// StoreSettingRepository the single settings row
type StoreSettingRepository interface {
	Get(ctx context.Context) (*model.StoreSetting, error)
	Update(ctx context.Context, s *model.StoreSetting) error
}

type storeSettingRepo struct {
	db *gorm.DB
}

// NewStoreSettingRepo creates a StoreSettingRepository.
func NewStoreSettingRepo(db *gorm.DB) StoreSettingRepository {
	return &storeSettingRepo{db: db}
}

func (r *storeSettingRepo) Get(ctx context.Context) (*model.StoreSetting, error) {
	var s model.StoreSetting
	err := r.db.WithContext(ctx).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeSettingRepo) Update(ctx context.Context, s *model.StoreSetting) error {
	s.Singleton = true
	return r.db.WithContext(ctx).Save(s).Error
}
