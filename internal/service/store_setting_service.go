package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
)

// ErrStoreSettingsMissing the seeded settings row is gone
var ErrStoreSettingsMissing = errors.New("store settings are not initialized")

// StoreSettingService single-row store configuration
type StoreSettingService interface {
	Get(ctx context.Context) (*dto.StoreSettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateStoreSettingsRequest, callerID int) (*dto.StoreSettingsResponse, error)
}

type storeSettingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStoreSettingService creates a StoreSettingService.
func NewStoreSettingService(repo *repository.Repository, logger *zap.Logger) StoreSettingService {
	return &storeSettingService{repo: repo, logger: logger}
}

func (s *storeSettingService) Get(ctx context.Context) (*dto.StoreSettingsResponse, error) {
	settings, err := loadStoreSettings(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}
	return toStoreSettingsResponse(settings), nil
}

func (s *storeSettingService) Update(ctx context.Context, req *dto.UpdateStoreSettingsRequest, callerID int) (*dto.StoreSettingsResponse, error) {
	settings, err := loadStoreSettings(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}

	if req.DrosQualificationThreshold != nil {
		settings.DrosQualificationThreshold = *req.DrosQualificationThreshold
	}
	if req.ExcludedDepartment != nil {
		settings.ExcludedDepartment = *req.ExcludedDepartment
	}
	if req.StartingPoints != nil {
		settings.StartingPoints = *req.StartingPoints
	}
	if req.DutyDepartment != nil {
		settings.DutyDepartment = *req.DutyDepartment
	}
	if req.DutyPreferredWeekday != nil {
		settings.DutyPreferredWeekday = *req.DutyPreferredWeekday
	}
	if req.TimeOffMinNoticeDays != nil {
		settings.TimeOffMinNoticeDays = *req.TimeOffMinNoticeDays
	}
	settings.UpdatedBy = &callerID

	if err := s.repo.StoreSetting.Update(ctx, settings); err != nil {
		s.logger.Error("update store settings failed", zap.Error(err))
		return nil, err
	}
	return toStoreSettingsResponse(settings), nil
}

// loadStoreSettings shared by every service that reads the store knobs.
func loadStoreSettings(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (*model.StoreSetting, error) {
	settings, err := repo.StoreSetting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreSettingsMissing
		}
		logger.Error("query store settings failed", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

func toStoreSettingsResponse(s *model.StoreSetting) *dto.StoreSettingsResponse {
	return &dto.StoreSettingsResponse{
		DrosQualificationThreshold: s.DrosQualificationThreshold,
		ExcludedDepartment:         s.ExcludedDepartment,
		StartingPoints:             s.StartingPoints,
		DutyDepartment:             s.DutyDepartment,
		DutyPreferredWeekday:       s.DutyPreferredWeekday,
		TimeOffMinNoticeDays:       s.TimeOffMinNoticeDays,
		UpdatedAt:                  formatTimestamp(s.UpdatedAt),
	}
}
