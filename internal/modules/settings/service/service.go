package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zihui-app/zihui/internal/entity"
	"github.com/zihui-app/zihui/internal/modules/settings/dto"
	repository "github.com/zihui-app/zihui/internal/modules/settings/repository"
	userRepo "github.com/zihui-app/zihui/internal/modules/user/repository"
	"gorm.io/gorm"
)

// Bounds for the clamped numeric preferences.
const (
	minDailyCharCount = 1
	maxDailyCharCount = 50

	minStandardModePageSize = 10
	maxStandardModePageSize = 100
)

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, req dto.UpdateSettingsRequest) (*entity.UserSettings, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	userRepo userRepo.UserRepository
}

func NewSettingsService(repo repository.SettingsRepository, userRepo userRepo.UserRepository) Service {
	return &settingsService{repo: repo, userRepo: userRepo}
}

// Get returns the user's settings, creating the default record on first
// access. Not a pure read.
func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.userRepo.EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	defaults := &entity.UserSettings{
		UserID:               userID,
		CurrentLevel:         entity.DefaultCurrentLevel,
		DailyCharCount:       entity.DefaultDailyCharCount,
		PreferTraditional:    entity.DefaultPreferTraditional,
		StandardModePageSize: entity.DefaultStandardModePageSize,
	}
	if err := s.repo.Create(ctx, defaults); err != nil {
		return nil, err
	}

	return defaults, nil
}

// Update merges only the supplied fields into the existing (or freshly
// created default) record and bumps the update timestamp.
func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, req dto.UpdateSettingsRequest) (*entity.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CurrentLevel != nil {
		settings.CurrentLevel = clamp(*req.CurrentLevel, 0, entity.CatalogSizeBound-1)
	}
	if req.DailyCharCount != nil {
		settings.DailyCharCount = clamp(*req.DailyCharCount, minDailyCharCount, maxDailyCharCount)
	}
	if req.PreferTraditional != nil {
		settings.PreferTraditional = *req.PreferTraditional
	}
	if req.StandardModePageSize != nil {
		settings.StandardModePageSize = clamp(*req.StandardModePageSize, minStandardModePageSize, maxStandardModePageSize)
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
