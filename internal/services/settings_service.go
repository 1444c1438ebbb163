package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hearthstack/household-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService reads and writes global key/value settings. The
// platform fee default is injected so the fallback is explicit rather
// than a hidden constant.
type SettingsService struct {
	db                 *gorm.DB
	defaultPlatformFee float64
}

func NewSettingsService(db *gorm.DB, defaultPlatformFee float64) *SettingsService {
	return &SettingsService{db: db, defaultPlatformFee: defaultPlatformFee}
}

// PlatformFee returns the flat per-period platform fee. A missing or
// malformed setting falls back to the injected default.
func (s *SettingsService) PlatformFee() (float64, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", models.SettingPlatformFeeAmount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultPlatformFee, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load setting %s: %w", models.SettingPlatformFeeAmount, err)
	}

	fee, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		slog.Error("malformed platform fee setting, using default", "value", setting.Value, "error", err)
		return s.defaultPlatformFee, nil
	}
	return fee, nil
}

func (s *SettingsService) Get(key string) (string, error) {
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting.Value, nil
}

func (s *SettingsService) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
