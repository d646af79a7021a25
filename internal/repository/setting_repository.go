package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) GetAll() (map[string]string, error) {
	var settings []model.SystemSetting
	if err := r.DB.Find(&settings).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}

func (r *SettingRepository) Upsert(key, value string) error {
	return r.DB.Where(model.SystemSetting{Key: key}).
		Assign(model.SystemSetting{Value: value}).
		FirstOrCreate(&model.SystemSetting{}).Error
}
