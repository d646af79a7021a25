package service

import (
	"strconv"

	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
)

type SettingsService struct {
	Repo *repository.SettingRepository
}

func NewSettingsService(repo *repository.SettingRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

// Snapshot reads the exam-wide toggles once. Callers hold the snapshot for
// the duration of a request instead of re-reading settings mid-flight.
func (s *SettingsService) Snapshot() (model.ExamSettings, error) {
	values, err := s.Repo.GetAll()
	if err != nil {
		return model.ExamSettings{}, err
	}
	return model.ExamSettings{
		ShuffleQuestions:       boolSetting(values, model.SettingShuffleQuestions, false),
		ShowResultsImmediately: boolSetting(values, model.SettingShowResultsImmediately, true),
	}, nil
}

func (s *SettingsService) Update(key, value string) error {
	return s.Repo.Upsert(key, value)
}

func (s *SettingsService) All() (map[string]string, error) {
	return s.Repo.GetAll()
}

func boolSetting(values map[string]string, key string, fallback bool) bool {
	raw, ok := values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
