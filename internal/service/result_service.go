package service

import (
	"errors"

	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/internal/util"
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResultService struct {
	Results  *repository.ResultRepository
	Answers  *repository.AnswerRepository
	Attempts *repository.AttemptRepository
	Settings *SettingsService
}

func NewResultService(results *repository.ResultRepository, answers *repository.AnswerRepository, attempts *repository.AttemptRepository, settings *SettingsService) *ResultService {
	return &ResultService{
		Results:  results,
		Answers:  answers,
		Attempts: attempts,
		Settings: settings,
	}
}

// ResultDetail joins the result row with the graded per-question answers.
type ResultDetail struct {
	Result  *model.ExamResult  `json:"result"`
	Answers []model.ExamAnswer `json:"answers"`
}

// ForStudent returns one result, enforcing ownership and the
// show-results-immediately toggle. Teachers and admins bypass both via
// ForStaff.
func (s *ResultService) ForStudent(studentID, attemptID uint) (*ResultDetail, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrResultNotFound
	}

	settings, err := s.Settings.Snapshot()
	if err != nil {
		logger.Log.Warn("settings snapshot failed, using defaults", zap.Error(err))
		settings = model.ExamSettings{ShowResultsImmediately: true}
	}
	if !settings.ShowResultsImmediately {
		return nil, util.ErrResultNotPublished
	}

	return s.detail(attemptID)
}

// ForStaff returns one result without ownership or visibility checks.
func (s *ResultService) ForStaff(attemptID uint) (*ResultDetail, error) {
	return s.detail(attemptID)
}

func (s *ResultService) detail(attemptID uint) (*ResultDetail, error) {
	result, err := s.Results.FindByAttemptID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	answers, err := s.Answers.ListByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	return &ResultDetail{Result: result, Answers: answers}, nil
}

func (s *ResultService) ListByExam(examID uint, page, limit int) ([]model.ExamResult, int64, error) {
	return s.Results.ListByExam(examID, page, limit)
}

func (s *ResultService) ListByStudent(studentID uint) ([]model.ExamResult, error) {
	return s.Results.ListByStudent(studentID)
}
