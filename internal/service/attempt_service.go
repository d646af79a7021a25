package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/khan-masud/exam-station/internal/grading"
	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/internal/util"
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttemptService struct {
	Attempts *repository.AttemptRepository
	Exams    *repository.ExamRepository
	Programs *repository.ProgramRepository
	Settings *SettingsService
}

func NewAttemptService(attempts *repository.AttemptRepository, exams *repository.ExamRepository, programs *repository.ProgramRepository, settings *SettingsService) *AttemptService {
	return &AttemptService{
		Attempts: attempts,
		Exams:    exams,
		Programs: programs,
		Settings: settings,
	}
}

// TakingQuestion is a question as presented to the student: options in their
// attempt-specific order, correctness withheld.
type TakingQuestion struct {
	ID      uint                   `json:"id"`
	Text    string                 `json:"text"`
	Type    model.QuestionType     `json:"type"`
	Marks   float64                `json:"marks"`
	Options []model.QuestionOption `json:"options,omitempty"`
}

type TakingView struct {
	Attempt   *model.ExamAttempt `json:"attempt"`
	ExamTitle string             `json:"examTitle"`
	Deadline  time.Time          `json:"deadline"`
	Questions []TakingQuestion   `json:"questions"`
}

// Start opens a new attempt. The exam's grading parameters are frozen onto
// the attempt row so later edits to the exam cannot affect it.
func (s *AttemptService) Start(studentID, examID uint) (*model.ExamAttempt, error) {
	exam, err := s.Exams.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if !exam.Published {
		return nil, util.ErrExamNotPublished
	}

	enrolled, err := s.Programs.IsEnrolled(studentID, exam.ProgramID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	if ongoing, err := s.Attempts.FindOngoing(examID, studentID); err == nil {
		// Resuming beats erroring: the student probably reloaded the page.
		return ongoing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	used, err := s.Attempts.CountByExamAndStudent(examID, studentID)
	if err != nil {
		return nil, err
	}
	if exam.MaxAttempts > 0 && used >= int64(exam.MaxAttempts) {
		return nil, fmt.Errorf("%w: %d of %d used", util.ErrAttemptLimitReached, used, exam.MaxAttempts)
	}

	number, err := s.Attempts.NextAttemptNumber(examID, studentID)
	if err != nil {
		return nil, err
	}

	attempt := &model.ExamAttempt{
		ExamID:            examID,
		StudentID:         studentID,
		AttemptNumber:     number,
		Status:            model.AttemptOngoing,
		StartTime:         time.Now(),
		DurationMinutes:   exam.DurationMinutes,
		TotalMarks:        exam.TotalMarks,
		PassingPercentage: exam.PassingPercentage,
		NegativeMarking:   exam.NegativeMarking,
		OrderAlgoVersion:  grading.OrderAlgoVersion,
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	logger.Log.Info("exam attempt started",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("examId", examID),
		zap.Uint("studentId", studentID),
		zap.Int("attemptNumber", number))
	return attempt, nil
}

// TakingView assembles the paper for one ongoing attempt: questions in the
// attempt's order, each question's options in the order this student sees
// them, with correct-answer flags stripped by the model's JSON tags.
func (s *AttemptService) TakingView(studentID, attemptID uint) (*TakingView, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Status != model.AttemptOngoing {
		return nil, fmt.Errorf("%w: attempt is %s", util.ErrAttemptNotOngoing, attempt.Status)
	}

	exam, err := s.Exams.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return nil, err
	}

	settings, err := s.Settings.Snapshot()
	if err != nil {
		logger.Log.Warn("settings snapshot failed, using defaults", zap.Error(err))
		settings = model.ExamSettings{}
	}

	questions := grading.QuestionOrder(exam.Questions, studentID, attempt.ID, settings.ShuffleQuestions)
	view := &TakingView{
		Attempt:   attempt,
		ExamTitle: exam.Title,
		Deadline:  attempt.Deadline(),
		Questions: make([]TakingQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		tq := TakingQuestion{
			ID:    q.ID,
			Text:  q.Text,
			Type:  q.Type,
			Marks: q.Marks,
		}
		if q.Type.HasOptions() {
			tq.Options = grading.PresentedOrder(q.Options, studentID, q.ID, attempt.ID, q.RandomizeOptions)
		}
		view.Questions = append(view.Questions, tq)
	}
	return view, nil
}

func (s *AttemptService) ListByStudent(studentID uint, page, limit int) ([]model.ExamAttempt, int64, error) {
	return s.Attempts.ListByStudent(studentID, page, limit)
}
