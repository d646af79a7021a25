package service

import (
	"errors"
	"fmt"

	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/internal/util"
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	Exams     *repository.ExamRepository
	Questions *repository.QuestionRepository
	Programs  *repository.ProgramRepository
	Hub       *EventHub
}

func NewExamService(exams *repository.ExamRepository, questions *repository.QuestionRepository, programs *repository.ProgramRepository, hub *EventHub) *ExamService {
	return &ExamService{
		Exams:     exams,
		Questions: questions,
		Programs:  programs,
		Hub:       hub,
	}
}

func (s *ExamService) CreateProgram(program *model.Program) error {
	return s.Programs.Create(program)
}

func (s *ExamService) ListPrograms(page, limit int) ([]model.Program, int64, error) {
	return s.Programs.List(page, limit)
}

func (s *ExamService) Enroll(studentID, programID uint) error {
	if _, err := s.Programs.FindByID(programID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgramNotFound
		}
		return err
	}
	enrolled, err := s.Programs.IsEnrolled(studentID, programID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}
	return s.Programs.Enroll(&model.Enrollment{
		StudentID: studentID,
		ProgramID: programID,
		Status:    "active",
	})
}

func (s *ExamService) CreateExam(exam *model.Exam) error {
	if _, err := s.Programs.FindByID(exam.ProgramID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", util.ErrProgramNotFound, exam.ProgramID)
		}
		return err
	}
	return s.Exams.Create(exam)
}

func (s *ExamService) GetExam(id uint) (*model.Exam, error) {
	exam, err := s.Exams.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) ListExams(programID uint, publishedOnly bool) ([]model.Exam, error) {
	return s.Exams.ListByProgram(programID, publishedOnly)
}

func (s *ExamService) UpdateExam(exam *model.Exam) error {
	return s.Exams.Update(exam)
}

// Publish makes an exam visible to students. It refuses to publish an exam
// with no questions, or whose question marks do not add up to the exam's
// declared total.
func (s *ExamService) Publish(id uint) error {
	exam, err := s.Exams.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	if len(exam.Questions) == 0 {
		return fmt.Errorf("exam %d has no questions", id)
	}

	var sum float64
	for _, q := range exam.Questions {
		sum += q.Marks
	}
	if sum != exam.TotalMarks {
		return fmt.Errorf("question marks sum to %.2f, exam declares %.2f", sum, exam.TotalMarks)
	}

	exam.Published = true
	if err := s.Exams.Update(exam); err != nil {
		return err
	}

	logger.Log.Info("exam published", zap.Uint("examId", id), zap.String("title", exam.Title))
	s.Hub.Broadcast(Event{
		Type: EventExamPublished,
		Data: map[string]interface{}{"examId": id, "title": exam.Title},
	})
	return nil
}

// AddQuestion validates and stores a question with its options. Option
// questions must carry at least two options with exactly one marked correct.
func (s *ExamService) AddQuestion(question *model.Question) error {
	if _, err := s.Exams.FindByID(question.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}

	if question.Type.HasOptions() {
		if len(question.Options) < 2 {
			return fmt.Errorf("question needs at least 2 options, got %d", len(question.Options))
		}
		correct := 0
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question needs exactly 1 correct option, got %d", correct)
		}
	} else if len(question.Options) > 0 {
		return fmt.Errorf("%s questions cannot carry options", question.Type)
	}

	if question.Marks <= 0 {
		return fmt.Errorf("question marks must be positive")
	}

	return s.Questions.Create(question)
}

func (s *ExamService) ListQuestions(examID uint) ([]model.Question, error) {
	return s.Questions.ListByExam(examID)
}

func (s *ExamService) DeleteQuestion(id uint) error {
	return s.Questions.Delete(id)
}
