package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khan-masud/exam-station/internal/grading"
	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/internal/util"
	"github.com/khan-masud/exam-station/pkg/logger"
	"github.com/khan-masud/exam-station/pkg/monitoring"
	"github.com/khan-masud/exam-station/pkg/tracing"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmittedAnswer is one answer as it arrives from the client. Exactly one of
// SelectedOption (an index into the order the student was shown) or OptionID
// should be set for option questions; AnswerText carries free-text responses.
type SubmittedAnswer struct {
	SelectedOption *int   `json:"selectedOption,omitempty"`
	OptionID       *uint  `json:"optionId,omitempty"`
	AnswerText     string `json:"answerText,omitempty"`
}

type SubmitRequest struct {
	AttemptID        uint                     `json:"attemptId" binding:"required"`
	Answers          map[uint]SubmittedAnswer `json:"answers"`
	TimeSpentSeconds int                      `json:"timeSpentSeconds"`
}

type SubmitResponse struct {
	ResultID         uint              `json:"resultId"`
	AlreadySubmitted bool              `json:"alreadySubmitted"`
	ShowResults      bool              `json:"showResults"`
	Result           *model.ExamResult `json:"result,omitempty"`
}

// errConcurrentSubmit aborts the transaction when another request flipped the
// attempt's status between our read and our guarded update.
var errConcurrentSubmit = errors.New("attempt submitted concurrently")

type SubmissionService struct {
	DB            *gorm.DB
	Attempts      *repository.AttemptRepository
	Exams         *repository.ExamRepository
	Results       *repository.ResultRepository
	Settings      *SettingsService
	Notifications *NotificationService
	Leaderboard   *LeaderboardService
	Hub           *EventHub
}

func NewSubmissionService(db *gorm.DB, attempts *repository.AttemptRepository, exams *repository.ExamRepository, results *repository.ResultRepository, settings *SettingsService, notifications *NotificationService, leaderboard *LeaderboardService, hub *EventHub) *SubmissionService {
	return &SubmissionService{
		DB:            db,
		Attempts:      attempts,
		Exams:         exams,
		Results:       results,
		Settings:      settings,
		Notifications: notifications,
		Leaderboard:   leaderboard,
		Hub:           hub,
	}
}

// Submit grades and finalizes one exam attempt. The operation is idempotent:
// resubmitting an already-submitted attempt returns the stored result instead
// of re-grading, and two racing submissions resolve to a single result row.
func (s *SubmissionService) Submit(ctx context.Context, studentID uint, req SubmitRequest) (*SubmitResponse, error) {
	ctx, span := tracing.Tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	attempt, err := s.Attempts.FindByID(req.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	// Ownership failures look identical to a missing attempt so a student
	// cannot probe other students' attempt ids.
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}

	if attempt.Status == model.AttemptSubmitted {
		monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
		return s.existingResultResponse(attempt)
	}
	if attempt.Status != model.AttemptOngoing {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: attempt is %s", util.ErrAttemptNotOngoing, attempt.Status)
	}

	exam, err := s.Exams.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if now.After(attempt.Deadline()) {
		// Late submissions are accepted as-is; enforcement of the time limit
		// is the client's job, the server only records the overage.
		logger.Log.Info("late submission accepted",
			zap.Uint("attemptId", attempt.ID),
			zap.Uint("studentId", studentID),
			zap.Duration("overBy", now.Sub(attempt.Deadline())))
	}

	graded := gradeAttempt(exam.Questions, attempt, req.Answers)
	for _, qid := range graded.UnknownQuestionIDs {
		logger.Log.Warn("answer for unknown question ignored",
			zap.Uint("attemptId", attempt.ID),
			zap.Uint("questionId", qid))
		monitoring.MalformedAnswerCounter.Inc()
	}
	for _, d := range graded.DegradedQuestionIDs {
		logger.Log.Warn("malformed answer degraded to skip",
			zap.Uint("attemptId", attempt.ID),
			zap.Uint("questionId", d))
		monitoring.MalformedAnswerCounter.Inc()
	}

	summary := grading.Summarize(len(exam.Questions), attempt.TotalMarks, attempt.PassingPercentage, graded.Outcomes)

	result := &model.ExamResult{
		AttemptID:              attempt.ID,
		ExamID:                 exam.ID,
		StudentID:              studentID,
		TotalMarks:             attempt.TotalMarks,
		ObtainedMarks:          summary.ObtainedMarks,
		Percentage:             summary.Percentage,
		Grade:                  summary.Grade,
		CorrectAnswers:         summary.CorrectAnswers,
		IncorrectAnswers:       summary.IncorrectAnswers,
		Unanswered:             summary.Unanswered,
		Status:                 summary.Status,
		NegativeMarkingApplied: grading.NegativeRate(attempt.NegativeMarking),
		ResultDate:             now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range graded.Answers {
			graded.Answers[i].AttemptID = attempt.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"selected_option", "resolved_option_id", "answer_text", "is_correct", "marks_obtained",
				}),
			}).Create(&graded.Answers[i]).Error; err != nil {
				return err
			}
		}

		// Guarded status flip: if another submission won the race, zero rows
		// change and the whole transaction rolls back.
		flip := tx.Model(&model.ExamAttempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptOngoing).
			Updates(map[string]interface{}{
				"status":             model.AttemptSubmitted,
				"submitted_at":       now,
				"time_spent_seconds": req.TimeSpentSeconds,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return errConcurrentSubmit
		}

		return tx.Create(result).Error
	})
	if err != nil {
		// The unique index on exam_results.attempt_id and the guarded flip
		// both surface a concurrent winner here; hand back its result.
		refetched, rerr := s.Attempts.FindByID(attempt.ID)
		if rerr == nil && refetched.Status == model.AttemptSubmitted {
			monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
			return s.existingResultResponse(refetched)
		}
		monitoring.SubmissionCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("submitted").Inc()
	logger.Log.Info("exam attempt submitted",
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("examId", exam.ID),
		zap.Uint("studentId", studentID),
		zap.Float64("obtainedMarks", summary.ObtainedMarks),
		zap.String("status", string(summary.Status)))

	settings, serr := s.Settings.Snapshot()
	if serr != nil {
		logger.Log.Warn("settings snapshot failed, using defaults", zap.Error(serr))
		settings = model.ExamSettings{ShowResultsImmediately: true}
	}

	go s.afterSubmit(exam, studentID, result, settings.ShowResultsImmediately)

	resp := &SubmitResponse{
		ResultID:    result.ID,
		ShowResults: settings.ShowResultsImmediately,
	}
	if settings.ShowResultsImmediately {
		resp.Result = result
	}
	return resp, nil
}

// afterSubmit runs the post-commit side effects. None of them can undo the
// submission, so each is isolated and merely logged on failure.
func (s *SubmissionService) afterSubmit(exam *model.Exam, studentID uint, result *model.ExamResult, showResults bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runEffect("notify_submission", func() error {
		s.Notifications.NotifySubmission(ctx, studentID, exam.Title, result, showResults)
		return nil
	})

	runEffect("push_event", func() error {
		s.Hub.PushToUsers([]uint{studentID}, Event{
			Type: EventExamSubmitted,
			Data: map[string]interface{}{
				"examId":    exam.ID,
				"attemptId": result.AttemptID,
				"resultId":  result.ID,
			},
		})
		return nil
	})

	runEffect("recompute_leaderboard", func() error {
		if err := s.Leaderboard.Recompute(ctx, exam.ID); err != nil {
			return err
		}
		s.Hub.Broadcast(Event{
			Type: EventLeaderboardUpdated,
			Data: map[string]interface{}{"examId": exam.ID},
		})
		return nil
	})
}

func (s *SubmissionService) existingResultResponse(attempt *model.ExamAttempt) (*SubmitResponse, error) {
	result, err := s.Results.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, err
	}

	settings, serr := s.Settings.Snapshot()
	if serr != nil {
		logger.Log.Warn("settings snapshot failed, using defaults", zap.Error(serr))
		settings = model.ExamSettings{ShowResultsImmediately: true}
	}

	resp := &SubmitResponse{
		ResultID:         result.ID,
		AlreadySubmitted: true,
		ShowResults:      settings.ShowResultsImmediately,
	}
	if settings.ShowResultsImmediately {
		resp.Result = result
	}
	return resp, nil
}

// gradedAttempt carries everything gradeAttempt derives from the raw payload.
type gradedAttempt struct {
	Answers             []model.ExamAnswer
	Outcomes            []grading.GradeOutcome
	DegradedQuestionIDs []uint
	UnknownQuestionIDs  []uint
}

// gradeAttempt scores a submission against the exam's questions. It is pure:
// no database access, no clock, no logging. The option order each answer is
// resolved against is reconstructed deterministically from the attempt
// identity, exactly as it was when the student took the exam.
func gradeAttempt(questions []model.Question, attempt *model.ExamAttempt, submitted map[uint]SubmittedAnswer) gradedAttempt {
	rate := grading.NegativeRate(attempt.NegativeMarking)
	known := make(map[uint]bool, len(questions))

	var out gradedAttempt
	for _, q := range questions {
		known[q.ID] = true
		raw, ok := submitted[q.ID]
		if !ok {
			continue
		}

		presented := grading.PresentedOrder(q.Options, attempt.StudentID, q.ID, attempt.ID, q.RandomizeOptions)
		outcome := grading.Grade(grading.GradeInput{
			Question:        q,
			Presented:       presented,
			Answer:          answerValue(q, raw),
			NegativeMarking: rate,
		})

		if outcome.Degraded {
			out.DegradedQuestionIDs = append(out.DegradedQuestionIDs, q.ID)
		}
		out.Outcomes = append(out.Outcomes, outcome)
		out.Answers = append(out.Answers, model.ExamAnswer{
			AttemptID:        attempt.ID,
			QuestionID:       q.ID,
			SelectedOption:   raw.SelectedOption,
			ResolvedOptionID: outcome.ResolvedOptionID,
			AnswerText:       raw.AnswerText,
			IsCorrect:        outcome.IsCorrect,
			MarksObtained:    outcome.MarksObtained,
		})
	}

	for qid := range submitted {
		if !known[qid] {
			out.UnknownQuestionIDs = append(out.UnknownQuestionIDs, qid)
		}
	}
	return out
}

// answerValue maps the wire payload to a typed answer. OptionID wins over an
// index when a client sends both; option questions ignore stray text.
func answerValue(q model.Question, raw SubmittedAnswer) grading.AnswerValue {
	if q.Type.HasOptions() {
		if raw.OptionID != nil {
			return grading.OptionIDAnswer(*raw.OptionID)
		}
		if raw.SelectedOption != nil {
			return grading.IndexAnswer(*raw.SelectedOption)
		}
		return grading.EmptyAnswer()
	}
	return grading.TextAnswer(raw.AnswerText)
}
