package service

import (
	"context"
	"fmt"

	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
)

type NotificationService struct {
	Repo     *repository.NotificationRepository
	UserRepo *repository.UserRepository
	Email    EmailSender
	SMS      SMSSender
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, email EmailSender, sms SMSSender) *NotificationService {
	return &NotificationService{
		Repo:     repo,
		UserRepo: userRepo,
		Email:    email,
		SMS:      sms,
	}
}

// NotifySubmission fans a submitted-exam notice out to every channel. Each
// channel fails independently; none of them can fail the submission that
// triggered them.
func (s *NotificationService) NotifySubmission(ctx context.Context, studentID uint, examTitle string, result *model.ExamResult, resultsVisible bool) {
	title := "Exam submitted"
	message := fmt.Sprintf("Your submission for %q has been received.", examTitle)
	if resultsVisible {
		message = fmt.Sprintf("You scored %.2f (%.1f%%, grade %s) on %q.",
			result.ObtainedMarks, result.Percentage, result.Grade, examTitle)
	}

	if err := s.Repo.Create(&model.Notification{
		UserID:  studentID,
		Type:    "exam_result",
		Title:   title,
		Message: message,
	}); err != nil {
		logger.Log.Error("failed to store notification", zap.Error(err), zap.Uint("studentId", studentID))
	}

	user, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		logger.Log.Error("failed to load user for notification", zap.Error(err), zap.Uint("studentId", studentID))
		return
	}

	if err := s.Email.Send(ctx, user.Email, title, message); err != nil {
		logger.Log.Warn("email notification failed", zap.Error(err), zap.Uint("studentId", studentID))
	}

	if user.Phone != "" {
		if err := s.SMS.Send(ctx, user.Phone, message); err != nil {
			logger.Log.Warn("sms notification failed", zap.Error(err), zap.Uint("studentId", studentID))
		}
	}
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.Repo.MarkRead(userID, id)
}
