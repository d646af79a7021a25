package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) ListByAttempt(attemptID uint) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("question_id asc").Find(&answers).Error
	return answers, err
}
