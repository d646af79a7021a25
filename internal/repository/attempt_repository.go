package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AttemptRepository) FindOngoing(examID, studentID uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	err := r.DB.Where("exam_id = ? AND student_id = ? AND status = ?", examID, studentID, model.AttemptOngoing).
		First(&a).Error
	return &a, err
}

func (r *AttemptRepository) CountByExamAndStudent(examID, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) NextAttemptNumber(examID, studentID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Select("COALESCE(MAX(attempt_number), 0)").Scan(&max).Error
	return max + 1, err
}

func (r *AttemptRepository) ListByStudent(studentID uint, page, limit int) ([]model.ExamAttempt, int64, error) {
	var attempts []model.ExamAttempt
	var total int64
	query := r.DB.Model(&model.ExamAttempt{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}
