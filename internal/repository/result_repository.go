package repository

import (
	"time"

	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) FindByAttemptID(attemptID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("attempt_id = ?", attemptID).First(&result).Error
	return &result, err
}

func (r *ResultRepository) FindByID(id uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.First(&result, id).Error
	return &result, err
}

func (r *ResultRepository) ListByExam(examID uint, page, limit int) ([]model.ExamResult, int64, error) {
	var results []model.ExamResult
	var total int64
	query := r.DB.Model(&model.ExamResult{}).Where("exam_id = ?", examID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("obtained_marks desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("student_id = ?", studentID).Order("result_date desc").Find(&results).Error
	return results, err
}

// StudentScore is one aggregated leaderboard row.
type StudentScore struct {
	StudentID  uint
	TotalScore float64
}

// AggregateScores sums obtained marks per student for one exam's results
// dated at or after the window start. A zero time means all-time.
func (r *ResultRepository) AggregateScores(examID uint, since time.Time) ([]StudentScore, error) {
	var scores []StudentScore
	query := r.DB.Model(&model.ExamResult{}).
		Select("student_id, SUM(obtained_marks) AS total_score").
		Where("exam_id = ?", examID)
	if !since.IsZero() {
		query = query.Where("result_date >= ?", since)
	}
	err := query.Group("student_id").Order("total_score desc").Scan(&scores).Error
	return scores, err
}
