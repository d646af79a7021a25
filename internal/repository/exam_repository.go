package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Questions.Options").Preload("Questions").First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) ListByProgram(programID uint, publishedOnly bool) ([]model.Exam, error) {
	var exams []model.Exam
	query := r.DB.Where("program_id = ?", programID)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Order("created_at asc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) CountQuestions(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
