package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create persists the question together with its options in one transaction.
func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

func (r *QuestionRepository) FindByIDWithOptions(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options").First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByExam(examID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Options").Where("exam_id = ?", examID).
		Order("sequence asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
