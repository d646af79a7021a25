package repository

import (
	"github.com/khan-masud/exam-station/internal/model"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(program *model.Program) error {
	return r.DB.Create(program).Error
}

func (r *ProgramRepository) FindByID(id uint) (*model.Program, error) {
	var p model.Program
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ProgramRepository) List(page, limit int) ([]model.Program, int64, error) {
	var programs []model.Program
	var total int64
	query := r.DB.Model(&model.Program{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&programs).Error
	return programs, total, err
}

func (r *ProgramRepository) Enroll(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *ProgramRepository) IsEnrolled(studentID, programID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND program_id = ? AND status = 'active'", studentID, programID).
		Count(&count).Error
	return count > 0, err
}
