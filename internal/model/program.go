package model

type Program struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Published   bool   `gorm:"default:false" json:"published"`
	Exams       []Exam `gorm:"foreignKey:ProgramID" json:"exams,omitempty"`
}

func (Program) TableName() string {
	return "programs"
}

type Enrollment struct {
	BaseModel
	StudentID uint   `gorm:"not null;uniqueIndex:idx_enrollment_student_program" json:"studentId"`
	ProgramID uint   `gorm:"not null;uniqueIndex:idx_enrollment_student_program" json:"programId"`
	Status    string `gorm:"size:20;default:'active'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
