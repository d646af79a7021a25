package model

type Exam struct {
	BaseModel
	ProgramID         uint    `gorm:"not null;index" json:"programId"`
	Title             string  `gorm:"size:200;not null" json:"title"`
	Description       string  `gorm:"type:text" json:"description"`
	DurationMinutes   int     `gorm:"not null" json:"durationMinutes"`
	TotalMarks        float64 `gorm:"not null" json:"totalMarks"`
	PassingPercentage float64 `gorm:"not null;default:40" json:"passingPercentage"`
	// NegativeMarking is the per-wrong-answer deduction for this exam.
	// nil means the default applies; an explicit 0 disables the penalty.
	NegativeMarking *float64   `json:"negativeMarking,omitempty"`
	MaxAttempts     int        `gorm:"default:1" json:"maxAttempts"`
	Published       bool       `gorm:"default:false" json:"published"`
	Questions       []Question `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}
