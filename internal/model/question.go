package model

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "true_false"
	QuestionShortText QuestionType = "short_text"
)

// HasOptions reports whether the question type is graded against an option set.
func (t QuestionType) HasOptions() bool {
	return t == QuestionMCQ || t == QuestionTrueFalse
}

type Question struct {
	BaseModel
	ExamID           uint             `gorm:"not null;index" json:"examId"`
	Text             string           `gorm:"type:text;not null" json:"text"`
	Type             QuestionType     `gorm:"type:enum('mcq','true_false','short_text');default:'mcq'" json:"type"`
	Marks            float64          `gorm:"not null;default:1" json:"marks"`
	Sequence         int              `gorm:"not null;default:0" json:"sequence"`
	RandomizeOptions bool             `gorm:"default:false" json:"randomizeOptions"`
	Options          []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Sequence   int    `gorm:"not null;default:0" json:"sequence"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
