package model

type ExamAnswer struct {
	BaseModel
	AttemptID  uint `gorm:"not null;uniqueIndex:idx_answer_attempt_question" json:"attemptId"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_answer_attempt_question" json:"questionId"`
	// SelectedOption is the zero-based index into the option order the
	// student was shown, which may differ from the authored order.
	SelectedOption *int `json:"selectedOption,omitempty"`
	// ResolvedOptionID is the option identity the index mapped to at grading
	// time; nil when the question was skipped or the index was unusable.
	ResolvedOptionID *uint   `json:"resolvedOptionId,omitempty"`
	AnswerText       string  `gorm:"type:text" json:"answerText,omitempty"`
	IsCorrect        bool    `gorm:"default:false" json:"isCorrect"`
	MarksObtained    float64 `gorm:"type:decimal(8,2);default:0" json:"marksObtained"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
