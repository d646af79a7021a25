package model

import "time"

type ResultStatus string

const (
	ResultPass ResultStatus = "pass"
	ResultFail ResultStatus = "fail"
)

type ExamResult struct {
	BaseModel
	// AttemptID is unique: the database constraint is the last line of
	// defense against two concurrent submissions of the same attempt.
	AttemptID              uint         `gorm:"not null;uniqueIndex" json:"attemptId"`
	ExamID                 uint         `gorm:"not null;index" json:"examId"`
	StudentID              uint         `gorm:"not null;index" json:"studentId"`
	TotalMarks             float64      `gorm:"not null" json:"totalMarks"`
	ObtainedMarks          float64      `gorm:"type:decimal(8,2);not null" json:"obtainedMarks"`
	Percentage             float64      `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Grade                  string       `gorm:"size:3;not null" json:"grade"`
	CorrectAnswers         int          `gorm:"not null" json:"correctAnswers"`
	IncorrectAnswers       int          `gorm:"not null" json:"incorrectAnswers"`
	Unanswered             int          `gorm:"not null" json:"unanswered"`
	Status                 ResultStatus `gorm:"type:enum('pass','fail');not null" json:"status"`
	NegativeMarkingApplied float64      `gorm:"type:decimal(5,2);default:0" json:"negativeMarkingApplied"`
	ResultDate             time.Time    `gorm:"not null" json:"resultDate"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
