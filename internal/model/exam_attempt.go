package model

import "time"

type AttemptStatus string

const (
	AttemptOngoing   AttemptStatus = "ongoing"
	AttemptSubmitted AttemptStatus = "submitted"
	AttemptAbandoned AttemptStatus = "abandoned"
	AttemptExpired   AttemptStatus = "expired"
)

type ExamAttempt struct {
	BaseModel
	ExamID        uint          `gorm:"not null;uniqueIndex:idx_attempt_exam_student_no" json:"examId"`
	StudentID     uint          `gorm:"not null;uniqueIndex:idx_attempt_exam_student_no" json:"studentId"`
	AttemptNumber int           `gorm:"not null;uniqueIndex:idx_attempt_exam_student_no" json:"attemptNumber"`
	Status        AttemptStatus `gorm:"type:enum('ongoing','submitted','abandoned','expired');default:'ongoing';index" json:"status"`
	StartTime     time.Time     `gorm:"not null" json:"startTime"`
	// Frozen copies from the exam at start time so later edits to the exam
	// cannot change how an in-flight attempt is graded.
	DurationMinutes   int      `gorm:"not null" json:"durationMinutes"`
	TotalMarks        float64  `gorm:"not null" json:"totalMarks"`
	PassingPercentage float64  `gorm:"not null" json:"passingPercentage"`
	NegativeMarking   *float64 `json:"negativeMarking,omitempty"`
	// OrderAlgoVersion pins the option-ordering algorithm used when the
	// attempt was started, so the same permutation is reconstructed at
	// grading time even if the algorithm evolves.
	OrderAlgoVersion int        `gorm:"not null;default:1" json:"orderAlgoVersion"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// Deadline is the wall-clock moment after which the attempt is overdue.
func (a *ExamAttempt) Deadline() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
