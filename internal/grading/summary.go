package grading

import "github.com/khan-masud/exam-station/internal/model"

// Summary aggregates graded answers into the figures persisted on the
// exam result row.
type Summary struct {
	ObtainedMarks    float64
	Percentage       float64
	Grade            string
	Status           model.ResultStatus
	CorrectAnswers   int
	IncorrectAnswers int
	Unanswered       int
	DegradedAnswers  int
}

// Summarize folds per-answer outcomes into a result summary. Unanswered is
// derived from the exam's authoritative question count, not from how many
// answers the student happened to submit.
func Summarize(totalQuestions int, totalMarks, passingPercentage float64, outcomes []GradeOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.ObtainedMarks += o.MarksObtained
		if o.Degraded {
			s.DegradedAnswers++
		}
		switch {
		case o.Answered && o.IsCorrect:
			s.CorrectAnswers++
		case o.Answered:
			s.IncorrectAnswers++
		}
	}

	s.Unanswered = totalQuestions - s.CorrectAnswers - s.IncorrectAnswers
	if s.Unanswered < 0 {
		s.Unanswered = 0
	}

	s.Percentage = Percentage(s.ObtainedMarks, totalMarks)
	s.Grade = GradeFor(s.Percentage)
	s.Status = PassStatus(s.Percentage, passingPercentage)
	return s
}

// Percentage is zero when the exam carries no marks at all.
func Percentage(obtained, total float64) float64 {
	if total == 0 {
		return 0
	}
	return obtained / total * 100
}

// PassStatus treats the passing threshold as inclusive: landing exactly on
// it is a pass.
func PassStatus(percentage, passingPercentage float64) model.ResultStatus {
	if percentage >= passingPercentage {
		return model.ResultPass
	}
	return model.ResultFail
}

// GradeFor maps a percentage to a letter grade on fixed breakpoints.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}
