package grading

import (
	"math"
	"testing"

	"github.com/khan-masud/exam-station/internal/model"
)

func TestGradeFor_Breakpoints(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{70, "B+"},
		{60, "B"},
		{50, "C"},
		{40, "D"},
		{39.999, "F"},
		{0, "F"},
		{-2.5, "F"},
	}

	for _, tc := range tests {
		if got := GradeFor(tc.percentage); got != tc.want {
			t.Fatalf("percentage %v: expected grade %s, got %s", tc.percentage, tc.want, got)
		}
	}
}

func TestPassStatus_InclusiveThreshold(t *testing.T) {
	if got := PassStatus(50, 50); got != model.ResultPass {
		t.Fatalf("exactly at threshold must pass, got %s", got)
	}
	if got := PassStatus(49.99, 50); got != model.ResultFail {
		t.Fatalf("below threshold must fail, got %s", got)
	}
}

func TestPercentage_ZeroTotalMarks(t *testing.T) {
	if got := Percentage(5, 0); got != 0 {
		t.Fatalf("zero total marks must yield 0%%, got %v", got)
	}
}

// Two questions worth 5 each, default negative marking, passing 50%.
// Q1 correct, Q2 wrong: 5 - 0.25 = 4.75 of 10 -> 47.5%, fail, F.
func TestSummarize_CorrectPlusWrong(t *testing.T) {
	outcomes := []GradeOutcome{
		{Answered: true, IsCorrect: true, MarksObtained: 5},
		{Answered: true, MarksObtained: -0.25},
	}

	s := Summarize(2, 10, 50, outcomes)

	if math.Abs(s.ObtainedMarks-4.75) > 1e-9 {
		t.Fatalf("expected obtained=4.75, got %v", s.ObtainedMarks)
	}
	if math.Abs(s.Percentage-47.5) > 1e-9 {
		t.Fatalf("expected percentage=47.5, got %v", s.Percentage)
	}
	if s.Status != model.ResultFail {
		t.Fatalf("expected fail, got %s", s.Status)
	}
	if s.Grade != "F" {
		t.Fatalf("expected grade F, got %s", s.Grade)
	}
	if s.CorrectAnswers != 1 || s.IncorrectAnswers != 1 || s.Unanswered != 0 {
		t.Fatalf("expected counts 1/1/0, got %d/%d/%d", s.CorrectAnswers, s.IncorrectAnswers, s.Unanswered)
	}
}

// Same exam, Q1 correct and Q2 skipped: 5 of 10 -> exactly 50%, which is an
// inclusive pass, with the skip counted as unanswered and unpenalized.
func TestSummarize_CorrectPlusSkip(t *testing.T) {
	outcomes := []GradeOutcome{
		{Answered: true, IsCorrect: true, MarksObtained: 5},
		{},
	}

	s := Summarize(2, 10, 50, outcomes)

	if s.ObtainedMarks != 5 {
		t.Fatalf("expected obtained=5, got %v", s.ObtainedMarks)
	}
	if s.Percentage != 50 {
		t.Fatalf("expected percentage=50, got %v", s.Percentage)
	}
	if s.Status != model.ResultPass {
		t.Fatalf("expected pass on inclusive boundary, got %s", s.Status)
	}
	if s.IncorrectAnswers != 0 || s.Unanswered != 1 {
		t.Fatalf("expected incorrect=0 unanswered=1, got %d/%d", s.IncorrectAnswers, s.Unanswered)
	}
}

// Unanswered is derived from the exam's question count: questions the
// student never submitted an answer row for still count.
func TestSummarize_UnansweredFromQuestionCount(t *testing.T) {
	outcomes := []GradeOutcome{
		{Answered: true, IsCorrect: true, MarksObtained: 1},
		{Answered: true, MarksObtained: -0.25},
	}

	s := Summarize(5, 5, 40, outcomes)

	if s.Unanswered != 3 {
		t.Fatalf("expected 3 unanswered out of 5 questions, got %d", s.Unanswered)
	}
}

// Conservation: the summary's obtained marks equal the sum over outcomes.
func TestSummarize_MarksConservation(t *testing.T) {
	outcomes := []GradeOutcome{
		{Answered: true, IsCorrect: true, MarksObtained: 3},
		{Answered: true, MarksObtained: -0.5},
		{Answered: true, IsCorrect: true, MarksObtained: 2},
		{},
		{Degraded: true},
	}

	var sum float64
	for _, o := range outcomes {
		sum += o.MarksObtained
	}

	s := Summarize(5, 10, 40, outcomes)
	if math.Abs(s.ObtainedMarks-sum) > 1e-9 {
		t.Fatalf("obtained marks %v diverge from answer sum %v", s.ObtainedMarks, sum)
	}
	if s.DegradedAnswers != 1 {
		t.Fatalf("expected 1 degraded answer, got %d", s.DegradedAnswers)
	}
	// Degraded answers score like skips and count as unanswered.
	if s.Unanswered != 2 {
		t.Fatalf("expected 2 unanswered, got %d", s.Unanswered)
	}
}
