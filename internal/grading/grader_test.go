package grading

import (
	"testing"

	"github.com/khan-masud/exam-station/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

// Presented order: option 21 (correct), 22, 23.
func presented() []model.QuestionOption {
	return []model.QuestionOption{
		{BaseModel: model.BaseModel{ID: 21}, Sequence: 1, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 22}, Sequence: 2},
		{BaseModel: model.BaseModel{ID: 23}, Sequence: 3},
	}
}

func TestNegativeRate(t *testing.T) {
	tests := []struct {
		name     string
		override *float64
		want     float64
	}{
		{name: "nil uses default", override: nil, want: 0.25},
		{name: "explicit zero stays zero", override: floatPtr(0), want: 0},
		{name: "explicit half", override: floatPtr(0.5), want: 0.5},
		{name: "negative clamps to zero", override: floatPtr(-1), want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NegativeRate(tc.override); got != tc.want {
				t.Fatalf("expected rate=%v, got=%v", tc.want, got)
			}
		})
	}
}

func TestGrade(t *testing.T) {
	question := model.Question{BaseModel: model.BaseModel{ID: 3}, Type: model.QuestionMCQ, Marks: 5}

	tests := []struct {
		name       string
		answer     AnswerValue
		rate       float64
		answered   bool
		degraded   bool
		isCorrect  bool
		marks      float64
		resolvedID *uint
	}{
		{name: "correct by index", answer: IndexAnswer(0), rate: 0.25, answered: true, isCorrect: true, marks: 5, resolvedID: uintPtr(21)},
		{name: "wrong by index", answer: IndexAnswer(1), rate: 0.25, answered: true, marks: -0.25, resolvedID: uintPtr(22)},
		{name: "wrong with zero rate", answer: IndexAnswer(2), rate: 0, answered: true, marks: 0, resolvedID: uintPtr(23)},
		{name: "skipped", answer: EmptyAnswer(), rate: 0.25},
		{name: "index below range degrades", answer: IndexAnswer(-1), rate: 0.25, degraded: true},
		{name: "index above range degrades", answer: IndexAnswer(3), rate: 0.25, degraded: true},
		{name: "correct by option id", answer: OptionIDAnswer(21), rate: 0.25, answered: true, isCorrect: true, marks: 5, resolvedID: uintPtr(21)},
		{name: "wrong by option id", answer: OptionIDAnswer(23), rate: 0.25, answered: true, marks: -0.25, resolvedID: uintPtr(23)},
		{name: "unknown option id degrades", answer: OptionIDAnswer(999), rate: 0.25, degraded: true},
		{name: "free text answered without penalty", answer: TextAnswer("photosynthesis"), rate: 0.25, answered: true},
		{name: "blank text is a skip", answer: TextAnswer("   "), rate: 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(GradeInput{
				Question:        question,
				Presented:       presented(),
				Answer:          tc.answer,
				NegativeMarking: tc.rate,
			})
			if got.Answered != tc.answered {
				t.Fatalf("expected answered=%v, got=%v", tc.answered, got.Answered)
			}
			if got.Degraded != tc.degraded {
				t.Fatalf("expected degraded=%v, got=%v", tc.degraded, got.Degraded)
			}
			if got.IsCorrect != tc.isCorrect {
				t.Fatalf("expected isCorrect=%v, got=%v", tc.isCorrect, got.IsCorrect)
			}
			if got.MarksObtained != tc.marks {
				t.Fatalf("expected marks=%v, got=%v", tc.marks, got.MarksObtained)
			}
			if tc.resolvedID == nil {
				if got.ResolvedOptionID != nil {
					t.Fatalf("expected no resolved option, got=%d", *got.ResolvedOptionID)
				}
				return
			}
			if got.ResolvedOptionID == nil {
				t.Fatalf("expected resolved option %d, got nil", *tc.resolvedID)
			}
			if *got.ResolvedOptionID != *tc.resolvedID {
				t.Fatalf("expected resolved option %d, got %d", *tc.resolvedID, *got.ResolvedOptionID)
			}
		})
	}
}

// Grading must resolve the selected index against the shuffled order the
// student saw, not the authored order.
func TestGrade_IndexResolvesAgainstPresentedOrder(t *testing.T) {
	options := []model.QuestionOption{
		{BaseModel: model.BaseModel{ID: 31}, Sequence: 1},
		{BaseModel: model.BaseModel{ID: 32}, Sequence: 2, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 33}, Sequence: 3},
		{BaseModel: model.BaseModel{ID: 34}, Sequence: 4},
	}
	shuffled := PresentedOrder(options, 7, 3, 99, true)

	correctIdx := -1
	for i, o := range shuffled {
		if o.ID == 32 {
			correctIdx = i
		}
	}
	if correctIdx < 0 {
		t.Fatal("correct option missing from shuffled order")
	}

	got := Grade(GradeInput{
		Question:        model.Question{Marks: 2},
		Presented:       shuffled,
		Answer:          IndexAnswer(correctIdx),
		NegativeMarking: 0.25,
	})
	if !got.IsCorrect || got.MarksObtained != 2 {
		t.Fatalf("expected full marks via shuffled index, got correct=%v marks=%v", got.IsCorrect, got.MarksObtained)
	}
}

func uintPtr(v uint) *uint { return &v }
