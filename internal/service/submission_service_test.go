package service

import (
	"testing"

	"github.com/khan-masud/exam-station/internal/grading"
	"github.com/khan-masud/exam-station/internal/model"
)

func intPtr(v int) *int          { return &v }
func uintPtr(v uint) *uint       { return &v }
func ratePtr(v float64) *float64 { return &v }

// Two MCQs and one short-text question, options in authored order. Correct
// options are 102 (q1, index 1) and 202 (q2, index 1).
func fixtureQuestions() []model.Question {
	return []model.Question{
		{
			BaseModel: model.BaseModel{ID: 1},
			Type:      model.QuestionMCQ,
			Marks:     5,
			Sequence:  1,
			Options: []model.QuestionOption{
				{BaseModel: model.BaseModel{ID: 101}, QuestionID: 1, Sequence: 1},
				{BaseModel: model.BaseModel{ID: 102}, QuestionID: 1, Sequence: 2, IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 103}, QuestionID: 1, Sequence: 3},
			},
		},
		{
			BaseModel: model.BaseModel{ID: 2},
			Type:      model.QuestionTrueFalse,
			Marks:     2,
			Sequence:  2,
			Options: []model.QuestionOption{
				{BaseModel: model.BaseModel{ID: 201}, QuestionID: 2, Sequence: 1},
				{BaseModel: model.BaseModel{ID: 202}, QuestionID: 2, Sequence: 2, IsCorrect: true},
			},
		},
		{
			BaseModel: model.BaseModel{ID: 3},
			Type:      model.QuestionShortText,
			Marks:     3,
			Sequence:  3,
		},
	}
}

func fixtureAttempt() *model.ExamAttempt {
	return &model.ExamAttempt{
		BaseModel:         model.BaseModel{ID: 50},
		ExamID:            10,
		StudentID:         7,
		Status:            model.AttemptOngoing,
		TotalMarks:        10,
		PassingPercentage: 50,
	}
}

func TestGradeAttempt_AllCorrect(t *testing.T) {
	graded := gradeAttempt(fixtureQuestions(), fixtureAttempt(), map[uint]SubmittedAnswer{
		1: {SelectedOption: intPtr(1)},
		2: {OptionID: uintPtr(202)},
		3: {AnswerText: "some essay"},
	})

	if len(graded.Answers) != 3 {
		t.Fatalf("expected 3 answer rows, got %d", len(graded.Answers))
	}
	var total float64
	for _, a := range graded.Answers {
		total += a.MarksObtained
	}
	// Free text earns nothing automatically, so 5 + 2 + 0.
	if total != 7 {
		t.Fatalf("expected 7 marks, got %v", total)
	}
	if len(graded.DegradedQuestionIDs) != 0 || len(graded.UnknownQuestionIDs) != 0 {
		t.Fatalf("unexpected degraded/unknown answers: %v / %v",
			graded.DegradedQuestionIDs, graded.UnknownQuestionIDs)
	}
}

func TestGradeAttempt_WrongAnswerDefaultPenalty(t *testing.T) {
	graded := gradeAttempt(fixtureQuestions(), fixtureAttempt(), map[uint]SubmittedAnswer{
		1: {SelectedOption: intPtr(0)},
	})

	if len(graded.Answers) != 1 {
		t.Fatalf("expected 1 answer row, got %d", len(graded.Answers))
	}
	a := graded.Answers[0]
	if a.IsCorrect {
		t.Fatal("wrong answer marked correct")
	}
	if a.MarksObtained != -grading.DefaultNegativeMarking {
		t.Fatalf("expected %v penalty, got %v", -grading.DefaultNegativeMarking, a.MarksObtained)
	}
	if a.ResolvedOptionID == nil || *a.ResolvedOptionID != 101 {
		t.Fatalf("expected resolved option 101, got %v", a.ResolvedOptionID)
	}
}

func TestGradeAttempt_ExplicitZeroRateDisablesPenalty(t *testing.T) {
	attempt := fixtureAttempt()
	attempt.NegativeMarking = ratePtr(0)

	graded := gradeAttempt(fixtureQuestions(), attempt, map[uint]SubmittedAnswer{
		1: {SelectedOption: intPtr(2)},
	})
	if got := graded.Answers[0].MarksObtained; got != 0 {
		t.Fatalf("expected 0 marks with disabled penalty, got %v", got)
	}
}

func TestGradeAttempt_MalformedDegradesToSkip(t *testing.T) {
	// Question 1 gets an out-of-range index, question 2 an unknown option id,
	// and question 77 is not on this exam at all.
	graded := gradeAttempt(fixtureQuestions(), fixtureAttempt(), map[uint]SubmittedAnswer{
		1:  {SelectedOption: intPtr(9)},
		2:  {OptionID: uintPtr(999)},
		77: {SelectedOption: intPtr(0)},
	})

	if len(graded.Answers) != 2 {
		t.Fatalf("expected 2 answer rows, got %d", len(graded.Answers))
	}
	for _, a := range graded.Answers {
		if a.MarksObtained != 0 || a.IsCorrect || a.ResolvedOptionID != nil {
			t.Fatalf("degraded answer should score as skip, got %+v", a)
		}
	}
	if len(graded.DegradedQuestionIDs) != 2 {
		t.Fatalf("expected 2 degraded answers, got %v", graded.DegradedQuestionIDs)
	}
	if len(graded.UnknownQuestionIDs) != 1 || graded.UnknownQuestionIDs[0] != 77 {
		t.Fatalf("expected unknown question 77, got %v", graded.UnknownQuestionIDs)
	}
}

func TestGradeAttempt_IndexGradesAgainstShuffledOrder(t *testing.T) {
	questions := fixtureQuestions()
	questions[0].RandomizeOptions = true
	attempt := fixtureAttempt()

	// Find where the correct option landed in this attempt's order.
	presented := grading.PresentedOrder(questions[0].Options, attempt.StudentID, questions[0].ID, attempt.ID, true)
	correctIdx := -1
	for i, opt := range presented {
		if opt.ID == 102 {
			correctIdx = i
		}
	}
	if correctIdx < 0 {
		t.Fatal("correct option missing from presented order")
	}

	graded := gradeAttempt(questions, attempt, map[uint]SubmittedAnswer{
		1: {SelectedOption: intPtr(correctIdx)},
	})
	a := graded.Answers[0]
	if !a.IsCorrect || a.MarksObtained != 5 {
		t.Fatalf("index into shuffled order should grade correct, got %+v", a)
	}
	if a.ResolvedOptionID == nil || *a.ResolvedOptionID != 102 {
		t.Fatalf("expected resolved option 102, got %v", a.ResolvedOptionID)
	}
}

func TestGradeAttempt_SummaryEndToEnd(t *testing.T) {
	attempt := fixtureAttempt()
	graded := gradeAttempt(fixtureQuestions(), attempt, map[uint]SubmittedAnswer{
		1: {SelectedOption: intPtr(1)}, // correct, +5
		2: {OptionID: uintPtr(201)},    // wrong, -0.25
	})

	summary := grading.Summarize(3, attempt.TotalMarks, attempt.PassingPercentage, graded.Outcomes)
	if summary.ObtainedMarks != 4.75 {
		t.Fatalf("expected 4.75 marks, got %v", summary.ObtainedMarks)
	}
	if summary.CorrectAnswers != 1 || summary.IncorrectAnswers != 1 || summary.Unanswered != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.Status != model.ResultFail {
		t.Fatalf("47.5%% should fail a 50%% threshold, got %s", summary.Status)
	}
}

func TestAnswerValue_OptionIDWinsOverIndex(t *testing.T) {
	q := fixtureQuestions()[0]
	v := answerValue(q, SubmittedAnswer{SelectedOption: intPtr(0), OptionID: uintPtr(102)})
	if v.Kind != grading.AnswerOptionID || v.OptionID != 102 {
		t.Fatalf("expected option-id answer 102, got %+v", v)
	}
}

func TestAnswerValue_TextQuestionIgnoresOptionFields(t *testing.T) {
	q := fixtureQuestions()[2]
	v := answerValue(q, SubmittedAnswer{SelectedOption: intPtr(1), AnswerText: "  "})
	if v.Kind != grading.AnswerEmpty {
		t.Fatalf("blank text should be a skip, got %+v", v)
	}
}
