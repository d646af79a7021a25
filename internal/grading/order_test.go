package grading

import (
	"testing"

	"github.com/khan-masud/exam-station/internal/model"
)

func makeOptions() []model.QuestionOption {
	return []model.QuestionOption{
		{BaseModel: model.BaseModel{ID: 11}, Sequence: 2},
		{BaseModel: model.BaseModel{ID: 12}, Sequence: 1},
		{BaseModel: model.BaseModel{ID: 13}, Sequence: 3},
		{BaseModel: model.BaseModel{ID: 14}, Sequence: 1},
	}
}

func ids(options []model.QuestionOption) []uint {
	out := make([]uint, len(options))
	for i, o := range options {
		out[i] = o.ID
	}
	return out
}

func TestBaseOrder_SequenceThenID(t *testing.T) {
	got := ids(BaseOrder(makeOptions()))
	want := []uint{12, 14, 11, 13}
	if len(got) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected option %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPresentedOrder_NoShuffleIsBaseOrder(t *testing.T) {
	got := ids(PresentedOrder(makeOptions(), 7, 3, 99, false))
	want := ids(BaseOrder(makeOptions()))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected option %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPresentedOrder_Deterministic(t *testing.T) {
	first := ids(PresentedOrder(makeOptions(), 7, 3, 99, true))
	second := ids(PresentedOrder(makeOptions(), 7, 3, 99, true))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs between identical calls: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestPresentedOrder_IsPermutation(t *testing.T) {
	got := PresentedOrder(makeOptions(), 42, 8, 1234, true)
	if len(got) != 4 {
		t.Fatalf("expected 4 options, got %d", len(got))
	}
	seen := make(map[uint]bool, len(got))
	for _, o := range got {
		seen[o.ID] = true
	}
	for _, id := range []uint{11, 12, 13, 14} {
		if !seen[id] {
			t.Fatalf("option %d missing from shuffled order", id)
		}
	}
}

func TestPresentedOrder_DoesNotMutateInput(t *testing.T) {
	input := makeOptions()
	PresentedOrder(input, 7, 3, 99, true)
	orig := makeOptions()
	for i := range orig {
		if input[i].ID != orig[i].ID {
			t.Fatalf("input slice mutated at position %d", i)
		}
	}
}

func TestPresentedOrder_SingleOption(t *testing.T) {
	single := []model.QuestionOption{{BaseModel: model.BaseModel{ID: 5}, Sequence: 1}}
	got := PresentedOrder(single, 1, 1, 1, true)
	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("expected the lone option back, got %v", ids(got))
	}
}

func makeQuestions() []model.Question {
	return []model.Question{
		{BaseModel: model.BaseModel{ID: 21}, Sequence: 2},
		{BaseModel: model.BaseModel{ID: 22}, Sequence: 1},
		{BaseModel: model.BaseModel{ID: 23}, Sequence: 3},
	}
}

func questionIDs(questions []model.Question) []uint {
	out := make([]uint, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}

func TestQuestionOrder_NoShuffleIsAuthoredOrder(t *testing.T) {
	got := questionIDs(QuestionOrder(makeQuestions(), 7, 99, false))
	want := []uint{22, 21, 23}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected question %d, got %d", i, want[i], got[i])
		}
	}
}

func TestQuestionOrder_DeterministicPermutation(t *testing.T) {
	first := questionIDs(QuestionOrder(makeQuestions(), 7, 99, true))
	second := questionIDs(QuestionOrder(makeQuestions(), 7, 99, true))
	if len(first) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(first))
	}
	seen := make(map[uint]bool, len(first))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs between identical calls: %d vs %d", i, first[i], second[i])
		}
		seen[first[i]] = true
	}
	for _, id := range []uint{21, 22, 23} {
		if !seen[id] {
			t.Fatalf("question %d missing from shuffled order", id)
		}
	}
}
