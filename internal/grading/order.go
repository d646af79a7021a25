package grading

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/khan-masud/exam-station/internal/model"
)

// OrderAlgoVersion identifies the option-ordering algorithm. The permutation
// produced for a live attempt must be reproducible bit-for-bit at grading
// time, so the v1 seed derivation and shuffle below are frozen; any change
// must ship as a new version and only apply to attempts started under it.
const OrderAlgoVersion = 1

// BaseOrder returns the options in their stable authored order: by sequence,
// then by id. Sequence alone is not guaranteed unique, so the id tiebreak is
// required for the order to be deterministic. The input is not mutated.
func BaseOrder(options []model.QuestionOption) []model.QuestionOption {
	out := make([]model.QuestionOption, len(options))
	copy(out, options)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PresentedOrder returns the option order a given student saw for a given
// question on a given attempt. With shuffle off it is the base order. With
// shuffle on it is a permutation derived purely from
// (studentID, questionID, attemptID), so the exam-taking and grading sides
// reconstruct the identical order without persisting it. The input is not
// mutated.
func PresentedOrder(options []model.QuestionOption, studentID, questionID, attemptID uint, shuffle bool) []model.QuestionOption {
	out := BaseOrder(options)
	if !shuffle || len(out) < 2 {
		return out
	}

	r := rand.New(rand.NewSource(orderSeed(studentID, questionID, attemptID)))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func orderSeed(studentID, questionID, attemptID uint) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%d", studentID, questionID, attemptID)
	return int64(h.Sum64())
}

// QuestionOrder returns the question order for one attempt. With shuffle off
// it is the authored order (sequence, then id). With shuffle on the
// permutation derives purely from (studentID, attemptID), so a student who
// reloads mid-attempt sees the same paper. The input is not mutated.
func QuestionOrder(questions []model.Question, studentID, attemptID uint, shuffle bool) []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].ID < out[j].ID
	})
	if !shuffle || len(out) < 2 {
		return out
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "q:%d:%d", studentID, attemptID)
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
