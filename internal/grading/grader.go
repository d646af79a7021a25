package grading

import "github.com/khan-masud/exam-station/internal/model"

// DefaultNegativeMarking is deducted per wrong answered option-question when
// neither the attempt nor the exam carries an explicit rate.
const DefaultNegativeMarking = 0.25

// NegativeRate resolves the effective deduction rate. An explicit zero is a
// genuine "no penalty" policy and must not fall back to the default, so the
// check is on presence, not on truthiness.
func NegativeRate(override *float64) float64 {
	if override == nil {
		return DefaultNegativeMarking
	}
	if *override < 0 {
		return 0
	}
	return *override
}

type GradeInput struct {
	Question model.Question
	// Presented is the option order the student actually saw, i.e. the
	// output of PresentedOrder for this (student, question, attempt).
	Presented       []model.QuestionOption
	Answer          AnswerValue
	NegativeMarking float64
}

type GradeOutcome struct {
	// Answered is true when the student supplied a usable response.
	Answered bool
	// Degraded is true when a malformed payload (out-of-range index,
	// unknown option id) was downgraded to a skip instead of failing the
	// whole submission. Scored identically to a skip, logged separately.
	Degraded         bool
	IsCorrect        bool
	MarksObtained    float64
	ResolvedOptionID *uint
}

// Grade scores one submitted answer against the question's correct option.
//
// Policy: a correct answer earns the question's full marks; a wrong answer
// with a resolved option selection costs the negative-marking rate; a skip
// (or anything degraded to one) scores zero. Malformed input never returns
// an error: one bad answer must not abort the attempt's submission.
func Grade(in GradeInput) GradeOutcome {
	correctID, hasCorrect := correctOptionID(in.Presented)

	resolved, outcome := resolveSelection(in)
	if resolved == nil {
		return outcome
	}

	if hasCorrect && *resolved == correctID {
		return GradeOutcome{
			Answered:         true,
			IsCorrect:        true,
			MarksObtained:    in.Question.Marks,
			ResolvedOptionID: resolved,
		}
	}

	return GradeOutcome{
		Answered:         true,
		IsCorrect:        false,
		MarksObtained:    -in.NegativeMarking,
		ResolvedOptionID: resolved,
	}
}

// resolveSelection maps the answer payload to an option identity. A nil
// identity means no penalizable selection exists; the accompanying outcome
// is then final (skip, degraded skip, or free text).
func resolveSelection(in GradeInput) (*uint, GradeOutcome) {
	switch in.Answer.Kind {
	case AnswerIndex:
		if in.Answer.Index < 0 || in.Answer.Index >= len(in.Presented) {
			return nil, GradeOutcome{Degraded: true}
		}
		id := in.Presented[in.Answer.Index].ID
		return &id, GradeOutcome{}
	case AnswerOptionID:
		for _, opt := range in.Presented {
			if opt.ID == in.Answer.OptionID {
				id := opt.ID
				return &id, GradeOutcome{}
			}
		}
		return nil, GradeOutcome{Degraded: true}
	case AnswerText:
		// Free text is recorded as answered but carries no option identity,
		// so it is neither awarded nor penalized here.
		return nil, GradeOutcome{Answered: true}
	default:
		return nil, GradeOutcome{}
	}
}

func correctOptionID(options []model.QuestionOption) (uint, bool) {
	for _, opt := range options {
		if opt.IsCorrect {
			return opt.ID, true
		}
	}
	return 0, false
}
