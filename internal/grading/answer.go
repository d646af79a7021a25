package grading

import "strings"

// AnswerKind discriminates the loosely-typed answer payload accepted at the
// API boundary. It is resolved into an option identity exactly once, in
// Grade, so nothing downstream needs to re-sniff the payload shape.
type AnswerKind int

const (
	// AnswerEmpty means the question was skipped.
	AnswerEmpty AnswerKind = iota
	// AnswerIndex is a zero-based index into the presented option order.
	AnswerIndex
	// AnswerOptionID names the selected option directly by id.
	AnswerOptionID
	// AnswerText is a free-text response for non-option questions.
	AnswerText
)

type AnswerValue struct {
	Kind     AnswerKind
	Index    int
	OptionID uint
	Text     string
}

func EmptyAnswer() AnswerValue {
	return AnswerValue{Kind: AnswerEmpty}
}

func IndexAnswer(idx int) AnswerValue {
	return AnswerValue{Kind: AnswerIndex, Index: idx}
}

func OptionIDAnswer(id uint) AnswerValue {
	return AnswerValue{Kind: AnswerOptionID, OptionID: id}
}

// TextAnswer treats blank text as a skip.
func TextAnswer(text string) AnswerValue {
	if strings.TrimSpace(text) == "" {
		return EmptyAnswer()
	}
	return AnswerValue{Kind: AnswerText, Text: text}
}
