package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrProgramNotFound     = errors.New("program not found")
	ErrExamNotFound        = errors.New("exam not found")
	ErrExamNotPublished    = errors.New("exam not published or not accessible")
	ErrNotEnrolled         = errors.New("student not enrolled in this program")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptLimitReached = errors.New("maximum attempts reached for this exam")
	ErrAttemptNotOngoing   = errors.New("attempt is not in a submittable state")
	ErrResultNotFound      = errors.New("result not found")
	ErrResultNotPublished  = errors.New("results pending publication")
)
