package service

import (
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
)

// runEffect executes a post-commit side effect. Effects are strictly
// best-effort: a panic or error in one must never reach the caller, because
// the transaction that triggered it has already committed.
func runEffect(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("post-commit effect panicked",
				zap.String("effect", name),
				zap.Any("panic", r))
		}
	}()
	if err := fn(); err != nil {
		logger.Log.Warn("post-commit effect failed",
			zap.String("effect", name),
			zap.Error(err))
	}
}
