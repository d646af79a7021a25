package service

import (
	"context"
	"time"

	"github.com/khan-masud/exam-station/internal/repository"
	"github.com/khan-masud/exam-station/pkg/logger"

	"go.uber.org/zap"
)

type LeaderboardService struct {
	Boards  *repository.LeaderboardRepository
	Results *repository.ResultRepository
}

func NewLeaderboardService(boards *repository.LeaderboardRepository, results *repository.ResultRepository) *LeaderboardService {
	return &LeaderboardService{
		Boards:  boards,
		Results: results,
	}
}

// Recompute rebuilds all three windows for one exam from the results table.
// The sorted sets are replaced wholesale, so a missed recompute is healed by
// the next one.
func (s *LeaderboardService) Recompute(ctx context.Context, examID uint) error {
	now := time.Now()
	windows := []struct {
		name  string
		since time.Time
	}{
		{repository.WindowWeekly, now.AddDate(0, 0, -7)},
		{repository.WindowMonthly, now.AddDate(0, 0, -30)},
		{repository.WindowAllTime, time.Time{}},
	}

	for _, w := range windows {
		scores, err := s.Results.AggregateScores(examID, w.since)
		if err != nil {
			return err
		}
		entries := make([]repository.LeaderboardEntry, 0, len(scores))
		for _, sc := range scores {
			entries = append(entries, repository.LeaderboardEntry{
				StudentID: sc.StudentID,
				Score:     sc.TotalScore,
			})
		}
		if err := s.Boards.Replace(ctx, examID, w.name, entries); err != nil {
			return err
		}
		logger.Log.Debug("leaderboard window rebuilt",
			zap.Uint("examId", examID),
			zap.String("window", w.name),
			zap.Int("entries", len(entries)))
	}
	return nil
}

func (s *LeaderboardService) Top(ctx context.Context, examID uint, window string, limit int) ([]repository.LeaderboardEntry, error) {
	switch window {
	case repository.WindowWeekly, repository.WindowMonthly, repository.WindowAllTime:
	default:
		window = repository.WindowAllTime
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.Boards.Top(ctx, examID, window, limit)
}
