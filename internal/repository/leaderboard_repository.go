package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// Leaderboard windows. Keys are rebuilt wholesale on every recompute, so no
// incremental bookkeeping is needed.
const (
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
	WindowAllTime = "alltime"
)

type LeaderboardEntry struct {
	StudentID uint    `json:"studentId"`
	Score     float64 `json:"score"`
	Rank      int     `json:"rank"`
}

type LeaderboardRepository struct {
	RDB *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{RDB: rdb}
}

func leaderboardKey(examID uint, window string) string {
	return fmt.Sprintf("leaderboard:%d:%s", examID, window)
}

// Replace swaps the sorted set for one exam/window with fresh scores. Writes
// to a staging key and renames so readers never observe a half-built board.
func (r *LeaderboardRepository) Replace(ctx context.Context, examID uint, window string, entries []LeaderboardEntry) error {
	key := leaderboardKey(examID, window)
	staging := key + ":staging"

	members := make([]*redis.Z, 0, len(entries))
	for _, e := range entries {
		members = append(members, &redis.Z{
			Score:  e.Score,
			Member: strconv.FormatUint(uint64(e.StudentID), 10),
		})
	}

	pipe := r.RDB.TxPipeline()
	pipe.Del(ctx, staging)
	if len(members) > 0 {
		pipe.ZAdd(ctx, staging, members...)
		pipe.Rename(ctx, staging, key)
	} else {
		pipe.Del(ctx, key)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the highest-scoring entries with 1-based ranks.
func (r *LeaderboardRepository) Top(ctx context.Context, examID uint, window string, limit int) ([]LeaderboardEntry, error) {
	key := leaderboardKey(examID, window)
	zs, err := r.RDB.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			StudentID: uint(id),
			Score:     z.Score,
			Rank:      i + 1,
		})
	}
	return entries, nil
}
