package controller

import (
	"strconv"

	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// @Summary Top scorers for an exam
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param window query string false "weekly | monthly | alltime"
// @Param limit query int false "number of entries, max 100"
// @Success 200 {object} util.Response
// @Router /api/exams/{id}/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	window := ctx.DefaultQuery("window", "alltime")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.LeaderboardService.Top(ctx.Request.Context(), examID, window, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"window": window, "entries": entries})
}

// @Summary Force a leaderboard rebuild for an exam
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/leaderboard/recompute [post]
func (c *LeaderboardController) Recompute(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.LeaderboardService.Recompute(ctx.Request.Context(), examID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recomputed": true})
}
