package controller

import (
	"errors"

	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService    *service.AttemptService
	SubmissionService *service.SubmissionService
}

func NewAttemptController(attemptService *service.AttemptService, submissionService *service.SubmissionService) *AttemptController {
	return &AttemptController{
		AttemptService:    attemptService,
		SubmissionService: submissionService,
	}
}

// @Summary Start (or resume) an attempt on an exam
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 201 {object} util.Response
// @Router /api/exams/{id}/attempts [post]
func (c *AttemptController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.AttemptService.Start(claims.UserID, examID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrExamNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAttemptLimitReached):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, attempt)
}

// @Summary Fetch the paper for an ongoing attempt
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) Taking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.AttemptService.TakingView(claims.UserID, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptNotOngoing):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// @Summary Submit an attempt for grading
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Param body body service.SubmitRequest true "answers"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.AttemptID = attemptID

	resp, err := c.SubmissionService.Submit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptNotOngoing):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// @Summary List the current student's attempts
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := pagination(ctx)
	attempts, total, err := c.AttemptService.ListByStudent(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}
