package controller

import (
	"errors"

	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// @Summary Get the result of one of the current student's attempts
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/result [get]
func (c *ResultController) ForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.ResultService.ForStudent(claims.UserID, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResultNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrResultNotPublished):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// @Summary List the current student's results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/results [get]
func (c *ResultController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	results, err := c.ResultService.ListByStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary Inspect one attempt's result as staff
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/teacher/attempts/{id}/result [get]
func (c *ResultController) ForStaff(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.ResultService.ForStaff(attemptID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary List an exam's results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/results [get]
func (c *ResultController) ListByExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)
	results, total, err := c.ResultService.ListByExam(examID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}
