package controller

import (
	"errors"
	"strconv"

	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Program true "program"
// @Success 201 {object} util.Response
// @Router /api/teacher/programs [post]
func (c *ExamController) CreateProgram(ctx *gin.Context) {
	var program model.Program
	if err := ctx.ShouldBindJSON(&program); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if program.Title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	if err := c.ExamService.CreateProgram(&program); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, program)
}

// @Summary List programs
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/programs [get]
func (c *ExamController) ListPrograms(ctx *gin.Context) {
	page, limit := pagination(ctx)
	programs, total, err := c.ExamService.ListPrograms(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: programs, Total: total, Page: page, Limit: limit})
}

// @Summary Enroll the current student into a program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "program id"
// @Success 200 {object} util.Response
// @Router /api/programs/{id}/enroll [post]
func (c *ExamController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	programID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ExamService.Enroll(claims.UserID, programID); err != nil {
		if errors.Is(err, util.ErrProgramNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": true})
}

// @Summary Create an exam under a program
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Exam true "exam"
// @Success 201 {object} util.Response
// @Router /api/teacher/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var exam model.Exam
	if err := ctx.ShouldBindJSON(&exam); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if exam.Title == "" || exam.ProgramID == 0 {
		util.BadRequest(ctx, "title and programId are required")
		return
	}
	if exam.DurationMinutes <= 0 {
		util.BadRequest(ctx, "durationMinutes must be positive")
		return
	}
	exam.Published = false
	if err := c.ExamService.CreateExam(&exam); err != nil {
		if errors.Is(err, util.ErrProgramNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary List a program's exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "program id"
// @Success 200 {object} util.Response
// @Router /api/programs/{id}/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	programID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role == model.Student
	exams, err := c.ExamService.ListExams(programID, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary Get one exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	exam, err := c.ExamService.GetExam(examID)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	claims := util.GetUserFromContext(ctx)
	if !exam.Published && (claims == nil || claims.Role == model.Student) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, exam)
}

// @Summary Publish an exam
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/publish [post]
func (c *ExamController) Publish(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ExamService.Publish(examID); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"published": true})
}

// @Summary Add a question to an exam
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Param body body model.Question true "question with options"
// @Success 201 {object} util.Response
// @Router /api/teacher/exams/{id}/questions [post]
func (c *ExamController) AddQuestion(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var question model.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	question.ExamID = examID
	if err := c.ExamService.AddQuestion(&question); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, question)
}

// @Summary List an exam's questions with correct answers
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "exam id"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/questions [get]
func (c *ExamController) ListQuestions(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.ExamService.ListQuestions(examID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *ExamController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ExamService.DeleteQuestion(questionID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
