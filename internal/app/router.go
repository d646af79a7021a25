package app

import (
	"github.com/khan-masud/exam-station/internal/config"
	"github.com/khan-masud/exam-station/internal/middleware"
	"github.com/khan-masud/exam-station/internal/model"
	"github.com/khan-masud/exam-station/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/me", c.auth.Me)
		authed.GET("/ws/events", c.notification.Events)

		authed.GET("/programs", c.exam.ListPrograms)
		authed.GET("/programs/:id/exams", c.exam.ListExams)
		authed.GET("/exams/:id", c.exam.GetExam)
		authed.GET("/exams/:id/leaderboard", c.leaderboard.Top)

		authed.GET("/notifications", c.notification.List)
		authed.POST("/notifications/:id/read", c.notification.MarkRead)

		student := authed.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/programs/:id/enroll", c.exam.Enroll)
			student.POST("/exams/:id/attempts", c.attempt.Start)
			student.GET("/attempts", c.attempt.List)
			student.GET("/attempts/:id", c.attempt.Taking)
			student.POST("/attempts/:id/submit", c.attempt.Submit)
			student.GET("/attempts/:id/result", c.result.ForStudent)
			student.GET("/results", c.result.ListMine)
		}

		teacher := authed.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/programs", c.exam.CreateProgram)
			teacher.POST("/exams", c.exam.CreateExam)
			teacher.POST("/exams/:id/publish", c.exam.Publish)
			teacher.POST("/exams/:id/questions", c.exam.AddQuestion)
			teacher.GET("/exams/:id/questions", c.exam.ListQuestions)
			teacher.DELETE("/questions/:id", c.exam.DeleteQuestion)
			teacher.GET("/exams/:id/results", c.result.ListByExam)
			teacher.GET("/attempts/:id/result", c.result.ForStaff)
			teacher.POST("/exams/:id/leaderboard/recompute", c.leaderboard.Recompute)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/settings", c.settings.List)
			admin.PUT("/settings", c.settings.Update)
		}
	}
}
