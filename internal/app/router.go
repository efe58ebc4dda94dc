package app

import (
	"github.com/Ravshan88/online-lesson/internal/config"
	"github.com/Ravshan88/online-lesson/internal/middleware"
	"github.com/Ravshan88/online-lesson/internal/model"
	"github.com/Ravshan88/online-lesson/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/users", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// The learning catalog is browsable without an account.
		public.GET("/sections", c.content.ListSections)
		public.GET("/sections/:id", c.content.GetSection)
		public.GET("/materials/sectionId/:sectionId", c.content.ListMaterialsBySection)
		public.GET("/materials/:id", c.content.GetMaterial)
		public.GET("/materials/get_pdf/:id", c.content.GetMaterialPDF)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/users/:id", c.user.GetUser)
	rg.PUT("/users/profile", c.user.UpdateProfile)

	// Per-material quizzes
	rg.GET("/tests/material/:materialId/quiz", c.question.StudentQuiz)

	// Progress tracking
	rg.POST("/progress/complete", c.progress.MarkComplete)
	rg.POST("/progress/submit-test", c.progress.SubmitMaterialQuiz)
	rg.GET("/progress/material/:materialId", c.progress.GetMaterialProgress)

	// Final exam lifecycle
	exam := rg.Group("/test-sessions")
	{
		exam.POST("/start", c.exam.Start)
		exam.POST("/submit", c.exam.Submit)
		exam.GET("/history", c.exam.History)
		exam.GET("/check/status", c.exam.CheckStatus)
		exam.GET("/certificate/:sessionId", c.exam.Certificate)
		exam.GET("/:sessionId", c.exam.GetResult)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/sections", c.content.CreateSection)
		admin.PUT("/sections/:id", c.content.UpdateSection)
		admin.DELETE("/sections/:id", c.content.DeleteSection)

		admin.POST("/materials", c.content.CreateMaterial)
		admin.PUT("/materials/:id", c.content.UpdateMaterial)
		admin.DELETE("/materials/:id", c.content.DeleteMaterial)

		admin.POST("/tests", c.question.Create)
		admin.GET("/tests", c.question.ListAll)
		admin.GET("/tests/material/:materialId", c.question.ListByMaterial)
		admin.GET("/tests/:id", c.question.Get)
		admin.PUT("/tests/:id", c.question.Update)
		admin.DELETE("/tests/:id", c.question.Delete)
	}
}
