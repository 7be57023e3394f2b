package app

import (
	"skillmatrix_backend/docs"
	"skillmatrix_backend/internal/config"
	"skillmatrix_backend/internal/middleware"
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: health and the onboarding flow.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/verify", c.auth.Verify)
			auth.POST("/set-password", c.auth.SetPassword)
			auth.POST("/login", c.auth.Login)
			auth.GET("/security-question", c.auth.SecurityQuestion)
			auth.POST("/reset-password", c.auth.ResetPassword)
		}
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		// Readable by anyone logged in.
		authed.GET("/teams", c.catalog.ListTeams)
		authed.GET("/teams/:teamId/projects", c.catalog.ListProjects)
		authed.GET("/projects/:projectId/components", c.catalog.ListComponents)
		authed.GET("/assessments", c.catalog.ListAssessments)

		authed.GET("/users", c.user.List)
		authed.GET("/users/:id", c.user.Get)
		authed.GET("/users/:id/levels", c.user.Levels)
		authed.GET("/users/:id/attempts", c.user.Attempts)
		authed.GET("/users/:id/invites", c.user.Invites)

		authed.GET("/dashboard/developer/:id", c.dashboard.Developer)

		// Developer-side attempt lifecycle.
		authed.POST("/assessments/start/:inviteId", c.assessment.StartAttempt)
		authed.GET("/assessments/attempts/:id/questions", c.assessment.AttemptQuestions)
		authed.POST("/assessments/submit/:attemptId", c.assessment.SubmitAttempt)

		// Admin-side management.
		admin := authed.Group("")
		admin.Use(middleware.RoleMiddleware(model.RoleTeamAdmin))
		{
			admin.POST("/teams", c.catalog.CreateTeam)
			admin.POST("/projects", c.catalog.CreateProject)
			admin.POST("/components", c.catalog.CreateComponent)
			admin.GET("/components/:componentId/questions", c.catalog.ListQuestions)
			admin.POST("/questions", c.catalog.CreateQuestion)
			admin.POST("/assessments", c.catalog.CreateAssessment)

			admin.POST("/assessments/invite", c.assessment.CreateInvite)
			admin.GET("/assessments/pending-review", c.assessment.PendingReview)
			admin.POST("/assessments/grade", c.assessment.Grade)

			admin.POST("/auth/invite", c.auth.InviteUser)
			admin.GET("/dashboard/admin", c.dashboard.Admin)
			admin.GET("/dashboard/skills-matrix", c.dashboard.Matrix)
		}
	}
}
