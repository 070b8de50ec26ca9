package app

import (
	"legal_aid_backend/docs"
	"legal_aid_backend/internal/config"
	"legal_aid_backend/internal/middleware"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(cfg),
		middleware.GracePeriodMiddleware(s.account),
		middleware.ActivityMiddleware(repos.account),
	)
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerCaseRoutes(authGroup, c)
		a.registerConversationRoutes(authGroup, c)
		a.registerFeedbackRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/accounts/register", c.auth.Register)
		public.POST("/accounts/login", c.auth.Login)
	}
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", c.auth.GetMe)
		accounts.PUT("/profile", c.account.UpdateProfile)
		accounts.GET("/advocates/:id", c.account.AdvocateProfile)

		juniors := accounts.Group("/juniors")
		juniors.Use(middleware.RoleMiddleware(model.Advocate))
		{
			juniors.GET("/unsupervised", c.account.UnsupervisedJuniors)
			juniors.GET("/supervised", c.account.SupervisedJuniors)
			juniors.POST("/manage", c.account.ManageJunior)
		}

		// Keep the wildcard last so it does not shadow the fixed paths.
		accounts.GET("/:id", c.account.GetByID)
	}
}

func (a *App) registerCaseRoutes(rg *gin.RouterGroup, c *controllers) {
	cases := rg.Group("/cases")
	{
		cases.POST("", middleware.RoleMiddleware(model.Client), c.kase.Create)
		cases.GET("", c.kase.List)
		cases.POST("/assign-junior", middleware.RoleMiddleware(model.Advocate), c.kase.AssignJunior)
		cases.GET("/:id", c.kase.Get)
		cases.PUT("/:id", c.kase.Update)
		cases.PUT("/:id/close", c.kase.Close)
		cases.POST("/:id/documents", c.kase.UploadDocument)
		cases.GET("/:id/documents", c.kase.ListDocuments)
	}
}

func (a *App) registerConversationRoutes(rg *gin.RouterGroup, c *controllers) {
	conversations := rg.Group("/conversations")
	{
		conversations.GET("", c.conversation.ListMine)
		conversations.GET("/case/:caseId", c.conversation.GetForCase)
		conversations.POST("/message", c.conversation.SendMessage)
		conversations.PUT("/read", c.conversation.MarkRead)
	}
}

func (a *App) registerFeedbackRoutes(rg *gin.RouterGroup, c *controllers) {
	feedback := rg.Group("/feedback")
	{
		feedback.POST("", middleware.RoleMiddleware(model.Advocate), c.feedback.Upsert)
		feedback.GET("/junior/:juniorId", middleware.RoleMiddleware(model.Advocate), c.feedback.ListForJunior)
		feedback.GET("/junior/:juniorId/summary", middleware.RoleMiddleware(model.Advocate), c.feedback.Summary)
		feedback.GET("/interaction/:interactionId", c.feedback.ListForInteraction)
	}
}
