package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MohamedBenMassouda/Survey/controllers"
	"github.com/MohamedBenMassouda/Survey/middleware"
	"github.com/MohamedBenMassouda/Survey/services"
)

type Deps struct {
	Admins     *controllers.AdminController
	Surveys    *controllers.SurveyController
	Responses  *controllers.ResponseController
	Health     *controllers.HealthController
	AdminStore services.AdminStore
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", deps.Health.Check)

	// Anonymous respondents: 30 requests/min/IP, burst 10.
	respondLimiter := middleware.NewIPRateLimiter(30, 10, 5*time.Minute)

	api := r.Group("/api")
	{
		api.POST("/admins/login", deps.Admins.Login)

		admins := api.Group("/admins")
		admins.Use(middleware.AuthJWT(deps.AdminStore))
		{
			admins.POST("", deps.Admins.Create)
		}

		api.GET("/surveys/published", deps.Surveys.ListPublished)
		api.GET("/surveys/:id", deps.Surveys.Get)

		surveys := api.Group("/surveys")
		surveys.Use(middleware.AuthJWT(deps.AdminStore))
		{
			surveys.GET("", deps.Surveys.List)
			surveys.POST("", deps.Surveys.Create)
			surveys.PUT("/:id", deps.Surveys.Update)
			surveys.DELETE("/:id", deps.Surveys.Delete)
			surveys.POST("/:id/publish", deps.Surveys.Publish)
			surveys.POST("/:id/close", deps.Surveys.Close)
			surveys.POST("/:id/tokens", deps.Surveys.GenerateTokens)
			surveys.POST("/invitations", deps.Surveys.SendInvitations)
			surveys.GET("/:id/analytics", deps.Surveys.Analytics)
		}

		respond := api.Group("/respond")
		respond.Use(middleware.RateLimitByIP(respondLimiter))
		{
			respond.GET("/:token", deps.Responses.Start)
			respond.POST("/:token", deps.Responses.Submit)
		}
	}
}
