package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MohamedBenMassouda/Survey/config"
	"github.com/MohamedBenMassouda/Survey/controllers"
	"github.com/MohamedBenMassouda/Survey/mail"
	"github.com/MohamedBenMassouda/Survey/routes"
	"github.com/MohamedBenMassouda/Survey/services"
	"github.com/MohamedBenMassouda/Survey/storage"
)

func main() {
	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	store := storage.NewStore(db)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SenderEmail, cfg.SenderName)

	surveyService := services.NewSurveyService(store)
	tokenService := services.NewTokenService(store)
	invitationService := services.NewInvitationService(store, mailer)
	responseService := services.NewResponseService(store)
	analyticsService := services.NewAnalyticsService(store)
	adminService := services.NewAdminService(store)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}

	routes.SetupRoutes(r, routes.Deps{
		Admins:     controllers.NewAdminController(adminService),
		Surveys:    controllers.NewSurveyController(surveyService, tokenService, invitationService, analyticsService, cfg.FrontendURL),
		Responses:  controllers.NewResponseController(responseService),
		Health:     controllers.NewHealthController(db),
		AdminStore: store,
	})

	log.Printf("Server listening on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
