package router

import (
	"uniconnect/config"
	"uniconnect/internal/domain"
	"uniconnect/internal/handler"
	"uniconnect/internal/middleware"
	"uniconnect/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func Setup(cfg *config.Config, svc *Services, log *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.Logger(log.Named("http")))

	// Handlers
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	discoveryHandler := handler.NewDiscoveryHandler(svc.Matching)
	interactionHandler := handler.NewInteractionHandler(svc.Matching)
	safetyHandler := handler.NewSafetyHandler(svc.Safety)
	favoriteHandler := handler.NewFavoriteHandler(svc.Safety)
	rateHandler := handler.NewRateHandler(svc.Rate)
	registrationHandler := handler.NewRegistrationHandler(svc.Registration)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	uploadHandler := handler.NewUploadHandler(svc.Cloud, log.Named("upload"))
	adminHandler := handler.NewAdminHandler(svc.Profiles, svc.Matching, svc.Safety, svc.Rate)
	healthHandler := handler.NewHealthHandler(svc.Checker)

	authMw := middleware.AuthRequired(&cfg.JWT)
	gatewayMw := middleware.RequireRole(domain.RoleGateway, domain.RoleAdmin)

	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(authMw, gatewayMw, middleware.RateLimit(svc.APILimiter, domain.RoleGateway))
	{
		api.PUT("/profiles", profileHandler.Register)
		api.GET("/profiles/:id", profileHandler.Get)
		api.GET("/profiles/:id/exists", profileHandler.Exists)

		users := api.Group("/users/:id")
		{
			users.GET("/stats", profileHandler.Stats)
			users.POST("/photo", uploadHandler.Photo)
			users.POST("/rate-check", rateHandler.Check)

			users.GET("/candidate", discoveryHandler.NextCandidate)
			users.POST("/likes", interactionHandler.Like)
			users.GET("/matches", interactionHandler.Matches)
			users.GET("/likers", interactionHandler.Likers)
			users.GET("/mutual/:target_id", interactionHandler.Mutual)

			users.POST("/blocks", safetyHandler.Block)
			users.DELETE("/blocks/:target_id", safetyHandler.Unblock)
			users.POST("/reports", safetyHandler.Report)

			users.GET("/favorites", favoriteHandler.List)
			users.POST("/favorites", favoriteHandler.Add)
			users.GET("/favorites/:target_id", favoriteHandler.Check)
			users.DELETE("/favorites/:target_id", favoriteHandler.Remove)

			users.POST("/registration", registrationHandler.Start)
			users.GET("/registration", registrationHandler.Current)
			users.POST("/registration/input", registrationHandler.Submit)
			users.DELETE("/registration", registrationHandler.Cancel)

			users.GET("/notifications", notificationHandler.List)
			users.PUT("/notifications/:notification_id/read", notificationHandler.MarkRead)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/profiles/:id", adminHandler.ProfileInfo)
			admin.POST("/ratelimit/:id/reset", adminHandler.ResetRateLimit)
			admin.GET("/reports", adminHandler.PendingReports)
			admin.POST("/reports/:report_id/review", adminHandler.ReviewReport)
			admin.POST("/matches/rebuild", adminHandler.RebuildMatches)
		}
	}

	r.GET("/ws/events", ws.UpgradeEventsWS(&cfg.JWT, svc.Hub, log.Named("ws")))

	return r
}
