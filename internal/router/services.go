package router

import (
	"uniconnect/config"
	"uniconnect/internal/maintenance"
	"uniconnect/internal/ratelimit"
	"uniconnect/internal/registration"
	"uniconnect/internal/repository"
	"uniconnect/internal/service"
	"uniconnect/internal/validation"
	"uniconnect/internal/ws"
	"uniconnect/pkg/cloudinary"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is the wired engine shared by the HTTP API, the scheduler and
// the CLI commands.
type Services struct {
	Profiles      *service.ProfileService
	Matching      *service.MatchingService
	Safety        *service.SafetyService
	Notifications *service.NotificationService
	Rate          *service.RateService
	Registration  *registration.Flow
	Checker       *maintenance.Checker
	Hub           *ws.Hub
	Cloud         cloudinary.Client // nil when uploads are disabled

	UserLimiter *ratelimit.Limiter
	APILimiter  *ratelimit.Limiter // per token subject; the gateway is exempt
}

func NewServices(cfg *config.Config, db *gorm.DB, sessions registration.SessionStore, cloud cloudinary.Client, log *zap.Logger) *Services {
	timeout := cfg.Database.QueryTimeout
	limits := validation.LimitsFromConfig(&cfg.Profile)

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	reportRepo := repository.NewReportRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	hub := ws.NewHub()
	userLimiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, cfg.RateLimit.Ban,
		ratelimit.WithLogger(log.Named("ratelimit")))
	apiLimiter := ratelimit.New(cfg.APIRateLimit.MaxRequests, cfg.APIRateLimit.Window, cfg.APIRateLimit.Ban)

	// Services
	profileSvc := service.NewProfileService(profileRepo, statsRepo, limits, timeout, log)
	notifSvc := service.NewNotificationService(notificationRepo, profileRepo, hub, timeout, log)
	matchingSvc := service.NewMatchingService(candidateRepo, likeRepo, timeout, log, service.WithNotifier(notifSvc))
	safetySvc := service.NewSafetyService(profileRepo, blockRepo, reportRepo, favRepo, timeout, log)

	return &Services{
		Profiles:      profileSvc,
		Matching:      matchingSvc,
		Safety:        safetySvc,
		Notifications: notifSvc,
		Rate:          service.NewRateService(userLimiter, log),
		Registration:  registration.NewFlow(sessions, profileSvc, limits, log),
		Checker:       maintenance.NewChecker(db, statsRepo, timeout),
		Hub:           hub,
		Cloud:         cloud,
		UserLimiter:   userLimiter,
		APILimiter:    apiLimiter,
	}
}
