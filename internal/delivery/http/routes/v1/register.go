package v1

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/account"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	ucapp "jobboard/internal/usecase/application"
	ucauth "jobboard/internal/usecase/auth"
	uccv "jobboard/internal/usecase/cv"
	ucjob "jobboard/internal/usecase/job"
	ucprofile "jobboard/internal/usecase/profile"
	ucquestion "jobboard/internal/usecase/question"
	ucsaved "jobboard/internal/usecase/saved"
	ucstats "jobboard/internal/usecase/stats"
	"jobboard/internal/ws"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, c *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	var denylist middleware.TokenDenylist
	if c != nil {
		denylist = c
	}
	authMw := middleware.NewAuthMiddleware(jwtSvc, denylist)

	accountRepo := repository.NewPostgresAccountRepository(db)
	seekerRepo := repository.NewPostgresSeekerRepository(db)
	providerRepo := repository.NewPostgresProviderRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	cvRepo := repository.NewPostgresCVRepository(db)
	applicationRepo := repository.NewPostgresApplicationRepository(db)
	savedRepo := repository.NewPostgresSavedItemRepository(db)
	cityRepo := repository.NewPostgresCityRepository(db)
	questionRepo := repository.NewPostgresQuestionRepository(db)
	taxonomyRepo := repository.NewPostgresTaxonomyRepository(db)

	var jobCache ucjob.Cache
	if c != nil {
		jobCache = c
	}

	var notifier ucapp.Notifier
	if hub != nil {
		notifier = ws.NewNotifier(hub)
	}

	var revoker ucauth.TokenRevoker
	if c != nil {
		revoker = c
	}
	authUC := ucauth.NewService(accountRepo, seekerRepo, providerRepo, jwtSvc, revoker)
	jobUC := ucjob.NewService(jobRepo, cvRepo, taxonomyRepo, jobCache, logger)
	applicationUC := ucapp.NewService(applicationRepo, jobRepo, cvRepo, questionRepo, jobCache, notifier, logger)
	savedUC := ucsaved.NewService(savedRepo, jobRepo, cvRepo)
	cvUC := uccv.NewService(cvRepo)
	profileUC := ucprofile.NewService(seekerRepo, providerRepo, cvRepo, applicationRepo, savedRepo, jobRepo)
	statsUC := ucstats.NewService(cityRepo, jobRepo, seekerRepo, applicationRepo, jobCache, logger)
	questionUC := ucquestion.NewService(questionRepo, jobRepo, applicationRepo)

	authHandler := handler.NewAuthHandler(authUC)
	jobHandler := handler.NewJobHandler(jobUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	savedHandler := handler.NewSavedHandler(savedUC)
	cvHandler := handler.NewCVHandler(cvUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	statsHandler := handler.NewStatsHandler(statsUC)
	questionHandler := handler.NewQuestionHandler(questionUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	jobsPublic := r.Group("/jobs")
	jobHandler.RegisterPublicRoutes(jobsPublic)
	questionHandler.RegisterPublicRoutes(jobsPublic)
	statsHandler.RegisterPublicRoutes(r)
	handler.NewTaxonomyHandler(taxonomyRepo).RegisterRoutes(r)

	if hub != nil {
		wsHandler := ws.NewHandler(hub, jwtSvc, logger)
		r.Get("/ws/notifications", wsHandler.HandleNotifications)
	}

	protected := r.Group("", authMw.Middleware())

	seekerGroup := protected.Group("/seeker", middleware.RequireRole(account.RoleSeeker))
	jobHandler.RegisterSeekerRoutes(seekerGroup.Group("/jobs"))
	applicationHandler.RegisterSeekerRoutes(seekerGroup.Group("/applications"))
	savedHandler.RegisterSeekerRoutes(seekerGroup.Group("/saved-jobs"))
	cvHandler.RegisterRoutes(seekerGroup.Group("/cvs"))
	profileHandler.RegisterSeekerRoutes(seekerGroup)

	providerGroup := protected.Group("/provider", middleware.RequireRole(account.RoleProvider))
	providerJobs := providerGroup.Group("/jobs")
	jobHandler.RegisterProviderRoutes(providerJobs)
	questionHandler.RegisterProviderJobRoutes(providerJobs)
	providerApplications := providerGroup.Group("/applications")
	applicationHandler.RegisterProviderRoutes(providerApplications)
	questionHandler.RegisterProviderApplicationRoutes(providerApplications)
	savedHandler.RegisterProviderRoutes(providerGroup.Group("/saved-cvs"))
	profileHandler.RegisterProviderRoutes(providerGroup)

	adminGroup := protected.Group("/admin", middleware.RequireRole(account.RoleAdmin))
	statsHandler.RegisterAdminRoutes(adminGroup.Group("/stats"))
}
