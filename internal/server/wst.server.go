package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wastetrade-service/internal/config"
	hrest "wastetrade-service/internal/handler/rest"
	"wastetrade-service/internal/jobs"
	"wastetrade-service/internal/middleware"
	"wastetrade-service/internal/pub"
	"wastetrade-service/internal/repository"
	"wastetrade-service/internal/router"
	"wastetrade-service/internal/service"
	"wastetrade-service/internal/usecase"
	"wastetrade-service/pkg/utils"
)

type Server struct {
	httpServer *http.Server
	db         *pgxpool.Pool
	scheduler  *jobs.Scheduler
	logger     *zap.Logger
}

func New(cfg config.AppConfig) *Server {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	sf, err := utils.NewSnowflake(cfg.SnowflakeNode)
	if err != nil {
		logger.Fatal("failed to init snowflake", zap.Error(err))
	}
	refs := utils.NewReferenceGenerator(sf)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	// --- Repositories ---
	userRepo := repository.NewUserRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	agentRepo := repository.NewAgentRepo(db)
	wasteRepo := repository.NewWasteRepo(db)
	collectionRepo := repository.NewCollectionRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	// --- Collaborators ---
	emailSender := service.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	publisher := pub.NewTransactionEventPublisher(rdb)
	notifier := usecase.NewNotifier()

	// --- Usecases ---
	ledgerUC := usecase.NewLedgerUsecase(txRepo, userRepo, refs, rdb, publisher, notifier, logger)
	wasteUC := usecase.NewWasteUsecase(wasteRepo, collectionRepo, agentRepo, userRepo, refs, logger)
	agentUC := usecase.NewAgentUsecase(agentRepo, refs, logger)
	userUC := usecase.NewUserUsecase(userRepo, logger)
	adminUC := usecase.NewAdminUsecase(userRepo, emailSender, logger)

	// --- Seed system in a goroutine (non-blocking) ---
	seeder := service.NewSystemSeeder(adminRepo, logger)
	go func() {
		if err := seeder.SeedSystem(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Warn("system seeding failed", zap.Error(err))
		}
	}()

	// --- Background jobs ---
	scheduler := jobs.NewScheduler(wasteUC, emailSender, cfg.AdminEmail, logger)
	scheduler.Start(context.Background())

	// --- HTTP ---
	ledgerH := hrest.NewLedgerRestHandler(ledgerUC)
	wasteH := hrest.NewWasteRestHandler(wasteUC)
	directoryH := hrest.NewDirectoryRestHandler(agentUC, userUC, adminUC)
	auth := middleware.NewAuthMiddleware(cfg.JWTSecret)

	r := router.New(ledgerH, wasteH, directoryH, ledgerUC, notifier, auth)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		db:        db,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()
	defer s.db.Close()
	defer s.logger.Sync()
	return s.httpServer.Shutdown(ctx)
}
