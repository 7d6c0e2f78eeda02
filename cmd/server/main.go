package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localgym/gym-admin/internal/api"
	"localgym/gym-admin/internal/config"
	"localgym/gym-admin/internal/repository"
	mongoRepo "localgym/gym-admin/internal/repository/mongo"
	"localgym/gym-admin/internal/service"
	"localgym/gym-admin/internal/storage"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	// --- Logging ---
	var logger *zap.Logger
	if cfg.DevMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("could not build logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting gym admin server")

	if cfg.Session.Secret == "" {
		logger.Fatal("session.secret is required")
	}

	// --- Database connection ---
	dbClient, err := mongoRepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure indexes (background, with timeout) ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongoRepo.EnsureMemberIndexes(ctx, appDB.Collection("members"))
		mongoRepo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongoRepo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongoRepo.EnsureTypeIndexes(ctx, appDB.Collection("types"))
		mongoRepo.EnsureAccountIndexes(ctx, appDB.Collection("accounts"))
		logger.Info("index creation completed")
	}()

	// --- Photo storage ---
	var photos storage.PhotoStorage
	if cfg.S3.Enabled {
		photos, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
		logger.Info("S3 photo storage initialized", zap.String("bucket", cfg.S3.BucketName))
	} else {
		photos = storage.NewNoopStorage()
		logger.Info("photo storage disabled")
	}

	// --- Repositories ---
	var (
		memberRepo  repository.MemberRepository  = mongoRepo.NewMongoMemberRepository(appDB)
		trainerRepo repository.TrainerRepository = mongoRepo.NewMongoTrainerRepository(appDB)
		planRepo    repository.PlanRepository    = mongoRepo.NewMongoPlanRepository(appDB)
		typeRepo    repository.TypeRepository    = mongoRepo.NewMongoTypeRepository(appDB)
		accountRepo repository.AccountRepository = mongoRepo.NewMongoAccountRepository(appDB)
	)

	// --- Services ---
	authService := service.NewAuthService(accountRepo)
	memberService := service.NewMemberService(memberRepo, trainerRepo, planRepo, typeRepo, photos)
	trainerService := service.NewTrainerService(trainerRepo, memberRepo)
	planService := service.NewPlanService(planRepo, memberRepo)
	typeService := service.NewTypeService(typeRepo, memberRepo)
	catalogService := service.NewCatalogService(memberRepo, trainerRepo, planRepo, typeRepo)

	// --- Seed admin account ---
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdminAccount(seedCtx, cfg.Admin); err != nil {
		logger.Error("admin account seeding failed", zap.Error(err))
	}
	seedCancel()

	// --- Router ---
	router := api.NewRouter(cfg, "web/templates/*.html", logger, api.Services{
		Auth:     authService,
		Members:  memberService,
		Trainers: trainerService,
		Plans:    planService,
		Types:    typeService,
		Catalog:  catalogService,
	})

	// --- CSRF protection around the whole engine ---
	csrfKey := []byte(cfg.Session.CSRFKey)
	if len(csrfKey) == 0 {
		if !cfg.DevMode {
			logger.Fatal("session.csrf_key is required")
		}
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			logger.Fatal("failed to generate CSRF key", zap.Error(err))
		}
		logger.Warn("using a random CSRF key; forms will not survive a restart")
	}
	handler := csrf.Protect(csrfKey,
		csrf.Secure(cfg.Session.Secure),
		csrf.Path("/"),
	)(router)

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exiting")
}
