package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/blr-world/hub-backend/api/handler"
	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/config"
	"github.com/blr-world/hub-backend/internal/hooks"
	"github.com/blr-world/hub-backend/internal/infrastructure/monitor"
	pgInfra "github.com/blr-world/hub-backend/internal/infrastructure/postgres"
	"github.com/blr-world/hub-backend/internal/infrastructure/queue"
	redisInfra "github.com/blr-world/hub-backend/internal/infrastructure/redis"
	"github.com/blr-world/hub-backend/internal/middleware"
	"github.com/blr-world/hub-backend/internal/router"
	"github.com/blr-world/hub-backend/internal/services"
	"github.com/blr-world/hub-backend/internal/services/lifecycle"
	"github.com/blr-world/hub-backend/pkg/httpcontext"
	"github.com/blr-world/hub-backend/pkg/logger"
	"github.com/blr-world/hub-backend/pkg/token"
	"github.com/blr-world/hub-backend/repository/postgres"
	redisRepo "github.com/blr-world/hub-backend/repository/redis"
	adminUC "github.com/blr-world/hub-backend/usecase/admin"
	authUC "github.com/blr-world/hub-backend/usecase/auth"
	profileUC "github.com/blr-world/hub-backend/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Name:     cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	queueStore, err := queue.Open(cfg.Queue.Path, "provision")
	if err != nil {
		zapLogger.Fatal("failed to open provision queue", zap.Error(err))
	}
	manager.Register("queue", func(ctx context.Context) error {
		return queueStore.Close()
	})

	mon := monitor.New(pool, redisClient, queueStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	identityStore := postgres.NewIdentityStore(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Workspace.SessionTTL)

	policy := domain.NewEmailPolicy(cfg.Workspace.AllowedDomain)

	// Exactly one hook variant is constructed per process.
	var enforcer hooks.Enforcer
	switch cfg.Hooks.Mode {
	case config.HooksModeStub:
		enforcer = hooks.NewStubEnforcer()
		zapLogger.Warn("domain hooks running in stub mode; provisioner compensates for out-of-policy accounts")
	default:
		enforcer = hooks.NewDomainEnforcer(policy, zapLogger)
	}

	provisioner := services.NewProvisioner(
		queueStore,
		mon,
		identityStore,
		profileRepo,
		policy,
		zapLogger,
		services.ProvisionerConfig{
			Interval:   cfg.Queue.DrainInterval,
			BatchSize:  cfg.Queue.BatchSize,
			MaxRetries: cfg.Queue.MaxRetry,
		},
	)
	provisioner.Start()
	manager.Register("provisioner", func(ctx context.Context) error {
		provisioner.Stop(ctx)
		return nil
	})

	provisionBridge := services.NewProvisionBridge(provisioner)
	tokenIssuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)

	authUseCase := authUC.New(identityStore, sessionRepo, enforcer, provisionBridge, tokenIssuer, cfg.Workspace.SessionTTL, zapLogger)
	profileUseCase := profileUC.New(identityStore, profileRepo, zapLogger)
	adminUseCase := adminUC.New(identityStore, profileRepo, departmentRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Admin:   apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Gate:    apiHandler.NewGateHandler(ctxAdapter, zapLogger),
		Hooks:   apiHandler.NewHooksHandler(enforcer, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(tokenIssuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
