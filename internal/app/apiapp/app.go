package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mer-dating/backend/internal/config"
	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	redrepo "github.com/mer-dating/backend/internal/repo/redis"
	authsvc "github.com/mer-dating/backend/internal/services/auth"
	discsvc "github.com/mer-dating/backend/internal/services/discovery"
	matchsvc "github.com/mer-dating/backend/internal/services/matches"
	msgsvc "github.com/mer-dating/backend/internal/services/messages"
	swipesvc "github.com/mer-dating/backend/internal/services/swipes"
	usersvc "github.com/mer-dating/backend/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	if cfg.Postgres.MigrateOnStart {
		if err := pgrepo.RunMigrations(cfg.Postgres.DSN, log); err != nil {
			log.Warn("migrations failed, continuing in degraded mode", zap.Error(err))
		}
	}

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	runTx := pgrepo.PoolRunner(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, userRepo, sessionRepo, cfg.Auth.RefreshTTL)
	userService := usersvc.NewService(userRepo)
	discoveryService := discsvc.NewService(userRepo, swipeRepo)
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		RunTx:   runTx,
		Users:   userRepo,
		Swipes:  swipeRepo,
		Matches: matchRepo,
	})
	matchService := matchsvc.NewService(matchRepo)
	messageService := msgsvc.NewService(msgsvc.Dependencies{
		RunTx:    runTx,
		Matches:  matchRepo,
		Messages: messageRepo,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		UserService:      userService,
		DiscoveryService: discoveryService,
		SwipeService:     swipeService,
		MatchService:     matchService,
		MessageService:   messageService,
		Logger:           log,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
