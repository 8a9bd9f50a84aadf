package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"eduxchange/config"
	"eduxchange/internal/application/ports"
	"eduxchange/internal/application/services"
	"eduxchange/internal/infrastructure/db/postgres"
	"eduxchange/internal/infrastructure/db/postgres/account"
	"eduxchange/internal/infrastructure/db/postgres/profile"
	"eduxchange/internal/infrastructure/db/postgres/resource"
	"eduxchange/internal/infrastructure/jwt"
	"eduxchange/internal/infrastructure/logger"
	"eduxchange/internal/infrastructure/metrics"
	"eduxchange/internal/infrastructure/mq"
	"eduxchange/internal/infrastructure/session"
	"eduxchange/internal/infrastructure/storage"
	"eduxchange/internal/infrastructure/tracing"
	"eduxchange/internal/interface/api/rest"
	"eduxchange/internal/interface/api/rest/middleware"
	"eduxchange/internal/interface/web"
	"eduxchange/pkg/rmqconsumer"
)

type sessionStore interface {
	ports.SessionStore
	Close() error
}

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	bucket     storage.Bucket
	sessions   sessionStore
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
	events     ports.EventPublisher
	janitor    *services.BlobJanitor
	tracerDown func(context.Context) error
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	envErr := godotenv.Load(".env")
	cfg := config.Load()

	// logger
	lg, err := logger.New(logger.Options{Env: cfg.App.Env, Level: cfg.App.LogLevel, File: cfg.App.LogFile})
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	if envErr != nil {
		lg.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}
	if err = cfg.Validate(); err != nil {
		lg.Fatal("config error", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()

	// tracing
	tracerDown, err := tracing.Init(ctx, lg, cfg.App, cfg.Tracing)
	if err != nil {
		lg.Fatal("failed to init tracing", zap.Error(err))
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.App.Name))
	}
	r.Use(middleware.CORS(cfg.App.CORSOrigins))
	r.Use(middleware.RequestLogGin(lg, mCounter))
	r.MaxMultipartMemory = 8 << 20

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		lg.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, lg, dbDsn)
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, lg, dbPool); err != nil {
		lg.Fatal("failed to migrate database", zap.Error(err))
	}

	// object storage
	bucket, err := storage.New(ctx, lg, cfg.Storage)
	if err != nil {
		lg.Fatal("failed to open object storage", zap.Error(err))
	}
	if local, ok := bucket.(*storage.LocalBucket); ok {
		r.Static(storage.LocalRoute+"/"+local.Name(), local.Dir())
	}

	// sessions
	var sessions sessionStore = session.NewMemory()
	if cfg.Redis.Addr != "" {
		rs, err := session.NewRedis(ctx, lg, cfg.Redis)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		sessions = rs
	}

	app := &App{
		logger:     lg,
		cfg:        cfg,
		db:         dbPool,
		bucket:     bucket,
		sessions:   sessions,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		janitor:    services.NewBlobJanitor(bucket, lg, mCounter),
		tracerDown: tracerDown,
	}

	if !cfg.MQEnabled() {
		lg.Info("rabbitmq disabled, resource events are handled inline")
		app.events = mq.NewInline(lg, app.janitor.HandleEvent)
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		lg.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, lg)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		lg.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		lg.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, lg, mq.RoutingKeys, app.janitor.HandleEvent)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		lg.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		lg.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.mq = rbMQ
	app.mqConsumer = rmqConsumer
	app.events = rbMQ

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			a.logger.Error("session store close error", zap.Error(err))
		}
	}
	if a.tracerDown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.tracerDown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", zap.Error(err))
		}
		cancel()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	accountRepo := account.NewRepository(a.db)
	profileRepo := profile.NewRepository(a.db)
	resourceRepo := resource.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(
		accountRepo,
		profileRepo,
		jwtService,
		a.sessions,
		a.cfg.App.TokenTTL,
		a.logger,
		a.mCounter,
	)
	profileService := services.NewProfileService(accountRepo, profileRepo, resourceRepo)
	resourceService := services.NewResourceService(a.bucket, resourceRepo, a.events, a.logger, a.mCounter)

	// controllers
	cookie := rest.SessionCookie{
		Name:   a.cfg.App.CookieName,
		TTL:    a.cfg.App.TokenTTL,
		Secure: gin.Mode() == gin.ReleaseMode,
	}
	rest.NewAuthController(a.router, a.logger, authService, profileService, cookie)
	rest.NewResourceController(a.router, resourceService, a.logger, authService, cookie.Name, a.cfg.App.MaxUploadBytes)
	web.NewController(a.router, resourceService, a.logger, authService, cookie.Name)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Error("health check db ping error", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": a.cfg.App.Version})
}

func (a *App) Logger() *zap.Logger { return a.logger }
