package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadp "smartbikepass-backend/internal/adapter/http"
	"smartbikepass-backend/internal/adapter/middleware"
	"smartbikepass-backend/internal/adapter/repository/mysql"
	"smartbikepass-backend/internal/config"
	"smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/user"
	"smartbikepass-backend/internal/infrastructure/cache"
	"smartbikepass-backend/internal/infrastructure/db"
	"smartbikepass-backend/internal/infrastructure/logger"
	"smartbikepass-backend/internal/infrastructure/storage"
	ucApplication "smartbikepass-backend/internal/usecase/application"
	ucAuth "smartbikepass-backend/internal/usecase/auth"
	ucReview "smartbikepass-backend/internal/usecase/review"
)

func main() {
	// a missing .env is fine; the environment wins either way
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		log.Fatal("database connect failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("database migrate failed", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	docs, err := storage.NewLocalDocumentStore(cfg.UploadDir, log)
	if err != nil {
		log.Fatal("document store", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	apps := mysql.NewApplicationRepository(gdb)
	audits := mysql.NewAuditRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	appUC := ucApplication.NewUsecase(apps, audits, tx, docs, log)
	reviewUC := ucReview.NewUsecase(tx, log)
	authUC := ucAuth.NewUsecase(users, cfg.JWTSecret, cfg.TokenTTL(), log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	err = authUC.SeedUsers(seedCtx, []ucAuth.Seed{
		{Username: "transport", Password: cfg.SeedTransportPassword, Role: user.RoleTransport},
		{Username: "principal", Password: cfg.SeedPrincipalPassword, Role: user.RolePrincipal},
		{Username: "admin", Password: cfg.SeedAdminPassword, Role: user.RoleAdmin},
	})
	cancelSeed()
	if err != nil {
		log.Fatal("seed users failed", zap.Error(err))
	}

	checks := map[string]httpadp.Pinger{"database": sqlDB.PingContext}
	var idem echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB, log)
		if err != nil {
			log.Fatal("redis connect failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		idem = middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log)
		checks["redis"] = func(ctx context.Context) error { return pingRedis(ctx, rdb) }
	} else {
		log.Warn("REDIS_ADDR not set; idempotency keys are ignored")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(cfg.BodyLimit()))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))

	httpadp.Router{
		Health:       httpadp.NewHandler(checks),
		Auth:         httpadp.NewAuthHandler(authUC, log),
		Applications: httpadp.NewApplicationHandler(appUC, log),
		Transport:    httpadp.NewReviewHandler(application.StageTransport, appUC, reviewUC, log),
		Principal:    httpadp.NewReviewHandler(application.StagePrincipal, appUC, reviewUC, log),
		Admin:        httpadp.NewAdminHandler(appUC, log),
		Tokens:       authUC,
		Idempotency:  idem,
	}.Register(e)

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func pingRedis(ctx context.Context, rdb *redis.Client) error { return rdb.Ping(ctx).Err() }
