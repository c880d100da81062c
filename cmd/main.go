package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	authapp "github.com/muhammadheryan/sample-api/application/auth"
	userapp "github.com/muhammadheryan/sample-api/application/user"
	"github.com/muhammadheryan/sample-api/cmd/config"
	redisclient "github.com/muhammadheryan/sample-api/cmd/redis"
	_ "github.com/muhammadheryan/sample-api/docs"
	"github.com/muhammadheryan/sample-api/migrations"
	"github.com/muhammadheryan/sample-api/repository/dbhelper"
	redisRepo "github.com/muhammadheryan/sample-api/repository/redis"
	userRepo "github.com/muhammadheryan/sample-api/repository/user"
	"github.com/muhammadheryan/sample-api/thirdparty/rabbitmq"
	"github.com/muhammadheryan/sample-api/transport"
	"github.com/muhammadheryan/sample-api/utils/logger"
	validatorx "github.com/muhammadheryan/sample-api/utils/validator"
	"go.uber.org/zap"
)

// @title Sample API
// @version 1.0
// @description User management API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations before serving")
	flag.Parse()

	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))
	validatorx.Init()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("err init auth", zap.Error(authapp.ErrEmptySigningKey))
	}

	ctx := context.Background()

	// Resolve database credentials, from the secret store outside Local
	var fetch config.SecretFetcher
	if !cfg.IsLocal() {
		f, err := config.NewSecretsManagerFetcher(ctx, cfg.AWS)
		if err != nil {
			logger.Error("err init secrets manager", zap.Error(err))
		} else {
			fetch = f
		}
	}
	creds := config.ResolveDatabase(ctx, cfg, fetch)

	// Connect to database
	db, err := sqlx.Connect("mysql", creds.DSN())
	if err != nil {
		logger.Fatal("err connect db", zap.String("database", creds.String()), zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if *migrate {
		if err := migrations.Up(ctx, db.DB); err != nil {
			logger.Fatal("err migrate db", zap.Error(err))
		}
	}

	// Initialize Redis client
	var RedisRepo redisRepo.Repository
	if cfg.Redis.Enabled {
		if err := redisclient.New(cfg); err != nil {
			logger.Fatal("err connect redis", zap.Error(err))
		}
		defer func() {
			_ = redisclient.Close()
		}()
		RedisRepo = redisRepo.NewRepository()
	}

	// Initialize event publisher
	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// Initialize repositories
	helper := dbhelper.NewHelper(db, cfg.Database.CommandTimeout)
	procedures := dbhelper.NewProcedureHelper(db, cfg.Database.CommandTimeout)
	UserRepo := userRepo.NewUserRepository(helper, procedures)

	// Initialize application layers
	UserApp := userapp.NewUserApp(UserRepo, publisher)
	AuthApp, err := authapp.NewAuthApp(cfg, RedisRepo)
	if err != nil {
		logger.Fatal("err init auth", zap.Error(err))
	}

	httpTransport := transport.NewTransport(UserApp, AuthApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutdown server", zap.Error(err))
	}
}
