package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/appmarket/matchcore/common/id"
	"github.com/appmarket/matchcore/common/logger"
	"github.com/appmarket/matchcore/common/otel"
	"github.com/appmarket/matchcore/core/config"
	"github.com/appmarket/matchcore/core/db"
	"github.com/appmarket/matchcore/internal/backlog"
	"github.com/appmarket/matchcore/internal/catalog"
	"github.com/appmarket/matchcore/internal/httpapi"
	"github.com/appmarket/matchcore/internal/llmgateway"
	"github.com/appmarket/matchcore/internal/matcher"
	"github.com/appmarket/matchcore/internal/question"
	"github.com/appmarket/matchcore/internal/requirement"
	"github.com/appmarket/matchcore/internal/scorer"
	"github.com/appmarket/matchcore/internal/session"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := config.Load()

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "matchcore starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.SnowflakeNodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var embeddingCache llmgateway.EmbeddingCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "addr", cfg.Redis.Addr)
		embeddingCache = llmgateway.NewRedisEmbeddingCache(redisClient)
	}

	gateway, err := llmgateway.New(llmgateway.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	}, embeddingCache)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build llm gateway", "error", err)
		os.Exit(1)
	}

	typesenseClient := catalog.NewTypesenseClient(cfg.Typesense.URL, cfg.Typesense.APIKey)
	catalogReader := catalog.NewHybridCatalog(typesenseClient, database.Queries())

	matchController := matcher.New(
		requirement.New(gateway),
		session.New(),
		question.New(),
		gateway,
		catalogReader,
		scorer.New(),
	)

	backlogReader := catalog.NewPostgresReader(database.Queries())
	backlogMatcher := backlog.NewMatcher(backlogReader, gateway, nil)
	backlogWriter := backlog.NewWriter(database, gateway)
	backlogPipeline := backlog.NewPipeline(gateway, backlogMatcher, backlogWriter, slog.Default())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, matchController, backlogPipeline)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, controller matcher.Controller, pipeline *backlog.Pipeline) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(httpapi.Recovery())
	router.Use(httpapi.RequestLogger())

	matchHandler := httpapi.NewMatchHandler(controller)
	backlogHandler := httpapi.NewBacklogHandler(pipeline)
	httpapi.SetupRoutes(router, matchHandler, backlogHandler)

	return router
}

const banner = `
███╗   ███╗ █████╗ ████████╗ ██████╗██╗  ██╗ ██████╗ ██████╗ ██████╗ ███████╗
████╗ ████║██╔══██╗╚══██╔══╝██╔════╝██║  ██║██╔════╝██╔═══██╗██╔══██╗██╔════╝
██╔████╔██║███████║   ██║   ██║     ███████║██║     ██║   ██║██████╔╝█████╗
██║╚██╔╝██║██╔══██║   ██║   ██║     ██╔══██║██║     ██║   ██║██╔══██╗██╔══╝
██║ ╚═╝ ██║██║  ██║   ██║   ╚██████╗██║  ██║╚██████╗╚██████╔╝██║  ██║███████╗
╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝
`
