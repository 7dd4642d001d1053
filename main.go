package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mondaydiag/api"
	"mondaydiag/integrations"
)

func main() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.SetDefault("monday.api_url", "https://api.monday.com/v2")
	viper.SetDefault("monday.status_column_key", "deal_stage")
	viper.SetDefault("monday.webhook_column_id", "color_mktrw6k3")
	if err := viper.ReadInConfig(); err != nil {
		zap.L().Fatal("Error reading config file", zap.Error(err))
	}

	apiToken := viper.GetString("monday.api_token")
	if apiToken == "" {
		zap.L().Fatal("monday.api_token is not configured")
	}
	boardID := viper.GetString("monday.board_id")
	if boardID == "" {
		zap.L().Fatal("monday.board_id is not configured")
	}

	port := viper.GetString("server.port")
	if port == "" {
		port = "8080"
	}

	mondayClient := integrations.NewMondayClient(viper.GetString("monday.api_url"), apiToken)

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(api.RecoveryWithEnvelope(logger))

	apiHandler := &api.Handler{
		Monday:          mondayClient,
		BoardID:         boardID,
		StatusColumnKey: viper.GetString("monday.status_column_key"),
		WebhookColumnID: viper.GetString("monday.webhook_column_id"),
	}
	apiGroup := router.Group("/api")
	{
		// monday pings integrations with assorted verbs, so the
		// diagnostic endpoint accepts any method.
		apiGroup.Any("/diagnostics/status-column", apiHandler.StatusColumnDiagnosticsHandler)
		apiGroup.GET("/health", apiHandler.HealthCheckHandler)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	zap.L().Info("Starting server",
		zap.String("port", port),
		zap.String("boardID", boardID))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// if a second signal is caught, exit immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
