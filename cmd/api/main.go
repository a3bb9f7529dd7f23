package main

import (
	"context"
	goerrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	apperrors "github.com/meetinglens/meetinglens/errors"
	"github.com/meetinglens/meetinglens/internal/adapter/dto"
	"github.com/meetinglens/meetinglens/internal/adapter/handler"
	"github.com/meetinglens/meetinglens/internal/infrastructure/cache"
	"github.com/meetinglens/meetinglens/internal/infrastructure/storage"
	"github.com/meetinglens/meetinglens/internal/usecase/analysis"
	"github.com/meetinglens/meetinglens/internal/usecase/session"
	"github.com/meetinglens/meetinglens/pkg/ai"
	"github.com/meetinglens/meetinglens/pkg/config"
	pkgvalidator "github.com/meetinglens/meetinglens/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger := newLogger(cfg.Server.Environment)
	defer logger.Sync()

	if !cfg.ValidateAPIKey() {
		logger.Warn("transcription credentials missing or malformed, analysis requests will be rejected")
	}

	sessionStore, err := cache.NewSessionStore(&cfg.Redis, cfg.GetRedisAddr(), logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer sessionStore.Close()

	var archiver analysis.Archiver
	if cfg.Storage.Endpoint != "" {
		archive, err := storage.NewReportArchive(&cfg.Storage, logger)
		if err != nil {
			logger.Fatal("failed to connect to object storage", zap.Error(err))
		}
		archiver = archive
	} else {
		logger.Info("report archival disabled, no storage endpoint configured")
	}

	openaiClient := ai.NewOpenAIClient(&cfg.OpenAI)

	var transcriber analysis.Transcriber
	switch cfg.Analysis.TranscriberProvider {
	case "assemblyai":
		transcriber = analysis.NewAssemblyAITranscriber(ai.NewAssemblyAIClient(&cfg.Assembly), logger)
	default:
		transcriber = analysis.NewOpenAITranscriber(openaiClient, logger)
	}

	sessions := session.NewService(sessionStore, logger)
	pipeline := analysis.NewService(
		cfg,
		logger,
		analysis.NewNormalizer(&cfg.Analysis, logger),
		transcriber,
		analysis.NewExtractor(openaiClient, &cfg.Analysis, logger),
		sessions,
		archiver,
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = httpErrorHandler(e, logger)

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))

	handler.RegisterRoutes(
		e,
		cfg,
		handler.NewAnalysisController(cfg, logger, pipeline, sessions),
		handler.NewSessionController(sessions),
		handler.NewStatusController(cfg),
	)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

// httpErrorHandler maps application errors raised outside controllers, such as
// auth middleware rejections, to the standard error envelope.
func httpErrorHandler(e *echo.Echo, logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var appErr apperrors.AppError
		if goerrors.As(err, &appErr) {
			if !c.Response().Committed {
				if jsonErr := c.JSON(appErr.HTTPCode, dto.ErrorResponse{
					Code:    appErr.Code.String(),
					Message: appErr.Message,
					Details: appErr.Details,
				}); jsonErr != nil {
					logger.Error("failed to write error response", zap.Error(jsonErr))
				}
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
