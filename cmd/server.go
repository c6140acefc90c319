package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polyglotkit/polyglot/config"
	"github.com/polyglotkit/polyglot/controller"
	"github.com/polyglotkit/polyglot/text"
	"github.com/polyglotkit/polyglot/utils"
)

func readConfig(configFile string) (*viper.Viper, *config.Envelope) {
	viperInstance := viper.New()
	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.SetConfigName("config")
		viperInstance.SetConfigType("yaml")
		viperInstance.AddConfigPath("/etc/polyglot/")
		viperInstance.AddConfigPath("$HOME/.polyglot")
		viperInstance.AddConfigPath("./config")
	}
	viperInstance.SetEnvPrefix("POLYGLOT")
	viperInstance.AutomaticEnv()
	err := viperInstance.ReadInConfig()
	if err != nil {
		logger.WithError(err).Fatal("fatal error config file")
	}
	logger.Infof("Using config file: %s", viperInstance.ConfigFileUsed())
	// Set default values
	viperInstance.SetDefault("server.address", ":8080")
	viperInstance.SetDefault("detector.preset", "all")
	envelope, err := config.LoadConfigFromFile(viperInstance.ConfigFileUsed())
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse configuration")
	}
	return viperInstance, envelope
}

func NewServerCommand() *cobra.Command {
	var configFile string

	serverCommand := &cobra.Command{
		Use:   "server",
		Short: "Starting server",
		Run: func(cmd *cobra.Command, args []string) {
			echoServer := echo.New()
			viperInstance, envelope := readConfig(configFile)

			detectorConfig := envelope.Detector
			if detectorConfig.Preset == "" && len(detectorConfig.Languages) == 0 {
				detectorConfig.Preset = viperInstance.GetString("detector.preset")
			}
			detector, err := buildDetector(detectorConfig)
			if err != nil {
				logger.WithError(err).Fatal("Failed to build language detector")
			}
			logger.Infof("Built language detector with %d language(s)", len(detector.Languages()))

			var normalizer text.Normalizer
			if envelope.Server.NormalizeInput {
				normalizer = text.NewUnicodeNormalizer(true)
				logger.Info("Input normalization enabled")
			}
			c := controller.NewController(detector, normalizer)

			echoServer.Use(echoprometheus.NewMiddleware("polyglot"))
			// Set routes
			echoServer.GET("/metrics", echoprometheus.NewHandler())
			echoServer.GET("/health", func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			})
			echoServer.Use(middleware.CORS()) // Enable CORS for all origins
			echoServer.Use(middleware.Recover())

			// RESTful API routes
			apiGroup := echoServer.Group("/api/v1")
			apiGroup.Use(middleware.RequestID())

			// Apply Bearer Token authentication if tokens are configured
			tokens := viperInstance.GetStringSlice("server.tokens")
			if len(tokens) == 0 {
				tokens = envelope.Server.Tokens
			}
			if len(tokens) > 0 {
				logger.Infof("Bearer token authentication enabled with %d token(s)", len(tokens))
				apiGroup.Use(utils.CreateBearerTokenMiddleware(tokens))
			} else {
				logger.Warn("Bearer token authentication disabled - no tokens configured")
			}

			// Language queries
			apiGroup.GET("/languages", c.ListLanguages)

			// Detection
			detectGroup := apiGroup.Group("/detect")
			detectGroup.POST("", c.DetectLanguage)
			detectGroup.POST("/batch", c.DetectLanguages)
			detectGroup.POST("/mixed", c.DetectMultipleLanguages)
			detectGroup.POST("/mixed/batch", c.DetectMultipleLanguagesBatch)

			// Confidence scoring
			confidenceGroup := apiGroup.Group("/confidence")
			confidenceGroup.POST("", c.LanguageConfidenceValues)
			confidenceGroup.POST("/batch", c.LanguageConfidenceValuesBatch)
			confidenceGroup.POST("/language", c.LanguageConfidence)
			confidenceGroup.POST("/language/batch", c.LanguageConfidenceBatch)

			// Model management
			apiGroup.POST("/models/unload", c.UnloadModels)

			// Start server in a goroutine
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				addr := viperInstance.GetString("server.address")
				logger.Infof("Starting server on %s", addr)
				if err := echoServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("Server start error")
				}
			}()

			// Wait for interrupt signal to gracefully shutdown the server with a timeout
			<-ctx.Done()
			stop()
			logger.Info("Shutting down server gracefully, press Ctrl+C again to force")

			// Graceful shutdown with timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := echoServer.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Server forced to shutdown")
			}

			// Close controller resources
			if err := c.Close(); err != nil {
				logger.WithError(err).Error("Failed to close controller")
			}

			logger.Info("Server stopped gracefully")
		},
	}
	serverCommand.Flags().StringVar(&configFile, "config", "", "Path to config file")
	return serverCommand
}
