package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"insight-mcp-server/internal/application"
	"insight-mcp-server/internal/domain"
	"insight-mcp-server/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logFile := flag.String("log-file", "", "Path to log file (defaults to stderr)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := buildLogger(*logFile, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.String("config_path", *configPath),
		zap.String("mode", config.Mode))

	providers := infrastructure.NewProviderSet(config)
	for capability, binding := range providers.Bindings {
		logger.Info("provider bound",
			zap.String("capability", capability),
			zap.String("binding", binding))
	}

	mapper := domain.NewResponseMapper()

	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		logger.Info("initializing stdio transport")
		transport = domain.NewStdioTransport()
	case "http":
		logger.Info("initializing HTTP transport",
			zap.String("host", config.Transport.HTTP.Host),
			zap.Int("port", config.Transport.HTTP.Port))
		transport = domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port)
	default:
		logger.Fatal("invalid transport type", zap.String("type", config.Transport.Type))
	}

	bridge := application.NewClientBridge(transport, config.Timeout(), logger)

	router := application.NewToolRouter(logger,
		application.NewTextToolsHandler(providers.Completion, mapper),
		application.NewSearchHandler(providers.Search, mapper),
		application.NewWeatherHandler(providers.Weather, mapper),
		application.NewInteractiveHandler(bridge, mapper),
	)
	logger.Info("tool router initialized", zap.Int("tools", len(router.ListAllTools())))

	resources := application.NewResourceRegistry(config, router)
	prompts := application.NewPromptRegistry()

	server := application.NewServer(transport, router, bridge, resources, prompts, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errChan:
		logger.Error("server error", zap.Error(err))
		cancel()
		if err := server.Close(); err != nil {
			logger.Error("error closing server", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}

	if err := server.Close(); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

// buildLogger constructs the process logger. Logs always go to stderr or a
// file; stdout belongs to the stdio transport and must stay clean.
func buildLogger(path, level string) (*zap.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}

	return cfg.Build()
}

// parseLogLevel converts a level name to a zap level.
func parseLogLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
