package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/goodfoods/goodfoods/configs"
	"github.com/goodfoods/goodfoods/internal/adapter/inbound/httpapi"
	"github.com/goodfoods/goodfoods/internal/adapter/inbound/mcpsrv"
	"github.com/goodfoods/goodfoods/internal/adapter/outbound/openaigw"
	"github.com/goodfoods/goodfoods/internal/adapter/outbound/smtpmail"
	"github.com/goodfoods/goodfoods/internal/adapter/outbound/sqlitestore"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// === Logging ===
	logLevel := cfg.ParsedLogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	logger.Info("Logger initialized.", slog.String("level", logLevel.String()))

	// === OpenTelemetry Initialization ===
	shutdownOtel, err := initOtelProvider(cfg)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry TracerProvider.", slog.Any("error", err))
		}
	}()

	// === Storage ===
	store, err := sqlitestore.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("Failed to open database.", slog.String("path", cfg.DatabasePath), slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.SeedFile != "" {
		if err := store.Seed(ctx, cfg.SeedFile); err != nil {
			logger.Warn("Venue seeding failed, starting with current catalogue.", slog.Any("error", err))
		}
	}
	venueStore := store.Venues()
	reservationStore := store.Reservations()

	// === Dependency Injection ===
	notifier := smtpmail.New(smtpmail.Config{
		Enabled:   cfg.SMTPEnabled,
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		User:      cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		FromName:  cfg.SMTPFromName,
	}, logger)

	model := openaigw.New(openaigw.Config{
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	}, logger)

	reservationsUC := usecase.NewReservationsUseCase(venueStore, reservationStore, notifier, logger)

	registry, err := usecase.DefaultRegistry(venueStore, reservationsUC, logger)
	if err != nil {
		logger.Error("Failed to build tool registry.", slog.Any("error", err))
		os.Exit(1)
	}
	executor := usecase.NewToolExecutor(registry, logger)
	agentUC := usecase.NewProcessMessageUseCase(model, registry, executor, logger)
	logger.Info("Dependencies initialized.", slog.Int("tools", len(registry.Specs())), slog.String("model", cfg.LLMModel))

	// === HTTP Server ===
	mux := http.NewServeMux()
	handlers := httpapi.NewHandlers(agentUC, reservationsUC, venueStore, logger)
	handlers.RegisterRoutes(mux)
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
	go func() {
		logger.Info("HTTP server starting.", slog.String("address", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed to start.", slog.Any("error", err))
			stop()
		}
	}()

	// === Optional MCP Tool Surface ===
	var mcpServer *mcpsrv.Server
	if cfg.MCPListenAddr != "" {
		mcpServer = mcpsrv.New(registry, executor, cfg.MCPListenAddr, logger)
		go func() {
			if err := mcpServer.Start(cfg.MCPListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP SSE server failed to start.", slog.Any("error", err))
			}
		}()
	}

	// Wait for interrupt signal.
	<-ctx.Done()

	// === Server Shutdown ===
	logger.Info("Shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed.", slog.Any("error", err))
	}
	if mcpServer != nil {
		if err := mcpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP SSE server graceful shutdown failed.", slog.Any("error", err))
		}
	}
	logger.Info("Servers shut down gracefully.")
}

// initOtelProvider initializes the OpenTelemetry SDK and sets up the OTLP trace exporter.
// It returns a shutdown function to be called on application exit.
func initOtelProvider(cfg *configs.Config) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	slog.Info("Initializing OTLP exporter.", slog.String("endpoint", cfg.OtelExporterOtlpEndpoint))

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("goodfoods"),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("OpenTelemetry TracerProvider configured.")

	return func(ctx context.Context) error {
		providerErr := tp.Shutdown(ctx)
		connErr := conn.Close()
		if providerErr != nil {
			return providerErr
		}
		return connErr
	}, nil
}
