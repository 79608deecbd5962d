package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/application/services"
	"github.com/Kian-Chen/DSADesign/domain/social"
	"github.com/Kian-Chen/DSADesign/infrastructure/config"
	"github.com/Kian-Chen/DSADesign/infrastructure/observability"
	"github.com/Kian-Chen/DSADesign/infrastructure/persistence/breaker"
	"github.com/Kian-Chen/DSADesign/infrastructure/persistence/dynamodb"
	"github.com/Kian-Chen/DSADesign/infrastructure/persistence/file"
	"github.com/Kian-Chen/DSADesign/infrastructure/persistence/memory"
	"github.com/Kian-Chen/DSADesign/interfaces/http/rest"
	"github.com/Kian-Chen/DSADesign/interfaces/http/rest/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceName = "dsa-design"

// ProvideLogLevel parses the configured log level into an adjustable level
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideTracer installs an OTLP exporter when tracing is enabled. Without
// it spans go to the global provider, which discards them.
func ProvideTracer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (trace.Tracer, func(), error) {
	if !cfg.EnableTracing {
		return otel.Tracer(serviceName), func() {}, nil
	}

	tp, err := observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.TracingEndpoint)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Tracing enabled", zap.String("endpoint", cfg.TracingEndpoint))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	return tp.Tracer(), cleanup, nil
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector("dsa")
}

// ProvideMetrics exposes the collector to the services unless metrics are
// switched off
func ProvideMetrics(cfg *config.Config, collector *observability.Collector) ports.Metrics {
	if !cfg.EnableMetrics {
		return ports.NoopMetrics{}
	}
	return collector
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points
// it at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideSnapshotStore selects the configured persistence backend and
// wraps it with tracing and, optionally, a circuit breaker
func ProvideSnapshotStore(ctx context.Context, cfg *config.Config, tracer trace.Tracer, logger *zap.Logger) (ports.SnapshotStore, error) {
	var store ports.SnapshotStore
	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewSnapshotStore(nil)
	case config.BackendFile:
		store = file.NewSnapshotStore(cfg.SnapshotFile, logger)
	case config.BackendDynamoDB:
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := ProvideDynamoDBClient(awsCfg, cfg)
		store = dynamodb.NewSnapshotStore(client, cfg.DynamoDBTable, cfg.SnapshotKey, logger)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}

	if cfg.BreakerEnabled && cfg.Backend != config.BackendMemory {
		bc := breaker.DefaultConfig("snapshot-" + cfg.Backend)
		bc.FailureThreshold = cfg.BreakerThreshold
		bc.Timeout = cfg.BreakerTimeout
		store = breaker.NewSnapshotStore(store, bc, logger)
	}

	logger.Info("Snapshot store ready",
		zap.String("backend", cfg.Backend),
		zap.Bool("breaker", cfg.BreakerEnabled && cfg.Backend != config.BackendMemory),
	)
	return observability.TraceSnapshotStore(store, tracer, cfg.Backend), nil
}

// ProvideSocialGraph builds the graph from the embedded seed dataset. Every
// friendship change is saved to store.
func ProvideSocialGraph(store ports.SnapshotStore) (*social.Graph, error) {
	seed, err := social.LoadSeed()
	if err != nil {
		return nil, err
	}
	return social.NewGraph(seed, store), nil
}

// ProvideSocialService creates the social service
func ProvideSocialService(
	graph *social.Graph,
	store ports.SnapshotStore,
	cfg *config.Config,
	metrics ports.Metrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *services.SocialService {
	return services.NewSocialService(graph, store, cfg.MaxRecommendations, metrics, tracer, logger)
}

// ProvideListService creates the list session service
func ProvideListService(cfg *config.Config, metrics ports.Metrics, logger *zap.Logger) *services.ListService {
	return services.NewListService(cfg.MaxListSessions, metrics, logger)
}

// ProvideHTTPHandler builds the HTTP router
func ProvideHTTPHandler(
	cfg *config.Config,
	lists *services.ListService,
	socialService *services.SocialService,
	collector *observability.Collector,
	logger *zap.Logger,
) http.Handler {
	options := rest.Options{
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.AllowedOrigins,
		Debug:          cfg.IsDevelopment(),
	}
	if cfg.RateLimitBurst > 0 {
		options.RateLimiter = middleware.NewTokenBucket(cfg.RateLimitBurst, cfg.RateLimitRefill)
		options.RetryAfter = cfg.RateLimitRefill
	}
	if cfg.EnableMetrics {
		options.Metrics = collector
		options.MetricsHandler = collector.Handler()
	}
	return rest.NewRouter(lists, socialService, options, logger).Setup()
}

// ProvideConfigWatcher hot reloads the log level when enabled
func ProvideConfigWatcher(cfg *config.Config, level zap.AtomicLevel, logger *zap.Logger) (*config.Watcher, func(), error) {
	if !cfg.WatchConfig {
		return nil, func() {}, nil
	}
	w, err := config.NewWatcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	w.OnChange(config.LevelUpdater(level, logger))
	return w, w.Stop, nil
}
