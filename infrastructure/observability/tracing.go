package observability

import (
	"context"
	"fmt"

	"github.com/Kian-Chen/DSADesign/application/ports"
	"github.com/Kian-Chen/DSADesign/domain/social"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerProvider wraps the OpenTelemetry tracer provider
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing exports spans over OTLP/gRPC and installs the provider
// globally
func InitTracing(ctx context.Context, serviceName, environment, endpoint string) (*TracerProvider, error) {
	exporter, err := otlptrace.New(ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &TracerProvider{provider: tp, tracer: tp.Tracer(serviceName)}, nil
}

// Tracer returns the provider's tracer
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.tracer
}

// Shutdown flushes pending spans and stops the exporter
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.provider.Shutdown(ctx)
}

// TraceSnapshotStore wraps a snapshot store with tracing
func TraceSnapshotStore(store ports.SnapshotStore, tracer trace.Tracer, backend string) ports.SnapshotStore {
	return &tracedSnapshotStore{inner: store, tracer: tracer, backend: backend}
}

type tracedSnapshotStore struct {
	inner   ports.SnapshotStore
	tracer  trace.Tracer
	backend string
}

func (s *tracedSnapshotStore) Save(ctx context.Context, snapshot social.Snapshot) error {
	ctx, span := s.tracer.Start(ctx, "snapshot.Save",
		trace.WithAttributes(
			attribute.String("store.backend", s.backend),
			attribute.Int("snapshot.users", len(snapshot.Users)),
			attribute.Int("snapshot.friendships", len(snapshot.Friendships)),
		),
	)
	defer span.End()

	err := s.inner.Save(ctx, snapshot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *tracedSnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "snapshot.Load",
		trace.WithAttributes(attribute.String("store.backend", s.backend)),
	)
	defer span.End()

	snapshot, err := s.inner.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("snapshot.found", snapshot != nil))
	return snapshot, nil
}
