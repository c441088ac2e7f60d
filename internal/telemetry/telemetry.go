// Package telemetry provides OpenTelemetry tracing for game sessions.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/Mshel/gridsnake/internal/game"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "gridsnake"
	serviceVersion = "0.1.0"
)

// Setup installs an OTLP HTTP exporter configured from the standard OTEL_*
// environment variables. The returned function flushes and shuts it down.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer. Without Setup it is a no-op.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// StartGame opens the span covering one game, from start to game over.
func StartGame(ctx context.Context, sessionID string, gridSize int) (context.Context, trace.Span) {
	return Tracer("game").Start(ctx, "game.session",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.Int("game.grid_size", gridSize),
		),
	)
}

// EndGame records the outcome on span and ends it.
func EndGame(span trace.Span, event game.GameOverEvent) {
	span.SetAttributes(
		attribute.Int("game.score", event.FinalScore),
		attribute.Int("game.length", event.Length),
		attribute.String("game.reason", event.Reason.String()),
		attribute.Bool("game.won", event.Won()),
	)
	span.End()
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
