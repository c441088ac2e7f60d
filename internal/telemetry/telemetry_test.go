package telemetry

import (
	"context"
	"testing"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestGameSpanRecordsOutcome(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	_, span := StartGame(context.Background(), "session-1", 20)
	EndGame(span, game.GameOverEvent{FinalScore: 3, Reason: game.ReasonWall, Length: 4})

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "game.session", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "session-1", attrs["session.id"].AsString())
	assert.Equal(t, int64(3), attrs["game.score"].AsInt64())
	assert.Equal(t, "wall", attrs["game.reason"].AsString())
	assert.False(t, attrs["game.won"].AsBool())
}
