package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("gameday-rotation/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

var pathParamAttributes = map[string]attribute.Key{
	"groupID":       "gameday.group_id",
	"gameID":        "gameday.game_id",
	"playerID":      "gameday.player_id",
	"participantID": "gameday.participant_id",
}

// startSpan opens a handler span under the request span. Untraced requests
// (health probes, metrics, live sockets) get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// pathParam reads a route parameter and tags span with it.
func pathParam(span trace.Span, r *http.Request, name string) string {
	value := strings.TrimSpace(r.PathValue(name))
	if key, ok := pathParamAttributes[name]; ok && value != "" {
		span.SetAttributes(key.String(value))
	}
	return value
}
