package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Errorf("shutdown tracer provider: %v", err)
		}
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func spanAttributes(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestTracingMiddleware(t *testing.T) {
	exporter := setupTestTracer(t)
	userID := uuid.New()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TracingMiddleware())
	router.GET("/tasks/:id", func(c *gin.Context) {
		assert.True(t, trace.SpanFromContext(c.Request.Context()).SpanContext().IsValid())
		c.Set(UserIDKey, userID)
		c.Status(http.StatusOK)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	t.Run("records route and status", func(t *testing.T) {
		exporter.Reset()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/tasks/42", nil)
		router.ServeHTTP(w, req)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, "GET /tasks/:id", span.Name)
		assert.Equal(t, trace.SpanKindServer, span.SpanKind)

		attrs := spanAttributes(span)
		assert.Equal(t, "/tasks/:id", attrs["http.route"].AsString())
		assert.Equal(t, "/tasks/42", attrs["url.path"].AsString())
		assert.Equal(t, int64(http.StatusOK), attrs["http.response.status_code"].AsInt64())
		assert.Equal(t, userID.String(), attrs["enduser.id"].AsString())
		assert.Equal(t, codes.Unset, span.Status.Code)
	})

	t.Run("server errors mark the span", func(t *testing.T) {
		exporter.Reset()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
		router.ServeHTTP(w, req)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
	})

	t.Run("unmatched routes", func(t *testing.T) {
		exporter.Reset()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/nowhere", nil)
		router.ServeHTTP(w, req)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "GET unmatched", spans[0].Name)
	})
}
