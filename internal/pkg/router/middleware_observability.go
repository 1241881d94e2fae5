package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/gopost/internal/pkg/config"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// maxLoggedBodyBytes bounds how much of each body is copied into logs.
const maxLoggedBodyBytes = 32 * 1024

// bodyTap keeps the first maxLoggedBodyBytes written to it.
type bodyTap struct {
	buf    bytes.Buffer
	capped bool
}

func (t *bodyTap) Write(p []byte) (int, error) {
	if room := maxLoggedBodyBytes - t.buf.Len(); len(p) > room {
		p = p[:max(room, 0)]
		t.capped = true
	}
	t.buf.Write(p)
	return len(p), nil
}

// loggable renders the captured body for a log attribute: raw JSON so the
// log handler can mask fields, otherwise a bounded string.
func (t *bodyTap) loggable() any {
	body := t.buf.Bytes()
	switch {
	case len(body) == 0:
		return nil
	case !t.capped && json.Valid(body):
		return json.RawMessage(body)
	case !utf8.Valid(body):
		return "<binary body omitted>"
	case t.capped:
		return string(body) + "...(truncated)"
	default:
		return string(body)
	}
}

// responseRecorder captures status, size, body and the handler error.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	tap    bodyTap
	err    error
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	_, _ = w.tap.Write(p)
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// SetError lets the endpoint wrapper and the recoverer attach the failure to the span.
func (w *responseRecorder) SetError(err error) { w.err = err }

func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// tapRequestBody copies the head of the body for logging and leaves r.Body
// readable from the start.
func tapRequestBody(r *http.Request) *bodyTap {
	tap := &bodyTap{}
	if r.Body == nil || r.Body == http.NoBody {
		return tap
	}

	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), r.Body))
	_, _ = tap.Write(head)
	return tap
}

func redactHeaders(headers http.Header, keys []string) http.Header {
	out := headers.Clone()
	for _, key := range keys {
		if out.Get(key) != "" {
			out.Set(key, "***")
		}
	}
	return out
}

type httpObserver struct {
	tracer      trace.Tracer
	propagator  propagation.TextMapPropagator
	requests    metric.Int64Counter
	duration    metric.Float64Histogram
	maskHeaders []string
}

func newHTTPObserver(cfg config.Config, ins instrument.Instrumentation) *httpObserver {
	o := &httpObserver{
		tracer:      ins.Tracer("http.server"),
		propagator:  otel.GetTextMapPropagator(),
		maskHeaders: []string{"Cookie", "Set-Cookie", "Authorization"},
	}
	if cfg != nil {
		o.maskHeaders = append(o.maskHeaders, cfg.GetArray("instrument.log_mask_fields")...)
	}

	meter := ins.Meter("http.server")
	var err error
	if o.requests, err = meter.Int64Counter("http.server.request.count",
		metric.WithDescription("HTTP requests served")); err != nil {
		slog.Error("create http request counter", "error", err)
	}
	if o.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s")); err != nil {
		slog.Error("create http duration histogram", "error", err)
	}

	return o
}

func (o *httpObserver) record(r *http.Request, rec *responseRecorder, span trace.Span, route string, elapsed time.Duration) {
	status := rec.statusCode()
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
		semconv.HTTPResponseStatusCodeKey.Int(status),
	}

	if rec.err != nil {
		span.RecordError(rec.err)
	}
	if status >= http.StatusInternalServerError {
		desc := http.StatusText(status)
		if rec.err != nil {
			desc = rec.err.Error()
		}
		span.SetStatus(codes.Error, desc)
	}
	span.SetAttributes(attrs...)
	span.SetAttributes(
		semconv.NetworkProtocolVersionKey.String(strings.TrimPrefix(r.Proto, "HTTP/")),
		semconv.ServerAddressKey.String(r.Host),
		semconv.UserAgentOriginalKey.String(r.UserAgent()),
		attribute.Int("http.response.body.size", rec.bytes),
	)

	ctx := r.Context()
	if o.requests != nil {
		o.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if o.duration != nil {
		o.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
	}
}

// middlewareObservability continues any inbound W3C trace, opens a server
// span per request, logs request and response with masked headers and
// bodies, and records request count and duration.
func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	o := newHTTPObserver(cfg, ins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx := o.propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := o.tracer.Start(ctx, r.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			r = r.WithContext(ctx)

			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"headers", redactHeaders(r.Header, o.maskHeaders),
				"body", tapRequestBody(r).loggable(),
			)

			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			o.record(r, rec, span, route, elapsed)

			slog.InfoContext(ctx, "response sent",
				"method", r.Method,
				"path", route,
				"status", rec.statusCode(),
				"bytes", rec.bytes,
				"latency_ms", elapsed.Milliseconds(),
				"body", rec.tap.loggable(),
			)
		})
	}
}
