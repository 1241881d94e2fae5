package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/gopost/internal/pkg/config"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type created struct {
	ID int64 `json:"id"`
}

func (created) StatusCode() int { return http.StatusCreated }

func serve(t *testing.T, ro *Router, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Codecs(t *testing.T) {
	ro := NewRouter(Config{UUID: fixedID("cid-generated")})

	ro.GET("/items/:id", func(r *Request) (any, error) {
		id, err := r.GetParamInt64("id")
		if err != nil {
			return nil, err
		}
		switch id {
		case 1:
			return map[string]int64{"id": id}, nil
		case 2:
			return nil, nil
		case 3:
			return nil, goerror.NewNoRecord("No item by id found")
		case 4:
			return nil, goerror.NewServer(errors.New("db down"))
		case 5:
			return nil, errors.New("plain")
		default:
			panic("boom")
		}
	})
	ro.POST("/items", func(r *Request) (any, error) {
		var in struct {
			Name *string `json:"name"`
		}
		if err := r.DecodeBody(&in); err != nil {
			return nil, err
		}
		if in.Name == nil {
			return nil, goerror.NewMissingField("Name is required")
		}
		return created{ID: 9}, nil
	})
	ro.POST("/login", func(*Request) (any, error) {
		return Empty{
			Status:   http.StatusFound,
			Location: "/signup",
			Cookies:  []*http.Cookie{{Name: "sid", Value: "v"}},
		}, nil
	})

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "found", method: http.MethodGet, target: "/items/1", wantCode: 200, wantBody: `{"data":{"id":1}}`},
		{name: "absent", method: http.MethodGet, target: "/items/2", wantCode: 404, wantBody: `{"data":null}`},
		{name: "no record", method: http.MethodGet, target: "/items/3", wantCode: 404, wantBody: `{"code":"NO_RECORD","message":"No item by id found"}`},
		{name: "bad param", method: http.MethodGet, target: "/items/abc", wantCode: 400, wantBody: `{"code":"INVALID_FORMAT","message":"param must integer value"}`},
		{name: "created", method: http.MethodPost, target: "/items", body: `{"name":"x","extra":true}`, wantCode: 201, wantBody: `{"data":{"id":9}}`},
		{name: "missing field", method: http.MethodPost, target: "/items", body: `{}`, wantCode: 400, wantBody: `{"code":"MISSING_FIELD","message":"Name is required"}`},
		{name: "malformed", method: http.MethodPost, target: "/items", body: `{"name":`, wantCode: 400, wantBody: `{"code":"INVALID_FORMAT","message":"Invalid request body"}`},
		{name: "trailing data", method: http.MethodPost, target: "/items", body: `{"name":"x"}{}`, wantCode: 400, wantBody: `{"code":"INVALID_FORMAT","message":"Invalid request body"}`},
		{name: "health", method: http.MethodGet, target: "/health", wantCode: 200, wantBody: `{"data":{"status":"ok"}}`},
		{name: "unknown route", method: http.MethodGet, target: "/nope", wantCode: 404, wantBody: `{"code":"NOT_FOUND","message":"endpoint not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, ro, tt.method, tt.target, tt.body, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}

	for _, target := range []string{"/items/4", "/items/5", "/items/6"} {
		t.Run("server error "+target, func(t *testing.T) {
			rec := serve(t, ro, http.MethodGet, target, "", nil)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}

	t.Run("empty response", func(t *testing.T) {
		rec := serve(t, ro, http.MethodPost, "/login", "", nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signup", rec.Header().Get("Location"))
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid=v")
		assert.Empty(t, rec.Body.String())
	})
}

func TestRouter_CorrelationID(t *testing.T) {
	ro := NewRouter(Config{UUID: fixedID("cid-generated")})

	rec := serve(t, ro, http.MethodGet, "/health", "", nil)
	assert.Equal(t, "cid-generated", rec.Header().Get(HeaderCorrelationID))

	rec = serve(t, ro, http.MethodGet, "/health", "", http.Header{HeaderRequestID: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderCorrelationID))

	rec = serve(t, ro, http.MethodGet, "/health", "", http.Header{HeaderCorrelationID: {"bad id"}})
	assert.Equal(t, "cid-generated", rec.Header().Get(HeaderCorrelationID))
}

type resolverFunc func(r *http.Request) *http.Request

func (f resolverFunc) Resolve(r *http.Request) *http.Request { return f(r) }

type ctxKey struct{}

func contextWith(r *http.Request, v string) context.Context {
	return context.WithValue(r.Context(), ctxKey{}, v)
}

func TestRouter_Session(t *testing.T) {
	ro := NewRouter(Config{Sessions: resolverFunc(func(r *http.Request) *http.Request {
		if c, err := r.Cookie("sid"); err == nil {
			return r.WithContext(contextWith(r, c.Value))
		}
		return r
	})})

	ro.GET("/me", func(r *Request) (any, error) {
		v, _ := r.Context().Value(ctxKey{}).(string)
		return map[string]string{"sid": v}, nil
	})

	rec := serve(t, ro, http.MethodGet, "/me", "", http.Header{"Cookie": {"sid=s1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"sid":"s1"}}`, rec.Body.String())
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", realIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.2")
	assert.Equal(t, "203.0.113.7", realIP(r))

	r.Header.Set("X-Real-IP", "garbage")
	assert.Equal(t, "203.0.113.7", realIP(r))

	r.Header.Set("True-Client-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", realIP(r))

	mapped := httptest.NewRequest(http.MethodGet, "/", nil)
	mapped.RemoteAddr = "[::ffff:192.0.2.9]:443"
	assert.Equal(t, "192.0.2.9", realIP(mapped))
}

func TestRouter_Maintenance(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: "DELETE /items/:id, /reports"
`))
	require.NoError(t, err)

	ro := NewRouter(Config{Config: cfg, UUID: fixedID("cid")})
	ok := func(*Request) (any, error) { return map[string]bool{"ok": true}, nil }
	ro.GET("/items/:id", ok)
	ro.DELETE("/items/:id", ok)
	ro.GET("/reports", ok)

	rec := serve(t, ro, http.MethodGet, "/items/1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, ro, http.MethodDelete, "/items/1", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":"UNAVAILABLE","message":"service is under maintenance"}`, rec.Body.String())

	rec = serve(t, ro, http.MethodGet, "/reports", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBodyTap(t *testing.T) {
	var empty bodyTap
	assert.Nil(t, empty.loggable())

	var js bodyTap
	_, _ = js.Write([]byte(`{"a":1}`))
	assert.Equal(t, json.RawMessage(`{"a":1}`), js.loggable())

	var text bodyTap
	_, _ = text.Write([]byte("plain"))
	assert.Equal(t, "plain", text.loggable())

	var big bodyTap
	n, _ := big.Write(bytes.Repeat([]byte("x"), maxLoggedBodyBytes+10))
	assert.Equal(t, maxLoggedBodyBytes, n)
	assert.True(t, big.capped)
	assert.True(t, strings.HasSuffix(big.loggable().(string), "...(truncated)"))

	var bin bodyTap
	_, _ = bin.Write([]byte{0xff, 0xfe})
	assert.Equal(t, "<binary body omitted>", bin.loggable())
}

func TestTapRequestBody_Rewinds(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"jane"}`))

	tap := tapRequestBody(r)
	assert.Equal(t, json.RawMessage(`{"username":"jane"}`), tap.loggable())

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"jane"}`, string(rest))
}
