package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bakabot/internal/auth"
	"github.com/heartmarshall/bakabot/pkg/ctxutil"
)

// tracer records entry and exit of a named layer.
func tracer(name string, mu *sync.Mutex, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			*order = append(*order, name+">")
			mu.Unlock()
			next.ServeHTTP(w, r)
			mu.Lock()
			*order = append(*order, "<"+name)
			mu.Unlock()
		})
	}
}

func TestChain_ServerThenAPIOrder(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		order []string
	)
	api := Chain(tracer("auth", &mu, &order), tracer("limit", &mu, &order))
	server := Chain(tracer("request_id", &mu, &order), tracer("logger", &mu, &order), tracer("recovery", &mu, &order))

	h := server(api(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, "baka")
		mu.Unlock()
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/baka", nil))

	want := []string{
		"request_id>", "logger>", "recovery>", "auth>", "limit>",
		"baka",
		"<limit", "<auth", "<recovery", "<logger", "<request_id",
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v\nwant    %v", order, want)
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Chain()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

// The production stack: request id and client id must reach both the panic
// log and the access log, and the access log must see the recovered 500.
func TestChain_ProductionStack_PanicInHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := jsonLogger(&buf)

	clientID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (auth.Client, error) {
			return auth.Client{ID: clientID, Name: "ci"}, nil
		},
	}
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	var seenRequestID string
	api := Chain(Auth(validator), rl.Limit("api", 10, KeyByClient))
	h := Chain(RequestID(), Logger(logger), Recovery(logger))(api(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRequestID = ctxutil.RequestIDFromCtx(r.Context())
		panic("extractor blew up")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/baka", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if seenRequestID != "req-7" {
		t.Errorf("handler request id = %q, want %q", seenRequestID, "req-7")
	}

	var panicLog, accessLog map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		switch entry["msg"] {
		case "panic recovered":
			panicLog = entry
		case "http.request":
			accessLog = entry
		}
	}
	if panicLog == nil || accessLog == nil {
		t.Fatalf("missing log entries: %s", buf.String())
	}
	if panicLog["request_id"] != "req-7" {
		t.Errorf("panic log request_id = %v", panicLog["request_id"])
	}
	if accessLog["request_id"] != "req-7" {
		t.Errorf("access log request_id = %v", accessLog["request_id"])
	}
	if accessLog["status"] != float64(http.StatusInternalServerError) {
		t.Errorf("access log status = %v, want 500", accessLog["status"])
	}
	if accessLog["client_id"] != clientID.String() {
		t.Errorf("access log client_id = %v, want %s", accessLog["client_id"], clientID)
	}
	if accessLog["level"] != "ERROR" {
		t.Errorf("access log level = %v, want ERROR", accessLog["level"])
	}
}
