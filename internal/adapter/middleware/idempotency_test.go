package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"smartbikepass-backend/internal/domain/user"
)

const testKey = "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88"

// helper: new Echo with the middleware and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl, nil))
	e.POST("/api/apply", handler)
	e.GET("/api/apply", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validHeaders() map[string]string {
	return map[string]string{
		HeaderIdempotencyKey: testKey,
		HeaderRequestAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

func countingHandler(calls *int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusCreated, map[string]any{"pass_id": "SBPS-0000ABCD", "n": *calls})
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/api/apply", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_BypassWithoutKey(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls))

	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/api/apply", mkJSONBody(t, map[string]int{"x": 1}), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("requests without a key must all reach the handler, calls=%d", calls)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("nothing should be stored, got %v", mr.Keys())
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 30*time.Second, countingHandler(&calls))

	cases := map[string]map[string]string{
		"invalid key": {
			HeaderIdempotencyKey: "NOT-VALID",
			HeaderRequestAt:      time.Now().UTC().Format(time.RFC3339),
		},
		"missing request-at": {
			HeaderIdempotencyKey: testKey,
		},
		"invalid request-at": {
			HeaderIdempotencyKey: testKey,
			HeaderRequestAt:      "not-a-time",
		},
		"skewed request-at": {
			HeaderIdempotencyKey: testKey,
			HeaderRequestAt:      time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339),
		},
	}
	for name, h := range cases {
		rec := doReq(t, e, http.MethodPost, "/api/apply", mkJSONBody(t, map[string]int{"x": 1}), h)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s => want 400, got %d", name, rec.Code)
		}
	}
	if calls != 0 {
		t.Fatalf("handler must not run on header errors, calls=%d", calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls))

	rec1 := doReq(t, e, http.MethodPost, "/api/apply", mkJSONBody(t, map[string]any{"full_name": "Asha"}), validHeaders())
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	rec2 := doReq(t, e, http.MethodPost, "/api/apply", mkJSONBody(t, map[string]any{"full_name": "Asha"}), validHeaders())
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if rec2.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replayed response should be marked")
	}
	if !strings.HasPrefix(rec2.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Fatalf("replayed content type = %q", rec2.Header().Get(echo.HeaderContentType))
	}
	if calls != 1 {
		t.Fatalf("handler should run once, calls=%d", calls)
	}
}

func Test_KeyIsScopedToActor(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0

	e := echo.New()
	actor := "transport"
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, user.Identity{Username: actor, Role: user.RoleTransport})
			return next(c)
		}
	})
	e.Use(IdempotencyMiddleware(rdb, time.Minute, nil))
	e.POST("/api/transport/review/:pass_id", countingHandler(&calls))

	body := `{"action":"verify"}`
	doReq(t, e, http.MethodPost, "/api/transport/review/SBPS-0000ABCD", strings.NewReader(body), validHeaders())
	actor = "admin"
	doReq(t, e, http.MethodPost, "/api/transport/review/SBPS-0000ABCD", strings.NewReader(body), validHeaders())

	if calls != 2 {
		t.Fatalf("different actors must not share a key, calls=%d", calls)
	}
	want := buildKey(http.MethodPost, "/api/transport/review/:pass_id", "transport", testKey)
	if !mr.Exists(want) {
		t.Fatalf("expected key %q, have %v", want, mr.Keys())
	}
}

func Test_ServerErrorIsNotRemembered(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		calls++
		if calls == 1 {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})

	rec := doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{}`), validHeaders())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	rec = doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{}`), validHeaders())
	if rec.Code != http.StatusCreated || calls != 2 {
		t.Fatalf("retry after 500 should run the handler again: code=%d calls=%d", rec.Code, calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int)))

	body := []byte(`{"x":1}`)

	// Seed provisional "in-progress" entry (so SetNX will fail and loadEntry sees InProgress=true)
	key := buildKey(http.MethodPost, "/api/apply", anonymousActor, testKey)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   testKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/api/apply", bytes.NewReader(body), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int)))

	key := buildKey(http.MethodPost, "/api/apply", anonymousActor, testKey)
	final := idempEntry{
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash([]byte(`{"x":1}`)),
		RequestID:   testKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{"x":2}`), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	// closed address → SetNX error
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, countingHandler(new(int)))

	rec := doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{}`), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}

func Test_StoredEntryExpires(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls))

	doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{}`), validHeaders())
	mr.FastForward(2 * time.Minute)
	doReq(t, e, http.MethodPost, "/api/apply", strings.NewReader(`{}`), validHeaders())

	if calls != 2 {
		t.Fatalf("expired entry must not replay, calls=%d", calls)
	}
}
