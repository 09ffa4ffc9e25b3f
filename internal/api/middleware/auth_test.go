package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/reqctx"
	"github.com/examplews/greeting-service/internal/core/security"
)

type stubAuthService struct {
	principals map[string]domain.Principal
	passwords  map[string]string
	err        error
	calls      int
}

func (s *stubAuthService) Authenticate(_ context.Context, username, password string) (domain.Principal, error) {
	s.calls++
	if s.err != nil {
		return domain.Principal{}, s.err
	}
	p, ok := s.principals[username]
	if !ok {
		return domain.Principal{}, domain.ErrAccountNotFound
	}
	if s.passwords[username] != password {
		return domain.Principal{}, domain.ErrBadCredentials
	}
	return p, nil
}

type recorderStub struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recorderStub) Record(e domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newAuthService() *stubAuthService {
	return &stubAuthService{
		principals: map[string]domain.Principal{
			"alice": domain.NewPrincipal("alice", []string{domain.RoleUser}),
			"root":  domain.NewPrincipal("root", []string{domain.RoleUser, domain.RoleSysadmin}),
		},
		passwords: map[string]string{"alice": "secret", "root": "toor"},
	}
}

func newTestEcho(t *testing.T, svc *stubAuthService, rec AuthEventRecorder) *echo.Echo {
	t.Helper()
	policy, err := security.NewAccessPolicy(true, security.DefaultRules()...)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	e := echo.New()
	e.Use(RequestContext(zerolog.Nop()))
	e.Use(Auth(AuthConfig{
		Policy:   policy,
		Service:  svc,
		Recorder: rec,
		Realm:    "greeting",
		Log:      zerolog.Nop(),
	}))
	whoami := func(c echo.Context) error {
		u, ok := reqctx.Username(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, u)
	}
	e.GET("/hello", whoami)
	e.GET("/api/whoami", whoami)
	e.GET("/actuators/info", whoami)
	return e
}

func do(e *echo.Echo, path, user, pass string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_PublicPathSkipsAuthentication(t *testing.T) {
	svc := newAuthService()
	e := newTestEcho(t, svc, nil)

	rec := do(e, "/hello", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous context, got %q", rec.Body.String())
	}
	if svc.calls != 0 {
		t.Fatalf("public path must not authenticate, got %d calls", svc.calls)
	}
}

func TestAuth_MissingCredentials(t *testing.T) {
	e := newTestEcho(t, newAuthService(), nil)

	rec := do(e, "/api/whoami", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != `Basic realm="greeting"` {
		t.Fatalf("unexpected challenge %q", got)
	}
}

func TestAuth_ValidCredentialsBindUsername(t *testing.T) {
	recorder := &recorderStub{}
	e := newTestEcho(t, newAuthService(), recorder)

	rec := do(e, "/api/whoami", "alice", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "alice" {
		t.Fatalf("expected alice in context, got %q", rec.Body.String())
	}
	if len(recorder.events) != 1 || recorder.events[0].Outcome != domain.AuthOutcomeSuccess {
		t.Fatalf("expected one success event, got %+v", recorder.events)
	}
}

func TestAuth_FailureSubtypesAreIndistinguishable(t *testing.T) {
	recorder := &recorderStub{}
	e := newTestEcho(t, newAuthService(), recorder)

	unknown := do(e, "/api/whoami", "mallory", "x")
	wrong := do(e, "/api/whoami", "alice", "nope")

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", unknown.Body.String(), wrong.Body.String())
	}
	if len(recorder.events) != 2 {
		t.Fatalf("expected 2 audit events, got %d", len(recorder.events))
	}
	if recorder.events[0].Outcome != "not_found" || recorder.events[1].Outcome != "bad_credentials" {
		t.Fatalf("unexpected outcomes: %+v", recorder.events)
	}
}

func TestAuth_ForbiddenWithoutAuthority(t *testing.T) {
	e := newTestEcho(t, newAuthService(), nil)

	rec := do(e, "/actuators/info", "alice", "secret")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "" {
		t.Fatalf("403 must not carry a challenge")
	}
}

func TestAuth_SysadminReachesActuators(t *testing.T) {
	e := newTestEcho(t, newAuthService(), nil)

	rec := do(e, "/actuators/info", "root", "toor")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_DotSegmentsCannotBypassRule(t *testing.T) {
	svc := newAuthService()
	e := newTestEcho(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	req.URL.Path = "/public/../api/whoami"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_EncodedSlashesCannotBypassRule(t *testing.T) {
	svc := newAuthService()
	e := newTestEcho(t, svc, nil)
	var reached []string
	e.PUT("/api/greetings/:id", func(c echo.Context) error {
		u, _ := reqctx.Username(c.Request().Context())
		reached = append(reached, u)
		return c.NoContent(http.StatusNoContent)
	})

	targets := []string{
		"/api/greetings/%2e%2e%2f%2e%2e%2fhello",
		"/api/greetings/x%2f..%2f..%2f..",
		"/api/greetings/%2E%2E%2F%2E%2E%2F%2E%2E%2F",
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodPut, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, rec.Code)
		}
		if rec.Header().Get(echo.HeaderWWWAuthenticate) == "" {
			t.Fatalf("%s: expected a Basic challenge", target)
		}
	}
	if len(reached) != 0 {
		t.Fatalf("handler must not run without credentials, ran for %v", reached)
	}

	req := httptest.NewRequest(http.MethodPut, targets[1], nil)
	req.SetBasicAuth("alice", "secret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with credentials, got %d", rec.Code)
	}
	if len(reached) != 1 || reached[0] != "alice" {
		t.Fatalf("expected handler to run as alice, got %v", reached)
	}
}

func TestAuth_EncodedSlashesKeepAuthorityCheck(t *testing.T) {
	svc := newAuthService()
	e := newTestEcho(t, svc, nil)
	e.GET("/actuators/:name", func(c echo.Context) error {
		return c.String(http.StatusOK, "management")
	})

	rec := do(e, "/actuators/x%2f..%2f..%2fhello", "alice", "secret")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a USER on an escaped actuator path, got %d", rec.Code)
	}
}

func TestAuth_StoreFailureIsServerError(t *testing.T) {
	svc := newAuthService()
	svc.err = errors.New("mongo down")
	e := newTestEcho(t, svc, nil)

	rec := do(e, "/api/whoami", "alice", "secret")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuth_EveryRequestReauthenticates(t *testing.T) {
	svc := newAuthService()
	e := newTestEcho(t, svc, nil)

	for i := 0; i < 3; i++ {
		if rec := do(e, "/api/whoami", "alice", "secret"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	if svc.calls != 3 {
		t.Fatalf("expected 3 credential checks, got %d", svc.calls)
	}
}
