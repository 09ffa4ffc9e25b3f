package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/api/metrics"
	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/reqctx"
	"github.com/examplews/greeting-service/internal/core/security"
)

const principalKey = "principal"

// AuthEventRecorder receives every authentication attempt for auditing.
type AuthEventRecorder interface {
	Record(event domain.AuthEvent)
}

// AuthConfig wires the Auth middleware.
type AuthConfig struct {
	Policy   *security.AccessPolicy
	Service  ports.AuthService
	Recorder AuthEventRecorder // optional
	Realm    string
	Log      zerolog.Logger
}

// Auth enforces the access policy with HTTP Basic credentials. Credentials
// are verified on every request; no session is created or consulted.
//
//   - missing or invalid credentials on a protected path → 401 with a
//     WWW-Authenticate challenge; the failure subtype is only logged.
//   - valid credentials without the required authority → 403.
//   - credential store failures → 500.
//
// On success the username is attached to the request context and the
// principal is stored on the echo.Context.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			paths := requestPaths(req)
			if !cfg.Policy.RequiresAuthenticationAny(paths) {
				return next(c)
			}

			username, password, ok := req.BasicAuth()
			if !ok {
				decision := cfg.Policy.AuthorizeAll(paths, nil)
				observeDecision(decision)
				metrics.AuthAttemptsTotal.WithLabelValues("missing").Inc()
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			start := time.Now()
			principal, err := cfg.Service.Authenticate(req.Context(), username, password)
			metrics.AuthDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				if !errors.Is(err, domain.ErrAuthenticationFailed) {
					return fmt.Errorf("authenticate %s: %w", username, err)
				}
				reason := domain.FailureReason(err)
				metrics.AuthAttemptsTotal.WithLabelValues(reason).Inc()
				cfg.Log.Warn().
					Str("username", username).
					Str("reason", reason).
					Str("path", path).
					Str("remote_ip", c.RealIP()).
					Msg("authentication failed")
				record(cfg.Recorder, c, username, reason)

				c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed").SetInternal(err)
			}

			metrics.AuthAttemptsTotal.WithLabelValues(domain.AuthOutcomeSuccess).Inc()
			record(cfg.Recorder, c, principal.Username(), domain.AuthOutcomeSuccess)

			decision := cfg.Policy.AuthorizeAll(paths, &principal)
			observeDecision(decision)
			if !decision.Allowed() {
				cfg.Log.Warn().
					Str("username", principal.Username()).
					Str("path", path).
					Str("required", decision.Rule.Authority).
					Msg("access denied")
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden").SetInternal(domain.ErrForbidden)
			}

			ctx, err := reqctx.WithUsername(req.Context(), principal.Username())
			if err != nil {
				return fmt.Errorf("attach principal: %w", err)
			}
			c.SetRequest(req.WithContext(ctx))
			c.Set(principalKey, principal)

			cfg.Log.Debug().
				Str("username", principal.Username()).
				Str("path", path).
				Msg("request context bound to principal")

			return next(c)
		}
	}
}

// requestPaths returns the decoded path and, when it differs, the escaped
// path echo routes on. %2f and %2e survive in the latter, so a target like
// /api/x%2f..%2f.. decodes to / yet still reaches an /api/ handler.
func requestPaths(req *http.Request) []string {
	paths := []string{req.URL.Path}
	if routed := echo.GetPath(req); routed != req.URL.Path {
		paths = append(paths, routed)
	}
	return paths
}

// PrincipalFrom returns the principal the Auth middleware authenticated.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func record(r AuthEventRecorder, c echo.Context, username, outcome string) {
	if r == nil {
		return
	}
	r.Record(domain.AuthEvent{
		Username:  username,
		Outcome:   outcome,
		Path:      c.Request().URL.Path,
		RemoteIP:  c.RealIP(),
		Timestamp: time.Now().UTC(),
	})
}

func observeDecision(d security.Decision) {
	prefix := "default"
	if d.Matched {
		prefix = d.Rule.Prefix
	}
	metrics.AccessDecisionsTotal.WithLabelValues(prefix, string(d.Verdict)).Inc()
}
