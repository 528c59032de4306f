package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	httpapi "mintgate/internal/http"
	"mintgate/internal/jwttoken"
	"mintgate/internal/policy"
	policyhandler "mintgate/internal/policy/handler"
	"mintgate/internal/policy/store/catalog"
	"mintgate/pkg/testutil"
)

type stubHealth struct {
	err error
}

func (s stubHealth) Health(context.Context) error { return s.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestRouter(t *testing.T, checks map[string]httpapi.HealthChecker) (http.Handler, *jwttoken.JWTService) {
	t.Helper()

	jwtService := jwttoken.NewJWTService("router-test-key", "mintgate", "mintgate-api")
	policySvc, err := policy.New(catalog.NewInMemoryCatalog(catalog.DefaultVersion, catalog.SeedRules()))
	if err != nil {
		t.Fatalf("policy service: %v", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         testLogger(),
		TokenValidator: jwttoken.NewMiddlewareAdapter(jwtService),
		Handlers:       []httpapi.Registrar{policyhandler.New(policySvc, testLogger())},
		HealthChecks:   checks,
	})
	return router, jwtService
}

func TestRouter(t *testing.T) {
	testutil.Given(t, "the assembled router", func(t *testing.T) {
		router, jwtService := newTestRouter(t, map[string]httpapi.HealthChecker{
			"postgres": stubHealth{},
		})

		testutil.When(t, "probing health", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

			testutil.Then(t, "it reports ok", func(t *testing.T) {
				if rr.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
				}
			})
		})

		testutil.When(t, "scraping metrics", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))

			testutil.Then(t, "the endpoint is reachable without auth", func(t *testing.T) {
				if rr.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
				}
			})
		})

		testutil.When(t, "calling a business route without a token", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/policy/stats"))

			testutil.Then(t, "it is rejected", func(t *testing.T) {
				if rr.Code != http.StatusUnauthorized {
					t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
				}
			})
		})

		testutil.When(t, "calling a business route with a valid bearer token", func(t *testing.T) {
			token, err := jwtService.GenerateAccessToken(uuid.New(), uuid.New(), time.Hour)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}
			req := testutil.NewRequest(t, http.MethodGet, "/policy/stats")
			req.Header.Set("Authorization", "Bearer "+token)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it passes auth", func(t *testing.T) {
				if rr.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
				}
			})
		})
	})
}

func TestRouterHealthDegraded(t *testing.T) {
	router, _ := newTestRouter(t, map[string]httpapi.HealthChecker{
		"postgres": stubHealth{},
		"redis":    stubHealth{err: errors.New("connection refused")},
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestRouterEchoesCorrelationID(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := testutil.NewRequest(t, http.MethodGet, "/healthz")
	req.Header.Set("X-Correlation-Id", "corr-router-test")
	rr := testutil.DoRequest(router, req)

	if got := rr.Header().Get("X-Correlation-Id"); got != "corr-router-test" {
		t.Fatalf("expected correlation id echoed, got %q", got)
	}

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	if rr.Header().Get("X-Correlation-Id") == "" {
		t.Fatal("expected a generated correlation id when none supplied")
	}
}
