package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"mintgate/internal/entitlement"
	"mintgate/internal/entitlement/service"
	"mintgate/internal/entitlement/store/usage"
	id "mintgate/pkg/domain"
	"mintgate/pkg/testutil"
)

func newEntitlementHandler(t *testing.T) (*Handler, *usage.InMemoryUsageStore) {
	t.Helper()
	store := usage.NewInMemory()
	svc, err := service.New(store)
	if err != nil {
		t.Fatalf("failed to build entitlement service: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(svc, logger), store
}

func TestHandleCheck_RequiresAuthentication(t *testing.T) {
	h, _ := newEntitlementHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entitlement/check",
		map[string]any{"operation": "token_deployment"})
	rec := httptest.NewRecorder()
	h.HandleCheck(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandleCheck_FreeTierDeploymentAllowed(t *testing.T) {
	h, _ := newEntitlementHandler(t)
	userID := uuid.NewString()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entitlement/check",
		map[string]any{"operation": "token_deployment"})
	rec := httptest.NewRecorder()
	h.HandleCheck(rec, testutil.WithUserID(req, userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var decision entitlement.Decision
	if err := json.NewDecoder(rec.Body).Decode(&decision); err != nil {
		t.Fatalf("failed to decode decision: %v", err)
	}
	if !decision.IsAllowed {
		t.Fatalf("expected decision to be allowed, got %+v", decision)
	}
	if decision.SubscriptionTier != id.TierFree {
		t.Fatalf("expected free tier, got %s", decision.SubscriptionTier)
	}
}

func TestHandleCheck_DenialIsStillHTTP200(t *testing.T) {
	h, store := newEntitlementHandler(t)
	userID := uuid.NewString()

	parsed, err := id.ParseUserID(userID)
	if err != nil {
		t.Fatalf("failed to parse user id: %v", err)
	}
	for range 3 {
		if _, err := store.RecordUsage(t.Context(), parsed, entitlement.OperationDeployToken, 1); err != nil {
			t.Fatalf("failed to seed usage: %v", err)
		}
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entitlement/check",
		map[string]any{"operation": "token_deployment"})
	rec := httptest.NewRecorder()
	h.HandleCheck(rec, testutil.WithUserID(req, userID))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var decision entitlement.Decision
	if err := json.NewDecoder(rec.Body).Decode(&decision); err != nil {
		t.Fatalf("failed to decode decision: %v", err)
	}
	if decision.IsAllowed {
		t.Fatal("expected the fourth deployment to be denied")
	}
	if decision.DenialCode != "ENTITLEMENT_LIMIT_EXCEEDED" {
		t.Fatalf("expected denial code ENTITLEMENT_LIMIT_EXCEEDED, got %q", decision.DenialCode)
	}
}

func TestHandleCheck_UnknownOperationRejected(t *testing.T) {
	h, _ := newEntitlementHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/entitlement/check",
		map[string]any{"operation": "teleport"})
	rec := httptest.NewRecorder()
	h.HandleCheck(rec, testutil.WithUserID(req, uuid.NewString()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleTiers_PublishesFullLattice(t *testing.T) {
	h, _ := newEntitlementHandler(t)

	rec := testutil.DoRequest(http.HandlerFunc(h.HandleTiers),
		testutil.NewRequest(t, http.MethodGet, "/entitlement/tiers"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp TiersResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode tiers response: %v", err)
	}
	if len(resp.Tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(resp.Tiers))
	}
	if resp.Tiers[0].Tier != "free" || resp.Tiers[3].Tier != "enterprise" {
		t.Fatalf("expected lattice order free..enterprise, got %v", resp.Tiers)
	}
}
