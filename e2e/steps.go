package e2e

import (
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// RegisterSteps binds all step definitions to the scenario context.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^an authenticated user$`, tc.anAuthenticatedUser)
	ctx.Step(`^an unauthenticated caller$`, tc.anUnauthenticatedCaller)

	ctx.Step(`^the user evaluates readiness for token type "([^"]*)"$`, tc.evaluatesReadiness)
	ctx.Step(`^the readiness status is "([^"]*)"$`, tc.readinessStatusIs)
	ctx.Step(`^the user can proceed$`, tc.userCanProceed)
	ctx.Step(`^the evaluation has a score$`, tc.evaluationHasScore)

	ctx.Step(`^the user checks entitlement for operation "([^"]*)"$`, tc.checksEntitlement)
	ctx.Step(`^the check is allowed$`, tc.checkIsAllowed)
	ctx.Step(`^the user lists the subscription tiers$`, tc.listsTiers)
	ctx.Step(`^the response includes the "([^"]*)" tier$`, tc.responseIncludesTier)

	ctx.Step(`^the response status is (\d+)$`, tc.responseStatusIs)
}

func (tc *TestContext) anAuthenticatedUser() error {
	return tc.Authenticate()
}

func (tc *TestContext) anUnauthenticatedCaller() error {
	tc.Token = ""
	return nil
}

func (tc *TestContext) evaluatesReadiness(tokenType string) error {
	return tc.Do(http.MethodPost, "/readiness/evaluate", map[string]any{
		"token_type": tokenType,
	})
}

func (tc *TestContext) readinessStatusIs(expected string) error {
	status, _ := tc.LastBody["status"].(string)
	if status != expected {
		return fmt.Errorf("expected readiness status %q, got %q (http %d)", expected, status, tc.LastStatus)
	}
	return nil
}

func (tc *TestContext) userCanProceed() error {
	canProceed, _ := tc.LastBody["can_proceed"].(bool)
	if !canProceed {
		return fmt.Errorf("expected can_proceed to be true, body: %v", tc.LastBody)
	}
	return nil
}

func (tc *TestContext) evaluationHasScore() error {
	if tc.LastBody["score"] == nil {
		return fmt.Errorf("expected a score in the evaluation, body: %v", tc.LastBody)
	}
	return nil
}

func (tc *TestContext) checksEntitlement(operation string) error {
	return tc.Do(http.MethodPost, "/entitlement/check", map[string]any{
		"operation": operation,
	})
}

func (tc *TestContext) checkIsAllowed() error {
	allowed, _ := tc.LastBody["is_allowed"].(bool)
	if !allowed {
		return fmt.Errorf("expected is_allowed to be true, body: %v", tc.LastBody)
	}
	return nil
}

func (tc *TestContext) listsTiers() error {
	return tc.Do(http.MethodGet, "/entitlement/tiers", nil)
}

func (tc *TestContext) responseIncludesTier(tier string) error {
	tiers, _ := tc.LastBody["tiers"].([]any)
	for _, entry := range tiers {
		m, _ := entry.(map[string]any)
		if m["tier"] == tier {
			return nil
		}
	}
	return fmt.Errorf("tier %q not found in response, body: %v", tier, tc.LastBody)
}

func (tc *TestContext) responseStatusIs(expected int) error {
	if tc.LastStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expected, tc.LastStatus, tc.LastBody)
	}
	return nil
}
