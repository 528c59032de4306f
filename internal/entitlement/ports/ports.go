// Package ports defines shared interfaces for the entitlement module.
// Interfaces are placed here when consumed by multiple services to avoid duplication.
package ports

import (
	"context"
	"log/slog"

	"mintgate/internal/entitlement"
	"mintgate/pkg/attrs"
	id "mintgate/pkg/domain"
	"mintgate/pkg/platform/audit"
	"mintgate/pkg/requestcontext"
)

// AuditPublisher emits audit events for entitlement decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// UsageStore supplies the user's tier and current usage counters. Counters
// are scoped to the current billing month by the store.
type UsageStore interface {
	// GetUserTier returns the user's subscription tier, defaulting to Free
	// when the user has no recorded plan.
	GetUserTier(ctx context.Context, userID id.UserID) (id.SubscriptionTier, error)

	// GetUsage returns the current counter for a quota operation.
	GetUsage(ctx context.Context, userID id.UserID, op entitlement.Operation) (int, error)

	// RecordUsage adds to a quota operation's counter and returns the new
	// value.
	RecordUsage(ctx context.Context, userID id.UserID, op entitlement.Operation, delta int) (int, error)
}

// LogAudit is a shared helper for logging audit events across entitlement
// services. It logs to both the structured logger and the audit publisher
// if available.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event string, eventAttrs ...any) {
	// Add correlation ID for traceability
	if correlationID := requestcontext.CorrelationID(ctx); correlationID != "" {
		eventAttrs = append(eventAttrs, "correlation_id", correlationID)
	}

	args := append(eventAttrs, "event", event, "log_type", "audit")

	if logger != nil {
		logger.InfoContext(ctx, event, args...)
	}

	if publisher == nil {
		return
	}
	auditEvent := audit.Event{
		Action:        event,
		Subject:       attrs.ExtractString(eventAttrs, "user_id"),
		Tier:          attrs.ExtractString(eventAttrs, "tier"),
		Decision:      attrs.ExtractString(eventAttrs, "decision"),
		Reason:        attrs.ExtractString(eventAttrs, "denial_code"),
		PolicyVersion: attrs.ExtractString(eventAttrs, "policy_version"),
		CorrelationID: attrs.ExtractString(eventAttrs, "correlation_id"),
	}
	if err := publisher.Emit(ctx, auditEvent); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event, "error", err)
	}
}
