// Package audit defines the append-only audit event model shared by every
// module. Events are emitted from domain logic and fanned out to stores and
// sinks; keep the model transport-agnostic.
package audit

import (
	"context"
	"time"

	id "mintgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// Decision outputs are compliance evidence and require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category      EventCategory
	Timestamp     time.Time
	UserID        id.UserID
	Subject       string
	Action        string
	Tier          string
	Decision      string
	Reason        string
	PolicyVersion string
	CorrelationID string
	// ActorID tracks who performed the action when different from UserID,
	// e.g. admin-triggered re-evaluations.
	ActorID string
}

type AuditEvent string

const (
	// Entitlement events
	EventEntitlementAllowed AuditEvent = "entitlement_allowed"
	EventEntitlementDenied  AuditEvent = "entitlement_denied"

	// Policy events
	EventPolicyEvaluated AuditEvent = "policy_evaluated"

	// Readiness events
	EventReadinessEvaluated AuditEvent = "readiness_evaluated"
	EventEvidenceStored     AuditEvent = "evidence_stored"

	// Catalog events
	EventRuleCatalogLoaded AuditEvent = "rule_catalog_loaded"
)

// eventCategories maps each audit event to its category.
// Decision-bearing events are compliance; denials are security-relevant;
// catalog and evidence bookkeeping is operations.
var eventCategories = map[AuditEvent]EventCategory{
	EventEntitlementAllowed: CategoryOperations,
	EventEntitlementDenied:  CategorySecurity,
	EventPolicyEvaluated:    CategoryCompliance,
	EventReadinessEvaluated: CategoryCompliance,
	EventEvidenceStored:     CategoryOperations,
	EventRuleCatalogLoaded:  CategoryOperations,
}

// Category returns the category for the event, defaulting to operations for
// actions added without a map update.
func (e AuditEvent) Category() EventCategory {
	if category, ok := eventCategories[e]; ok {
		return category
	}
	return CategoryOperations
}

// Store persists audit events. Append-only; nothing updates or deletes.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}

// Sink receives a copy of every event for out-of-process delivery (Kafka).
// Implementations must not block the caller's decision path.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}
