package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"mintgate/internal/policy"
	id "mintgate/pkg/domain"
)

// PostgresCatalog loads the rule table from PostgreSQL once at construction
// and serves it from memory, like a compiled policy table. Restart the
// process (or rebuild the catalog) to pick up rule changes; there is no
// runtime mutation path on purpose.
type PostgresCatalog struct {
	inner *InMemoryCatalog
}

// NewPostgresCatalog reads all rules and the catalog version.
func NewPostgresCatalog(ctx context.Context, db *sql.DB) (*PostgresCatalog, error) {
	var version string
	err := db.QueryRowContext(ctx,
		`SELECT version FROM policy_catalog_version ORDER BY applied_at DESC LIMIT 1`,
	).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("load catalog version: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT rule_id, step, category, severity, is_required, is_active,
		       required_evidence_types, pass_message, fail_message,
		       remediation_actions, estimated_remediation_hours,
		       effective_from, effective_to
		FROM policy_rules`)
	if err != nil {
		return nil, fmt.Errorf("load policy rules: %w", err)
	}
	defer rows.Close()

	var rules []policy.Rule
	for rows.Next() {
		var (
			rule        policy.Rule
			ruleID      string
			step        string
			severity    string
			evidence    pq.StringArray
			actions     pq.StringArray
			effectiveTo sql.NullTime
		)
		if err := rows.Scan(
			&ruleID, &step, &rule.Category, &severity, &rule.IsRequired,
			&rule.IsActive, &evidence, &rule.PassMessage, &rule.FailMessage,
			&actions, &rule.EstimatedRemediationHours,
			&rule.EffectiveFrom, &effectiveTo,
		); err != nil {
			return nil, fmt.Errorf("scan policy rule: %w", err)
		}
		rule.RuleID = id.RuleID(ruleID)
		rule.Step = id.OnboardingStep(step)
		rule.Severity = policy.Severity(severity)
		rule.RequiredEvidenceTypes = []string(evidence)
		rule.RemediationActions = []string(actions)
		if effectiveTo.Valid {
			t := effectiveTo.Time
			rule.EffectiveTo = &t
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policy rules: %w", err)
	}

	return &PostgresCatalog{inner: NewInMemoryCatalog(version, rules)}, nil
}

// ActiveRules serves from the in-memory snapshot.
func (c *PostgresCatalog) ActiveRules(ctx context.Context, step id.OnboardingStep, now time.Time) ([]policy.Rule, error) {
	return c.inner.ActiveRules(ctx, step, now)
}

// Version returns the catalog's opaque policy version.
func (c *PostgresCatalog) Version() string {
	return c.inner.Version()
}

// Schema is the DDL for the catalog tables. Applied by migrations in
// deployment; exposed here so integration tests can create it.
const Schema = `
CREATE TABLE IF NOT EXISTS policy_catalog_version (
	version TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS policy_rules (
	rule_id TEXT PRIMARY KEY,
	step TEXT NOT NULL,
	category TEXT NOT NULL,
	severity TEXT NOT NULL,
	is_required BOOLEAN NOT NULL,
	is_active BOOLEAN NOT NULL,
	required_evidence_types TEXT[] NOT NULL DEFAULT '{}',
	pass_message TEXT NOT NULL DEFAULT '',
	fail_message TEXT NOT NULL DEFAULT '',
	remediation_actions TEXT[] NOT NULL DEFAULT '{}',
	estimated_remediation_hours INT NOT NULL DEFAULT 0,
	effective_from TIMESTAMPTZ NOT NULL,
	effective_to TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS policy_rules_step_idx ON policy_rules (step);
`
