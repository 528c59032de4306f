// Package domain holds typed identifiers and shared enums.
//
// IDs are distinct uuid-backed types so the compiler rejects cross-type
// assignment. Construct them via Parse* at trust boundaries; direct casting
// bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "mintgate/pkg/domain-errors"
)

// UserID identifies an end user of an organization.
type UserID uuid.UUID

// OrganizationID identifies a token-issuing organization.
type OrganizationID uuid.UUID

// EvaluationID identifies one stored readiness evaluation.
type EvaluationID uuid.UUID

// RuleID identifies a policy rule in the catalog.
type RuleID string

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", field)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", field)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", field)
	}
	return parsed, nil
}

// ParseUserID constructs a UserID from external input.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s, "user_id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID as its canonical UUID string in JSON and
// other text encodings.
func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewUserID generates a fresh random UserID. Intended for tests and seeds.
func NewUserID() UserID { return UserID(uuid.New()) }

// ParseOrganizationID constructs an OrganizationID from external input.
func ParseOrganizationID(s string) (OrganizationID, error) {
	parsed, err := parseUUID(s, "organization_id")
	if err != nil {
		return OrganizationID{}, err
	}
	return OrganizationID(parsed), nil
}

func (id OrganizationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }

func (id OrganizationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *OrganizationID) UnmarshalText(b []byte) error {
	parsed, err := ParseOrganizationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseEvaluationID constructs an EvaluationID from external input.
func ParseEvaluationID(s string) (EvaluationID, error) {
	parsed, err := parseUUID(s, "evaluation_id")
	if err != nil {
		return EvaluationID{}, err
	}
	return EvaluationID(parsed), nil
}

func (id EvaluationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EvaluationID) String() string { return uuid.UUID(id).String() }

func (id EvaluationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *EvaluationID) UnmarshalText(b []byte) error {
	parsed, err := ParseEvaluationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewEvaluationID generates the identifier for a stored evaluation.
func NewEvaluationID() EvaluationID { return EvaluationID(uuid.New()) }
