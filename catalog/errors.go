package catalog

import "fmt"

// ValidationError reports input that violates a structural invariant. It is
// surfaced to the caller as-is and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports a uniqueness constraint (handle or SKU) violated at
// persistence time despite the best-effort pre-check.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("duplicate %s", e.Field)
	}
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// NotFoundError reports a referenced product or variant that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
