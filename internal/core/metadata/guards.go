package metadata

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error // one of the Err* kinds when not allowed
}

// Error converts the guard result to an error if not allowed.
// The returned error wraps Kind so callers can match it with errors.Is.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind == nil {
		return fmt.Errorf("%s", r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

// GenerateContext provides context for generation guards.
// All data must be pre-fetched by the caller.
type GenerateContext struct {
	TableID     string
	Table       *TableDefinition // nil when the lookup found nothing
	ColumnCount int
}

// FrontendContext provides context for frontend generation guards.
type FrontendContext struct {
	RootPath string
}

// CanGenerate evaluates whether a table can be generated.
// Rules:
// - Table must exist
// - TableName, ModuleName and Namespace must not be empty
// - At least one column must exist
func CanGenerate(ctx GenerateContext) GuardResult {
	if ctx.Table == nil {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("table %q not found", ctx.TableID),
			Kind:    ErrMissingTemplateData,
		}
	}

	required := []struct {
		value string
		label string
	}{
		{ctx.Table.TableName, "table name"},
		{ctx.Table.ModuleName, "module name"},
		{ctx.Table.Namespace, "namespace"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s cannot be empty", r.label),
				Kind:    ErrValidation,
			}
		}
	}

	if ctx.ColumnCount == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("table %s has no column definitions", ctx.Table.TableName),
			Kind:    ErrMissingTemplateData,
		}
	}

	return GuardResult{Allowed: true}
}

// CanGenerateFrontend evaluates whether frontend artifacts can be generated.
// Rules:
// - Frontend root path must not be empty
func CanGenerateFrontend(ctx FrontendContext) GuardResult {
	if strings.TrimSpace(ctx.RootPath) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "frontend project root path is required (e.g. /src/app/client)",
			Kind:    ErrValidation,
		}
	}
	return GuardResult{Allowed: true}
}
