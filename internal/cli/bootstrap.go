// Package cli provides CLI commands for tablegen.
package cli

import (
	gocontext "context"

	"github.com/example/tablegen/internal/ctxutil"
)

// NewContext creates a context carrying a fresh generation session ID.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx, _ := ctxutil.EnsureSession(gocontext.Background())
	return ctx
}
