// Package artifact plans generated files: each planner composes projected
// column blocks and table attributes into a template and returns the file
// effects that materialize it.
// This is part of the Functional Core - no I/O, only pure functions.
package artifact

import (
	"path/filepath"
	"strings"
)

// Session is the per-generation context shared by every planner of one
// generation call. It is computed once at session start by the app layer.
type Session struct {
	ID            string
	SolutionRoot  string
	BusinessDir   string // business-logic project, e.g. Acme.App
	RepositoryDir string // entity project, e.g. Acme.Repository
	WebAPIDir     string // controller project, e.g. Acme.WebApi
	StartName     string
}

// StartNameOf returns the leading segment of a web project directory name up
// to its first '.'. A name without a separator is returned whole.
func StartNameOf(webProject string) string {
	name := filepath.Base(webProject)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
