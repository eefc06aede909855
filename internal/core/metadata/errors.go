package metadata

import "errors"

// Error kinds surfaced by generation. Every failure wraps exactly one of these.
var (
	// ErrValidation indicates a missing or empty required metadata field.
	ErrValidation = errors.New("validation failed")
	// ErrMissingTemplateData indicates the table or its columns were not found.
	ErrMissingTemplateData = errors.New("missing template data")
	// ErrProjectNotFound indicates an expected project directory is absent.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateModule indicates the module already exists as a generated entity.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrTemplateNotFound indicates a template body is missing.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrFileWrite indicates an I/O failure writing output.
	ErrFileWrite = errors.New("file write failed")
)
