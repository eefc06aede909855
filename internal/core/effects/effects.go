// Package effects defines effect types as data structures representing I/O operations.
// Planners in the functional core return effects; the app layer executes them.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// File operations understood by the executor.
const (
	FileMkdir = "mkdir"
	FileWrite = "write"
)

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // FileMkdir or FileWrite
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// LogEffect represents a diagnostic message emitted while executing a plan.
type LogEffect struct {
	Level   int // klog verbosity
	Message string
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }
