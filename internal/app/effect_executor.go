// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/example/tablegen/internal/core/effects"
	"github.com/example/tablegen/internal/core/metadata"
	"github.com/example/tablegen/internal/ctxutil"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place file I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
// Writes replace the destination in place and are not atomic.
type DefaultEffectExecutor struct{}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor() *DefaultEffectExecutor {
	return &DefaultEffectExecutor{}
}

// Execute processes a slice of effects, executing each in sequence.
// It stops at the first failure.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.LogEffect:
		klog.V(klog.Level(typed.Level)).Infof("%s: session=%s", typed.Message, ctxutil.SessionFromContext(ctx))
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case effects.FileMkdir:
		if err := os.MkdirAll(eff.Path, os.FileMode(eff.Mode)); err != nil {
			return fmt.Errorf("%w: %v", metadata.ErrFileWrite, err)
		}
	case effects.FileWrite:
		if err := os.WriteFile(eff.Path, eff.Content, os.FileMode(eff.Mode)); err != nil {
			return fmt.Errorf("%w: %v", metadata.ErrFileWrite, err)
		}
		klog.V(2).Infof("wrote file: session=%s, path=%s, bytes=%d",
			ctxutil.SessionFromContext(ctx), eff.Path, len(eff.Content))
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
	return nil
}
