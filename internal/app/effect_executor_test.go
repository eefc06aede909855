package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/tablegen/internal/core/effects"
	"github.com/example/tablegen/internal/core/metadata"
)

func TestEffectExecutor_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	path := filepath.Join(dir, "x.cs")

	err := NewEffectExecutor().Execute(context.Background(), []effects.Effect{
		effects.FileEffect{Operation: effects.FileMkdir, Path: dir, Mode: 0755},
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.FileEffect{Operation: effects.FileWrite, Path: path, Content: []byte("class X {}"), Mode: 0644},
			effects.LogEffect{Level: 2, Message: "wrote x"},
		}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file: %v", err)
	}
	if string(data) != "class X {}" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestEffectExecutor_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.cs")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0644); err != nil {
		t.Fatal(err)
	}

	err := NewEffectExecutor().Execute(context.Background(), []effects.Effect{
		effects.FileEffect{Operation: effects.FileWrite, Path: path, Content: []byte("new"), Mode: 0644},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected file to be replaced, got %q", data)
	}
}

func TestEffectExecutor_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		eff  effects.FileEffect
	}{
		{
			name: "mkdir under a file",
			eff:  effects.FileEffect{Operation: effects.FileMkdir, Path: filepath.Join(blocker, "dir"), Mode: 0755},
		},
		{
			name: "write under a file",
			eff:  effects.FileEffect{Operation: effects.FileWrite, Path: filepath.Join(blocker, "x.cs"), Mode: 0644},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEffectExecutor().Execute(context.Background(), []effects.Effect{tt.eff})
			if !errors.Is(err, metadata.ErrFileWrite) {
				t.Errorf("expected ErrFileWrite, got %v", err)
			}
		})
	}
}

func TestEffectExecutor_CompositeStopsAtFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
		t.Fatal(err)
	}
	after := filepath.Join(dir, "after.cs")

	err := NewEffectExecutor().Execute(context.Background(), []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.LogEffect{Level: 2, Message: "writing"},
			effects.FileEffect{Operation: effects.FileMkdir, Path: filepath.Join(blocker, "dir"), Mode: 0755},
			effects.FileEffect{Operation: effects.FileWrite, Path: after, Content: []byte("x"), Mode: 0644},
		}},
	})
	if !errors.Is(err, metadata.ErrFileWrite) {
		t.Fatalf("expected ErrFileWrite, got %v", err)
	}
	if _, statErr := os.Stat(after); !os.IsNotExist(statErr) {
		t.Errorf("expected later effects to be skipped, stat err = %v", statErr)
	}
}

func TestEffectExecutor_UnknownOperation(t *testing.T) {
	err := NewEffectExecutor().Execute(context.Background(), []effects.Effect{
		effects.FileEffect{Operation: "chmod", Path: "x"},
	})
	if err == nil {
		t.Error("expected error for unknown operation")
	}
}
