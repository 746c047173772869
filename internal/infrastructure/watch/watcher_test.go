package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestPlanWatcher_DetectsPlanWrite(t *testing.T) {
	dir := t.TempDir()
	planFile := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(planFile, []byte(`{"id":"p","tasks":[]}`), 0600); err != nil {
		t.Fatal(err)
	}

	var changes atomic.Int32
	w, err := NewPlanWatcher(planFile, 50*time.Millisecond, func() {
		changes.Add(1)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = w.Run(ctx)
	}()

	// Give the watcher time to start
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(planFile, []byte(`{"id":"p","tasks":[{"id":"a","title":"A"}]}`), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	cancel()

	if changes.Load() == 0 {
		t.Error("expected at least one change callback")
	}
}

func TestPlanWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	planFile := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(planFile, []byte(`{"id":"p","tasks":[]}`), 0600); err != nil {
		t.Fatal(err)
	}

	var changes atomic.Int32
	w, err := NewPlanWatcher(planFile, 50*time.Millisecond, func() {
		changes.Add(1)
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	// A write to another file in the same directory must not trigger.
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("scratch"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	cancel()

	if got := changes.Load(); got != 0 {
		t.Errorf("expected no change callbacks, got %d", got)
	}
}

func TestPlanWatcher_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	planFile := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(planFile, []byte(`{"id":"p","tasks":[]}`), 0600); err != nil {
		t.Fatal(err)
	}

	w, err := NewPlanWatcher(planFile, 50*time.Millisecond, func() {})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after context cancellation")
	}
}
