package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-ch:
		if !ok {
			t.Fatal("signal channel closed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for signal")
	}
}

func TestStartWatcherInitialScan(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig, _, err := StartWatcher(ctx, WatchConfig{Dir: t.TempDir(), InitialScan: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitSignal(t, sig)
}

func TestStartWatcherSignalsOnCreate(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig, _, err := StartWatcher(ctx, WatchConfig{Dir: dir, Debounce: 20 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.docx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitSignal(t, sig)
}

func TestStartWatcherPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig, _, err := StartWatcher(ctx, WatchConfig{Dir: t.TempDir(), PollInterval: 10 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitSignal(t, sig)
	waitSignal(t, sig)
}

func TestStartWatcherClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sig, errs, err := StartWatcher(ctx, WatchConfig{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	deadline := time.After(5 * time.Second)
	for sig != nil || errs != nil {
		select {
		case _, ok := <-sig:
			if !ok {
				sig = nil
			}
		case _, ok := <-errs:
			if !ok {
				errs = nil
			}
		case <-deadline:
			t.Fatal("channels not closed after cancel")
		}
	}
}

func TestStartWatcherRejectsMissingDir(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}, nil); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, _, err := StartWatcher(context.Background(), WatchConfig{Dir: filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
