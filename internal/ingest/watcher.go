package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

type WatchConfig struct {
	Dir          string        // inbox directory (not recursive)
	InitialScan  bool          // if true, signal once at start
	Debounce     time.Duration // coalesce rapid create/write/rename bursts
	PollInterval time.Duration // periodic signal even without events; 0 disables
}

// StartWatcher signals on the returned channel whenever the inbox may have
// changed. Signals carry no payload; the receiver re-inspects the directory.
// Both channels close when ctx is done.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan struct{}, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Dir == "" {
		logger.Error("watcher.start.failed", "error", "no inbox directory")
		return nil, nil, errors.New("no inbox directory")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("watcher.start.failed", "error", err)
		return nil, nil, err
	}
	if err := w.Add(cfg.Dir); err != nil {
		logger.Error("watcher.start.failed", "dir", cfg.Dir, "error", err)
		_ = w.Close()
		return nil, nil, err
	}

	sigCh := make(chan struct{}, 1)
	errCh := make(chan error, 1)

	signal := func() {
		select {
		case sigCh <- struct{}{}:
		default:
			// a signal is already pending
		}
	}
	if cfg.InitialScan {
		signal()
	}

	go func() {
		defer close(sigCh)
		defer close(errCh)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("watcher.close.failed", "error", err)
			}
		}()

		var poll <-chan time.Time
		if cfg.PollInterval > 0 {
			t := time.NewTicker(cfg.PollInterval)
			defer t.Stop()
			poll = t.C
		}

		var debounce *time.Timer
		var fire <-chan time.Time
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if IsHidden(e.Name) || e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				logger.Debug("watcher.event", "path", e.Name, "op", e.Op.String())
				if cfg.Debounce <= 0 {
					signal()
					continue
				}
				if debounce == nil {
					debounce = time.NewTimer(cfg.Debounce)
				} else {
					debounce.Reset(cfg.Debounce)
				}
				fire = debounce.C
			case <-fire:
				fire = nil
				signal()
			case <-poll:
				signal()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher.error", "error", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return sigCh, errCh, nil
}
