// Package notify tells the operator when a drop could not be filed.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Notifier delivers a short message to the operator.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Runner runs an external command; document.ExecRunner satisfies it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, title, message string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("notify", "title", title, "message", message)
	return nil
}

// CommandNotifier runs a desktop notification command such as notify-send,
// appending the title and message as the last two arguments.
type CommandNotifier struct {
	command []string
	runner  Runner
}

// NewCommandNotifier splits command on whitespace. An empty command yields nil.
func NewCommandNotifier(command string, runner Runner) *CommandNotifier {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil
	}
	return &CommandNotifier{command: parts, runner: runner}
}

func (n *CommandNotifier) Notify(ctx context.Context, title, message string) error {
	args := append(append([]string(nil), n.command[1:]...), title, message)
	_, stderr, err := n.runner.Run(ctx, n.command[0], args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return errors.Join(err, errors.New(msg))
		}
		return err
	}
	return nil
}

// Multi fans out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New returns a notifier that always logs and, when command is set, also
// runs it.
func New(command string, runner Runner, logger *slog.Logger) Notifier {
	out := Multi{LogNotifier{Logger: logger}}
	if cn := NewCommandNotifier(command, runner); cn != nil {
		out = append(out, cn)
	}
	return out
}
