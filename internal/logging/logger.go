// Package logging is the structured logger used by the server. Records are
// JSON lines produced by log/slog.
package logging

import "context"

// Logger takes alternating key and value args after the message.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// Nop discards every record.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }

var (
	_ Logger = Nop{}
	_ Logger = (*SlogLogger)(nil)
)
