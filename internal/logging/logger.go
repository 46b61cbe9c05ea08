// Package logging is the server's structured logger. Two backends exist,
// log/slog and zap, behind the Logger interface.
//
// Fields attached to a context with WithFields are emitted on every record
// logged with that context, which is how request ids and usernames reach
// service-level log lines.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Info(ctx, "emission recorded", "total", total)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

type fieldsKey struct{}

// WithFields returns a copy of ctx carrying args in addition to any fields
// already attached. Later pairs do not replace earlier ones.
func WithFields(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := Fields(ctx)
	fields := make([]any, 0, len(prev)+len(args))
	fields = append(fields, prev...)
	fields = append(fields, args...)
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// Fields returns the key-value pairs attached to ctx.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return fields
}

// withContextFields prepends the fields of ctx to args.
func withContextFields(ctx context.Context, args []any) []any {
	fields := Fields(ctx)
	if len(fields) == 0 {
		return args
	}
	out := make([]any, 0, len(fields)+len(args))
	out = append(out, fields...)
	return append(out, args...)
}
