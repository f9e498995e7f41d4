package logger

// Logger exposes logging methods for common severity levels.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// With returns a logger carrying extra structured fields. Implementations
// that cannot attach fields return themselves.
type With interface {
	With(fields map[string]any) Logger
}
