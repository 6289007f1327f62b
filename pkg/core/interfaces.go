package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything. Handy in tests and for embedded renders.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
