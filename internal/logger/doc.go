// Package logger wraps zap with a console-encoded global sugared logger and
// context helpers (ToContext/FromContext/WithName/WithKV).
//
// Services receive a context and log through it, so every line carries the
// name and key-value pairs attached by the caller.
package logger
