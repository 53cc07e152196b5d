// Package logger wraps zap with a console encoder, a global sugared logger,
// level parsing and context helpers. Components take a context and pull
// their logger from it.
package logger
