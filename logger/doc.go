// Package logger provides structured logging for webclient built on zerolog.
//
// Loggers are cheap to derive: WithComponent and WithFields return child
// loggers carrying extra context. The engine uses a component-tagged child
// for per-request debug logs.
package logger
