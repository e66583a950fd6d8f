// Package logging provides structured logging using Go's standard library log/slog.
// It outputs logs in JSON or plain text format and is used by the kapten CLI
// to configure its stderr logger.
package logging
