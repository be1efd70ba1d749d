// Package logger configures the application's structured logging.
//
// It uses *ZeroLog*: JSON lines in production (or when the format is
// "json"), a human-friendly console writer otherwise.
package logger
