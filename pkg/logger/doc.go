// Package logger builds the process-wide slog.Logger.
//
// Output format and level come from the environment (LOG_FORMAT, LOG_LEVEL):
// JSON at info level by default for log aggregation, text at debug level when
// LOG_FORMAT=text for local development. Static service attributes are
// attached once at construction so every record carries them.
package logger
