// Package log provides a concurrency-safe, leveled logging interface
// based on [log/slog].
//
// A [Logger] is created with [Make] and configured through functional
// options at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("StampMilli"))
//
//	logger.Info("parser ready", slog.String("source", path))
//
// Loggers are immutable values. [Logger.Wrap] derives a logger with a
// changed configuration, and [Logger.With] derives one carrying fixed
// attributes:
//
//	logger = logger.With(slog.String("component", "lexer"))
//
// The package also maintains a process-wide default logger, available
// through [Default] and reconfigurable through [Config]; the
// package-level functions [Trace] through [Error] (and their Context
// variants) write to it.
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug level and
// is rendered as TRACE. Output is [FormatJSON] or [FormatText], each
// with an optional colorized pretty variant (see [WithPretty]).
package log
