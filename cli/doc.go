// Package cli contains the command line interface for spiderflow.
//
// # Usage
//
// The default command parses template sources and dumps their syntax
// trees:
//
//	spiderflow -s template.txt
//	spiderflow parse -s template.txt --format json
//
// Additional subcommands validate sources (check), dump the raw token
// stream (tokens), and open an interactive parser (repl).
//
// # Configuration
//
// Flags can be preset in a configuration file in the user config
// directory, either config.json or config.yaml:
//
//	log-level: debug
//	log-format: text
//	log-pretty: true
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, StampMilli, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorized pretty printing
//
// # Profiling Options
//
// Profiling requires the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu,
//     goroutine, heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory
package cli
