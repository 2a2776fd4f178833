// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling support is compiled in only with the "pprof" build tag.
// Without it every operation is a no-op with zero overhead, so callers
// can wire profiling unconditionally:
//
//	var c profile.Config = func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	}
//
//	defer c.Start().Stop()
//
// Profile files land in the configured directory named after the mode
// (cpu.pprof, heap.pprof, ...). Use [Modes] for the list of modes the
// current build supports; analyze results with go tool pprof.
package profile

// Config supplies the profiling parameters: the mode, the output
// directory, and whether to suppress the profiler's own log output.
type Config func() (mode, path string, quiet bool)

// Start begins profiling and returns a handle for stopping it. When the
// binary was built without the pprof tag, or the configured mode is
// empty or unknown, the returned handle is a no-op. Both Start and Stop
// are always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithPath returns a functional option for setting a profiler's output
// directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

// WithQuiet returns a functional option for silencing profiler output.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) {
			return mode, path, quiet
		}
	}
}

type ignore struct{}

func (ignore) Stop() {}
