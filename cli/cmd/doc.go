// Package cmd provides the parse, check, tokens, and repl subcommands of
// the spiderflow CLI.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path
	// to the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the
	// path of the default configuration file (without extension).
	ConfigIdentifier = "config"

	// VersionIdentifier is the kong variable identifier containing the
	// module version.
	VersionIdentifier = "version"
)
