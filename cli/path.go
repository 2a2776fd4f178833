package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/liuhuayun/spider-flow/pkg"
)

// baseConfig is the base name of the configuration file and namespace.
const baseConfig = "config"

// defaultDirMode is the permission mode for created runtime directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the directory prefix used for configuration and
// cache paths and for environment variable identifiers.
//
// By default it is the base name of the executable, unless that matches
// one of the substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with
//     the project name
//   - "^\.+" (dot-prefixed names): the dot prefix is removed
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",       // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// userDir resolves a per-user base directory, falling back to a dotted
// subdirectory of the home directory and finally the working directory.
func userDir(lookup func() (string, error), dotted string) string {
	dir, err := lookup()
	if err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if dir, err = os.UserHomeDir(); err == nil {
		return filepath.Join(dir, dotted, basePrefix())
	}

	if dir, err = os.Getwd(); err != nil {
		dir = "."
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins the configuration directory with the given elements.
// With no elements it is equivalent to configDir.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}

	return os.MkdirAll(cacheDir(), defaultDirMode)
}
