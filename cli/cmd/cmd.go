package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		read     []io.Reader
		hasStdin bool
		multi    io.Reader
	}

	// SourceFiles is the combined template input selected on the
	// command line: zero or more files, optionally followed by stdin.
	SourceFiles interface {
		IsZero() bool
		io.Reader
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool {
	return len(s.read) == 0 && !s.hasStdin
}

// Read implements io.Reader by reading all sources in order, stdin last.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	if s.multi == nil {
		readers := make([]io.Reader, 0, len(s.read)+1)
		readers = append(readers, s.read...)

		if s.hasStdin {
			readers = append(readers, os.Stdin)
		}

		s.multi = io.MultiReader(readers...)
	}

	return s.multi.Read(p)
}

// fileKey uniquely identifies a file by its device and inode numbers,
// so duplicates are detected across symlinks and path spellings.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context carrying a [SourceFiles]
// reader over the given paths.
//
// Sources are deduplicated by resolving symlinks and comparing
// device/inode pairs. All occurrences of "-" collapse into a single
// stdin reader placed last, after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]io.Reader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, reader)
	}

	// Stdin may have been named via "-" or as a device file; both land
	// on stdinKey.
	_, srcs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path unless it was already seen.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo. Returns false when the
// underlying Sys() data is not a *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// stdout returns the output stream configured on the kong.Context in
// ctx, falling back to os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the error stream configured on the kong.Context in
// ctx, falling back to os.Stderr.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// sourceFilesFrom retrieves the SourceFiles stored by WithSourceFiles,
// or nil when none was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// openSource selects the template input for a command: the source files
// from ctx when present, the explicit path otherwise, stdin as the last
// resort. The returned name is for diagnostics.
func openSource(ctx context.Context, path string) (string, io.ReadCloser, error) {
	if srcs := sourceFilesFrom(ctx); srcs != nil && !srcs.IsZero() {
		return "sources", io.NopCloser(srcs), nil
	}

	if path != "" && path != stdinSource {
		file, err := os.Open(path)
		if err != nil {
			return "", nil, err
		}

		return path, file, nil
	}

	return "stdin", io.NopCloser(os.Stdin), nil
}
