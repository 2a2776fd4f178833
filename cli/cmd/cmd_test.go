package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestWithSourceFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		ctx := WithSourceFiles(context.Background(), sources)
		if srcs := sourceFilesFrom(ctx); srcs != nil {
			t.Errorf("WithSourceFiles(%v) stored %v, want nil", sources, srcs)
		}
	}
}

func TestWithSourceFilesSingleFile(t *testing.T) {
	const content = "${a + b}"

	path := writeTempFile(t, "single.tpl", content)

	ctx := WithSourceFiles(context.Background(), []string{path})

	srcs := sourceFilesFrom(ctx)
	if srcs == nil {
		t.Fatal("expected non-nil SourceFiles for a readable file")
	}

	data, err := io.ReadAll(srcs)
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", data, content)
	}
}

func TestWithSourceFilesConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.tpl")
	second := filepath.Join(dir, "second.tpl")

	if err := os.WriteFile(first, []byte("${a}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(second, []byte("${b}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := WithSourceFiles(context.Background(), []string{first, second})

	data, err := io.ReadAll(sourceFilesFrom(ctx))
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	if got, want := string(data), "${a}${b}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithSourceFilesDeduplicates(t *testing.T) {
	const content = "${once}"

	path := writeTempFile(t, "dup.tpl", content)

	// The same file spelled three ways: repeated path, symlink, and a
	// relative path.
	symlink := filepath.Join(filepath.Dir(path), "link.tpl")
	if err := os.Symlink(path, symlink); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	if err := os.Chdir(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}

	ctx := WithSourceFiles(context.Background(), []string{
		path,
		path,
		symlink,
		filepath.Base(path),
	})

	data, err := io.ReadAll(sourceFilesFrom(ctx))
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q read exactly once", data, content)
	}
}

func TestWithSourceFilesStdinLast(t *testing.T) {
	path := writeTempFile(t, "file.tpl", "file")

	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	os.Stdin = r

	go func() {
		defer w.Close()
		io.WriteString(w, "stdin")
	}()

	// Stdin named first must still be read after all files, and the
	// repeated "-" collapses to one read.
	ctx := WithSourceFiles(context.Background(), []string{"-", path, "-"})

	data, err := io.ReadAll(sourceFilesFrom(ctx))
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	if got, want := string(data), "filestdin"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWithSourceFilesSkipsUnreadable(t *testing.T) {
	const content = "${ok}"

	path := writeTempFile(t, "ok.tpl", content)

	ctx := WithSourceFiles(context.Background(), []string{
		"/nonexistent/one.tpl",
		path,
		"/nonexistent/two.tpl",
	})

	srcs := sourceFilesFrom(ctx)
	if srcs == nil {
		t.Fatal("expected non-nil SourceFiles when one file is readable")
	}

	data, err := io.ReadAll(srcs)
	if err != nil {
		t.Fatalf("reading source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", data, content)
	}
}

func TestWithSourceFilesAllUnreadable(t *testing.T) {
	ctx := WithSourceFiles(context.Background(), []string{
		"/nonexistent/one.tpl",
		"/nonexistent/two.tpl",
	})

	if srcs := sourceFilesFrom(ctx); srcs != nil {
		t.Errorf("got %v, want nil when no source is readable", srcs)
	}
}

func TestOpenSource(t *testing.T) {
	t.Run("explicit_path", func(t *testing.T) {
		path := writeTempFile(t, "explicit.tpl", "${x}")

		name, rc, err := openSource(context.Background(), path)
		if err != nil {
			t.Fatalf("openSource: %v", err)
		}
		defer rc.Close()

		if name != path {
			t.Errorf("name = %q, want %q", name, path)
		}

		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := string(data), "${x}"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("context_sources_win", func(t *testing.T) {
		path := writeTempFile(t, "ctx.tpl", "${ctx}")
		ctx := WithSourceFiles(context.Background(), []string{path})

		name, rc, err := openSource(ctx, "ignored-path")
		if err != nil {
			t.Fatalf("openSource: %v", err)
		}
		defer rc.Close()

		if name != "sources" {
			t.Errorf("name = %q, want %q", name, "sources")
		}

		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := string(data), "${ctx}"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("missing_path", func(t *testing.T) {
		_, _, err := openSource(context.Background(), "/nonexistent/x.tpl")
		if err == nil {
			t.Error("expected error for nonexistent path")
		}
	})
}

func TestKongContextRoundTrip(t *testing.T) {
	if got := kongContextFrom(context.Background()); got != nil {
		t.Errorf("kongContextFrom(empty) = %v, want nil", got)
	}

	ctx := WithContext(context.Background(), nil)
	if got := kongContextFrom(ctx); got != nil {
		t.Errorf("kongContextFrom(nil kong.Context) = %v, want nil", got)
	}
}
