package pkg

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "spiderflow" {
		t.Errorf("Name = %q, want %q", Name, "spiderflow")
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("Description is empty")
	}
}

func TestVersion(t *testing.T) {
	version := strings.TrimSpace(Version)
	if version == "" {
		t.Fatal("Version is empty")
	}

	// Expect a dotted numeric version like 0.1.0.
	if parts := strings.Split(version, "."); len(parts) != 3 {
		t.Errorf("Version = %q, want semantic version", version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Author list is empty")
	}

	for _, a := range Author {
		if a.Name == "" || a.Email == "" {
			t.Errorf("incomplete author entry: %+v", a)
		}
	}
}
