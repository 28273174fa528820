package transmute_test

import (
	"os"
	"path/filepath"
	"testing"

	"gcsst/transmute"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("unable to write %s: %v", name, err)
	}
	return path
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.css", ".a{}")
	writeFile(t, dir, "b.css", ".b{}")
	writeFile(t, dir, "notes.txt", "not css")
	if err := os.Mkdir(filepath.Join(dir, "sub.css"), 0700); err != nil {
		t.Fatal(err)
	}

	t.Run("relative pattern", func(t *testing.T) {
		paths, err := transmute.ExpandPaths(dir, []string{"*.css"})
		if err != nil {
			t.Fatalf("ExpandPaths() error = %v", err)
		}
		// the directory matching the pattern is filtered out
		if len(paths) != 2 {
			t.Fatalf("ExpandPaths() = %v, want 2 files", paths)
		}
	})

	t.Run("absolute pattern", func(t *testing.T) {
		paths, err := transmute.ExpandPaths("/nonexistent", []string{filepath.Join(dir, "a.css")})
		if err != nil {
			t.Fatalf("ExpandPaths() error = %v", err)
		}
		if len(paths) != 1 {
			t.Fatalf("ExpandPaths() = %v, want 1 file", paths)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		paths, err := transmute.ExpandPaths(dir, []string{"*.scss"})
		if err != nil {
			t.Fatalf("ExpandPaths() error = %v", err)
		}
		if len(paths) != 0 {
			t.Fatalf("ExpandPaths() = %v, want no files", paths)
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := transmute.ExpandPaths(dir, []string{"["}); err == nil {
			t.Error("ExpandPaths() with malformed pattern expected to fail")
		}
	})
}

func TestReadAndCleanFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.css", "/* header */.a{content:\"x\";}")
	b := writeFile(t, dir, "b.css", ".b{color:red;}/* trailing")

	got, err := transmute.ReadAndCleanFiles([]string{a, b})
	if err != nil {
		t.Fatalf("ReadAndCleanFiles() error = %v", err)
	}
	// unterminated trailing comment is not a comment, it stays
	want := ".a{content:'x';}.b{color:red;}/* trailing"
	if got != want {
		t.Errorf("ReadAndCleanFiles() = %q, want %q", got, want)
	}

	if _, err := transmute.ReadAndCleanFiles([]string{filepath.Join(dir, "missing.css")}); err == nil {
		t.Error("ReadAndCleanFiles() with missing file expected to fail")
	}
}

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"comments removed", "/* one */.a{}/* two\nlines */", ".a{}"},
		{"quotes normalized", `.a{font-family:"Fira Sans";}`, ".a{font-family:'Fira Sans';}"},
		{"comment inside value", ".a{color:/* why */red;}", ".a{color:red;}"},
		{"untouched", ".a{color:red;}", ".a{color:red;}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transmute.CleanContent(tt.in); got != tt.want {
				t.Errorf("CleanContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
