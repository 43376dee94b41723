package utils

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTestFile is a helper to write test files with 0644 permissions.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change back to %s: %v", originalWd, err)
		}
	})
}

func TestFindDocumentPath_CurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "ochre.yaml"), "file_format_version: 1\n")
	chdir(t, tmpDir)

	found, err := FindDocumentPath("ochre.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := filepath.Join(tmpDir, "ochre.yaml"); evalSymlinks(t, found) != evalSymlinks(t, want) {
		t.Errorf("Expected %s, got %s", want, found)
	}
}

func TestFindDocumentPath_AncestorDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	writeTestFile(t, filepath.Join(tmpDir, "ochre.yaml"), "file_format_version: 1\n")
	chdir(t, nested)

	found, err := FindDocumentPath("ochre.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := filepath.Join(tmpDir, "ochre.yaml"); evalSymlinks(t, found) != evalSymlinks(t, want) {
		t.Errorf("Expected %s, got %s", want, found)
	}
}

func TestFindDocumentPath_NotFound(t *testing.T) {
	chdir(t, t.TempDir())

	found, err := FindDocumentPath("ochre.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if found != "" {
		t.Errorf("Expected empty path, got %s", found)
	}
}

func TestFindDocumentPath_IgnoresDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "ochre.yaml"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	chdir(t, tmpDir)

	found, err := FindDocumentPath("ochre.yaml")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if found != "" {
		t.Errorf("Expected a directory named ochre.yaml to be skipped, got %s", found)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "out.yaml")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("Expected no error on overwrite, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected %q, got %q", "second", string(data))
	}

	// No temporary files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 file, found %d", len(entries))
	}
}

func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", path, err)
	}
	return resolved
}
