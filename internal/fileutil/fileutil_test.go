package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "seg.wav")
	dst := filepath.Join(dir, "copy.wav")

	if err := os.WriteFile(src, []byte("RIFF....WAVEdata"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	if !Exists(dst) {
		t.Fatal("destination missing")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim.wav")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := RemoveIfExists(path)
	if err != nil || !removed {
		t.Fatalf("RemoveIfExists = %v, %v", removed, err)
	}
	removed, err = RemoveIfExists(path)
	if err != nil {
		t.Fatalf("second RemoveIfExists: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing file")
	}
}

func TestMoveDirAcrossRename(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "a.csv"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(base, "dst", "moved")
	if err := MoveDir(src, dst); err != nil {
		t.Fatalf("MoveDir: %v", err)
	}
	if Exists(src) {
		t.Fatal("source still present")
	}
	got, err := os.ReadFile(filepath.Join(dst, "nested", "a.csv"))
	if err != nil || string(got) != "data" {
		t.Fatalf("moved content = %q, %v", got, err)
	}
}
