package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceAndRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	key, err := store.Replace(context.Background(), "generated_composite.png", []byte("first"))
	if err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	if key != "generated_composite.png" {
		t.Fatalf("key = %q", key)
	}

	got, err := store.Read(key)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(got) != "first" {
		t.Fatalf("Read = %q, want %q", got, "first")
	}
}

func TestReplaceOverwritesPrevious(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Replace(ctx, "out.png", []byte("old result")); err != nil {
		t.Fatalf("first Replace returned error: %v", err)
	}
	if _, err := store.Replace(ctx, "out.png", []byte("new result")); err != nil {
		t.Fatalf("second Replace returned error: %v", err)
	}

	got, err := store.Read("out.png")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if string(got) != "new result" {
		t.Fatalf("Read = %q, want only the second result", got)
	}
}

func TestReplaceLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if _, err := store.Replace(context.Background(), "out.png", []byte("data")); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.png" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestReadMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if _, err := store.Read("nothing-yet.png"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read error = %v, want os.ErrNotExist", err)
	}
}

func TestReplaceRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if _, err := store.Replace(context.Background(), "../escape.png", []byte("x")); err == nil {
		t.Fatal("Replace accepted a traversal key")
	}
	if _, err := store.Read("../../etc/passwd"); err == nil {
		t.Fatal("Read accepted a traversal key")
	}
}
