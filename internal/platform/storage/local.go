// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores objects as files in a single directory.
type Local struct {
	root string
}

// NewLocal creates the root directory when missing and returns the store.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root %s: %w", root, err)
	}
	return &Local{root: root}, nil
}

// Root returns the directory the store writes into.
func (store *Local) Root() string {
	return store.root
}

// Save writes body into a temp file and renames it into place so a reader
// never observes a half-written image.
func (store *Local) Save(ctx context.Context, name string, body io.Reader, size int64) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(store.root, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("storage: %s already exists", name)
	}

	tmp, err := os.CreateTemp(store.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("storage: write %s: %w", name, copyErr)
	case closeErr != nil:
		err = fmt.Errorf("storage: close %s: %w", name, closeErr)
	case size >= 0 && written != size:
		err = fmt.Errorf("storage: short write for %s: %d of %d bytes", name, written, size)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: commit %s: %w", name, err)
	}

	return nil
}

// Exists reports whether name is present in the directory.
func (store *Local) Exists(_ context.Context, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	_, err := os.Stat(filepath.Join(store.root, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("storage: stat %s: %w", name, err)
}

// Delete removes name from the directory.
func (store *Local) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(store.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}
