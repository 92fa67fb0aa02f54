// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage provides the content store that holds dish image files.

Two drivers implement [ContentStore]:

  - Local: a directory on disk, served back under IMAGE_PUBLIC_PATH.
  - S3: any S3-compatible bucket (AWS, R2, MinIO) through aws-sdk-go-v2.

Objects are addressed by a flat file name; callers generate the name, the
store never invents one.
*/
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrObjectNotFound is returned by Delete and Exists-style lookups when no
// object is stored under the given name.
var ErrObjectNotFound = errors.New("storage: object not found")

// ErrInvalidName is returned for names that are empty or try to escape the
// store root (separators, "..").
var ErrInvalidName = errors.New("storage: invalid object name")

// ContentStore saves, probes and deletes named binary objects.
type ContentStore interface {
	// Save writes size bytes from body under name, replacing nothing: a name
	// collision is an error.
	Save(ctx context.Context, name string, body io.Reader, size int64) error

	// Exists reports whether an object is stored under name.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the object. It returns [ErrObjectNotFound] when absent.
	Delete(ctx context.Context, name string) error
}

// checkName rejects names that are not a single clean path element.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || path.Clean(name) != name {
		return ErrInvalidName
	}
	return nil
}
