// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the identifiers used for every DishHub row (dishes, tags,
comments, accounts) and for stored image file names.

Identifiers are version 7, so they sort by creation time and keep the
PostgreSQL primary key indexes append-only.
*/
package uuid

import "github.com/google/uuid"

// canonicalLen is the length of the 8-4-4-4-12 hex form.
const canonicalLen = 36

// New returns a fresh version 7 identifier in canonical form. It panics only
// when the system random source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s is a canonical UUID. Braced, URN and unhyphenated
// forms are rejected so a path id either matches a stored key byte for byte
// or reads as "not found" without a database round trip.
func Valid(s string) bool {
	return len(s) == canonicalLen && uuid.Validate(s) == nil
}
