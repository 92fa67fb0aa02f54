// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic set helpers the tag code needs on top of
// the standard [slices] package. Every function keeps the input order.
package slice

// Map applies fn to each element. A nil input stays nil.
func Map[T, U any](input []T, fn func(T) U) []U {
	if input == nil {
		return nil
	}
	out := make([]U, 0, len(input))
	for _, item := range input {
		out = append(out, fn(item))
	}
	return out
}

// Filter keeps the elements for which keep returns true. It returns nil when
// nothing is kept.
func Filter[T any](input []T, keep func(T) bool) []T {
	var out []T
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Unique drops repeated elements after their first occurrence. The result is
// never nil.
func Unique[T comparable](input []T) []T {
	out := make([]T, 0, len(input))
	seen := make(map[T]bool, len(input))
	for _, item := range input {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// Difference returns the elements of a missing from b. It returns nil when
// every element of a is in b.
func Difference[T comparable](a, b []T) []T {
	inB := make(map[T]bool, len(b))
	for _, item := range b {
		inB[item] = true
	}
	return Filter(a, func(item T) bool { return !inB[item] })
}
