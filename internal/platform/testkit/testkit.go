// Package testkit holds the assertions shared by package tests
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// MustNotPanic fails t with the panic value if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails t with the whole of s when needle is missing
func MustContain(t testing.TB, s, needle string) {
	t.Helper()
	if !strings.Contains(s, needle) {
		t.Fatalf("missing %q in:\n%s", needle, s)
	}
}
