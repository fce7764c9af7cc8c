package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestOkResult tests accessors on a successful result
func TestOkResult(t *testing.T) {
	r := Ok(42)

	if !r.IsOK() {
		t.Fatal("Expected Ok result to report IsOK")
	}
	if r.Value() != 42 {
		t.Errorf("Expected value 42, got %d", r.Value())
	}
	if r.Err() != nil {
		t.Errorf("Expected nil error, got %v", r.Err())
	}
	if got := r.UnwrapOr(7); got != 42 {
		t.Errorf("Expected UnwrapOr to return the value 42, got %d", got)
	}
}

// TestFailResult tests accessors on a failed result
func TestFailResult(t *testing.T) {
	boom := errors.New("boom")
	r := Fail[int](boom)

	if r.IsOK() {
		t.Fatal("Expected Fail result to not report IsOK")
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("Expected wrapped error to be preserved, got %v", r.Err())
	}
	if got := r.UnwrapOr(7); got != 7 {
		t.Errorf("Expected UnwrapOr fallback 7, got %d", got)
	}
}

// TestMapResultOk tests that MapResult transforms a success
func TestMapResultOk(t *testing.T) {
	r := MapResult(Ok(21), func(n int) string { return fmt.Sprintf("n=%d", n) })

	if !r.IsOK() {
		t.Fatal("Expected mapped Ok result to stay Ok")
	}
	if r.Value() != "n=21" {
		t.Errorf("Expected 'n=21', got %q", r.Value())
	}
}

// TestMapResultFail tests that MapResult propagates a failure untouched
func TestMapResultFail(t *testing.T) {
	boom := errors.New("boom")
	r := MapResult(Fail[int](boom), func(n int) string { return "never" })

	if r.IsOK() {
		t.Fatal("Expected mapped Fail result to stay failed")
	}
	if !errors.Is(r.Err(), boom) {
		t.Errorf("Expected original error, got %v", r.Err())
	}
}

// TestResultProperties verifies the Ok/Fail exclusivity invariants
func TestResultProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Ok carries its value and no error", prop.ForAll(
		func(n int) bool {
			r := Ok(n)
			return r.IsOK() && r.Value() == n && r.Err() == nil
		},
		gen.Int(),
	))

	properties.Property("Fail carries its error and the zero value", prop.ForAll(
		func(msg string) bool {
			r := Fail[int](errors.New(msg))
			return !r.IsOK() && r.Value() == 0 && r.Err() != nil
		},
		gen.AlphaString(),
	))

	properties.Property("UnwrapOr never returns the fallback for Ok", prop.ForAll(
		func(n, fallback int) bool {
			return Ok(n).UnwrapOr(fallback) == n
		},
		gen.Int(),
		gen.Int(),
	))

	properties.TestingRun(t)
}
