package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeInvalidLayout, "node %q references unknown parent", "europe")

	if err.Code != ErrCodeInvalidLayout {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidLayout)
	}
	want := `INVALID_LAYOUT: node "europe" references unknown parent`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "save document %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
	want := "STORE_ERROR: save document abc: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeDocumentNotFound, "document missing")

	if !Is(err, ErrCodeDocumentNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeCache) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeCache) {
		t.Error("Is should not match a plain error")
	}

	// Code survives further wrapping with %w.
	wrapped := fmt.Errorf("handler: %w", err)
	if !Is(wrapped, ErrCodeDocumentNotFound) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidColor, "bad hex")); got != ErrCodeInvalidColor {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidColor)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidPalette, "bad palette")); got != "bad palette" {
		t.Errorf("UserMessage = %q, want %q", got, "bad palette")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q, want %q", got, "plain")
	}
}
