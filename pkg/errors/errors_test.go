package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad value %d", 7)
	want := "INVALID_INPUT: bad value 7"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeStore, cause, "save failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got := err.Error(); got != "STORE_ERROR: save failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeNotFound, "no such document")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(err); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestIsUnwrapsChains(t *testing.T) {
	inner := New(ErrCodeParseFailed, "decode")
	outer := Wrap(ErrCodeInternal, inner, "pipeline")

	if !Is(outer, ErrCodeInternal) {
		t.Error("outer code should match")
	}
	// The chain is searched for the first *Error, which is the outer one.
	if Is(outer, ErrCodeParseFailed) {
		t.Error("inner code should not shadow the outer code")
	}
}
