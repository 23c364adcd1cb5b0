package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("enroll: %w", New(CodeCourseLimitReached, "four courses already"))
	if !stderrors.Is(err, New(CodeCourseLimitReached, "other")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(CodeInvalidIndex, "other")) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeSaveWriteFailed, "write save", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause in chain")
	}
	if got, want := err.Error(), "write save: disk full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "domain", err: New(CodeUnknownArc, "x"), want: CodeUnknownArc},
		{name: "wrapped", err: fmt.Errorf("load: %w", New(CodeSaveMalformed, "x")), want: CodeSaveMalformed},
		{name: "plain", err: stderrors.New("x"), want: CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsFatalOnlyForClosedInput(t *testing.T) {
	if !IsFatal(New(CodeInputClosed, "eof")) {
		t.Fatal("expected closed input to be fatal")
	}
	if IsFatal(New(CodeInvalidIndex, "bad")) {
		t.Fatal("expected invalid index to be recoverable")
	}
	if IsFatal(nil) {
		t.Fatal("expected nil to be recoverable")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("save: %w", WithMetadata(CodeSaveNotFound, "missing", map[string]string{"Slot": "save_a.json"}))
	if !HasCode(err, CodeSaveNotFound) {
		t.Fatal("expected HasCode to find code")
	}
}

func TestUserMessageUsesCatalog(t *testing.T) {
	err := WithMetadata(CodeInvalidIndex, "course 9", map[string]string{"Index": "9"})
	got := UserMessage(err, "en-US")
	if got == "" || got == string(CodeInvalidIndex) {
		t.Fatalf("UserMessage() = %q, want catalog text", got)
	}
	if got := UserMessage(stderrors.New("plain"), "en-US"); got != "plain" {
		t.Fatalf("UserMessage(plain) = %q, want plain", got)
	}
}
