package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("description", "cannot be empty")

	if err.Error() != "description: cannot be empty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsValidation(err) {
		t.Error("expected IsValidation to match")
	}
	if IsStorage(err) {
		t.Error("validation error must not look like a storage error")
	}

	wrapped := fmt.Errorf("add transaction: %w", err)
	var ve *ValidationError
	if !errors.As(wrapped, &ve) || ve.Field != "description" {
		t.Errorf("errors.As did not recover the field: %v", wrapped)
	}
}

func TestStorageError(t *testing.T) {
	if NewStorageError("save", "k", nil) != nil {
		t.Fatal("nil cause must produce nil error")
	}

	cause := errors.New("disk full")
	err := NewStorageError("save", "budget", cause)

	if !IsStorage(err) {
		t.Error("expected IsStorage to match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrapped")
	}
	if err.Error() != `storage save "budget": disk full` {
		t.Errorf("Error() = %q", err.Error())
	}

	joined := errors.Join(err, NewStorageError("load", "categories", cause))
	if !IsStorage(joined) {
		t.Error("joined storage errors should still match")
	}
}

func TestUserError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "with cause", err: NewUserError("could not add", errors.New("boom")), want: "could not add: boom"},
		{name: "message only", err: NewUserError("could not add", nil), want: "could not add"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
