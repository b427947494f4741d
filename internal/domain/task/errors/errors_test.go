package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}
	if msg, ok := Message(err); !ok || msg != "bad" {
		t.Fatalf("message: %q %v", msg, ok)
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
	if _, ok := Message(wrapped); ok {
		t.Fatal("internal wrap must not expose the inner message")
	}
}

func TestKindsSurviveWrapping(t *testing.T) {
	cases := []struct {
		err   error
		check func(error) bool
	}{
		{NewNotFound("Label not found"), IsNotFound},
		{NewAlreadyExists("Username already exists"), IsAlreadyExists},
		{NewConflict("busy"), IsConflict},
		{ErrUnauthorized, IsUnauthorized},
		{ErrInvalidCredentials, IsInvalidCredentials},
		{ErrInvalidToken, IsInvalidToken},
	}
	for _, c := range cases {
		wrapped := fmt.Errorf("outer: %w", c.err)
		if !c.check(wrapped) {
			t.Fatalf("kind lost for %v", c.err)
		}
	}
}

func TestValidationFields(t *testing.T) {
	err := NewValidation("Invalid input", map[string]string{
		"title":    "is required",
		"priority": "must be at most 10",
	})
	if got := Fields(err); len(got) != 2 {
		t.Fatalf("fields: %v", got)
	}
	want := "Invalid input (priority: must be at most 10; title: is required)"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
	if Fields(errors.New("plain")) != nil {
		t.Fatal("plain error has no fields")
	}
}
