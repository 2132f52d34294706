package commands

import (
	"errors"
	"testing"
)

func TestParseTaskRef_Numeric(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.TaskNum != 5 {
		t.Errorf("expected TaskNum 5, got %d", ref.TaskNum)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskRef_HashPrefix(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"#12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.TaskNum != 12 {
		t.Errorf("expected TaskNum 12, got %d", ref.TaskNum)
	}
}

func TestParseTaskRef_ReturnsRemainingArgs(t *testing.T) {
	_, rest, err := ParseTaskRef([]string{"2", "Buy", "oat", "milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 3 || rest[0] != "Buy" {
		t.Errorf("unexpected remaining args %v", rest)
	}
}

func TestParseTaskRef_Empty(t *testing.T) {
	_, _, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Fatalf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	for _, arg := range []string{"a1", "#", "1.5", "-3", "３"} {
		_, _, err := ParseTaskRef([]string{arg})
		if err == nil {
			t.Errorf("expected error for %q", arg)
			continue
		}
		if err.Error() != "invalid task reference: "+arg {
			t.Errorf("unexpected message %q", err.Error())
		}
	}
}
