package types

import (
	"errors"
	"testing"
)

func TestOutcomeConstructors(t *testing.T) {
	fin := Finished("done")
	if !fin.IsFinished() || fin.IsContinue() || fin.IsBroken() {
		t.Errorf("Finished predicates wrong: %+v", fin)
	}
	if fin.Value != "done" {
		t.Errorf("Expected value 'done', got %q", fin.Value)
	}
	if fin.Err != nil {
		t.Errorf("Expected nil error, got %v", fin.Err)
	}

	cont := Continue[string]()
	if !cont.IsContinue() || cont.IsFinished() || cont.IsBroken() {
		t.Errorf("Continue predicates wrong: %+v", cont)
	}
	if cont.Err != nil {
		t.Errorf("Expected nil error, got %v", cont.Err)
	}

	transient := errors.New("not ready")
	contErr := ContinueWith[string](transient)
	if !contErr.IsContinue() {
		t.Errorf("ContinueWith should be a continue outcome: %+v", contErr)
	}
	if contErr.Err != transient {
		t.Errorf("Expected transient error, got %v", contErr.Err)
	}

	reason := errors.New("fatal")
	broken := Broken[string](reason)
	if !broken.IsBroken() || broken.IsFinished() || broken.IsContinue() {
		t.Errorf("Broken predicates wrong: %+v", broken)
	}
	if broken.Err != reason {
		t.Errorf("Expected reason, got %v", broken.Err)
	}
}

func TestOutcomeKindString(t *testing.T) {
	tests := []struct {
		kind OutcomeKind
		want string
	}{
		{OutcomeContinue, "continue"},
		{OutcomeFinished, "finished"},
		{OutcomeBroken, "broken"},
		{OutcomeKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
