package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestParticipantValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Participant
		wantErr bool
	}{
		{"individual", Participant{Handle: "alice"}, false},
		{"solo team", Participant{TeamName: "Foo", Members: pq.StringArray{"alice"}}, false},
		{"full team", Participant{TeamName: "Foo", Members: pq.StringArray{"a", "b", "c"}}, false},
		{"neither variant", Participant{}, true},
		{"team without members", Participant{TeamName: "Foo"}, true},
		{"team too large", Participant{TeamName: "Foo", Members: pq.StringArray{"a", "b", "c", "d"}}, true},
		{"team with blank member", Participant{TeamName: "Foo", Members: pq.StringArray{"a", ""}}, true},
		{"both variants set", Participant{Handle: "alice", TeamName: "Foo", Members: pq.StringArray{"a"}}, true},
		{"individual with members", Participant{Handle: "alice", Members: pq.StringArray{"b"}}, true},
	}

	for _, tt := range tests {
		err := tt.p.Validate()
		if tt.wantErr && !errors.Is(err, ErrInvalidParticipant) {
			t.Errorf("%s: err = %v, want ErrInvalidParticipant", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestParticipantIdentity(t *testing.T) {
	individual := Participant{Handle: "alice"}
	if individual.IsTeam() {
		t.Error("individual reported as team")
	}
	if individual.DisplayName() != "alice" {
		t.Errorf("DisplayName = %q, want alice", individual.DisplayName())
	}
	if got := individual.MemberHandles(); !reflect.DeepEqual(got, []string{"alice"}) {
		t.Errorf("MemberHandles = %v, want [alice]", got)
	}

	team := Participant{TeamName: "Foo", Members: pq.StringArray{"alice", "bob"}}
	if !team.IsTeam() {
		t.Error("team not reported as team")
	}
	if team.DisplayName() != "Foo" {
		t.Errorf("DisplayName = %q, want Foo", team.DisplayName())
	}
	if got := team.MemberHandles(); len(got) != 2 {
		t.Errorf("MemberHandles = %v, want both members", got)
	}
}

func TestSubmissionAccepted(t *testing.T) {
	if !(Submission{Verdict: VerdictAccepted}).Accepted() {
		t.Error("OK verdict should be accepted")
	}
	for _, verdict := range []string{"WRONG_ANSWER", "TIME_LIMIT_EXCEEDED", "RUNTIME_ERROR", "COMPILATION_ERROR", ""} {
		if (Submission{Verdict: verdict}).Accepted() {
			t.Errorf("verdict %q should not be accepted", verdict)
		}
	}
}
