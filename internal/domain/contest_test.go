package domain

import (
	"testing"
	"time"
)

func TestContestStatusAt(t *testing.T) {
	start := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	contest := &Contest{StartTime: start, DurationMinutes: 120}

	tests := []struct {
		name string
		now  time.Time
		want ContestStatus
	}{
		{"before start", start.Add(-1 * time.Minute), ContestStatusNotStarted},
		{"at start", start, ContestStatusRunning},
		{"mid window", start.Add(1 * time.Hour), ContestStatusRunning},
		{"at end", start.Add(2 * time.Hour), ContestStatusEnded},
		{"after end", start.Add(3 * time.Hour), ContestStatusEnded},
	}

	for _, tt := range tests {
		if got := contest.StatusAt(tt.now); got != tt.want {
			t.Errorf("%s: StatusAt = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestContestProblemLabel(t *testing.T) {
	tests := []struct {
		position int
		want     string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "?"},
		{-1, "?"},
	}
	for _, tt := range tests {
		p := &ContestProblem{Position: tt.position}
		if got := p.Label(); got != tt.want {
			t.Errorf("Label(position=%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
}

func TestProblemRefURL(t *testing.T) {
	ref := ProblemRef{ContestID: 1234, Index: "B2"}
	want := "https://codeforces.com/contest/1234/problem/B2"
	if got := ref.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
