package codeforces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{
		BaseURL:          server.URL,
		SubmissionWindow: 50,
		RequestTimeout:   2 * time.Second,
	}, zap.NewNop())
}

func TestRecentSubmissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user.status" {
			t.Errorf("path = %q, want /user.status", r.URL.Path)
		}
		if got := r.URL.Query().Get("handle"); got != "alice" {
			t.Errorf("handle = %q, want alice", got)
		}
		if got := r.URL.Query().Get("count"); got != "50" {
			t.Errorf("count = %q, want 50", got)
		}
		w.Write([]byte(`{
			"status": "OK",
			"result": [
				{"id": 1, "problem": {"contestId": 100, "index": "A", "rating": 800}, "verdict": "OK", "creationTimeSeconds": 1700000000},
				{"id": 2, "problem": {"contestId": 100, "index": "B"}, "verdict": "WRONG_ANSWER", "creationTimeSeconds": 1700000100}
			]
		}`))
	})

	submissions, err := client.RecentSubmissions(context.Background(), "alice")
	if err != nil {
		t.Fatalf("RecentSubmissions: %v", err)
	}
	if len(submissions) != 2 {
		t.Fatalf("len = %d, want 2", len(submissions))
	}
	first := submissions[0]
	if first.ProblemContestID != 100 || first.ProblemIndex != "A" {
		t.Errorf("coordinates = %d/%s, want 100/A", first.ProblemContestID, first.ProblemIndex)
	}
	if !first.Accepted() {
		t.Error("first submission should be accepted")
	}
	if first.CreationTimeSeconds != 1700000000 {
		t.Errorf("timestamp = %d, want 1700000000", first.CreationTimeSeconds)
	}
	if submissions[1].Accepted() {
		t.Error("second submission should not be accepted")
	}
}

func TestRecentSubmissionsAPIFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "FAILED", "comment": "handle: User with handle alice not found"}`))
	})

	if _, err := client.RecentSubmissions(context.Background(), "alice"); err == nil {
		t.Error("expected error for FAILED api status")
	}
}

func TestRecentSubmissionsTransportFailure(t *testing.T) {
	client := NewClient(&Config{
		BaseURL:          "http://127.0.0.1:1", // nothing listens here
		SubmissionWindow: 50,
		RequestTimeout:   500 * time.Millisecond,
	}, zap.NewNop())

	if _, err := client.RecentSubmissions(context.Background(), "alice"); err == nil {
		t.Error("expected transport error")
	}
}

func TestProblemsByRating(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/problemset.problems" {
			t.Errorf("path = %q, want /problemset.problems", r.URL.Path)
		}
		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"problems": [
					{"contestId": 1, "index": "A", "rating": 800},
					{"contestId": 2, "index": "B", "rating": 1500},
					{"contestId": 3, "index": "C", "rating": 800}
				]
			}
		}`))
	})

	refs, err := client.ProblemsByRating(context.Background(), 800)
	if err != nil {
		t.Fatalf("ProblemsByRating: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("len = %d, want 2", len(refs))
	}
	if refs[0].ContestID != 1 || refs[1].ContestID != 3 {
		t.Errorf("refs = %+v, want contests 1 and 3", refs)
	}
}

func TestRecentSubmissionsCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "result": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.RecentSubmissions(ctx, "alice"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
