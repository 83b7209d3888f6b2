package domain

import "time"

// VerdictAccepted is the only verdict that counts as solved; every other
// verdict (wrong answer, TLE, RE, CE, ...) scores as a failed attempt.
const VerdictAccepted = "OK"

// Submission is one entry of a competitor's submission log on the external
// judge. It is read-only input to standings computation and is never persisted.
type Submission struct {
	ProblemContestID    int    `json:"problem_contest_id"`
	ProblemIndex        string `json:"problem_index"`
	Verdict             string `json:"verdict"`
	CreationTimeSeconds int64  `json:"creation_time_seconds"`
}

// Accepted reports whether the judge accepted this submission
func (s Submission) Accepted() bool {
	return s.Verdict == VerdictAccepted
}

// SubmittedAt returns the submission instant
func (s Submission) SubmittedAt() time.Time {
	return time.Unix(s.CreationTimeSeconds, 0)
}
