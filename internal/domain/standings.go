package domain

// DefaultPenaltyPerWrong is the penalty minutes added per failed attempt that
// precedes a problem's first acceptance. The product has shipped boards with
// both 10 and 20; 10 is the value of the current ruleset and the multiplier
// stays configurable (see infrastructure.StandingsConfig).
const DefaultPenaltyPerWrong = 10

// CellStatus classifies one participant/problem scoreboard cell
type CellStatus string

const (
	CellUnattempted CellStatus = "unattempted"
	CellAttempted   CellStatus = "attempted"
	CellSolved      CellStatus = "solved"
)

// ProblemCell is one scoreboard cell. For solved cells Attempts counts the
// failed tries before the first acceptance; for attempted cells it counts all
// failed tries.
type ProblemCell struct {
	Label            string     `json:"label"`
	Status           CellStatus `json:"status"`
	Attempts         int        `json:"attempts"`
	SolveTimeMinutes int        `json:"solve_time_minutes,omitempty"`
}

// StandingsRow is one participant's scoreboard line. Rows are rebuilt from
// scratch on every leaderboard request and discarded with the response.
type StandingsRow struct {
	Participant string        `json:"participant"`
	Cells       []ProblemCell `json:"cells"`
	Solved      int           `json:"solved"`
	Penalty     int           `json:"penalty"`
}

// LeaderboardStatus distinguishes a ranked board from a contest that has not
// started yet, which callers must render differently from an all-zero board.
type LeaderboardStatus string

const (
	LeaderboardNotStarted LeaderboardStatus = "not_started"
	LeaderboardRanked     LeaderboardStatus = "ranked"
)

// Leaderboard is the full ranked result. Warnings carry per-participant fetch
// failures so the caller can flag rows whose data may be incomplete.
type Leaderboard struct {
	Status   LeaderboardStatus `json:"status"`
	Rows     []StandingsRow    `json:"rows,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}
