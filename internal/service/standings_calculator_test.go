package service

import (
	"testing"
	"time"

	"github.com/codeforge/backend/internal/domain"
)

var calcStart = time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

func calcProblems() []domain.ContestProblem {
	return []domain.ContestProblem{
		{ExternalContestID: 100, ProblemIndex: "A", Position: 0},
	}
}

func sub(contestID int, index, verdict string, offset time.Duration) domain.Submission {
	return domain.Submission{
		ProblemContestID:    contestID,
		ProblemIndex:        index,
		Verdict:             verdict,
		CreationTimeSeconds: calcStart.Add(offset).Unix(),
	}
}

func TestComputeRowWrongAttemptsBeforeAccept(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "WRONG_ANSWER", 5*time.Minute),
		sub(100, "A", "TIME_LIMIT_EXCEEDED", 12*time.Minute),
		sub(100, "A", "OK", 20*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	if row.Solved != 1 {
		t.Fatalf("Solved = %d, want 1", row.Solved)
	}
	if want := 20 + 2*10; row.Penalty != want {
		t.Errorf("Penalty = %d, want %d", row.Penalty, want)
	}
	cell := row.Cells[0]
	if cell.Status != domain.CellSolved {
		t.Errorf("cell status = %q, want solved", cell.Status)
	}
	if cell.Attempts != 2 {
		t.Errorf("cell attempts = %d, want 2", cell.Attempts)
	}
	if cell.SolveTimeMinutes != 20 {
		t.Errorf("cell solve time = %d, want 20", cell.SolveTimeMinutes)
	}
}

func TestComputeRowIgnoresRejectsAfterAccept(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "OK", 10*time.Minute),
		sub(100, "A", "WRONG_ANSWER", 15*time.Minute),
		sub(100, "A", "OK", 25*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	cell := row.Cells[0]
	if cell.Attempts != 0 {
		t.Errorf("cell attempts = %d, want 0", cell.Attempts)
	}
	if cell.SolveTimeMinutes != 10 {
		t.Errorf("cell solve time = %d, want 10 (earliest accept wins)", cell.SolveTimeMinutes)
	}
	if row.Penalty != 10 {
		t.Errorf("Penalty = %d, want 10", row.Penalty)
	}
}

func TestComputeRowEarliestAcceptRegardlessOfInputOrder(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "OK", 25*time.Minute),
		sub(100, "A", "OK", 8*time.Minute),
	}

	row := computeRow("team", submissions, calcProblems(), calcStart, 10)

	if row.Cells[0].SolveTimeMinutes != 8 {
		t.Errorf("solve time = %d, want 8", row.Cells[0].SolveTimeMinutes)
	}
}

func TestComputeRowExcludesPreContestSubmissions(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "OK", -5*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	if row.Solved != 0 {
		t.Errorf("Solved = %d, want 0", row.Solved)
	}
	if row.Cells[0].Status != domain.CellUnattempted {
		t.Errorf("cell status = %q, want unattempted", row.Cells[0].Status)
	}
}

func TestComputeRowAttemptedUnsolvedAddsNoPenalty(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "WRONG_ANSWER", 5*time.Minute),
		sub(100, "A", "RUNTIME_ERROR", 9*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	cell := row.Cells[0]
	if cell.Status != domain.CellAttempted {
		t.Fatalf("cell status = %q, want attempted", cell.Status)
	}
	if cell.Attempts != 2 {
		t.Errorf("cell attempts = %d, want 2", cell.Attempts)
	}
	if row.Solved != 0 || row.Penalty != 0 {
		t.Errorf("Solved/Penalty = %d/%d, want 0/0", row.Solved, row.Penalty)
	}
}

func TestComputeRowIgnoresOtherProblems(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "B", "OK", 10*time.Minute),
		sub(999, "A", "OK", 10*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	if row.Solved != 0 {
		t.Errorf("Solved = %d, want 0", row.Solved)
	}
}

func TestComputeRowEmptyInputs(t *testing.T) {
	row := computeRow("alice", nil, calcProblems(), calcStart, 10)
	if row.Solved != 0 || row.Penalty != 0 {
		t.Errorf("empty submissions: Solved/Penalty = %d/%d, want 0/0", row.Solved, row.Penalty)
	}
	if row.Cells[0].Status != domain.CellUnattempted {
		t.Errorf("cell status = %q, want unattempted", row.Cells[0].Status)
	}

	row = computeRow("alice", nil, nil, calcStart, 10)
	if len(row.Cells) != 0 || row.Solved != 0 || row.Penalty != 0 {
		t.Errorf("empty problems should yield a trivial row, got %+v", row)
	}
}

func TestComputeRowSolveTimeFloorsToMinutes(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "OK", 119*time.Second),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 10)

	if row.Cells[0].SolveTimeMinutes != 1 {
		t.Errorf("solve time = %d, want 1 (floor of 119s)", row.Cells[0].SolveTimeMinutes)
	}
}

func TestComputeRowPenaltyMultiplierIsConfigurable(t *testing.T) {
	submissions := []domain.Submission{
		sub(100, "A", "WRONG_ANSWER", 5*time.Minute),
		sub(100, "A", "OK", 20*time.Minute),
	}

	row := computeRow("alice", submissions, calcProblems(), calcStart, 20)

	if want := 20 + 1*20; row.Penalty != want {
		t.Errorf("Penalty = %d, want %d", row.Penalty, want)
	}
}

func TestSortRowsOrderingLaw(t *testing.T) {
	rows := []domain.StandingsRow{
		{Participant: "c", Solved: 1, Penalty: 50},
		{Participant: "a", Solved: 2, Penalty: 120},
		{Participant: "b", Solved: 2, Penalty: 40},
		{Participant: "d", Solved: 0, Penalty: 0},
	}

	sortRows(rows)

	for i := 0; i < len(rows)-1; i++ {
		a, b := rows[i], rows[i+1]
		if a.Solved < b.Solved {
			t.Fatalf("rows[%d].Solved=%d < rows[%d].Solved=%d", i, a.Solved, i+1, b.Solved)
		}
		if a.Solved == b.Solved && a.Penalty > b.Penalty {
			t.Fatalf("rows[%d].Penalty=%d > rows[%d].Penalty=%d with equal solved", i, a.Penalty, i+1, b.Penalty)
		}
	}
	if rows[0].Participant != "b" || rows[1].Participant != "a" {
		t.Errorf("order = %s,%s,..., want b,a,...", rows[0].Participant, rows[1].Participant)
	}
}

func TestSortRowsEqualTotalsKeepRelativeOrder(t *testing.T) {
	rows := []domain.StandingsRow{
		{Participant: "first", Solved: 1, Penalty: 20},
		{Participant: "second", Solved: 1, Penalty: 20},
	}

	sortRows(rows)

	if rows[0].Participant != "first" || rows[1].Participant != "second" {
		t.Errorf("stable sort changed relative order of tied rows: %s, %s",
			rows[0].Participant, rows[1].Participant)
	}
}
