package service

import (
	"sort"
	"time"

	"github.com/codeforge/backend/internal/domain"
)

// matchesProblem reports whether sub is an attempt on prob within this
// contest: judge coordinates must be identical and the submission must not
// predate the contest start. The time filter keeps acceptances from earlier,
// unrelated events off the board.
func matchesProblem(sub domain.Submission, prob *domain.ContestProblem, start time.Time) bool {
	return sub.ProblemContestID == prob.ExternalContestID &&
		sub.ProblemIndex == prob.ProblemIndex &&
		!sub.SubmittedAt().Before(start)
}

// computeRow builds one scoreboard line for a participant from its merged
// submission pool. Input order of submissions carries no meaning; only
// timestamps do. Per problem: the earliest acceptance fixes the solve time,
// failed attempts strictly before it add penaltyPerWrong minutes each, and
// failed attempts after it are ignored. Unsolved problems never contribute
// penalty.
func computeRow(name string, submissions []domain.Submission, problems []domain.ContestProblem, start time.Time, penaltyPerWrong int) domain.StandingsRow {
	row := domain.StandingsRow{
		Participant: name,
		Cells:       make([]domain.ProblemCell, 0, len(problems)),
	}

	for i := range problems {
		prob := &problems[i]
		cell := domain.ProblemCell{Label: prob.Label(), Status: domain.CellUnattempted}

		var accepted, rejected []domain.Submission
		for _, sub := range submissions {
			if !matchesProblem(sub, prob, start) {
				continue
			}
			if sub.Accepted() {
				accepted = append(accepted, sub)
			} else {
				rejected = append(rejected, sub)
			}
		}

		switch {
		case len(accepted) > 0:
			// Strict < keeps the pick stable on identical timestamps; only
			// the timestamp value feeds the totals either way.
			first := accepted[0]
			for _, sub := range accepted[1:] {
				if sub.CreationTimeSeconds < first.CreationTimeSeconds {
					first = sub
				}
			}

			solveMinutes := int((first.CreationTimeSeconds - start.Unix()) / 60)

			wrongAttempts := 0
			for _, sub := range rejected {
				if sub.CreationTimeSeconds < first.CreationTimeSeconds {
					wrongAttempts++
				}
			}

			cell.Status = domain.CellSolved
			cell.Attempts = wrongAttempts
			cell.SolveTimeMinutes = solveMinutes
			row.Solved++
			row.Penalty += solveMinutes + wrongAttempts*penaltyPerWrong

		case len(rejected) > 0:
			cell.Status = domain.CellAttempted
			cell.Attempts = len(rejected)
		}

		row.Cells = append(row.Cells, cell)
	}

	return row
}

// sortRows orders rows by solved count descending, then penalty ascending.
// Rows with equal solved count and penalty keep their relative order; no
// further tie-break is defined.
func sortRows(rows []domain.StandingsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Solved != rows[j].Solved {
			return rows[i].Solved > rows[j].Solved
		}
		return rows[i].Penalty < rows[j].Penalty
	})
}
