package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxContestProblems caps a contest at one problem per letter A-Z
const MaxContestProblems = 26

// ProblemRef identifies a problem by the external judge's own numbering
type ProblemRef struct {
	ContestID int    `json:"contest_id"`
	Index     string `json:"index"`
}

// URL returns the judge's canonical link for this problem
func (r ProblemRef) URL() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d/problem/%s", r.ContestID, r.Index)
}

// ContestProblem is one problem slot within a contest. Coordinates are copied
// from the external judge; the display label is derived from the slot position.
type ContestProblem struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID         uuid.UUID `json:"contest_id" gorm:"type:uuid;not null;index"`
	ExternalContestID int       `json:"external_contest_id" gorm:"not null"`
	ProblemIndex      string    `json:"problem_index" gorm:"not null"`
	Rating            *int      `json:"rating"`
	Position          int       `json:"position" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContestProblem) TableName() string {
	return "contest_problems"
}

// Ref returns the problem's external judge coordinates
func (p *ContestProblem) Ref() ProblemRef {
	return ProblemRef{ContestID: p.ExternalContestID, Index: p.ProblemIndex}
}

// Label returns the sequential display letter for the problem's position
func (p *ContestProblem) Label() string {
	if p.Position < 0 || p.Position >= MaxContestProblems {
		return "?"
	}
	return string(rune('A' + p.Position))
}

// ContestProblemResponse represents a contest problem in API responses
type ContestProblemResponse struct {
	Label             string `json:"label"`
	ExternalContestID int    `json:"external_contest_id"`
	ProblemIndex      string `json:"problem_index"`
	Rating            *int   `json:"rating"`
	Link              string `json:"link"`
}

// ToResponse converts a ContestProblem to a ContestProblemResponse
func (p *ContestProblem) ToResponse() ContestProblemResponse {
	return ContestProblemResponse{
		Label:             p.Label(),
		ExternalContestID: p.ExternalContestID,
		ProblemIndex:      p.ProblemIndex,
		Rating:            p.Rating,
		Link:              p.Ref().URL(),
	}
}
