package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Team size limits
const (
	MinTeamMembers = 1
	MaxTeamMembers = 3
)

// Participant is a contest entrant: either an individual competitor (Handle
// set) or a team (TeamName plus 1-3 member handles). Exactly one variant must
// be populated.
type Participant struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID uuid.UUID      `json:"contest_id" gorm:"type:uuid;not null;index"`
	Handle    string         `json:"handle,omitempty"`
	TeamName  string         `json:"team_name,omitempty"`
	Members   pq.StringArray `json:"members,omitempty" gorm:"type:text[]"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Participant) TableName() string {
	return "participants"
}

// IsTeam reports whether the participant is the team variant
func (p *Participant) IsTeam() bool {
	return p.TeamName != ""
}

// DisplayName is the scoreboard identity: handle or team name
func (p *Participant) DisplayName() string {
	if p.IsTeam() {
		return p.TeamName
	}
	return p.Handle
}

// MemberHandles returns every judge handle whose submissions count for this
// participant
func (p *Participant) MemberHandles() []string {
	if p.IsTeam() {
		return p.Members
	}
	return []string{p.Handle}
}

// Validate checks the individual/team union invariants
func (p *Participant) Validate() error {
	if p.IsTeam() {
		if p.Handle != "" {
			return ErrInvalidParticipant
		}
		if len(p.Members) < MinTeamMembers || len(p.Members) > MaxTeamMembers {
			return ErrInvalidParticipant
		}
		for _, m := range p.Members {
			if m == "" {
				return ErrInvalidParticipant
			}
		}
		return nil
	}
	if p.Handle == "" {
		return ErrInvalidParticipant
	}
	if len(p.Members) > 0 {
		return ErrInvalidParticipant
	}
	return nil
}

// ParticipantResponse represents a participant in API responses
type ParticipantResponse struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

// ToResponse converts a Participant to a ParticipantResponse
func (p *Participant) ToResponse() ParticipantResponse {
	if p.IsTeam() {
		return ParticipantResponse{Type: "team", Name: p.TeamName, Members: p.Members}
	}
	return ParticipantResponse{Type: "individual", Name: p.Handle}
}
