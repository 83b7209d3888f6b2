package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContestStatus represents where a contest sits relative to its time window.
// It is never stored; it is recomputed from the clock on every request.
type ContestStatus string

const (
	ContestStatusNotStarted ContestStatus = "not_started"
	ContestStatusRunning    ContestStatus = "running"
	ContestStatusEnded      ContestStatus = "ended"
)

// Contest is a custom contest assembled from external judge problems
type Contest struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string    `json:"name" gorm:"not null"`
	Slug            string    `json:"slug" gorm:"uniqueIndex"`
	AdminHandle     string    `json:"admin_handle" gorm:"not null"`
	StartTime       time.Time `json:"start_time" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Problems     []ContestProblem `json:"problems,omitempty" gorm:"foreignKey:ContestID"`
	Participants []Participant    `json:"participants,omitempty" gorm:"foreignKey:ContestID"`
}

// TableName specifies the table name for GORM
func (Contest) TableName() string {
	return "contests"
}

// EndTime returns the end of the contest window
func (c *Contest) EndTime() time.Time {
	return c.StartTime.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

// StatusAt computes the contest state at the given instant
func (c *Contest) StatusAt(now time.Time) ContestStatus {
	switch {
	case now.Before(c.StartTime):
		return ContestStatusNotStarted
	case now.Before(c.EndTime()):
		return ContestStatusRunning
	default:
		return ContestStatusEnded
	}
}

// ContestRepository defines the interface for contest data access
type ContestRepository interface {
	Create(contest *Contest) error
	FindByID(id uuid.UUID) (*Contest, error)
	FindBySlug(slug string) (*Contest, error)
	FindAll() ([]Contest, error)
	Update(contest *Contest) error
	AddProblem(problem *ContestProblem) error
	AddParticipant(participant *Participant) error
	Delete(id uuid.UUID) error
}

// CreateContestRequest represents the data needed to create a new contest
type CreateContestRequest struct {
	Name            string    `json:"name" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=10,max=600"`
	Admin           string    `json:"admin" binding:"required"`
	ProblemLinks    []string  `json:"problem_links"`
}

// AddProblemRequest adds a single problem to a contest by its judge URL
type AddProblemRequest struct {
	ProblemLink string `json:"problem_link" binding:"required"`
}

// AddRandomProblemRequest adds a random problem of the given difficulty rating
type AddRandomProblemRequest struct {
	Rating int `json:"rating" binding:"required,min=800,max=3500"`
}

// JoinContestRequest registers an individual competitor
type JoinContestRequest struct {
	Handle string `json:"handle" binding:"required"`
}

// JoinTeamRequest registers a team of 1-3 competitors
type JoinTeamRequest struct {
	TeamName string   `json:"team_name" binding:"required"`
	Members  []string `json:"members" binding:"required,min=1,max=3"`
}

// ContestResponse represents a contest in API responses
type ContestResponse struct {
	ID              uuid.UUID                `json:"id"`
	Name            string                   `json:"name"`
	Slug            string                   `json:"slug"`
	AdminHandle     string                   `json:"admin_handle"`
	StartTime       time.Time                `json:"start_time"`
	DurationMinutes int                      `json:"duration_minutes"`
	Status          ContestStatus            `json:"status"`
	Problems        []ContestProblemResponse `json:"problems"`
	Participants    []ParticipantResponse    `json:"participants"`
}

// ToResponse converts a Contest to a ContestResponse
func (c *Contest) ToResponse(now time.Time) ContestResponse {
	problems := make([]ContestProblemResponse, len(c.Problems))
	for i, p := range c.Problems {
		problems[i] = p.ToResponse()
	}
	participants := make([]ParticipantResponse, len(c.Participants))
	for i, p := range c.Participants {
		participants[i] = p.ToResponse()
	}

	return ContestResponse{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		AdminHandle:     c.AdminHandle,
		StartTime:       c.StartTime,
		DurationMinutes: c.DurationMinutes,
		Status:          c.StatusAt(now),
		Problems:        problems,
		Participants:    participants,
	}
}
