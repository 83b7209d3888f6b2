package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codeforge/backend/internal/domain"
)

// contestRepository implements domain.ContestRepository using GORM
type contestRepository struct {
	db *gorm.DB
}

// NewContestRepository creates a new contest repository
func NewContestRepository(db *gorm.DB) domain.ContestRepository {
	return &contestRepository{db: db}
}

// Create creates a new contest together with its initial problems and roster
func (r *contestRepository) Create(contest *domain.Contest) error {
	return r.db.Create(contest).Error
}

// FindByID finds a contest with problems (in position order) and roster loaded
func (r *contestRepository) FindByID(id uuid.UUID) (*domain.Contest, error) {
	var contest domain.Contest
	result := r.preloaded().Where("id = ?", id).First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContestNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}

// FindBySlug finds a contest by its public slug
func (r *contestRepository) FindBySlug(slug string) (*domain.Contest, error) {
	var contest domain.Contest
	result := r.preloaded().Where("slug = ?", slug).First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContestNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}

// FindAll returns all contests ordered by start time, newest first
func (r *contestRepository) FindAll() ([]domain.Contest, error) {
	var contests []domain.Contest
	result := r.preloaded().Order("start_time DESC").Find(&contests)
	return contests, result.Error
}

// Update updates an existing contest
func (r *contestRepository) Update(contest *domain.Contest) error {
	return r.db.Save(contest).Error
}

// AddProblem appends a problem slot to a contest
func (r *contestRepository) AddProblem(problem *domain.ContestProblem) error {
	return r.db.Create(problem).Error
}

// AddParticipant appends an entrant to a contest roster
func (r *contestRepository) AddParticipant(participant *domain.Participant) error {
	return r.db.Create(participant).Error
}

// Delete deletes a contest and its dependent rows
func (r *contestRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.ContestProblem{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Participant{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Contest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrContestNotFound
		}
		return nil
	})
}

func (r *contestRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_problems.position ASC")
		}).
		Preload("Participants")
}
