package data

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/codeforge/backend/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new database seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// SeedDemoContest creates a sample contest on an empty database so local
// environments have something to point the frontend at. Intended for
// development only; the caller gates on environment.
func (s *Seeder) SeedDemoContest() error {
	var count int64
	if err := s.db.Model(&domain.Contest{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Contests already present, skipping demo seed",
			zap.Int64("count", count),
		)
		return nil
	}

	rating := 800
	contest := &domain.Contest{
		Name:            "CodeForge Practice Round",
		AdminHandle:     "tourist",
		StartTime:       time.Now().Add(1 * time.Hour),
		DurationMinutes: 120,
		Problems: []domain.ContestProblem{
			{ExternalContestID: 4, ProblemIndex: "A", Rating: &rating, Position: 0},
			{ExternalContestID: 71, ProblemIndex: "A", Rating: &rating, Position: 1},
		},
		Participants: []domain.Participant{
			{Handle: "tourist"},
		},
	}

	if err := s.db.Create(contest).Error; err != nil {
		return err
	}

	contest.Slug = "contest-" + contest.ID.String()
	if err := s.db.Save(contest).Error; err != nil {
		return err
	}

	s.logger.Info("Demo contest seeded",
		zap.String("contest_id", contest.ID.String()),
		zap.String("slug", contest.Slug),
	)
	return nil
}
