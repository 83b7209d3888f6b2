package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/codeforge/backend/internal/domain"
)

// ProblemCatalog looks up problems on the external judge's public problemset
type ProblemCatalog interface {
	ProblemsByRating(ctx context.Context, rating int) ([]domain.ProblemRef, error)
}

// ContestService handles contest authoring and roster management
type ContestService struct {
	contestRepo domain.ContestRepository
	catalog     ProblemCatalog
	tracer      trace.Tracer
	logger      *zap.Logger
	rng         *rand.Rand
	rngMu       sync.Mutex // Protects rng for concurrent access
}

// NewContestService creates a new contest service
func NewContestService(
	contestRepo domain.ContestRepository,
	catalog ProblemCatalog,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		catalog:     catalog,
		tracer:      tracer,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateContest creates a new contest; the creating admin joins as an
// individual participant.
func (s *ContestService) CreateContest(ctx context.Context, req *domain.CreateContestRequest) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CreateContest")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.name", req.Name),
		attribute.String("contest.admin", req.Admin),
		attribute.Int("contest.problem_count", len(req.ProblemLinks)),
	)

	if len(req.ProblemLinks) > domain.MaxContestProblems {
		return nil, domain.ErrContestProblemLimit
	}

	problems := make([]domain.ContestProblem, 0, len(req.ProblemLinks))
	for i, link := range req.ProblemLinks {
		ref, err := parseProblemLink(link)
		if err != nil {
			return nil, err
		}
		problems = append(problems, domain.ContestProblem{
			ExternalContestID: ref.ContestID,
			ProblemIndex:      ref.Index,
			Position:          i,
		})
	}

	contest := &domain.Contest{
		Name:            req.Name,
		AdminHandle:     req.Admin,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Problems:        problems,
		Participants: []domain.Participant{
			{Handle: req.Admin},
		},
	}

	if err := s.contestRepo.Create(contest); err != nil {
		return nil, err
	}

	// The public slug embeds the generated ID, so it is set after creation
	contest.Slug = "contest-" + contest.ID.String()
	if err := s.contestRepo.Update(contest); err != nil {
		_ = s.contestRepo.Delete(contest.ID)
		return nil, err
	}

	s.logger.Info("Contest created",
		zap.String("contest_id", contest.ID.String()),
		zap.String("slug", contest.Slug),
		zap.String("admin", req.Admin),
		zap.Int("problem_count", len(problems)),
	)

	return contest, nil
}

// GetContestByID retrieves a contest by ID
func (s *ContestService) GetContestByID(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.GetContestByID")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))
	return s.contestRepo.FindByID(contestID)
}

// GetContestBySlug retrieves a contest by its public slug
func (s *ContestService) GetContestBySlug(ctx context.Context, slug string) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.GetContestBySlug")
	defer span.End()

	span.SetAttributes(attribute.String("contest.slug", slug))
	return s.contestRepo.FindBySlug(slug)
}

// ListContests returns all contests
func (s *ContestService) ListContests(ctx context.Context) ([]domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.ListContests")
	defer span.End()

	return s.contestRepo.FindAll()
}

// AddProblem adds a problem to a contest by its judge URL. Problems are
// immutable once the contest has started, so already-served scoreboards stay
// consistent.
func (s *ContestService) AddProblem(ctx context.Context, contestID uuid.UUID, problemLink string) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AddProblem")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("problem.link", problemLink),
	)

	ref, err := parseProblemLink(problemLink)
	if err != nil {
		return nil, err
	}
	return s.appendProblem(ctx, contestID, ref, nil)
}

// AddRandomProblem picks a random problemset problem with the given rating
// and adds it to the contest
func (s *ContestService) AddRandomProblem(ctx context.Context, contestID uuid.UUID, rating int) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AddRandomProblem")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.Int("problem.rating", rating),
	)

	refs, err := s.catalog.ProblemsByRating(ctx, rating)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, domain.ErrNoProblemForRating
	}

	s.rngMu.Lock()
	ref := refs[s.rng.Intn(len(refs))]
	s.rngMu.Unlock()

	return s.appendProblem(ctx, contestID, ref, &rating)
}

func (s *ContestService) appendProblem(ctx context.Context, contestID uuid.UUID, ref domain.ProblemRef, rating *int) (*domain.Contest, error) {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if contest.StatusAt(time.Now()) != domain.ContestStatusNotStarted {
		return nil, domain.ErrContestStarted
	}
	if len(contest.Problems) >= domain.MaxContestProblems {
		return nil, domain.ErrContestProblemLimit
	}

	problem := &domain.ContestProblem{
		ContestID:         contest.ID,
		ExternalContestID: ref.ContestID,
		ProblemIndex:      ref.Index,
		Rating:            rating,
		Position:          len(contest.Problems),
	}
	if err := s.contestRepo.AddProblem(problem); err != nil {
		return nil, err
	}
	contest.Problems = append(contest.Problems, *problem)

	s.logger.Info("Problem added to contest",
		zap.String("contest_id", contest.ID.String()),
		zap.String("problem", fmt.Sprintf("%d%s", ref.ContestID, ref.Index)),
		zap.String("label", problem.Label()),
	)

	return contest, nil
}

// JoinContest registers an individual competitor; joining twice is a no-op
func (s *ContestService) JoinContest(ctx context.Context, contestID uuid.UUID, handle string) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.JoinContest")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("participant.handle", handle),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	for i := range contest.Participants {
		p := &contest.Participants[i]
		if !p.IsTeam() && p.Handle == handle {
			return contest, nil
		}
	}

	participant := &domain.Participant{ContestID: contest.ID, Handle: handle}
	if err := participant.Validate(); err != nil {
		return nil, err
	}
	if err := s.contestRepo.AddParticipant(participant); err != nil {
		return nil, err
	}
	contest.Participants = append(contest.Participants, *participant)

	s.logger.Info("Participant joined contest",
		zap.String("contest_id", contest.ID.String()),
		zap.String("handle", handle),
	)

	return contest, nil
}

// JoinTeam registers a team of 1-3 competitors; joining under an existing
// team name is a no-op
func (s *ContestService) JoinTeam(ctx context.Context, contestID uuid.UUID, teamName string, members []string) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.JoinTeam")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("team.name", teamName),
		attribute.Int("team.size", len(members)),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	for i := range contest.Participants {
		p := &contest.Participants[i]
		if p.IsTeam() && p.TeamName == teamName {
			return contest, nil
		}
	}

	participant := &domain.Participant{
		ContestID: contest.ID,
		TeamName:  teamName,
		Members:   pq.StringArray(members),
	}
	if err := participant.Validate(); err != nil {
		return nil, err
	}
	if err := s.contestRepo.AddParticipant(participant); err != nil {
		return nil, err
	}
	contest.Participants = append(contest.Participants, *participant)

	s.logger.Info("Team joined contest",
		zap.String("contest_id", contest.ID.String()),
		zap.String("team", teamName),
		zap.Strings("members", members),
	)

	return contest, nil
}

// parseProblemLink extracts judge coordinates from a contest problem URL of
// the form https://codeforces.com/contest/<contestId>/problem/<index>
func parseProblemLink(link string) (domain.ProblemRef, error) {
	parts := strings.Split(strings.TrimSuffix(link, "/"), "/")
	if len(parts) < 7 || parts[3] != "contest" || parts[5] != "problem" {
		return domain.ProblemRef{}, domain.ErrInvalidProblemLink
	}
	contestID, err := strconv.Atoi(parts[4])
	if err != nil {
		return domain.ProblemRef{}, domain.ErrInvalidProblemLink
	}
	index := parts[6]
	if index == "" {
		return domain.ProblemRef{}, domain.ErrInvalidProblemLink
	}
	return domain.ProblemRef{ContestID: contestID, Index: index}, nil
}
