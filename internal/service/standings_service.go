package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/codeforge/backend/internal/domain"
	"github.com/codeforge/backend/internal/infrastructure"
)

// SubmissionSource fetches a competitor's recent submission history from the
// external judge
type SubmissionSource interface {
	RecentSubmissions(ctx context.Context, handle string) ([]domain.Submission, error)
}

// StandingsService computes ICPC-style scoreboards for contests. It holds no
// state across invocations; every leaderboard is rebuilt from the contest
// definition and fresh judge data.
type StandingsService struct {
	contestRepo domain.ContestRepository
	source      SubmissionSource
	config      infrastructure.StandingsConfig
	tracer      trace.Tracer
	logger      *zap.Logger
	metrics     *infrastructure.TelemetryMetrics
}

// NewStandingsService creates a new standings service. metrics may be nil in
// tests.
func NewStandingsService(
	contestRepo domain.ContestRepository,
	source SubmissionSource,
	config infrastructure.StandingsConfig,
	tracer trace.Tracer,
	logger *zap.Logger,
	metrics *infrastructure.TelemetryMetrics,
) *StandingsService {
	return &StandingsService{
		contestRepo: contestRepo,
		source:      source,
		config:      config,
		tracer:      tracer,
		logger:      logger,
		metrics:     metrics,
	}
}

// ComputeLeaderboard builds the ranked scoreboard for a contest
func (s *StandingsService) ComputeLeaderboard(ctx context.Context, contestID uuid.UUID) (*domain.Leaderboard, error) {
	ctx, span := s.tracer.Start(ctx, "StandingsService.ComputeLeaderboard")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, contest)
}

// ComputeLeaderboardBySlug builds the ranked scoreboard for a contest looked
// up by its public slug
func (s *StandingsService) ComputeLeaderboardBySlug(ctx context.Context, slug string) (*domain.Leaderboard, error) {
	ctx, span := s.tracer.Start(ctx, "StandingsService.ComputeLeaderboardBySlug")
	defer span.End()

	span.SetAttributes(attribute.String("contest.slug", slug))

	contest, err := s.contestRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, contest)
}

func (s *StandingsService) build(ctx context.Context, contest *domain.Contest) (*domain.Leaderboard, error) {
	start := time.Now()

	// A contest without problems or with a malformed roster is an upstream
	// data bug, not a transient condition: fail the whole call.
	if len(contest.Problems) == 0 {
		return nil, domain.ErrNoProblems
	}
	for i := range contest.Participants {
		if err := contest.Participants[i].Validate(); err != nil {
			return nil, domain.WrapError(err, fmt.Sprintf("contest %s: participant %q is malformed", contest.ID, contest.Participants[i].DisplayName()))
		}
	}

	if contest.StatusAt(time.Now()) == domain.ContestStatusNotStarted {
		return &domain.Leaderboard{Status: domain.LeaderboardNotStarted}, nil
	}

	entrants := visibleParticipants(contest.Participants)

	ctx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	pools, warnings, err := s.fetchSubmissionPools(ctx, entrants)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.StandingsRow, 0, len(entrants))
	for i := range entrants {
		rows = append(rows, computeRow(
			entrants[i].DisplayName(),
			pools[i],
			contest.Problems,
			contest.StartTime,
			s.config.PenaltyPerWrong,
		))
	}
	sortRows(rows)

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.LeaderboardBuilds.Add(ctx, 1)
		s.metrics.LeaderboardBuildDuration.Record(ctx, elapsed.Seconds())
	}
	s.logger.Info("Leaderboard computed",
		zap.String("contest_id", contest.ID.String()),
		zap.Int("participants", len(rows)),
		zap.Int("degraded", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	return &domain.Leaderboard{
		Status:   domain.LeaderboardRanked,
		Rows:     rows,
		Warnings: warnings,
	}, nil
}

// visibleParticipants applies the roster exclusion rule: an individual whose
// handle is also on a participating team is hidden from the board, since the
// team row already accounts for their submissions.
func visibleParticipants(participants []domain.Participant) []domain.Participant {
	teamMembers := make(map[string]bool)
	for i := range participants {
		if participants[i].IsTeam() {
			for _, m := range participants[i].Members {
				teamMembers[m] = true
			}
		}
	}

	visible := make([]domain.Participant, 0, len(participants))
	for i := range participants {
		if !participants[i].IsTeam() && teamMembers[participants[i].Handle] {
			continue
		}
		visible = append(visible, participants[i])
	}
	return visible
}

type fetchJob struct {
	participant int
	handle      string
}

type fetchResult struct {
	participant int
	handle      string
	submissions []domain.Submission
	err         error
}

// fetchSubmissionPools fans out one judge fetch per participant member with a
// bounded worker pool and merges team members' streams into their
// participant's pool. A failed fetch degrades that participant to "no
// progress" and yields a warning; a cancelled or timed-out context fails the
// whole build so partial results are never returned as complete.
func (s *StandingsService) fetchSubmissionPools(ctx context.Context, participants []domain.Participant) ([][]domain.Submission, []string, error) {
	var jobs []fetchJob
	for i := range participants {
		for _, handle := range participants[i].MemberHandles() {
			jobs = append(jobs, fetchJob{participant: i, handle: handle})
		}
	}

	jobCh := make(chan fetchJob)
	resultCh := make(chan fetchResult, len(jobs))

	workers := s.config.MaxConcurrentFetches
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				submissions, err := s.source.RecentSubmissions(ctx, job.handle)
				resultCh <- fetchResult{
					participant: job.participant,
					handle:      job.handle,
					submissions: submissions,
					err:         err,
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	pools := make([][]domain.Submission, len(participants))
	var warnings []string
	for res := range resultCh {
		if s.metrics != nil {
			s.metrics.JudgeRequests.Add(ctx, 1)
		}
		if res.err != nil {
			if ctx.Err() != nil {
				// Build-level failure; reported below once drained.
				continue
			}
			if s.metrics != nil {
				s.metrics.JudgeRequestErrors.Add(ctx, 1)
			}
			s.logger.Warn("Submission fetch failed, participant degrades to no progress",
				zap.String("handle", res.handle),
				zap.Error(res.err),
			)
			warnings = append(warnings, fmt.Sprintf("submissions unavailable for %s", res.handle))
			continue
		}
		pools[res.participant] = append(pools[res.participant], res.submissions...)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("leaderboard build aborted: %w", err)
	}

	// Result arrival order is nondeterministic; keep the warning list stable.
	sort.Strings(warnings)
	return pools, warnings, nil
}
