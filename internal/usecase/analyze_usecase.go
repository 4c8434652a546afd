package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/job"
	"profile-match/internal/domain/matching"
	"profile-match/internal/infrastructure/cache"
	"profile-match/internal/repository"
)

var (
	ErrJobPostingNotFound = errors.New("job posting not found")
	ErrCandidateNotFound  = errors.New("candidate not found")
)

// ReportCache is the slice of the cache the analyzer needs.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AnalyzeUsecase interface {
	Analyze(ctx context.Context, candidateID, postingID uuid.UUID) (matching.Report, error)
}

type Analyzer struct {
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	skills     repository.SkillRepository
	cache      ReportCache
	logger     *zap.Logger
	now        func() time.Time
}

func NewAnalyzeUsecase(jobs repository.JobRepository, candidates repository.CandidateRepository, skills repository.SkillRepository, cache ReportCache, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		jobs:       jobs,
		candidates: candidates,
		skills:     skills,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Analyze scores one candidate against one job posting. All collaborator
// reads are issued up front (independently, in parallel); the scoring itself
// is a pure computation over the fetched data.
func (u *Analyzer) Analyze(ctx context.Context, candidateID, postingID uuid.UUID) (matching.Report, error) {
	if candidateID == uuid.Nil {
		return matching.Report{}, ErrCandidateNotFound
	}
	if postingID == uuid.Nil {
		return matching.Report{}, ErrJobPostingNotFound
	}

	cacheKey := cache.ReportKey(candidateID.String(), postingID.String())
	if u.cache != nil {
		var cached matching.Report
		if ok, _ := u.cache.GetJSON(ctx, cacheKey, &cached); ok {
			return cached, nil
		}
	}

	var (
		posting  job.Posting
		reqs     job.Requirements
		declared []candidate.DeclaredSkill
		history  []candidate.WorkHistoryRecord
		records  []candidate.EducationRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posting, err = u.jobs.FindPostingByID(gctx, postingID)
		return err
	})
	g.Go(func() error {
		var err error
		reqs, err = u.jobs.FindRequirements(gctx, postingID)
		return err
	})
	g.Go(func() error {
		if _, err := u.candidates.FindByID(gctx, candidateID); err != nil {
			return err
		}
		var err error
		declared, err = u.candidates.FindDeclaredSkills(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = u.candidates.FindWorkHistory(gctx, candidateID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = u.candidates.FindEducation(gctx, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostingNotFound):
			return matching.Report{}, ErrJobPostingNotFound
		case errors.Is(err, repository.ErrCandidateNotFound):
			return matching.Report{}, ErrCandidateNotFound
		}
		u.logger.Error("analyze fetch failed",
			zap.String("candidate_id", candidateID.String()),
			zap.String("posting_id", postingID.String()),
			zap.Error(err),
		)
		return matching.Report{}, ErrInternal
	}

	edges, err := u.similarEdges(ctx, reqs.Skills, declared)
	if err != nil {
		u.logger.Error("similarity lookup failed", zap.Error(err))
		return matching.Report{}, ErrInternal
	}

	report := matching.Evaluate(posting, reqs, declared, history, records, edges, u.now())

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, report, 0)
	}
	return report, nil
}

// similarEdges fetches similarity edges for required skills the candidate
// does not hold directly. Edges are stored once per pair; both directions are
// folded into a required-skill keyed index, keeping only edges that point at
// a skill the candidate declared.
func (u *Analyzer) similarEdges(ctx context.Context, reqs []job.SkillRequirement, declared []candidate.DeclaredSkill) (map[uuid.UUID][]matching.SimilarEdge, error) {
	declaredName := make(map[uuid.UUID]string, len(declared))
	for _, ds := range declared {
		declaredName[ds.SkillID] = ds.SkillName
	}

	unmatched := make([]uuid.UUID, 0, len(reqs))
	required := make(map[uuid.UUID]bool, len(reqs))
	for _, r := range reqs {
		if _, ok := declaredName[r.SkillID]; ok {
			continue
		}
		if required[r.SkillID] {
			continue
		}
		required[r.SkillID] = true
		unmatched = append(unmatched, r.SkillID)
	}
	if len(unmatched) == 0 {
		return nil, nil
	}

	edges, err := u.skills.SimilarityEdges(ctx, unmatched)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]matching.SimilarEdge)
	add := func(from, to uuid.UUID, score float64) {
		if !required[from] {
			return
		}
		name, ok := declaredName[to]
		if !ok {
			return
		}
		out[from] = append(out[from], matching.SimilarEdge{SkillID: to, SkillName: name, Score: score})
	}
	for _, e := range edges {
		add(e.SkillID, e.RelatedSkillID, e.Score)
		add(e.RelatedSkillID, e.SkillID, e.Score)
	}
	return out, nil
}
