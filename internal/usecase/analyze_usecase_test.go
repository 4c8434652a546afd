package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/job"
	"profile-match/internal/domain/matching"
	"profile-match/internal/domain/skill"
	"profile-match/internal/repository"
)

type mockJobRepo struct {
	posting    job.Posting
	postingErr error
	reqs       job.Requirements
	reqsErr    error
}

func (m *mockJobRepo) FindPostingByID(_ context.Context, _ uuid.UUID) (job.Posting, error) {
	if m.postingErr != nil {
		return job.Posting{}, m.postingErr
	}
	return m.posting, nil
}

func (m *mockJobRepo) FindRequirements(_ context.Context, _ uuid.UUID) (job.Requirements, error) {
	if m.reqsErr != nil {
		return job.Requirements{}, m.reqsErr
	}
	return m.reqs, nil
}

func (m *mockJobRepo) UpsertSkillRequirements(_ context.Context, _ uuid.UUID, _ []repository.SkillRequirementUpsert) error {
	return nil
}

type mockCandidateRepo struct {
	cand      candidate.Candidate
	candErr   error
	declared  []candidate.DeclaredSkill
	history   []candidate.WorkHistoryRecord
	education []candidate.EducationRecord
}

func (m *mockCandidateRepo) FindByID(_ context.Context, _ uuid.UUID) (candidate.Candidate, error) {
	if m.candErr != nil {
		return candidate.Candidate{}, m.candErr
	}
	return m.cand, nil
}

func (m *mockCandidateRepo) FindDeclaredSkills(_ context.Context, _ uuid.UUID) ([]candidate.DeclaredSkill, error) {
	return m.declared, nil
}

func (m *mockCandidateRepo) FindWorkHistory(_ context.Context, _ uuid.UUID) ([]candidate.WorkHistoryRecord, error) {
	return m.history, nil
}

func (m *mockCandidateRepo) FindEducation(_ context.Context, _ uuid.UUID) ([]candidate.EducationRecord, error) {
	return m.education, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func yearsAgo(n int) time.Time {
	return fixedNow().AddDate(-n, 0, 0)
}

func TestAnalyzeRejectsNilIDs(t *testing.T) {
	u := NewAnalyzeUsecase(&mockJobRepo{}, &mockCandidateRepo{}, &mockSkillRepo{}, nil, nil)

	if _, err := u.Analyze(context.Background(), uuid.Nil, uuid.New()); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := u.Analyze(context.Background(), uuid.New(), uuid.Nil); !errors.Is(err, ErrJobPostingNotFound) {
		t.Fatalf("expected ErrJobPostingNotFound, got %v", err)
	}
}

func TestAnalyzeMapsNotFound(t *testing.T) {
	t.Run("posting", func(t *testing.T) {
		jobs := &mockJobRepo{postingErr: repository.ErrPostingNotFound}
		u := NewAnalyzeUsecase(jobs, &mockCandidateRepo{}, &mockSkillRepo{}, nil, nil)

		if _, err := u.Analyze(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrJobPostingNotFound) {
			t.Fatalf("expected ErrJobPostingNotFound, got %v", err)
		}
	})

	t.Run("candidate", func(t *testing.T) {
		cands := &mockCandidateRepo{candErr: repository.ErrCandidateNotFound}
		u := NewAnalyzeUsecase(&mockJobRepo{}, cands, &mockSkillRepo{}, nil, nil)

		if _, err := u.Analyze(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrCandidateNotFound) {
			t.Fatalf("expected ErrCandidateNotFound, got %v", err)
		}
	})
}

func TestAnalyzeMapsInfrastructureError(t *testing.T) {
	jobs := &mockJobRepo{reqsErr: errors.New("connection reset")}
	u := NewAnalyzeUsecase(jobs, &mockCandidateRepo{}, &mockSkillRepo{}, nil, nil)

	if _, err := u.Analyze(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestAnalyzeFullReport(t *testing.T) {
	goID := uuid.New()
	k8sID := uuid.New()
	dockerID := uuid.New()
	postingID := uuid.New()
	candidateID := uuid.New()

	minProf := skill.ProficiencyAdvanced
	reqYears := 3.0
	expYears := 5.0

	jobs := &mockJobRepo{
		posting: job.Posting{ID: postingID, Title: "Platform Engineer", Company: "Acme"},
		reqs: job.Requirements{
			Skills: []job.SkillRequirement{
				{ID: uuid.New(), SkillID: goID, SkillName: "Go", MinProficiency: &minProf, YearsRequired: &reqYears, IsRequired: true},
				{ID: uuid.New(), SkillID: k8sID, SkillName: "Kubernetes", IsRequired: true},
			},
			Experience: []job.ExperienceRequirement{
				{ID: uuid.New(), Years: &expYears, IsRequired: true},
			},
			Education: []job.EducationRequirement{
				{ID: uuid.New(), MinLevel: candidate.LevelBachelors, IsRequired: true},
			},
		},
	}
	declaredYears := 4.0
	end := fixedNow()
	cands := &mockCandidateRepo{
		cand: candidate.Candidate{ID: candidateID, FullName: "Sam Reyes"},
		declared: []candidate.DeclaredSkill{
			{SkillID: goID, SkillName: "Go", Proficiency: skill.ProficiencyExpert, YearsExperience: &declaredYears},
			{SkillID: dockerID, SkillName: "Docker", Proficiency: skill.ProficiencyAdvanced},
		},
		history: []candidate.WorkHistoryRecord{
			{ID: uuid.New(), StartDate: yearsAgo(6), EndDate: &end},
		},
		education: []candidate.EducationRecord{
			{ID: uuid.New(), Level: candidate.LevelMasters},
		},
	}
	skills := &mockSkillRepo{
		similarities: []skill.Similarity{
			{SkillID: dockerID, RelatedSkillID: k8sID, Score: 0.8},
		},
	}

	u := NewAnalyzeUsecase(jobs, cands, skills, nil, nil)
	u.now = fixedNow

	report, err := u.Analyze(context.Background(), candidateID, postingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.PostingID != postingID || report.Title != "Platform Engineer" {
		t.Fatalf("posting identity lost: %+v", report)
	}
	if len(report.SkillMatches) != 2 {
		t.Fatalf("expected 2 skill matches, got %d", len(report.SkillMatches))
	}
	if report.SkillMatches[0].Score != 100 || report.SkillMatches[0].Tier != matching.TierPerfect {
		t.Fatalf("Go should match perfectly: %+v", report.SkillMatches[0])
	}
	// Kubernetes falls back to the Docker similarity edge: round(0.8 * 70).
	if report.SkillMatches[1].Score != 56 || report.SkillMatches[1].Tier != matching.TierPartial {
		t.Fatalf("Kubernetes should partial-match via Docker: %+v", report.SkillMatches[1])
	}
	if report.SkillSubscore != 78 {
		t.Fatalf("expected skill subscore 78, got %v", report.SkillSubscore)
	}
	if report.ExperienceSubscore != 100 || report.EducationSubscore != 100 {
		t.Fatalf("experience and education should be met: %v / %v", report.ExperienceSubscore, report.EducationSubscore)
	}
	// 78*0.6 + 100*0.3 + 100*0.1
	if report.OverallScore != 87 {
		t.Fatalf("expected overall 87, got %d", report.OverallScore)
	}
	if report.Summary.PerfectCount != 3 || report.Summary.PartialCount != 1 || report.Summary.MissingCount != 0 {
		t.Fatalf("unexpected summary counts: %+v", report.Summary)
	}
}

func TestAnalyzeServesCachedReport(t *testing.T) {
	candidateID := uuid.New()
	postingID := uuid.New()
	cache := newFakeCache()

	cached := matching.Report{PostingID: postingID, Title: "Cached", OverallScore: 42}
	key := "report:" + candidateID.String() + ":" + postingID.String()
	if err := cache.SetJSON(context.Background(), key, cached, 0); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	jobs := &mockJobRepo{postingErr: errors.New("db should not be touched")}
	u := NewAnalyzeUsecase(jobs, &mockCandidateRepo{}, &mockSkillRepo{}, cache, nil)

	report, err := u.Analyze(context.Background(), candidateID, postingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Title != "Cached" || report.OverallScore != 42 {
		t.Fatalf("expected cached report, got %+v", report)
	}
}

func TestAnalyzeCachesComputedReport(t *testing.T) {
	candidateID := uuid.New()
	postingID := uuid.New()
	cache := newFakeCache()

	jobs := &mockJobRepo{posting: job.Posting{ID: postingID, Title: "Backend Engineer"}}
	u := NewAnalyzeUsecase(jobs, &mockCandidateRepo{}, &mockSkillRepo{}, cache, nil)
	u.now = fixedNow

	if _, err := u.Analyze(context.Background(), candidateID, postingID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored matching.Report
	key := "report:" + candidateID.String() + ":" + postingID.String()
	ok, err := cache.GetJSON(context.Background(), key, &stored)
	if err != nil || !ok {
		t.Fatalf("expected report cached under %s (ok=%v err=%v)", key, ok, err)
	}
	if stored.Title != "Backend Engineer" {
		t.Fatalf("cached wrong report: %+v", stored)
	}
}
