package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/job"
	"profile-match/internal/domain/skill"
)

func profPtr(p skill.Proficiency) *skill.Proficiency { return &p }
func f64Ptr(v float64) *float64                      { return &v }

func declaredMap(items ...candidate.DeclaredSkill) map[uuid.UUID]candidate.DeclaredSkill {
	out := make(map[uuid.UUID]candidate.DeclaredSkill, len(items))
	for _, it := range items {
		out[it.SkillID] = it
	}
	return out
}

func TestMatchSkill_ExactMatch(t *testing.T) {
	reactID := uuid.New()

	tests := []struct {
		name      string
		req       job.SkillRequirement
		declared  candidate.DeclaredSkill
		wantScore int
		wantTier  Tier
	}{
		{
			name:      "no constraints yields perfect 100",
			req:       job.SkillRequirement{ID: uuid.New(), SkillID: reactID, SkillName: "React"},
			declared:  candidate.DeclaredSkill{SkillID: reactID, SkillName: "React", Proficiency: skill.ProficiencyBeginner},
			wantScore: 100,
			wantTier:  TierPerfect,
		},
		{
			name: "proficiency below minimum costs 30",
			req: job.SkillRequirement{
				ID: uuid.New(), SkillID: reactID, SkillName: "React",
				MinProficiency: profPtr(skill.ProficiencyAdvanced),
			},
			declared:  candidate.DeclaredSkill{SkillID: reactID, SkillName: "React", Proficiency: skill.ProficiencyIntermediate},
			wantScore: 70,
			wantTier:  TierPartial,
		},
		{
			name: "intermediate with 2 of 3 years scores 60",
			req: job.SkillRequirement{
				ID: uuid.New(), SkillID: reactID, SkillName: "React",
				MinProficiency: profPtr(skill.ProficiencyAdvanced),
				YearsRequired:  f64Ptr(3),
			},
			declared: candidate.DeclaredSkill{
				SkillID: reactID, SkillName: "React",
				Proficiency:     skill.ProficiencyIntermediate,
				YearsExperience: f64Ptr(2),
			},
			wantScore: 60,
			wantTier:  TierPartial,
		},
		{
			name: "years penalty capped at 40",
			req: job.SkillRequirement{
				ID: uuid.New(), SkillID: reactID, SkillName: "React",
				YearsRequired: f64Ptr(10),
			},
			declared: candidate.DeclaredSkill{
				SkillID: reactID, SkillName: "React",
				Proficiency:     skill.ProficiencyExpert,
				YearsExperience: f64Ptr(1),
			},
			wantScore: 60,
			wantTier:  TierPartial,
		},
		{
			name: "missing declared years treated as zero",
			req: job.SkillRequirement{
				ID: uuid.New(), SkillID: reactID, SkillName: "React",
				YearsRequired: f64Ptr(2),
			},
			declared:  candidate.DeclaredSkill{SkillID: reactID, SkillName: "React", Proficiency: skill.ProficiencyAdvanced},
			wantScore: 80,
			wantTier:  TierPartial,
		},
		{
			name: "meeting both constraints stays perfect",
			req: job.SkillRequirement{
				ID: uuid.New(), SkillID: reactID, SkillName: "React",
				MinProficiency: profPtr(skill.ProficiencyIntermediate),
				YearsRequired:  f64Ptr(2),
			},
			declared: candidate.DeclaredSkill{
				SkillID: reactID, SkillName: "React",
				Proficiency:     skill.ProficiencyAdvanced,
				YearsExperience: f64Ptr(5),
			},
			wantScore: 100,
			wantTier:  TierPerfect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchSkill(tt.req, declaredMap(tt.declared), nil)
			assert.Equal(t, tt.wantScore, m.Score)
			assert.Equal(t, tt.wantTier, m.Tier)
			require.NotNil(t, m.MatchedSkillID)
			assert.Equal(t, tt.declared.SkillID, *m.MatchedSkillID)
		})
	}
}

func TestMatchSkill_ScoreNeverNegative(t *testing.T) {
	id := uuid.New()
	req := job.SkillRequirement{
		ID: uuid.New(), SkillID: id, SkillName: "React",
		MinProficiency: profPtr(skill.ProficiencyExpert),
		YearsRequired:  f64Ptr(50),
	}
	ds := candidate.DeclaredSkill{SkillID: id, SkillName: "React", Proficiency: skill.ProficiencyBeginner}

	m := MatchSkill(req, declaredMap(ds), nil)
	assert.GreaterOrEqual(t, m.Score, 0)
	assert.Equal(t, TierPartial, m.Tier)
}

func TestMatchSkill_SimilarityFallback(t *testing.T) {
	k8sID := uuid.New()
	dockerID := uuid.New()
	req := job.SkillRequirement{ID: uuid.New(), SkillID: k8sID, SkillName: "Kubernetes"}
	ds := candidate.DeclaredSkill{SkillID: dockerID, SkillName: "Docker", Proficiency: skill.ProficiencyAdvanced}
	edges := []SimilarEdge{{SkillID: dockerID, SkillName: "Docker", Score: 0.8}}

	m := MatchSkill(req, declaredMap(ds), edges)
	assert.Equal(t, 56, m.Score)
	assert.Equal(t, TierPartial, m.Tier)
	require.NotNil(t, m.MatchedSkillID)
	assert.Equal(t, dockerID, *m.MatchedSkillID)
}

func TestMatchSkill_SimilarityNeverBeatsExactCeiling(t *testing.T) {
	reqID := uuid.New()
	otherID := uuid.New()
	req := job.SkillRequirement{ID: uuid.New(), SkillID: reqID, SkillName: "Kubernetes"}
	ds := candidate.DeclaredSkill{SkillID: otherID, SkillName: "Docker"}
	edges := []SimilarEdge{{SkillID: otherID, SkillName: "Docker", Score: 1.0}}

	m := MatchSkill(req, declaredMap(ds), edges)
	assert.Equal(t, 70, m.Score)
	assert.Equal(t, TierPartial, m.Tier)
}

func TestMatchSkill_SimilarityTieBreakIsStable(t *testing.T) {
	reqID := uuid.New()
	aID := uuid.New()
	bID := uuid.New()
	req := job.SkillRequirement{ID: uuid.New(), SkillID: reqID, SkillName: "Kubernetes"}
	declared := declaredMap(
		candidate.DeclaredSkill{SkillID: aID, SkillName: "Ansible"},
		candidate.DeclaredSkill{SkillID: bID, SkillName: "Docker"},
	)
	edges := []SimilarEdge{
		{SkillID: bID, SkillName: "Docker", Score: 0.7},
		{SkillID: aID, SkillName: "Ansible", Score: 0.7},
	}

	for range 10 {
		m := MatchSkill(req, declared, edges)
		require.NotNil(t, m.MatchedSkillID)
		assert.Equal(t, aID, *m.MatchedSkillID)
	}
}

func TestMatchSkill_NoMatch(t *testing.T) {
	req := job.SkillRequirement{ID: uuid.New(), SkillID: uuid.New(), SkillName: "Rust"}

	m := MatchSkill(req, declaredMap(), nil)
	assert.Equal(t, 0, m.Score)
	assert.Equal(t, TierMissing, m.Tier)
	assert.Nil(t, m.MatchedSkillID)
}

func TestMatchExperience(t *testing.T) {
	tests := []struct {
		name      string
		required  *float64
		total     float64
		wantScore int
		wantTier  Tier
	}{
		{"no years required is vacuously perfect", nil, 0, 100, TierPerfect},
		{"total meets requirement", f64Ptr(3), 4.5, 100, TierPerfect},
		{"shortfall of 2.5 drops to missing", f64Ptr(5), 2.5, 50, TierMissing},
		{"shortfall of exactly 2 stays partial", f64Ptr(5), 3, 60, TierPartial},
		{"large shortfall clamps at zero", f64Ptr(10), 1, 0, TierMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := job.ExperienceRequirement{ID: uuid.New(), Years: tt.required}
			m := MatchExperience(req, tt.total)
			assert.Equal(t, tt.wantScore, m.Score)
			assert.Equal(t, tt.wantTier, m.Tier)
		})
	}
}

func TestTotalExperienceYears(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []candidate.WorkHistoryRecord{
		{StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
		{StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}, // still employed
	}

	total := TotalExperienceYears(records, now)
	assert.InDelta(t, 4.0, total, 0.01)
}

func TestMatchEducation(t *testing.T) {
	tests := []struct {
		name     string
		minLevel candidate.EducationLevel
		held     []candidate.EducationLevel
		wantTier Tier
	}{
		{"masters satisfies bachelors", candidate.LevelBachelors, []candidate.EducationLevel{candidate.LevelMasters}, TierPerfect},
		{"exact level satisfies", candidate.LevelBachelors, []candidate.EducationLevel{candidate.LevelBachelors}, TierPerfect},
		{"certification counts as associates", candidate.LevelAssociates, []candidate.EducationLevel{candidate.LevelCertification}, TierPerfect},
		{"high school does not satisfy bachelors", candidate.LevelBachelors, []candidate.EducationLevel{candidate.LevelHighSchool}, TierMissing},
		{"no records is missing", candidate.LevelHighSchool, nil, TierMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]candidate.EducationRecord, 0, len(tt.held))
			for _, lvl := range tt.held {
				records = append(records, candidate.EducationRecord{ID: uuid.New(), Level: lvl})
			}

			m := MatchEducation(job.EducationRequirement{ID: uuid.New(), MinLevel: tt.minLevel}, records)
			assert.Equal(t, tt.wantTier, m.Tier)
			if tt.wantTier == TierPerfect {
				assert.Equal(t, 100, m.Score)
				assert.NotNil(t, m.MatchedLevel)
			} else {
				assert.Equal(t, 0, m.Score)
				assert.Nil(t, m.MatchedLevel)
			}
		})
	}
}
