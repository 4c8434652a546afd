package dto

import (
	"github.com/google/uuid"

	"profile-match/internal/domain/matching"
)

type CompatibilityReportResponse struct {
	JobPostingID       uuid.UUID                 `json:"job_posting_id"`
	Title              string                    `json:"title"`
	Company            string                    `json:"company"`
	OverallScore       int                       `json:"overall_score"`
	SkillSubscore      float64                   `json:"skill_subscore"`
	ExperienceSubscore float64                   `json:"experience_subscore"`
	EducationSubscore  float64                   `json:"education_subscore"`
	SkillMatches       []SkillMatchResponse      `json:"skill_matches"`
	ExperienceMatches  []ExperienceMatchResponse `json:"experience_matches"`
	EducationMatches   []EducationMatchResponse  `json:"education_matches"`
	Summary            SummaryResponse           `json:"summary"`
}

type SkillMatchResponse struct {
	RequirementID    uuid.UUID  `json:"requirement_id"`
	SkillID          uuid.UUID  `json:"skill_id"`
	SkillName        string     `json:"skill_name"`
	IsRequired       bool       `json:"is_required"`
	MatchedSkillID   *uuid.UUID `json:"matched_skill_id,omitempty"`
	MatchedSkillName string     `json:"matched_skill_name,omitempty"`
	Tier             string     `json:"tier"`
	Score            int        `json:"score"`
	Reason           string     `json:"reason"`
}

type ExperienceMatchResponse struct {
	RequirementID  uuid.UUID `json:"requirement_id"`
	Description    string    `json:"description"`
	YearsRequired  *float64  `json:"years_required,omitempty"`
	CandidateYears float64   `json:"candidate_years"`
	IsRequired     bool      `json:"is_required"`
	Tier           string    `json:"tier"`
	Score          int       `json:"score"`
	Reason         string    `json:"reason"`
}

type EducationMatchResponse struct {
	RequirementID uuid.UUID `json:"requirement_id"`
	MinLevel      string    `json:"min_level"`
	Field         string    `json:"field,omitempty"`
	IsRequired    bool      `json:"is_required"`
	MatchedLevel  *string   `json:"matched_level,omitempty"`
	Tier          string    `json:"tier"`
	Score         int       `json:"score"`
	Reason        string    `json:"reason"`
}

type SummaryResponse struct {
	PerfectCount     int      `json:"perfect_count"`
	PartialCount     int      `json:"partial_count"`
	MissingCount     int      `json:"missing_count"`
	StrongPoints     []string `json:"strong_points"`
	ImprovementAreas []string `json:"improvement_areas"`
}

func NewCompatibilityReportResponse(r matching.Report) CompatibilityReportResponse {
	out := CompatibilityReportResponse{
		JobPostingID:       r.PostingID,
		Title:              r.Title,
		Company:            r.Company,
		OverallScore:       r.OverallScore,
		SkillSubscore:      r.SkillSubscore,
		ExperienceSubscore: r.ExperienceSubscore,
		EducationSubscore:  r.EducationSubscore,
		SkillMatches:       make([]SkillMatchResponse, 0, len(r.SkillMatches)),
		ExperienceMatches:  make([]ExperienceMatchResponse, 0, len(r.ExperienceMatches)),
		EducationMatches:   make([]EducationMatchResponse, 0, len(r.EducationMatches)),
		Summary: SummaryResponse{
			PerfectCount:     r.Summary.PerfectCount,
			PartialCount:     r.Summary.PartialCount,
			MissingCount:     r.Summary.MissingCount,
			StrongPoints:     emptyIfNil(r.Summary.StrongPoints),
			ImprovementAreas: emptyIfNil(r.Summary.ImprovementAreas),
		},
	}

	for _, m := range r.SkillMatches {
		out.SkillMatches = append(out.SkillMatches, SkillMatchResponse{
			RequirementID:    m.RequirementID,
			SkillID:          m.SkillID,
			SkillName:        m.SkillName,
			IsRequired:       m.IsRequired,
			MatchedSkillID:   m.MatchedSkillID,
			MatchedSkillName: m.MatchedSkillName,
			Tier:             string(m.Tier),
			Score:            m.Score,
			Reason:           m.Reason,
		})
	}
	for _, m := range r.ExperienceMatches {
		out.ExperienceMatches = append(out.ExperienceMatches, ExperienceMatchResponse{
			RequirementID:  m.RequirementID,
			Description:    m.Description,
			YearsRequired:  m.YearsRequired,
			CandidateYears: m.CandidateYears,
			IsRequired:     m.IsRequired,
			Tier:           string(m.Tier),
			Score:          m.Score,
			Reason:         m.Reason,
		})
	}
	for _, m := range r.EducationMatches {
		var matched *string
		if m.MatchedLevel != nil {
			v := string(*m.MatchedLevel)
			matched = &v
		}
		out.EducationMatches = append(out.EducationMatches, EducationMatchResponse{
			RequirementID: m.RequirementID,
			MinLevel:      string(m.MinLevel),
			Field:         m.Field,
			IsRequired:    m.IsRequired,
			MatchedLevel:  matched,
			Tier:          string(m.Tier),
			Score:         m.Score,
			Reason:        m.Reason,
		})
	}
	return out
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
