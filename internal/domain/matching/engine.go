package matching

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/job"
)

type Tier string

const (
	TierPerfect Tier = "perfect"
	TierPartial Tier = "partial"
	TierMissing Tier = "missing"
)

const (
	proficiencyPenalty = 30
	yearsPenaltyPerYr  = 10
	yearsPenaltyMax    = 40
	// A similarity match can never reach the ceiling reserved for exact matches.
	similarityCeiling = 70
	experiencePerYr   = 20
	partialShortfall  = 2.0
)

// SimilarEdge is one outgoing similarity edge of a required skill.
type SimilarEdge struct {
	SkillID   uuid.UUID
	SkillName string
	Score     float64
}

type SkillMatch struct {
	RequirementID    uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	IsRequired       bool
	MatchedSkillID   *uuid.UUID
	MatchedSkillName string
	Tier             Tier
	Score            int
	Reason           string
}

type ExperienceMatch struct {
	RequirementID  uuid.UUID
	Description    string
	YearsRequired  *float64
	CandidateYears float64
	IsRequired     bool
	Tier           Tier
	Score          int
	Reason         string
}

type EducationMatch struct {
	RequirementID uuid.UUID
	MinLevel      candidate.EducationLevel
	Field         string
	IsRequired    bool
	MatchedLevel  *candidate.EducationLevel
	Tier          Tier
	Score         int
	Reason        string
}

// MatchSkill scores one skill requirement against the candidate's declared
// skills. declared is keyed by canonical skill ID; edges are the required
// skill's outgoing similarity edges, consulted only when no exact match exists.
func MatchSkill(req job.SkillRequirement, declared map[uuid.UUID]candidate.DeclaredSkill, edges []SimilarEdge) SkillMatch {
	m := SkillMatch{
		RequirementID: req.ID,
		SkillID:       req.SkillID,
		SkillName:     req.SkillName,
		IsRequired:    req.IsRequired,
	}

	if ds, ok := declared[req.SkillID]; ok {
		score := 100.0
		penalized := false
		reason := "exact skill match"

		if req.MinProficiency != nil && ds.Proficiency.Ordinal() < req.MinProficiency.Ordinal() {
			score -= proficiencyPenalty
			penalized = true
			reason = fmt.Sprintf("proficiency %s below required %s", ds.Proficiency, *req.MinProficiency)
		}
		if req.YearsRequired != nil {
			actual := 0.0
			if ds.YearsExperience != nil {
				actual = *ds.YearsExperience
			}
			if actual < *req.YearsRequired {
				penalty := (*req.YearsRequired - actual) * yearsPenaltyPerYr
				if penalty > yearsPenaltyMax {
					penalty = yearsPenaltyMax
				}
				score -= penalty
				if penalized {
					reason = fmt.Sprintf("below required proficiency and %.1f years short", *req.YearsRequired-actual)
				} else {
					reason = fmt.Sprintf("%.1f years short of %.1f required", *req.YearsRequired-actual, *req.YearsRequired)
				}
				penalized = true
			}
		}
		if score < 0 {
			score = 0
		}

		m.MatchedSkillID = &ds.SkillID
		m.MatchedSkillName = ds.SkillName
		m.Score = int(math.Round(score))
		m.Tier = TierPartial
		if !penalized {
			m.Tier = TierPerfect
		}
		m.Reason = reason
		return m
	}

	if best, ok := bestEdge(edges, declared); ok {
		ds := declared[best.SkillID]
		m.MatchedSkillID = &ds.SkillID
		m.MatchedSkillName = ds.SkillName
		m.Tier = TierPartial
		m.Score = int(math.Round(best.Score * similarityCeiling))
		m.Reason = fmt.Sprintf("related skill %s (similarity %.2f)", ds.SkillName, best.Score)
		return m
	}

	m.Tier = TierMissing
	m.Score = 0
	m.Reason = "skill not found in profile"
	return m
}

// bestEdge picks the highest-similarity edge pointing at a skill the candidate
// holds. Ties break on the candidate skill name, ascending, so identical input
// always yields the same edge.
func bestEdge(edges []SimilarEdge, declared map[uuid.UUID]candidate.DeclaredSkill) (SimilarEdge, bool) {
	var best SimilarEdge
	found := false
	for _, e := range edges {
		if e.Score <= 0 {
			continue
		}
		if _, ok := declared[e.SkillID]; !ok {
			continue
		}
		if !found || e.Score > best.Score || (e.Score == best.Score && e.SkillName < best.SkillName) {
			best = e
			found = true
		}
	}
	return best, found
}

// TotalExperienceYears sums work history durations, each rounded to one
// decimal, with open-ended records counted up to now.
func TotalExperienceYears(records []candidate.WorkHistoryRecord, now time.Time) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Years(now)
	}
	return math.Round(total*10) / 10
}

func MatchExperience(req job.ExperienceRequirement, totalYears float64) ExperienceMatch {
	m := ExperienceMatch{
		RequirementID:  req.ID,
		Description:    req.Description,
		YearsRequired:  req.Years,
		CandidateYears: totalYears,
		IsRequired:     req.IsRequired,
	}

	if req.Years == nil || totalYears >= *req.Years {
		m.Tier = TierPerfect
		m.Score = 100
		m.Reason = "experience requirement met"
		return m
	}

	shortfall := *req.Years - totalYears
	score := 100 - shortfall*experiencePerYr
	if score < 0 {
		score = 0
	}
	m.Score = int(math.Round(score))
	if shortfall > partialShortfall {
		m.Tier = TierMissing
	} else {
		m.Tier = TierPartial
	}
	m.Reason = fmt.Sprintf("%.1f of %.1f years", totalYears, *req.Years)
	return m
}

// MatchEducation is binary: any record at or above the required level is a
// perfect match, otherwise the requirement is missing.
func MatchEducation(req job.EducationRequirement, records []candidate.EducationRecord) EducationMatch {
	m := EducationMatch{
		RequirementID: req.ID,
		MinLevel:      req.MinLevel,
		Field:         req.Field,
		IsRequired:    req.IsRequired,
	}

	var bestLevel *candidate.EducationLevel
	for _, r := range records {
		if r.Level.Ordinal() >= req.MinLevel.Ordinal() {
			if bestLevel == nil || r.Level.Ordinal() > bestLevel.Ordinal() {
				lvl := r.Level
				bestLevel = &lvl
			}
		}
	}

	if bestLevel != nil {
		m.MatchedLevel = bestLevel
		m.Tier = TierPerfect
		m.Score = 100
		m.Reason = fmt.Sprintf("holds %s, %s required", *bestLevel, req.MinLevel)
		return m
	}

	m.Tier = TierMissing
	m.Score = 0
	m.Reason = fmt.Sprintf("no education at %s level or above", req.MinLevel)
	return m
}
