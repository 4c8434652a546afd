package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/job"
)

const (
	skillWeight      = 0.6
	experienceWeight = 0.3
	educationWeight  = 0.1

	strongScoreFloor = 80
	weakScoreCeiling = 50
	maxSummaryItems  = 3
)

type Summary struct {
	PerfectCount     int
	PartialCount     int
	MissingCount     int
	StrongPoints     []string
	ImprovementAreas []string
}

type Report struct {
	PostingID          uuid.UUID
	Title              string
	Company            string
	OverallScore       int
	SkillSubscore      float64
	ExperienceSubscore float64
	EducationSubscore  float64
	SkillMatches       []SkillMatch
	ExperienceMatches  []ExperienceMatch
	EducationMatches   []EducationMatch
	Summary            Summary
}

// Evaluate runs every requirement of a posting through the matcher and
// assembles the full report. Pure: callers fetch all inputs up front.
func Evaluate(posting job.Posting, reqs job.Requirements, declared []candidate.DeclaredSkill, history []candidate.WorkHistoryRecord, education []candidate.EducationRecord, edges map[uuid.UUID][]SimilarEdge, now time.Time) Report {
	declaredByID := make(map[uuid.UUID]candidate.DeclaredSkill, len(declared))
	for _, ds := range declared {
		if ds.SkillID == uuid.Nil {
			continue
		}
		declaredByID[ds.SkillID] = ds
	}

	skillMatches := make([]SkillMatch, 0, len(reqs.Skills))
	for _, r := range reqs.Skills {
		if r.SkillID == uuid.Nil {
			continue
		}
		skillMatches = append(skillMatches, MatchSkill(r, declaredByID, edges[r.SkillID]))
	}

	totalYears := TotalExperienceYears(history, now)
	expMatches := make([]ExperienceMatch, 0, len(reqs.Experience))
	for _, r := range reqs.Experience {
		expMatches = append(expMatches, MatchExperience(r, totalYears))
	}

	eduMatches := make([]EducationMatch, 0, len(reqs.Education))
	for _, r := range reqs.Education {
		eduMatches = append(eduMatches, MatchEducation(r, education))
	}

	skillSub := subscore(len(skillMatches), func(i int) int { return skillMatches[i].Score })
	expSub := subscore(len(expMatches), func(i int) int { return expMatches[i].Score })
	eduSub := subscore(len(eduMatches), func(i int) int { return eduMatches[i].Score })

	overall := int(math.Round(skillSub*skillWeight + expSub*experienceWeight + eduSub*educationWeight))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return Report{
		PostingID:          posting.ID,
		Title:              posting.Title,
		Company:            posting.Company,
		OverallScore:       overall,
		SkillSubscore:      skillSub,
		ExperienceSubscore: expSub,
		EducationSubscore:  eduSub,
		SkillMatches:       skillMatches,
		ExperienceMatches:  expMatches,
		EducationMatches:   eduMatches,
		Summary:            buildSummary(skillMatches, expMatches, eduMatches),
	}
}

// subscore is the arithmetic mean of match scores within one category.
// A category with nothing to fail scores a vacuous 100.
func subscore(n int, scoreAt func(int) int) float64 {
	if n == 0 {
		return 100
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += scoreAt(i)
	}
	return float64(sum) / float64(n)
}

func buildSummary(skills []SkillMatch, exps []ExperienceMatch, edus []EducationMatch) Summary {
	var s Summary

	tiers := make([]Tier, 0, len(skills)+len(exps)+len(edus))
	scores := make([]int, 0, cap(tiers))
	for _, m := range skills {
		tiers = append(tiers, m.Tier)
		scores = append(scores, m.Score)
	}
	for _, m := range exps {
		tiers = append(tiers, m.Tier)
		scores = append(scores, m.Score)
	}
	for _, m := range edus {
		tiers = append(tiers, m.Tier)
		scores = append(scores, m.Score)
	}

	for _, t := range tiers {
		switch t {
		case TierPerfect:
			s.PerfectCount++
		case TierPartial:
			s.PartialCount++
		case TierMissing:
			s.MissingCount++
		}
	}

	strong := make([]string, 0, maxSummaryItems)
	if s.PerfectCount > 0 {
		strong = append(strong, fmt.Sprintf("%d requirement(s) fully matched", s.PerfectCount))
	}
	if n := countAtLeast(scores, strongScoreFloor); n > 0 {
		strong = append(strong, fmt.Sprintf("%d requirement(s) scored %d or higher", n, strongScoreFloor))
	}
	if eduPerfect(edus) {
		strong = append(strong, "all education requirements met")
	}
	if len(strong) > maxSummaryItems {
		strong = strong[:maxSummaryItems]
	}
	s.StrongPoints = strong

	areas := make([]string, 0, maxSummaryItems)
	if names := missingSkillNames(skills, maxSummaryItems); len(names) > 0 {
		areas = append(areas, "missing skills: "+strings.Join(names, ", "))
	}
	if n := weakPartialSkills(skills); n > 0 {
		areas = append(areas, fmt.Sprintf("%d skill(s) matched below %d", n, weakScoreCeiling))
	}
	if n := unmetExperience(exps); n > 0 {
		areas = append(areas, fmt.Sprintf("%d experience requirement(s) not fully met", n))
	}
	if n := missingEducation(edus); n > 0 {
		areas = append(areas, fmt.Sprintf("%d education requirement(s) not met", n))
	}
	if len(areas) > maxSummaryItems {
		areas = areas[:maxSummaryItems]
	}
	s.ImprovementAreas = areas

	return s
}

func countAtLeast(scores []int, floor int) int {
	n := 0
	for _, sc := range scores {
		if sc >= floor {
			n++
		}
	}
	return n
}

func eduPerfect(edus []EducationMatch) bool {
	if len(edus) == 0 {
		return false
	}
	for _, m := range edus {
		if m.Tier != TierPerfect {
			return false
		}
	}
	return true
}

func missingSkillNames(skills []SkillMatch, limit int) []string {
	names := make([]string, 0, limit)
	for _, m := range skills {
		if m.Tier != TierMissing {
			continue
		}
		names = append(names, m.SkillName)
		if len(names) == limit {
			break
		}
	}
	return names
}

func weakPartialSkills(skills []SkillMatch) int {
	n := 0
	for _, m := range skills {
		if m.Tier == TierPartial && m.Score < weakScoreCeiling {
			n++
		}
	}
	return n
}

func unmetExperience(exps []ExperienceMatch) int {
	n := 0
	for _, m := range exps {
		if m.Tier != TierPerfect {
			n++
		}
	}
	return n
}

func missingEducation(edus []EducationMatch) int {
	n := 0
	for _, m := range edus {
		if m.Tier == TierMissing {
			n++
		}
	}
	return n
}
