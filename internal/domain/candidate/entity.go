package candidate

import (
	"math"
	"time"

	"github.com/google/uuid"

	"profile-match/internal/domain/skill"
)

type EducationLevel string

const (
	LevelHighSchool    EducationLevel = "high_school"
	LevelAssociates    EducationLevel = "associates"
	LevelCertification EducationLevel = "certification"
	LevelBachelors     EducationLevel = "bachelors"
	LevelMasters       EducationLevel = "masters"
	LevelDoctorate     EducationLevel = "doctorate"
)

// Ordinal orders education levels; a certification counts the same as an
// associates degree.
func (l EducationLevel) Ordinal() int {
	switch l {
	case LevelHighSchool:
		return 1
	case LevelAssociates, LevelCertification:
		return 2
	case LevelBachelors:
		return 3
	case LevelMasters:
		return 4
	case LevelDoctorate:
		return 5
	}
	return 0
}

func (l EducationLevel) Valid() bool { return l.Ordinal() > 0 }

type Candidate struct {
	ID        uuid.UUID
	FullName  string
	CreatedAt time.Time
}

// DeclaredSkill is a (candidate, skill) pair; at most one row exists per pair.
type DeclaredSkill struct {
	ID              uuid.UUID
	CandidateID     uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	Proficiency     skill.Proficiency
	YearsExperience *float64
	Source          skill.Source
	WorkHistoryID   *uuid.UUID
}

type WorkHistoryRecord struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	Company     string
	Title       string
	StartDate   time.Time
	EndDate     *time.Time
}

// Years returns the record's duration in years rounded to one decimal.
// An open-ended record counts up to now.
func (w WorkHistoryRecord) Years(now time.Time) float64 {
	end := now
	if w.EndDate != nil {
		end = *w.EndDate
	}
	if end.Before(w.StartDate) {
		return 0
	}
	days := end.Sub(w.StartDate).Hours() / 24
	return math.Round(days/365*10) / 10
}

type EducationRecord struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	Institution string
	Level       EducationLevel
	Field       string
	GraduatedAt *time.Time
}
