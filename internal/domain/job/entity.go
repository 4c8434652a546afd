package job

import (
	"time"

	"github.com/google/uuid"

	"profile-match/internal/domain/candidate"
	"profile-match/internal/domain/skill"
)

type Priority string

const (
	PriorityRequired Priority = "required"
	PriorityBonus    Priority = "bonus"
)

type Posting struct {
	ID        uuid.UUID
	Title     string
	Company   string
	PostedAt  *time.Time
	CreatedAt time.Time
}

// SkillRequirement references a canonical skill; the ingestion pipeline is
// expected to resolve raw names through the catalog before persisting rows.
type SkillRequirement struct {
	ID             uuid.UUID
	PostingID      uuid.UUID
	SkillID        uuid.UUID
	SkillName      string
	IsRequired     bool
	MinProficiency *skill.Proficiency
	YearsRequired  *float64
	Priority       Priority
}

type ExperienceRequirement struct {
	ID          uuid.UUID
	PostingID   uuid.UUID
	Years       *float64
	Description string
	Category    string
	IsRequired  bool
}

type EducationRequirement struct {
	ID         uuid.UUID
	PostingID  uuid.UUID
	MinLevel   candidate.EducationLevel
	Field      string
	IsRequired bool
}

// Requirements bundles everything the analyzer scores for one posting.
type Requirements struct {
	Skills     []SkillRequirement
	Experience []ExperienceRequirement
	Education  []EducationRequirement
}
