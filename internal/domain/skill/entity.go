package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryProgrammingLanguage Category = "programming_language"
	CategoryFramework           Category = "framework"
	CategoryDatabase            Category = "database"
	CategoryCloudPlatform       Category = "cloud_platform"
	CategoryDevOpsTool          Category = "devops_tool"
	CategoryDesignTool          Category = "design_tool"
	CategoryProjectManagement   Category = "project_management"
	CategorySoftSkill           Category = "soft_skill"
	CategoryIndustryKnowledge   Category = "industry_knowledge"
	CategoryCertification       Category = "certification"
	CategoryMethodology         Category = "methodology"
	CategoryOther               Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProgrammingLanguage, CategoryFramework, CategoryDatabase,
		CategoryCloudPlatform, CategoryDevOpsTool, CategoryDesignTool,
		CategoryProjectManagement, CategorySoftSkill, CategoryIndustryKnowledge,
		CategoryCertification, CategoryMethodology, CategoryOther:
		return true
	}
	return false
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Ordinal returns the total ordering of proficiency levels. Unknown values
// rank below beginner so a malformed row never satisfies a requirement.
func (p Proficiency) Ordinal() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	}
	return 0
}

func (p Proficiency) Valid() bool { return p.Ordinal() > 0 }

type Source string

const (
	SourceWorkExperience  Source = "work_experience"
	SourceEducation       Source = "education"
	SourceCertification   Source = "certification"
	SourcePersonalProject Source = "personal_project"
	SourceTraining        Source = "training"
	SourceOther           Source = "other"
)

// Skill is the single canonical entity every raw mention resolves to.
// Name is unique case-insensitively.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  Category
	CreatedAt time.Time
}

// Alias maps an alternate spelling to exactly one canonical skill.
type Alias struct {
	ID      uuid.UUID
	SkillID uuid.UUID
	Alias   string
}

// Similarity is a weighted edge between two distinct canonical skills,
// with Score in [0,1]. Stored once per pair, looked up in both directions.
type Similarity struct {
	SkillID        uuid.UUID
	RelatedSkillID uuid.UUID
	Score          float64
}

// NormalizeName is the canonical key for case-insensitive lookups.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}
