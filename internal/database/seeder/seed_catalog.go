package seeder

import (
	"context"
	"fmt"

	"profile-match/internal/database"
	"profile-match/internal/domain/skill"
)

// CatalogSeeder plants a starter set of canonical skills so fresh
// environments resolve the common cases without creating "other" rows.
type CatalogSeeder struct{}

func (CatalogSeeder) Name() string { return "skills" }

func (CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	items := []struct {
		Name     string
		Category skill.Category
	}{
		{"Go", skill.CategoryProgrammingLanguage},
		{"Python", skill.CategoryProgrammingLanguage},
		{"JavaScript", skill.CategoryProgrammingLanguage},
		{"TypeScript", skill.CategoryProgrammingLanguage},
		{"Java", skill.CategoryProgrammingLanguage},
		{"React", skill.CategoryFramework},
		{"Vue", skill.CategoryFramework},
		{"Node.js", skill.CategoryFramework},
		{"Django", skill.CategoryFramework},
		{"PostgreSQL", skill.CategoryDatabase},
		{"MySQL", skill.CategoryDatabase},
		{"MongoDB", skill.CategoryDatabase},
		{"Redis", skill.CategoryDatabase},
		{"Amazon Web Services", skill.CategoryCloudPlatform},
		{"Google Cloud Platform", skill.CategoryCloudPlatform},
		{"Microsoft Azure", skill.CategoryCloudPlatform},
		{"Docker", skill.CategoryDevOpsTool},
		{"Kubernetes", skill.CategoryDevOpsTool},
		{"Terraform", skill.CategoryDevOpsTool},
		{"Figma", skill.CategoryDesignTool},
		{"Jira", skill.CategoryProjectManagement},
		{"Communication", skill.CategorySoftSkill},
		{"Leadership", skill.CategorySoftSkill},
		{"Scrum", skill.CategoryMethodology},
		{"Agile", skill.CategoryMethodology},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (id, name, category)
			 VALUES (gen_random_uuid(), $1, $2)
			 ON CONFLICT (lower(name)) DO NOTHING`,
			it.Name, it.Category,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// AliasSeeder maps common alternate spellings onto the seeded skills.
type AliasSeeder struct{}

func (AliasSeeder) Name() string { return "skill_aliases" }

func (AliasSeeder) Run(ctx context.Context, db database.DB) error {
	items := []struct {
		Alias string
		Skill string
	}{
		{"golang", "Go"},
		{"js", "JavaScript"},
		{"ecmascript", "JavaScript"},
		{"ts", "TypeScript"},
		{"reactjs", "React"},
		{"react.js", "React"},
		{"vuejs", "Vue"},
		{"vue.js", "Vue"},
		{"node", "Node.js"},
		{"nodejs", "Node.js"},
		{"postgres", "PostgreSQL"},
		{"psql", "PostgreSQL"},
		{"mongo", "MongoDB"},
		{"aws", "Amazon Web Services"},
		{"gcp", "Google Cloud Platform"},
		{"google cloud", "Google Cloud Platform"},
		{"azure", "Microsoft Azure"},
		{"k8s", "Kubernetes"},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_aliases (id, skill_id, alias)
			 SELECT gen_random_uuid(), s.id, $1
			 FROM skills s
			 WHERE lower(s.name) = lower($2)
			 ON CONFLICT (lower(alias)) DO NOTHING`,
			it.Alias, it.Skill,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SimilaritySeeder plants the fallback graph used when a required skill has
// no exact or alias match in a profile.
type SimilaritySeeder struct{}

func (SimilaritySeeder) Name() string { return "skill_similarities" }

func (SimilaritySeeder) Run(ctx context.Context, db database.DB) error {
	items := []struct {
		A, B  string
		Score float64
	}{
		{"Docker", "Kubernetes", 0.8},
		{"PostgreSQL", "MySQL", 0.85},
		{"PostgreSQL", "MongoDB", 0.5},
		{"JavaScript", "TypeScript", 0.9},
		{"React", "Vue", 0.75},
		{"Amazon Web Services", "Google Cloud Platform", 0.8},
		{"Amazon Web Services", "Microsoft Azure", 0.8},
		{"Google Cloud Platform", "Microsoft Azure", 0.8},
		{"Scrum", "Agile", 0.9},
		{"Node.js", "JavaScript", 0.85},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_similarities (skill_id, related_skill_id, score)
			 SELECT a.id, b.id, $3
			 FROM skills a, skills b
			 WHERE lower(a.name) = lower($1) AND lower(b.name) = lower($2)
			 ON CONFLICT (skill_id, related_skill_id) DO NOTHING`,
			it.A, it.B, it.Score,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
