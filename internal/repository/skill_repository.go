package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"profile-match/internal/database"
	"profile-match/internal/domain/skill"
)

var ErrSkillNotFound = errors.New("skill not found")

// MergeCandidate pairs a surviving skill with the duplicate to fold into it.
type MergeCandidate struct {
	Survivor skill.Skill
	Loser    skill.Skill
}

type SkillRepository interface {
	FindByName(ctx context.Context, normalized string) (skill.Skill, error)
	InsertOrFetch(ctx context.Context, name string, category skill.Category) (skill.Skill, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]skill.Skill, error)
	ListAll(ctx context.Context) ([]skill.Skill, error)
	ListAliases(ctx context.Context) ([]skill.Alias, error)
	SimilarityEdges(ctx context.Context, skillIDs []uuid.UUID) ([]skill.Similarity, error)
	Merge(ctx context.Context, survivorID, loserID uuid.UUID, loserName string) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

// FindByName looks up a canonical skill by its normalized name, first against
// canonical names, then against aliases.
func (r *PostgresSkillRepository) FindByName(ctx context.Context, normalized string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE lower(name) = $1`,
		normalized,
	)
	s, err := scanSkill(row)
	if err == nil {
		return s, nil
	}
	if !isNoRows(err) {
		return skill.Skill{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT s.id, s.name, s.category, s.created_at
		 FROM skill_aliases a
		 JOIN skills s ON s.id = a.skill_id
		 WHERE lower(a.alias) = $1`,
		normalized,
	)
	s, err = scanSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// InsertOrFetch creates the skill if its normalized name is unused, otherwise
// resolves to the existing row. The unique index on lower(name) guarantees a
// single winner under concurrent calls; the loser falls back to lookup.
func (r *PostgresSkillRepository) InsertOrFetch(ctx context.Context, name string, category skill.Category) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (lower(name)) DO NOTHING
		 RETURNING id, name, category, created_at`,
		uuid.New(), name, category,
	)
	s, err := scanSkill(row)
	if err == nil {
		return s, nil
	}
	if !isNoRows(err) {
		return skill.Skill{}, err
	}
	return r.FindByName(ctx, skill.NormalizeName(name))
}

func (r *PostgresSkillRepository) Suggest(ctx context.Context, prefix string, limit int) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM (
			SELECT DISTINCT ON (s.id) s.id, s.name, s.category, s.created_at
			FROM skills s
			LEFT JOIN skill_aliases a ON a.skill_id = s.id
			WHERE lower(s.name) LIKE $1 || '%' OR lower(a.alias) LIKE $1 || '%'
			ORDER BY s.id
		 ) matches
		 ORDER BY name ASC
		 LIMIT $2`,
		prefix, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) ListAll(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) ListAliases(ctx context.Context) ([]skill.Alias, error) {
	rows, err := r.db.Query(ctx, `SELECT id, skill_id, alias FROM skill_aliases ORDER BY alias ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Alias, 0)
	for rows.Next() {
		var a skill.Alias
		if err := rows.Scan(&a.ID, &a.SkillID, &a.Alias); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SimilarityEdges returns every edge touching one of the given skills. Edges
// are stored once per pair and read in both directions.
func (r *PostgresSkillRepository) SimilarityEdges(ctx context.Context, skillIDs []uuid.UUID) ([]skill.Similarity, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT skill_id, related_skill_id, score
		 FROM skill_similarities
		 WHERE skill_id = ANY($1) OR related_skill_id = ANY($1)`,
		skillIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Similarity, 0)
	for rows.Next() {
		var e skill.Similarity
		if err := rows.Scan(&e.SkillID, &e.RelatedSkillID, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge folds the losing skill into the survivor inside one transaction: the
// loser's name becomes an alias, every reference is repointed, and the loser
// row is removed. Rows that would collide with an existing survivor reference
// are dropped instead of repointed.
func (r *PostgresSkillRepository) Merge(ctx context.Context, survivorID, loserID uuid.UUID, loserName string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO skill_aliases (id, skill_id, alias)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (lower(alias)) DO NOTHING`,
		uuid.New(), survivorID, loserName,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE skill_aliases SET skill_id = $1 WHERE skill_id = $2`,
		survivorID, loserID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM candidate_skills cs
		 WHERE cs.skill_id = $2
		   AND EXISTS (
			SELECT 1 FROM candidate_skills dup
			WHERE dup.candidate_id = cs.candidate_id AND dup.skill_id = $1
		 )`,
		survivorID, loserID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE candidate_skills SET skill_id = $1 WHERE skill_id = $2`,
		survivorID, loserID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM job_skill_requirements sr
		 WHERE sr.skill_id = $2
		   AND EXISTS (
			SELECT 1 FROM job_skill_requirements dup
			WHERE dup.posting_id = sr.posting_id AND dup.skill_id = $1
		 )`,
		survivorID, loserID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE job_skill_requirements SET skill_id = $1 WHERE skill_id = $2`,
		survivorID, loserID,
	); err != nil {
		return err
	}

	// Similarity edges to the loser are dropped rather than repointed: an edge
	// between the survivor and itself would be meaningless.
	if _, err := tx.Exec(ctx,
		`DELETE FROM skill_similarities WHERE skill_id = $1 OR related_skill_id = $1`,
		loserID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, loserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}
