package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"profile-match/internal/database"
	"profile-match/internal/domain/job"
	"profile-match/internal/domain/skill"
)

var ErrPostingNotFound = errors.New("job posting not found")

// SkillRequirementUpsert is one row of a posting's skill requirement set as
// produced by the ingestion pipeline, already resolved to a canonical skill.
type SkillRequirementUpsert struct {
	SkillID        uuid.UUID
	IsRequired     bool
	MinProficiency *skill.Proficiency
	YearsRequired  *float64
	Priority       job.Priority
}

type JobRepository interface {
	FindPostingByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	FindRequirements(ctx context.Context, postingID uuid.UUID) (job.Requirements, error)
	UpsertSkillRequirements(ctx context.Context, postingID uuid.UUID, reqs []SkillRequirementUpsert) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindPostingByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, company, posted_at, created_at FROM job_postings WHERE id = $1`, id,
	)
	var p job.Posting
	if err := row.Scan(&p.ID, &p.Title, &p.Company, &p.PostedAt, &p.CreatedAt); err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrPostingNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) FindRequirements(ctx context.Context, postingID uuid.UUID) (job.Requirements, error) {
	var reqs job.Requirements

	rows, err := r.db.Query(ctx,
		`SELECT sr.id, sr.posting_id, sr.skill_id, s.name, sr.is_required, sr.min_proficiency, sr.years_required, sr.priority
		 FROM job_skill_requirements sr
		 JOIN skills s ON s.id = sr.skill_id
		 WHERE sr.posting_id = $1
		 ORDER BY s.name ASC`,
		postingID,
	)
	if err != nil {
		return job.Requirements{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var sr job.SkillRequirement
		if err := rows.Scan(&sr.ID, &sr.PostingID, &sr.SkillID, &sr.SkillName, &sr.IsRequired, &sr.MinProficiency, &sr.YearsRequired, &sr.Priority); err != nil {
			return job.Requirements{}, err
		}
		reqs.Skills = append(reqs.Skills, sr)
	}
	if err := rows.Err(); err != nil {
		return job.Requirements{}, err
	}

	expRows, err := r.db.Query(ctx,
		`SELECT id, posting_id, years, description, category, is_required
		 FROM job_experience_requirements
		 WHERE posting_id = $1
		 ORDER BY id ASC`,
		postingID,
	)
	if err != nil {
		return job.Requirements{}, err
	}
	defer expRows.Close()
	for expRows.Next() {
		var er job.ExperienceRequirement
		if err := expRows.Scan(&er.ID, &er.PostingID, &er.Years, &er.Description, &er.Category, &er.IsRequired); err != nil {
			return job.Requirements{}, err
		}
		reqs.Experience = append(reqs.Experience, er)
	}
	if err := expRows.Err(); err != nil {
		return job.Requirements{}, err
	}

	eduRows, err := r.db.Query(ctx,
		`SELECT id, posting_id, min_level, field, is_required
		 FROM job_education_requirements
		 WHERE posting_id = $1
		 ORDER BY id ASC`,
		postingID,
	)
	if err != nil {
		return job.Requirements{}, err
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var er job.EducationRequirement
		if err := eduRows.Scan(&er.ID, &er.PostingID, &er.MinLevel, &er.Field, &er.IsRequired); err != nil {
			return job.Requirements{}, err
		}
		reqs.Education = append(reqs.Education, er)
	}
	if err := eduRows.Err(); err != nil {
		return job.Requirements{}, err
	}

	return reqs, nil
}

// UpsertSkillRequirements writes a posting's skill requirement set as one
// deduplicated multi-row insert that skips conflicts, so concurrent ingestion
// of the same posting cannot interleave half-written sets.
func (r *PostgresJobRepository) UpsertSkillRequirements(ctx context.Context, postingID uuid.UUID, reqs []SkillRequirementUpsert) error {
	if postingID == uuid.Nil || len(reqs) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(reqs))
	skillIDs := make([]uuid.UUID, 0, len(reqs))
	isRequired := make([]bool, 0, len(reqs))
	minProf := make([]*string, 0, len(reqs))
	years := make([]*float64, 0, len(reqs))
	priorities := make([]string, 0, len(reqs))
	for _, it := range reqs {
		if it.SkillID == uuid.Nil || seen[it.SkillID] {
			continue
		}
		seen[it.SkillID] = true
		skillIDs = append(skillIDs, it.SkillID)
		isRequired = append(isRequired, it.IsRequired)
		var p *string
		if it.MinProficiency != nil {
			v := string(*it.MinProficiency)
			p = &v
		}
		minProf = append(minProf, p)
		years = append(years, it.YearsRequired)
		priorities = append(priorities, string(it.Priority))
	}
	if len(skillIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_skill_requirements (id, posting_id, skill_id, is_required, min_proficiency, years_required, priority)
		 SELECT gen_random_uuid(), $1, t.skill_id, t.is_required, t.min_proficiency, t.years_required, t.priority
		 FROM unnest($2::uuid[], $3::boolean[], $4::text[], $5::float8[], $6::text[])
			AS t(skill_id, is_required, min_proficiency, years_required, priority)
		 ON CONFLICT (posting_id, skill_id) DO NOTHING`,
		postingID, skillIDs, isRequired, minProf, years, priorities,
	)
	return err
}
