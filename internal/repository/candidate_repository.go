package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"profile-match/internal/database"
	"profile-match/internal/domain/candidate"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	FindDeclaredSkills(ctx context.Context, candidateID uuid.UUID) ([]candidate.DeclaredSkill, error)
	FindWorkHistory(ctx context.Context, candidateID uuid.UUID) ([]candidate.WorkHistoryRecord, error)
	FindEducation(ctx context.Context, candidateID uuid.UUID) ([]candidate.EducationRecord, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, full_name, created_at FROM candidates WHERE id = $1`, id,
	)
	var c candidate.Candidate
	if err := row.Scan(&c.ID, &c.FullName, &c.CreatedAt); err != nil {
		if isNoRows(err) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) FindDeclaredSkills(ctx context.Context, candidateID uuid.UUID) ([]candidate.DeclaredSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cs.id, cs.candidate_id, cs.skill_id, s.name, cs.proficiency, cs.years_experience, cs.source, cs.work_history_id
		 FROM candidate_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 WHERE cs.candidate_id = $1
		 ORDER BY s.name ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.DeclaredSkill, 0)
	for rows.Next() {
		var ds candidate.DeclaredSkill
		if err := rows.Scan(&ds.ID, &ds.CandidateID, &ds.SkillID, &ds.SkillName, &ds.Proficiency, &ds.YearsExperience, &ds.Source, &ds.WorkHistoryID); err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) FindWorkHistory(ctx context.Context, candidateID uuid.UUID) ([]candidate.WorkHistoryRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, company, title, start_date, end_date
		 FROM work_history
		 WHERE candidate_id = $1
		 ORDER BY start_date ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.WorkHistoryRecord, 0)
	for rows.Next() {
		var w candidate.WorkHistoryRecord
		if err := rows.Scan(&w.ID, &w.CandidateID, &w.Company, &w.Title, &w.StartDate, &w.EndDate); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) FindEducation(ctx context.Context, candidateID uuid.UUID) ([]candidate.EducationRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_id, institution, level, field, graduated_at
		 FROM education_records
		 WHERE candidate_id = $1
		 ORDER BY graduated_at ASC NULLS LAST`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.EducationRecord, 0)
	for rows.Next() {
		var e candidate.EducationRecord
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Institution, &e.Level, &e.Field, &e.GraduatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
