package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, id int) (subject.Subject, error) {
	var s subject.Subject
	query := `SELECT id, name, is_active FROM subjects WHERE id = $1 AND is_active = true`
	if err := repo.db.GetContext(ctx, &s, query, id); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject by id")
	}
	return s, nil
}

func (repo *subjectRepository) GetSubjectByName(ctx context.Context, name string) (subject.Subject, error) {
	var s subject.Subject
	query := `SELECT id, name, is_active FROM subjects WHERE name = $1 AND is_active = true`
	if err := repo.db.GetContext(ctx, &s, query, name); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject by name")
	}
	return s, nil
}

func (repo *subjectRepository) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	var subjects []subject.Subject
	query := `SELECT id, name, is_active FROM subjects WHERE is_active = true ORDER BY id`
	if err := repo.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, name string) (subject.Subject, error) {
	var s subject.Subject
	query := `INSERT INTO subjects (name, is_active) VALUES ($1, true) RETURNING id, name, is_active`
	if err := repo.db.GetContext(ctx, &s, query, name); err != nil {
		return subject.Subject{}, errors.Wrap(err, "creating subject")
	}
	return s, nil
}

func (repo *subjectRepository) RenameSubject(ctx context.Context, id int, name string) (subject.Subject, error) {
	var s subject.Subject
	query := `
UPDATE subjects
SET name = $1, updated_at = CURRENT_TIMESTAMP
WHERE id = $2 AND is_active = true
RETURNING id, name, is_active`
	if err := repo.db.GetContext(ctx, &s, query, name, id); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "renaming subject")
	}
	return s, nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id int) error {
	query := `UPDATE subjects SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return nil
}
