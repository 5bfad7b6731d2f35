package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/assignment"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) QueryAssignmentsByUser(ctx context.Context, userID int) ([]assignment.Assignment, error) {
	var assignments []assignment.Assignment
	query := `
SELECT a.id,
       a.user_id,
       a.group_id,
       g.name AS group_name,
       a.subject_id,
       s.name AS subject_name,
       a.is_active
FROM assignments a
JOIN groups g ON a.group_id = g.id
JOIN subjects s ON a.subject_id = s.id
WHERE a.user_id = $1 AND a.is_active = true`
	if err := repo.db.SelectContext(ctx, &assignments, query, userID); err != nil {
		return nil, errors.Wrap(err, "querying assignments by user")
	}
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var a assignment.Assignment
	query := `
SELECT id, user_id, group_id, subject_id, is_active
FROM assignments
WHERE id = $1 AND is_active = true`
	if err := repo.db.GetContext(ctx, &a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment by id")
	}
	return a, nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, na assignment.NewAssignment) (assignment.Assignment, error) {
	var a assignment.Assignment
	query := `
INSERT INTO assignments (user_id, group_id, subject_id, is_active)
VALUES ($1, $2, $3, true)
RETURNING id, user_id, group_id, subject_id, is_active`
	if err := repo.db.GetContext(ctx, &a, query, na.UserID, na.GroupID, na.SubjectID); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, id int, ua assignment.UpdateAssignment) (assignment.Assignment, error) {
	var a assignment.Assignment
	query := `
UPDATE assignments
SET user_id    = COALESCE(NULLIF($1, 0), user_id),
    group_id   = COALESCE(NULLIF($2, 0), group_id),
    subject_id = COALESCE(NULLIF($3, 0), subject_id),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $4 AND is_active = true
RETURNING id, user_id, group_id, subject_id, is_active`
	if err := repo.db.GetContext(ctx, &a, query, ua.UserID, ua.GroupID, ua.SubjectID, id); err != nil {
		if err == sql.ErrNoRows {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	query := `UPDATE assignments SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return nil
}
