package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) GetStudentByMatricula(ctx context.Context, matricula string) (student.Student, error) {
	var s student.Student
	query := `
SELECT id, name, email, matricula, group_id, is_active
FROM students
WHERE matricula = $1 AND is_active = true`
	if err := repo.db.GetContext(ctx, &s, query, matricula); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student by matricula")
	}
	return s, nil
}

func (repo *studentRepository) QueryStudentsByGroup(ctx context.Context, groupID int) ([]student.Student, error) {
	var students []student.Student
	query := `
SELECT id, name, email, matricula, group_id, is_active
FROM students
WHERE group_id = $1 AND is_active = true
ORDER BY name`
	if err := repo.db.SelectContext(ctx, &students, query, groupID); err != nil {
		return nil, errors.Wrap(err, "querying students by group")
	}
	return students, nil
}

func (repo *studentRepository) UpsertStudent(ctx context.Context, us student.UpsertStudent, groupID int) (int, error) {
	var id int
	email := sql.NullString{String: us.Email, Valid: us.Email != ""}
	query := `
INSERT INTO students (name, email, matricula, group_id, is_active)
VALUES ($1, $2, $3, $4, true)
ON CONFLICT (matricula) DO UPDATE
SET name = EXCLUDED.name, email = EXCLUDED.email, group_id = EXCLUDED.group_id
RETURNING id`
	if err := repo.db.QueryRowxContext(ctx, query, us.Name, email, us.Matricula, groupID).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "upserting student")
	}
	return id, nil
}
