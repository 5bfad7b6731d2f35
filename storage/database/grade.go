package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/grade"
)

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryGradesByGroupAndSubject(ctx context.Context, groupID, subjectID int, partial *int) ([]grade.Row, error) {
	var rows []grade.Row
	query := `
SELECT g.id,
       s.matricula,
       s.name,
       g.partial,
       g.activity_1,
       g.activity_2,
       g.attendance,
       g.project,
       g.exam
FROM grades g
JOIN students s ON g.student_id = s.id
WHERE s.group_id = $1 AND g.subject_id = $2 AND g.is_active = true`
	args := []interface{}{groupID, subjectID}
	if partial != nil {
		query += ` AND g.partial = $3`
		args = append(args, *partial)
	}
	query += ` ORDER BY s.name, g.partial`

	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying grades by group and subject")
	}
	return rows, nil
}

func (repo *gradeRepository) QueryGradesByProfessor(ctx context.Context, professorID int) ([]grade.Row, error) {
	var rows []grade.Row
	query := `
SELECT g.id,
       s.matricula,
       s.name,
       g.partial,
       g.activity_1,
       g.activity_2,
       g.attendance,
       g.project,
       g.exam,
       a.group_id,
       g.subject_id
FROM grades g
JOIN students s ON g.student_id = s.id
LEFT JOIN assignments a
       ON a.user_id = g.professor_id
      AND a.subject_id = g.subject_id
      AND a.group_id = s.group_id
      AND a.is_active = true
WHERE g.professor_id = $1 AND g.is_active = true
ORDER BY s.name, g.partial`
	if err := repo.db.SelectContext(ctx, &rows, query, professorID); err != nil {
		return nil, errors.Wrap(err, "querying grades by professor")
	}
	return rows, nil
}

func (repo *gradeRepository) UpdateGradeScores(ctx context.Context, id int, up grade.UpdateScores) (grade.Grade, error) {
	var g grade.Grade
	query := `
UPDATE grades
SET activity_1 = COALESCE($1, activity_1),
    activity_2 = COALESCE($2, activity_2),
    attendance = COALESCE($3, attendance),
    project    = COALESCE($4, project),
    exam       = COALESCE($5, exam),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $6 AND is_active = true
RETURNING id, student_id, professor_id, subject_id, partial,
          activity_1, activity_2, attendance, project, exam, is_active`
	err := repo.db.GetContext(ctx, &g, query, up.Activity1, up.Activity2, up.Attendance, up.Project, up.Exam, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return grade.Grade{}, grade.ErrNotFound
		}
		return grade.Grade{}, errors.Wrap(err, "updating grade scores")
	}
	return g, nil
}

func (repo *gradeRepository) ProvisionGrades(ctx context.Context, studentID, groupID int) (int, error) {
	query := `
INSERT INTO grades
  (student_id, professor_id, subject_id, partial,
   activity_1, activity_2, attendance, project, exam, is_active)
SELECT $1, a.user_id, a.subject_id, p.partial, 0, 0, 0, 0, 0, true
FROM assignments a
CROSS JOIN generate_series(1, 3) AS p(partial)
WHERE a.group_id = $2 AND a.is_active = true
ON CONFLICT (student_id, professor_id, subject_id, partial) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, studentID, groupID)
	if err != nil {
		return 0, errors.Wrap(err, "provisioning grades")
	}
	created, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "provisioning grades: rows affected")
	}
	return int(created), nil
}
