package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryRosterByGroup(ctx context.Context, groupID int) ([]attendance.RosterEntry, error) {
	var entries []attendance.RosterEntry
	query := `
SELECT id AS student_id, matricula, name, '' AS status
FROM students
WHERE group_id = $1 AND is_active = true
ORDER BY name`
	if err := repo.db.SelectContext(ctx, &entries, query, groupID); err != nil {
		return nil, errors.Wrap(err, "querying group roster")
	}
	return entries, nil
}

func (repo *attendanceRepository) CreateAttendances(ctx context.Context, atts []attendance.Attendance) ([]attendance.Attendance, error) {
	if len(atts) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(atts))
	args := make([]interface{}, 0, len(atts)*5)
	for i, att := range atts {
		n := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5))
		args = append(args, att.StudentID, att.UserID, att.SubjectID, att.Date, att.Status)
	}
	query := fmt.Sprintf(`
INSERT INTO attendances (student_id, user_id, subject_id, date, status)
VALUES %s
RETURNING id, student_id, user_id, subject_id, date::text AS date, status`, strings.Join(placeholders, ", "))

	var created []attendance.Attendance
	if err := repo.db.SelectContext(ctx, &created, query, args...); err != nil {
		return nil, errors.Wrap(err, "creating attendances")
	}
	return created, nil
}
