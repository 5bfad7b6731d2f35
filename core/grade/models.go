package grade

import (
	"database/sql"

	"github.com/pkg/errors"
)

// Partials per grading period.
const NumPartials = 3

var ErrNotFound = errors.New("grade not found")

type (
	// Grade holds the five score components of one (student, professor,
	// subject, partial) combination.
	Grade struct {
		ID          int     `json:"id" db:"id"`
		StudentID   int     `json:"student_id" db:"student_id"`
		ProfessorID int     `json:"professor_id" db:"professor_id"`
		SubjectID   int     `json:"subject_id" db:"subject_id"`
		Partial     int     `json:"partial" db:"partial"`
		Activity1   float64 `json:"activity_1" db:"activity_1"`
		Activity2   float64 `json:"activity_2" db:"activity_2"`
		Attendance  float64 `json:"attendance" db:"attendance"`
		Project     float64 `json:"project" db:"project"`
		Exam        float64 `json:"exam" db:"exam"`
		IsActive    bool    `json:"is_active,omitempty" db:"is_active"`
	}

	// Row is a Grade joined with the student's matricula and name, as
	// listed on the grading screens.
	Row struct {
		ID         int           `json:"id" db:"id"`
		Matricula  string        `json:"matricula" db:"matricula"`
		Name       string        `json:"name" db:"name"`
		Partial    int           `json:"partial" db:"partial"`
		Activity1  float64       `json:"activity_1" db:"activity_1"`
		Activity2  float64       `json:"activity_2" db:"activity_2"`
		Attendance float64       `json:"attendance" db:"attendance"`
		Project    float64       `json:"project" db:"project"`
		Exam       float64       `json:"exam" db:"exam"`
		GroupID    sql.NullInt64 `json:"group_id,omitempty" db:"group_id"`     // professor-wide listing only
		SubjectID  sql.NullInt64 `json:"subject_id,omitempty" db:"subject_id"` // professor-wide listing only
	}

	// UpdateScores defines a partial update of the five score components;
	// nil fields keep their stored value.
	UpdateScores struct {
		Activity1  *float64 `json:"activity_1"`
		Activity2  *float64 `json:"activity_2"`
		Attendance *float64 `json:"attendance"`
		Project    *float64 `json:"project"`
		Exam       *float64 `json:"exam"`
	}

	// ProvisionResult reports what provisioning did for one student.
	ProvisionResult struct {
		StudentID          int  `json:"student_id"`
		Created            int  `json:"created"`
		AlreadyProvisioned bool `json:"already_provisioned"`
	}
)
