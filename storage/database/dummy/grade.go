package dummydb

import (
	"context"
	"database/sql"
	"sort"

	"github.com/AxelGHMM/CACE/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryGradesByGroupAndSubject(ctx context.Context, groupID, subjectID int, partial *int) ([]grade.Row, error) {
	repo.db.grade.RLock()
	defer repo.db.grade.RUnlock()
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	var rows []grade.Row
	for _, g := range repo.db.grade.table {
		if g.SubjectID != subjectID || !g.IsActive {
			continue
		}
		if partial != nil && g.Partial != *partial {
			continue
		}
		s, ok := repo.db.student.table[g.StudentID]
		if !ok || s.GroupID != groupID {
			continue
		}
		rows = append(rows, grade.Row{
			ID:         g.ID,
			Matricula:  s.Matricula,
			Name:       s.Name,
			Partial:    g.Partial,
			Activity1:  g.Activity1,
			Activity2:  g.Activity2,
			Attendance: g.Attendance,
			Project:    g.Project,
			Exam:       g.Exam,
		})
	}
	sortRows(rows)
	return rows, nil
}

func (repo *gradeRepository) QueryGradesByProfessor(ctx context.Context, professorID int) ([]grade.Row, error) {
	repo.db.grade.RLock()
	defer repo.db.grade.RUnlock()
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	var rows []grade.Row
	for _, g := range repo.db.grade.table {
		if g.ProfessorID != professorID || !g.IsActive {
			continue
		}
		s, ok := repo.db.student.table[g.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, grade.Row{
			ID:         g.ID,
			Matricula:  s.Matricula,
			Name:       s.Name,
			Partial:    g.Partial,
			Activity1:  g.Activity1,
			Activity2:  g.Activity2,
			Attendance: g.Attendance,
			Project:    g.Project,
			Exam:       g.Exam,
			GroupID:    sql.NullInt64{Int64: int64(s.GroupID), Valid: true},
			SubjectID:  sql.NullInt64{Int64: int64(g.SubjectID), Valid: true},
		})
	}
	sortRows(rows)
	return rows, nil
}

func (repo *gradeRepository) UpdateGradeScores(ctx context.Context, id int, up grade.UpdateScores) (grade.Grade, error) {
	repo.db.grade.Lock()
	defer repo.db.grade.Unlock()

	g, ok := repo.db.grade.table[id]
	if !ok || !g.IsActive {
		return grade.Grade{}, grade.ErrNotFound
	}
	if up.Activity1 != nil {
		g.Activity1 = *up.Activity1
	}
	if up.Activity2 != nil {
		g.Activity2 = *up.Activity2
	}
	if up.Attendance != nil {
		g.Attendance = *up.Attendance
	}
	if up.Project != nil {
		g.Project = *up.Project
	}
	if up.Exam != nil {
		g.Exam = *up.Exam
	}
	return *g, nil
}

func (repo *gradeRepository) ProvisionGrades(ctx context.Context, studentID, groupID int) (int, error) {
	repo.db.grade.Lock()
	defer repo.db.grade.Unlock()
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	created := 0
	for _, a := range repo.db.assignment.table {
		if a.GroupID != groupID || !a.IsActive {
			continue
		}
		for partial := 1; partial <= grade.NumPartials; partial++ {
			if repo.exists(studentID, a.UserID, a.SubjectID, partial) {
				continue
			}
			repo.db.grade.pk++
			g := grade.Grade{
				ID:          repo.db.grade.pk,
				StudentID:   studentID,
				ProfessorID: a.UserID,
				SubjectID:   a.SubjectID,
				Partial:     partial,
				IsActive:    true,
			}
			repo.db.grade.table[g.ID] = &g
			created++
		}
	}
	return created, nil
}

// exists assumes grade lock is held.
func (repo *gradeRepository) exists(studentID, professorID, subjectID, partial int) bool {
	for _, g := range repo.db.grade.table {
		if g.StudentID == studentID && g.ProfessorID == professorID &&
			g.SubjectID == subjectID && g.Partial == partial {
			return true
		}
	}
	return false
}

func sortRows(rows []grade.Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Partial < rows[j].Partial
	})
}
