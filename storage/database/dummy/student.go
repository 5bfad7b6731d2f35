package dummydb

import (
	"context"
	"database/sql"
	"sort"

	"github.com/AxelGHMM/CACE/core/student"
)

// StudentRepository is exported so tests can inject upsert failures.
type StudentRepository struct {
	db         *studentTable
	failUpsert map[string]error
}

var _ student.Repository = (*StudentRepository)(nil)

func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{db: db.student, failUpsert: make(map[string]error)}
}

// FailUpsertOn makes UpsertStudent fail with err for the given matricula.
// A nil err clears the failure.
func (repo *StudentRepository) FailUpsertOn(matricula string, err error) {
	if err == nil {
		delete(repo.failUpsert, matricula)
		return
	}
	repo.failUpsert[matricula] = err
}

func (repo *StudentRepository) GetStudentByMatricula(ctx context.Context, matricula string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.db.table {
		if s.Matricula == matricula && s.IsActive {
			return *s, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *StudentRepository) QueryStudentsByGroup(ctx context.Context, groupID int) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var students []student.Student
	for _, s := range repo.db.table {
		if s.GroupID == groupID && s.IsActive {
			students = append(students, *s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (repo *StudentRepository) UpsertStudent(ctx context.Context, us student.UpsertStudent, groupID int) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if err, ok := repo.failUpsert[us.Matricula]; ok {
		return 0, err
	}

	email := sql.NullString{String: us.Email, Valid: us.Email != ""}
	for _, s := range repo.db.table {
		if s.Matricula == us.Matricula {
			s.Name = us.Name
			s.Email = email
			s.GroupID = groupID
			return s.ID, nil
		}
	}

	repo.db.pk++
	s := student.Student{
		ID:        repo.db.pk,
		Name:      us.Name,
		Email:     email,
		Matricula: us.Matricula,
		GroupID:   groupID,
		IsActive:  true,
	}
	repo.db.table[s.ID] = &s
	return s.ID, nil
}
