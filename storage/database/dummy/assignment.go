package dummydb

import (
	"context"
	"sort"

	"github.com/AxelGHMM/CACE/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) QueryAssignmentsByUser(ctx context.Context, userID int) ([]assignment.Assignment, error) {
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	var assignments []assignment.Assignment
	for _, a := range repo.db.assignment.table {
		if a.UserID != userID || !a.IsActive {
			continue
		}
		joined := *a
		if grp, ok := repo.db.group.table[a.GroupID]; ok {
			joined.GroupName = grp.Name
		}
		if sub, ok := repo.db.subject.table[a.SubjectID]; ok {
			joined.SubjectName = sub.Name
		}
		assignments = append(assignments, joined)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	if a, ok := repo.db.assignment.table[id]; ok && a.IsActive {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, na assignment.NewAssignment) (assignment.Assignment, error) {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	repo.db.assignment.pk++
	a := assignment.Assignment{
		ID:        repo.db.assignment.pk,
		UserID:    na.UserID,
		GroupID:   na.GroupID,
		SubjectID: na.SubjectID,
		IsActive:  true,
	}
	repo.db.assignment.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, id int, ua assignment.UpdateAssignment) (assignment.Assignment, error) {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	a, ok := repo.db.assignment.table[id]
	if !ok || !a.IsActive {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	if ua.UserID != 0 {
		a.UserID = ua.UserID
	}
	if ua.GroupID != 0 {
		a.GroupID = ua.GroupID
	}
	if ua.SubjectID != 0 {
		a.SubjectID = ua.SubjectID
	}
	return *a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	if a, ok := repo.db.assignment.table[id]; ok {
		a.IsActive = false
	}
	return nil
}
