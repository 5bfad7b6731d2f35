package dummydb

import (
	"context"
	"sort"

	"github.com/AxelGHMM/CACE/core/subject"
)

type subjectRepository struct {
	db *subjectTable
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, id int) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.table[id]; ok && sub.IsActive {
		return *sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) GetSubjectByName(ctx context.Context, name string) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, sub := range repo.db.table {
		if sub.Name == name && sub.IsActive {
			return *sub, nil
		}
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.table))
	for _, sub := range repo.db.table {
		if sub.IsActive {
			subjects = append(subjects, *sub)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, name string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	sub := subject.Subject{ID: repo.db.pk, Name: name, IsActive: true}
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) RenameSubject(ctx context.Context, id int, name string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub, ok := repo.db.table[id]
	if !ok || !sub.IsActive {
		return subject.Subject{}, subject.ErrNotFound
	}
	sub.Name = name
	return *sub, nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if sub, ok := repo.db.table[id]; ok {
		sub.IsActive = false
	}
	return nil
}
