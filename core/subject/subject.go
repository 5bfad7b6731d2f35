package subject

import (
	"context"

	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
)

var ErrNotFound = errors.New("subject not found")

type Subject struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name string `json:"name" validate:"required"`
}

type (
	Repository interface {
		GetSubjectByID(ctx context.Context, id int) (Subject, error)
		GetSubjectByName(ctx context.Context, name string) (Subject, error)
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		CreateSubject(ctx context.Context, name string) (Subject, error)
		RenameSubject(ctx context.Context, id int, name string) (Subject, error)
		DeleteSubject(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id int) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) GetByName(ctx context.Context, name string) (Subject, error) {
	return svc.repo.GetSubjectByName(ctx, core.CleanString(name))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, core.CleanString(ns.Name))
}

func (svc *Service) Rename(ctx context.Context, id int, name string) (Subject, error) {
	return svc.repo.RenameSubject(ctx, id, core.CleanString(name))
}

// Delete is a soft delete; the row is flagged inactive, never removed.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteSubject(ctx, id)
}
