package group

import (
	"context"

	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
)

var ErrNotFound = errors.New("group not found")

type Group struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// NewGroup contains information needed to create a new Group.
type NewGroup struct {
	Name string `json:"name" validate:"required"`
}

type (
	Repository interface {
		GetGroupByName(ctx context.Context, name string) (Group, error)
		QueryAllGroups(ctx context.Context) ([]Group, error)
		CreateGroup(ctx context.Context, name string) (Group, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByName(ctx context.Context, name string) (Group, error) {
	return svc.repo.GetGroupByName(ctx, core.CleanString(name))
}

func (svc *Service) QueryAll(ctx context.Context) ([]Group, error) {
	return svc.repo.QueryAllGroups(ctx)
}

func (svc *Service) Create(ctx context.Context, ng NewGroup) (Group, error) {
	return svc.repo.CreateGroup(ctx, core.CleanString(ng.Name))
}
