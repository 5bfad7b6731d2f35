package assignment

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("assignment not found")

// Assignment ties a professor to the subject they teach in a group.
type Assignment struct {
	ID          int    `json:"id" db:"id"`
	UserID      int    `json:"user_id" db:"user_id"`
	GroupID     int    `json:"group_id" db:"group_id"`
	SubjectID   int    `json:"subject_id" db:"subject_id"`
	IsActive    bool   `json:"is_active,omitempty" db:"is_active"`
	GroupName   string `json:"group_name,omitempty" db:"group_name"`     // joined on user-scoped listing
	SubjectName string `json:"subject_name,omitempty" db:"subject_name"` // joined on user-scoped listing
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	UserID    int `json:"user_id" validate:"required"`
	GroupID   int `json:"group_id" validate:"required"`
	SubjectID int `json:"subject_id" validate:"required"`
}

// UpdateAssignment defines a partial update; zero fields keep their stored value.
type UpdateAssignment struct {
	UserID    int `json:"user_id"`
	GroupID   int `json:"group_id"`
	SubjectID int `json:"subject_id"`
}

type (
	Repository interface {
		QueryAssignmentsByUser(ctx context.Context, userID int) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryByUser(ctx context.Context, userID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByUser(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	return svc.repo.CreateAssignment(ctx, na)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	return svc.repo.UpdateAssignment(ctx, id, ua)
}

// Delete is a soft delete; the row is flagged inactive, never removed.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}
