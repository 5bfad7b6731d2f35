package student

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
)

var ErrNotFound = errors.New("student not found")

// Student belongs to exactly one group; matricula is the unique enrollment code.
type Student struct {
	ID        int            `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Email     sql.NullString `json:"email" db:"email"`
	Matricula string         `json:"matricula" db:"matricula"`
	GroupID   int            `json:"group_id" db:"group_id"`
	IsActive  bool           `json:"is_active" db:"is_active"`
}

// UpsertStudent is the per-record input of roster ingestion.
type UpsertStudent struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Matricula string `json:"matricula" validate:"required"`
}

func (us *UpsertStudent) Clean() {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Matricula = core.CleanString(us.Matricula)
}

type (
	Repository interface {
		GetStudentByMatricula(ctx context.Context, matricula string) (Student, error)
		QueryStudentsByGroup(ctx context.Context, groupID int) ([]Student, error)
		// UpsertStudent inserts or, on matricula conflict, overwrites
		// name, email and group membership. Returns the student id.
		UpsertStudent(ctx context.Context, us UpsertStudent, groupID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByMatricula(ctx context.Context, matricula string) (Student, error) {
	return svc.repo.GetStudentByMatricula(ctx, core.CleanString(matricula))
}

func (svc *Service) QueryByGroup(ctx context.Context, groupID int) ([]Student, error) {
	return svc.repo.QueryStudentsByGroup(ctx, groupID)
}

// Upsert is last-write-wins on matricula conflict.
func (svc *Service) Upsert(ctx context.Context, us UpsertStudent, groupID int) (int, error) {
	us.Clean()
	return svc.repo.UpsertStudent(ctx, us, groupID)
}
