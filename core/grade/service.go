package grade

import "context"

type (
	Repository interface {
		// QueryGradesByGroupAndSubject lists active grade rows of a group's
		// students for a subject, ordered by student name; partial filters
		// to one grading partial when non-nil.
		QueryGradesByGroupAndSubject(ctx context.Context, groupID, subjectID int, partial *int) ([]Row, error)
		QueryGradesByProfessor(ctx context.Context, professorID int) ([]Row, error)
		UpdateGradeScores(ctx context.Context, id int, up UpdateScores) (Grade, error)
		// ProvisionGrades inserts one zeroed grade row per active assignment
		// of the group per partial, skipping rows that already exist.
		// Returns the number of rows created.
		ProvisionGrades(ctx context.Context, studentID, groupID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryByGroupAndSubject(ctx context.Context, groupID, subjectID int, partial *int) ([]Row, error) {
	return svc.repo.QueryGradesByGroupAndSubject(ctx, groupID, subjectID, partial)
}

func (svc *Service) QueryByProfessor(ctx context.Context, professorID int) ([]Row, error) {
	return svc.repo.QueryGradesByProfessor(ctx, professorID)
}

func (svc *Service) UpdateScores(ctx context.Context, id int, up UpdateScores) (Grade, error) {
	return svc.repo.UpdateGradeScores(ctx, id, up)
}

// ProvisionForStudent makes sure the student has a grade row for every
// (active assignment of the group, partial) combination. A group with N
// assignments ends up with 3×N rows. Idempotent: existing rows are kept
// and a second run reports AlreadyProvisioned.
func (svc *Service) ProvisionForStudent(ctx context.Context, studentID, groupID int) (ProvisionResult, error) {
	created, err := svc.repo.ProvisionGrades(ctx, studentID, groupID)
	if err != nil {
		return ProvisionResult{StudentID: studentID}, err
	}
	return ProvisionResult{
		StudentID:          studentID,
		Created:            created,
		AlreadyProvisioned: created == 0,
	}, nil
}
