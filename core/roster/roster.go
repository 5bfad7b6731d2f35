package roster

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/student"
)

type (
	// Batch is one roster upload: the parsed spreadsheet rows plus the
	// target group.
	Batch struct {
		GroupID int                     `json:"groupId" validate:"required"`
		Data    []student.UpsertStudent `json:"data" validate:"required,min=1,dive"`
	}

	// Failure records a non-fatal provisioning error for one record.
	Failure struct {
		Matricula string `json:"matricula"`
		Reason    string `json:"reason"`
	}

	// Result is what one ingestion run did. When Ingest returns an error,
	// Result still reports the records that were applied before the abort.
	Result struct {
		BatchID       string    `json:"batch_id"`
		Students      int       `json:"students"`
		GradesCreated int       `json:"grades_created"`
		Failures      []Failure `json:"failures,omitempty"`
	}

	Service struct {
		studentSvc *student.Service
		gradeSvc   *grade.Service
		logger     core.Logger
	}
)

func (b *Batch) Validate(validate *validator.Validate) error {
	for i := range b.Data {
		b.Data[i].Clean()
	}
	return validate.Struct(b)
}

func NewService(studentSvc *student.Service, gradeSvc *grade.Service, logger core.Logger) *Service {
	return &Service{studentSvc: studentSvc, gradeSvc: gradeSvc, logger: logger}
}

// Ingest processes the batch in input order: upsert the student by
// matricula, then provision their grade rows for the group's assignments.
//
// Each upsert commits on its own; a failed upsert aborts the remaining
// records and surfaces the error while earlier records stay persisted.
// The whole pipeline is idempotent, so re-uploading the same file after a
// partial failure completes the batch. Provisioning failures do not abort:
// they are logged with the batch id and reported in Result.Failures.
func (svc *Service) Ingest(ctx context.Context, batch Batch) (Result, error) {
	res := Result{BatchID: uuid.New().String()}

	for _, rec := range batch.Data {
		studentID, err := svc.studentSvc.Upsert(ctx, rec, batch.GroupID)
		if err != nil {
			return res, errors.Wrapf(err, "upserting student %q (batch %s)", rec.Matricula, res.BatchID)
		}
		res.Students++

		provRes, err := svc.gradeSvc.ProvisionForStudent(ctx, studentID, batch.GroupID)
		if err != nil {
			svc.logger.Error(
				fmt.Sprintf("provisioning grades for student %q failed", rec.Matricula),
				err, map[string]interface{}{"batch_id": res.BatchID, "student_id": studentID, "group_id": batch.GroupID},
			)
			res.Failures = append(res.Failures, Failure{Matricula: rec.Matricula, Reason: err.Error()})
			continue
		}
		res.GradesCreated += provRes.Created
	}
	return res, nil
}
