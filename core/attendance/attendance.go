package attendance

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

var (
	ErrNoStudents = errors.New("no students in this group")

	statusTag  = "attstatus"
	statusText = "status must be one of present, absent or late"
)

type (
	Attendance struct {
		ID        int    `json:"id" db:"id"`
		StudentID int    `json:"student_id" db:"student_id"`
		UserID    int    `json:"user_id" db:"user_id"`
		SubjectID int    `json:"subject_id" db:"subject_id"`
		Date      string `json:"date" db:"date"`
		Status    string `json:"status" db:"status"`
	}

	// RosterEntry is a student of the group with a default status, for
	// the professor to amend and submit.
	RosterEntry struct {
		StudentID int    `json:"student_id" db:"student_id"`
		Matricula string `json:"matricula" db:"matricula"`
		Name      string `json:"name" db:"name"`
		Status    string `json:"status" db:"status"`
	}

	BatchEntry struct {
		StudentID int    `json:"student_id" validate:"required"`
		Status    string `json:"status" validate:"required,attstatus"`
	}

	// NewBatch is one daily submission for a (group, subject) pair. The
	// recording professor is stamped by the caller from the auth claims.
	NewBatch struct {
		GroupID     int          `json:"group_id" validate:"required"`
		SubjectID   int          `json:"subject_id" validate:"required"`
		Date        string       `json:"date" validate:"required"`
		Attendances []BatchEntry `json:"attendances" validate:"required,min=1,dive"`
	}
)

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	for i := range nb.Attendances {
		nb.Attendances[i].Status = core.CleanString(nb.Attendances[i].Status, true /* lower */)
	}
	return validate.Struct(nb)
}

type (
	Repository interface {
		QueryRosterByGroup(ctx context.Context, groupID int) ([]RosterEntry, error)
		CreateAttendances(ctx context.Context, atts []Attendance) ([]Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Roster lists the group's students, everyone defaulted to present.
func (svc *Service) Roster(ctx context.Context, groupID, subjectID int) ([]RosterEntry, error) {
	entries, err := svc.repo.QueryRosterByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoStudents
	}
	for i := range entries {
		entries[i].Status = StatusPresent
	}
	return entries, nil
}

// SubmitBatch inserts one row per entry, stamped with the recording professor.
func (svc *Service) SubmitBatch(ctx context.Context, nb NewBatch, professorID int) ([]Attendance, error) {
	atts := make([]Attendance, 0, len(nb.Attendances))
	for _, entry := range nb.Attendances {
		atts = append(atts, Attendance{
			StudentID: entry.StudentID,
			UserID:    professorID,
			SubjectID: nb.SubjectID,
			Date:      nb.Date,
			Status:    strings.ToLower(entry.Status),
		})
	}
	return svc.repo.CreateAttendances(ctx, atts)
}

// InitValidators registers this package's custom validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}
