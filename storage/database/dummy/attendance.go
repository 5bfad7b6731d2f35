package dummydb

import (
	"context"
	"sort"

	"github.com/AxelGHMM/CACE/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryRosterByGroup(ctx context.Context, groupID int) ([]attendance.RosterEntry, error) {
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	var entries []attendance.RosterEntry
	for _, s := range repo.db.student.table {
		if s.GroupID == groupID && s.IsActive {
			entries = append(entries, attendance.RosterEntry{
				StudentID: s.ID,
				Matricula: s.Matricula,
				Name:      s.Name,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (repo *attendanceRepository) CreateAttendances(ctx context.Context, atts []attendance.Attendance) ([]attendance.Attendance, error) {
	repo.db.attendance.Lock()
	defer repo.db.attendance.Unlock()

	created := make([]attendance.Attendance, 0, len(atts))
	for _, att := range atts {
		repo.db.attendance.pk++
		att.ID = repo.db.attendance.pk
		a := att
		repo.db.attendance.table[a.ID] = &a
		created = append(created, a)
	}
	return created, nil
}
