package dummydb

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/AxelGHMM/CACE/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil)

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) CountUsers(ctx context.Context) (int, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	count := 0
	for _, usr := range repo.db.user.table {
		if usr.IsActive {
			count++
		}
	}
	return count, nil
}

func (repo *statsRepository) CountSubjects(ctx context.Context) (int, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	count := 0
	for _, sub := range repo.db.subject.table {
		if sub.IsActive {
			count++
		}
	}
	return count, nil
}

func (repo *statsRepository) CountGroups(ctx context.Context) (int, error) {
	repo.db.group.RLock()
	defer repo.db.group.RUnlock()

	count := 0
	for _, grp := range repo.db.group.table {
		if grp.IsActive {
			count++
		}
	}
	return count, nil
}

func (repo *statsRepository) QueryUsersByRole(ctx context.Context) ([]stats.RoleCount, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	byRole := make(map[string]int)
	for _, usr := range repo.db.user.table {
		if usr.IsActive {
			byRole[usr.Role]++
		}
	}
	counts := make([]stats.RoleCount, 0, len(byRole))
	for role, count := range byRole {
		counts = append(counts, stats.RoleCount{Role: role, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Role < counts[j].Role })
	return counts, nil
}

func (repo *statsRepository) QuerySubjectsPerGroup(ctx context.Context) ([]int, error) {
	repo.db.group.RLock()
	defer repo.db.group.RUnlock()
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	var counts []int
	for _, groupID := range repo.activeGroupIDs() {
		count := 0
		for _, a := range repo.db.assignment.table {
			if a.GroupID == groupID && a.IsActive {
				count++
			}
		}
		counts = append(counts, count)
	}
	return counts, nil
}

func (repo *statsRepository) QueryMonthlyAttendance(ctx context.Context) ([]stats.MonthCount, error) {
	repo.db.attendance.RLock()
	defer repo.db.attendance.RUnlock()

	byMonth := make(map[int]int)
	for _, att := range repo.db.attendance.table {
		// dates are "YYYY-MM-DD"
		parts := strings.SplitN(att.Date, "-", 3)
		if len(parts) < 2 {
			continue
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		byMonth[month]++
	}
	counts := make([]stats.MonthCount, 0, len(byMonth))
	for month, count := range byMonth {
		counts = append(counts, stats.MonthCount{Month: month, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Month < counts[j].Month })
	return counts, nil
}

func (repo *statsRepository) QueryStudentsPerGroup(ctx context.Context) ([]int, error) {
	repo.db.group.RLock()
	defer repo.db.group.RUnlock()
	repo.db.student.RLock()
	defer repo.db.student.RUnlock()

	var counts []int
	for _, groupID := range repo.activeGroupIDs() {
		count := 0
		for _, s := range repo.db.student.table {
			if s.GroupID == groupID && s.IsActive {
				count++
			}
		}
		counts = append(counts, count)
	}
	return counts, nil
}

// activeGroupIDs assumes group lock is held.
func (repo *statsRepository) activeGroupIDs() []int {
	ids := make([]int, 0, len(repo.db.group.table))
	for _, grp := range repo.db.group.table {
		if grp.IsActive {
			ids = append(ids, grp.ID)
		}
	}
	sort.Ints(ids)
	return ids
}
