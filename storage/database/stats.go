package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/stats"
)

type statsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*statsRepository)(nil)

func NewStatsRepository(db *sqlx.DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE is_active = true`
	if err := repo.db.GetContext(ctx, &count, query); err != nil {
		return 0, errors.Wrap(err, "counting users")
	}
	return count, nil
}

func (repo *statsRepository) CountSubjects(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM subjects WHERE is_active = true`
	if err := repo.db.GetContext(ctx, &count, query); err != nil {
		return 0, errors.Wrap(err, "counting subjects")
	}
	return count, nil
}

func (repo *statsRepository) CountGroups(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM groups WHERE is_active = true`
	if err := repo.db.GetContext(ctx, &count, query); err != nil {
		return 0, errors.Wrap(err, "counting groups")
	}
	return count, nil
}

func (repo *statsRepository) QueryUsersByRole(ctx context.Context) ([]stats.RoleCount, error) {
	var counts []stats.RoleCount
	query := `
SELECT role, COUNT(*) AS count
FROM users
WHERE is_active = true
GROUP BY role`
	if err := repo.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, errors.Wrap(err, "querying users by role")
	}
	return counts, nil
}

func (repo *statsRepository) QuerySubjectsPerGroup(ctx context.Context) ([]int, error) {
	var counts []int
	query := `
SELECT COUNT(a.subject_id) AS count
FROM groups g
LEFT JOIN assignments a ON a.group_id = g.id AND a.is_active = true
WHERE g.is_active = true
GROUP BY g.id
ORDER BY g.id`
	if err := repo.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, errors.Wrap(err, "querying subjects per group")
	}
	return counts, nil
}

func (repo *statsRepository) QueryMonthlyAttendance(ctx context.Context) ([]stats.MonthCount, error) {
	var counts []stats.MonthCount
	query := `
SELECT EXTRACT(MONTH FROM date)::int AS month, COUNT(*) AS count
FROM attendances
WHERE is_active = true
GROUP BY month
ORDER BY month`
	if err := repo.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, errors.Wrap(err, "querying monthly attendance")
	}
	return counts, nil
}

func (repo *statsRepository) QueryStudentsPerGroup(ctx context.Context) ([]int, error) {
	var counts []int
	query := `
SELECT COUNT(s.id) AS count
FROM groups g
LEFT JOIN students s ON s.group_id = g.id AND s.is_active = true
WHERE g.is_active = true
GROUP BY g.id
ORDER BY g.id`
	if err := repo.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, errors.Wrap(err, "querying students per group")
	}
	return counts, nil
}
