package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/group"
)

type groupRepository struct {
	db *sqlx.DB
}

var _ group.Repository = (*groupRepository)(nil)

func NewGroupRepository(db *sqlx.DB) group.Repository {
	return &groupRepository{db: db}
}

func (repo *groupRepository) GetGroupByName(ctx context.Context, name string) (group.Group, error) {
	var g group.Group
	query := `SELECT id, name, is_active FROM groups WHERE name = $1`
	if err := repo.db.GetContext(ctx, &g, query, name); err != nil {
		if err == sql.ErrNoRows {
			return group.Group{}, group.ErrNotFound
		}
		return group.Group{}, errors.Wrap(err, "getting group by name")
	}
	return g, nil
}

func (repo *groupRepository) QueryAllGroups(ctx context.Context) ([]group.Group, error) {
	var groups []group.Group
	query := `SELECT id, name, is_active FROM groups ORDER BY id`
	if err := repo.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, errors.Wrap(err, "querying groups")
	}
	return groups, nil
}

func (repo *groupRepository) CreateGroup(ctx context.Context, name string) (group.Group, error) {
	var g group.Group
	query := `INSERT INTO groups (name) VALUES ($1) RETURNING id, name, is_active`
	if err := repo.db.GetContext(ctx, &g, query, name); err != nil {
		return group.Group{}, errors.Wrap(err, "creating group")
	}
	return g, nil
}
