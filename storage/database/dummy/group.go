package dummydb

import (
	"context"
	"sort"

	"github.com/AxelGHMM/CACE/core/group"
)

type groupRepository struct {
	db *groupTable
}

var _ group.Repository = (*groupRepository)(nil)

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db.group}
}

func (repo *groupRepository) GetGroupByName(ctx context.Context, name string) (group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, grp := range repo.db.table {
		if grp.Name == name && grp.IsActive {
			return *grp, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) QueryAllGroups(ctx context.Context) ([]group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	groups := make([]group.Group, 0, len(repo.db.table))
	for _, grp := range repo.db.table {
		if grp.IsActive {
			groups = append(groups, *grp)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (repo *groupRepository) CreateGroup(ctx context.Context, name string) (group.Group, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	grp := group.Group{ID: repo.db.pk, Name: name, IsActive: true}
	repo.db.table[grp.ID] = &grp
	return grp, nil
}
