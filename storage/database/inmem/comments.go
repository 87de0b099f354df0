package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/school"
)

func (repo *Repository) CreateComment(_ context.Context, c school.Comment) (school.Comment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.comments[c.ID] = &c
	return c, nil
}

func (repo *Repository) QueryAllComments(_ context.Context) ([]school.Comment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	comments := make([]school.Comment, 0, len(repo.db.comments))
	for _, c := range repo.db.comments {
		comments = append(comments, *c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (repo *Repository) GetCommentByID(_ context.Context, id int) (school.Comment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.comments[id]; ok {
		return *c, nil
	}
	return school.Comment{}, school.ErrNotFound
}

func (repo *Repository) UpdateComment(_ context.Context, c school.Comment) (school.Comment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.comments[c.ID]; !ok {
		return school.Comment{}, school.ErrNotFound
	}
	repo.db.comments[c.ID] = &c
	return c, nil
}

func (repo *Repository) DeleteComment(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.comments[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.comments, id)
	return nil
}
