package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

// Repository implements school.Repository on the in-memory DB. Every write
// runs under the shared write lock, so cascades behave like one transaction.
type Repository struct {
	db *DB
}

var _ school.Repository = (*Repository)(nil)

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (repo *Repository) contentsWhere(match func(c school.Content) bool) []school.Content {
	res := []school.Content{}
	for _, c := range repo.db.contents {
		if match(*c) {
			res = append(res, *c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (repo *Repository) savedContentsWhere(match func(sc school.SavedContent) bool) []school.SavedContent {
	res := []school.SavedContent{}
	for _, sc := range repo.db.savedContents {
		if match(*sc) {
			res = append(res, *sc)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// deleteIdentityLocked drops the app user paired with a profile.
// Callers must hold the write lock.
func (db *DB) deleteIdentityLocked(match func(u user.User) bool) {
	for email, u := range db.users {
		if match(*u) {
			delete(db.users, email)
		}
	}
}
