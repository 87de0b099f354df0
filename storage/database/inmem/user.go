package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if usr, ok := repo.db.users[email]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllUsers(_ context.Context) ([]user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := make([]user.User, 0, len(repo.db.users))
	for _, usr := range repo.db.users {
		users = append(users, *usr)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (repo *userRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...user.User) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, usr := range excluded {
		if usr.Email == email {
			return nil
		}
	}
	if _, ok := repo.db.users[email]; ok {
		return user.ErrEmailExists
	}
	return nil
}

// SetPasswordHash updates the identity hash and the copy held on the paired
// profile row, so the two never diverge.
func (repo *userRepository) SetPasswordHash(_ context.Context, email string, hash []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	usr, ok := repo.db.users[email]
	if !ok {
		return user.ErrNotFound
	}
	usr.PasswordHash = hash
	switch {
	case usr.TeacherID.Valid:
		if t, ok := repo.db.teachers[usr.TeacherID.Int]; ok {
			t.PasswordHash = hash
		}
	case usr.StudentID.Valid:
		if s, ok := repo.db.students[usr.StudentID.Int]; ok {
			s.PasswordHash = hash
		}
	case usr.ParentID.Valid:
		if p, ok := repo.db.parents[usr.ParentID.Int]; ok {
			p.PasswordHash = hash
		}
	}
	return nil
}
