package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/user"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func setup(t *testing.T) (*user.Service, user.Repository, *inmemdb.DB) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := inmemdb.NewUserRepository(db)
	return user.NewService(repo), repo, db
}

func seedUser(t *testing.T, db *inmemdb.DB, email, pwd string) user.User {
	usr := user.User{Email: email}
	require.NoError(t, usr.SetPassword(pwd))
	db.PutUser(usr)
	return usr
}

func TestService_Authenticate(t *testing.T) {
	svc, _, db := setup(t)
	ctx := context.Background()

	seedUser(t, db, "a@lecturer.x", "p1")

	t.Run("ok", func(t *testing.T) {
		usr, err := svc.Authenticate(ctx, "a@lecturer.x", "p1")
		require.NoError(t, err)
		assert.Equal(t, "a@lecturer.x", usr.Email)
	})

	t.Run("email is cleaned", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "  A@Lecturer.X ", "p1")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "a@lecturer.x", "nope")
		assert.Equal(t, user.ErrInvalidCredentials, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@lecturer.x", "p1")
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestService_SetPassword(t *testing.T) {
	svc, repo, db := setup(t)
	ctx := context.Background()

	usr := seedUser(t, db, "a@lecturer.x", "p1")

	require.NoError(t, svc.SetPassword(ctx, usr.Email, "p2"))

	refreshed, err := repo.GetUserByEmail(ctx, usr.Email)
	require.NoError(t, err)
	assert.NoError(t, refreshed.CheckPassword("p2"))
	assert.Error(t, refreshed.CheckPassword("p1"))

	assert.Equal(t, user.ErrNotFound, svc.SetPassword(ctx, "ghost@x.y", "p2"))
}

func TestRepository_CheckEmailUniqueness(t *testing.T) {
	_, repo, db := setup(t)
	ctx := context.Background()

	usr := seedUser(t, db, "a@lecturer.x", "p1")

	assert.NoError(t, repo.CheckEmailUniqueness(ctx, "free@x.y"))
	assert.Equal(t, user.ErrEmailExists, repo.CheckEmailUniqueness(ctx, usr.Email))
	assert.NoError(t, repo.CheckEmailUniqueness(ctx, usr.Email, usr)) // excluded
}
