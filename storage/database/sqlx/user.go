package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

type userRow struct {
	Email        string   `db:"email"`
	PasswordHash []byte   `db:"password_hash"`
	TeacherID    null.Int `db:"teacher_id"`
	StudentID    null.Int `db:"student_id"`
	ParentID     null.Int `db:"parent_id"`
}

func (r userRow) user() user.User {
	return user.User{
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		TeacherID:    r.TeacherID,
		StudentID:    r.StudentID,
		ParentID:     r.ParentID,
	}
}

const userCols = `email, password_hash, teacher_id, student_id, parent_id`

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+userCols+` FROM app_user WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.user(), nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+userCols+` FROM app_user ORDER BY email`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, len(rows))
	for i, row := range rows {
		users[i] = row.user()
	}
	return users, nil
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...user.User) error {
	for _, usr := range excluded {
		if usr.Email == email {
			return nil
		}
	}
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM app_user WHERE email = $1)`, email)
	if err != nil {
		return errors.Wrap(err, "checking email")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

// SetPasswordHash updates the identity hash and the copy held on the paired
// profile row in one transaction, so the two never diverge.
func (repo *userRepository) SetPasswordHash(ctx context.Context, email string, hash []byte) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var row userRow
	if err = tx.GetContext(ctx, &row, `SELECT `+userCols+` FROM app_user WHERE email = $1 FOR UPDATE`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.ErrNotFound
		}
		return errors.Wrap(err, "getting user")
	}
	if _, err = tx.ExecContext(ctx, `UPDATE app_user SET password_hash = $2 WHERE email = $1`, email, hash); err != nil {
		return errors.Wrap(err, "updating identity hash")
	}

	var table string
	var profileID int
	switch {
	case row.TeacherID.Valid:
		table, profileID = "teacher", row.TeacherID.Int
	case row.StudentID.Valid:
		table, profileID = "student", row.StudentID.Int
	default:
		table, profileID = "parent", row.ParentID.Int
	}
	if _, err = tx.ExecContext(ctx, `UPDATE `+table+` SET password_hash = $2 WHERE id = $1`, profileID, hash); err != nil {
		return errors.Wrapf(err, "updating %s hash", table)
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
