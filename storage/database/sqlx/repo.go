package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/school"
)

// Repository implements school.Repository on postgres. Cascade deletes are
// declared at the schema level so a single DELETE removes an owner row and
// everything it owns atomically; composite writes run in one transaction.
type Repository struct {
	db *sqlx.DB
}

var _ school.Repository = (*Repository)(nil)

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (repo *Repository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// existsExcluding reports whether a row holds value in column, ignoring the
// excluded primary keys.
func (repo *Repository) existsExcluding(ctx context.Context, table, column, value string, exclIDs []int) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)`, table, column)
	args := []interface{}{value}
	if len(exclIDs) > 0 {
		var err error
		q, args, err = sqlx.In(
			fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ? AND id NOT IN (?))`, table, column),
			value, exclIDs,
		)
		if err != nil {
			return false, errors.Wrap(err, "expanding query")
		}
	}
	var exists bool
	if err := repo.db.GetContext(ctx, &exists, repo.db.Rebind(q), args...); err != nil {
		return false, errors.Wrapf(err, "checking %s.%s", table, column)
	}
	return exists, nil
}

// deleteByID removes one row, failing with school.ErrNotFound when absent.
func (repo *Repository) deleteByID(ctx context.Context, table string, id int) error {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table)), id)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrNotFound
	}
	return nil
}

func ownerFromFKs(teacherID, studentID, parentID null.Int) school.Owner {
	switch {
	case teacherID.Valid:
		return school.Owner{Kind: school.OwnerTeacher, ID: teacherID.Int}
	case studentID.Valid:
		return school.Owner{Kind: school.OwnerStudent, ID: studentID.Int}
	case parentID.Valid:
		return school.Owner{Kind: school.OwnerParent, ID: parentID.Int}
	}
	return school.Owner{}
}
