package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/school"
)

type commentRow struct {
	ID        int       `db:"id"`
	Title     string    `db:"title"`
	Subject   string    `db:"subject"`
	Body      string    `db:"content"`
	TeacherID null.Int  `db:"teacher_id"`
	StudentID null.Int  `db:"student_id"`
	ParentID  null.Int  `db:"parent_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r commentRow) comment() school.Comment {
	return school.Comment{
		ID:        r.ID,
		Title:     r.Title,
		Subject:   r.Subject,
		Body:      r.Body,
		Author:    ownerFromFKs(r.TeacherID, r.StudentID, r.ParentID),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const commentCols = `id, title, subject, content, teacher_id, student_id, parent_id, created_at, updated_at`

func (repo *Repository) CreateComment(ctx context.Context, c school.Comment) (school.Comment, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO comment (title, subject, content, teacher_id, student_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.Title, c.Subject, c.Body,
		c.Author.TeacherID(), c.Author.StudentID(), c.Author.ParentID(), c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return school.Comment{}, errors.Wrap(err, "inserting comment")
	}
	return c, nil
}

func (repo *Repository) QueryAllComments(ctx context.Context) ([]school.Comment, error) {
	var rows []commentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+commentCols+` FROM comment ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}
	comments := make([]school.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.comment()
	}
	return comments, nil
}

func (repo *Repository) GetCommentByID(ctx context.Context, id int) (school.Comment, error) {
	var row commentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+commentCols+` FROM comment WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Comment{}, school.ErrNotFound
		}
		return school.Comment{}, errors.Wrap(err, "getting comment")
	}
	return row.comment(), nil
}

func (repo *Repository) UpdateComment(ctx context.Context, c school.Comment) (school.Comment, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE comment
		SET title = $2, subject = $3, content = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Title, c.Subject, c.Body, c.UpdatedAt,
	)
	if err != nil {
		return school.Comment{}, errors.Wrap(err, "updating comment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Comment{}, school.ErrNotFound
	}
	return c, nil
}

func (repo *Repository) DeleteComment(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "comment", id)
}
