package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
)

type assignmentRow struct {
	ID        int         `db:"id"`
	Name      string      `db:"assignment_name"`
	Topic     string      `db:"topic"`
	Body      string      `db:"content"`
	File      null.String `db:"assignment_file"`
	DueDate   core.Date   `db:"due_date"`
	CourseID  null.Int    `db:"course_id"`
	TeacherID null.Int    `db:"teacher_id"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r assignmentRow) assignment() school.Assignment {
	return school.Assignment{
		ID:        r.ID,
		Name:      r.Name,
		Topic:     r.Topic,
		Body:      r.Body,
		File:      r.File,
		DueDate:   r.DueDate,
		CourseID:  r.CourseID,
		TeacherID: r.TeacherID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const assignmentCols = `id, assignment_name, topic, content, assignment_file, due_date, course_id, teacher_id, created_at, updated_at`

func (repo *Repository) CreateAssignment(ctx context.Context, a school.Assignment) (school.Assignment, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO assignment (assignment_name, topic, content, assignment_file, due_date, course_id, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		a.Name, a.Topic, a.Body, a.File, a.DueDate, a.CourseID, a.TeacherID, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return school.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo *Repository) QueryAllAssignments(ctx context.Context) ([]school.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+assignmentCols+` FROM assignment ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	assignments := make([]school.Assignment, len(rows))
	for i, row := range rows {
		assignments[i] = row.assignment()
	}
	return assignments, nil
}

func (repo *Repository) GetAssignmentByID(ctx context.Context, id int) (school.Assignment, error) {
	var row assignmentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+assignmentCols+` FROM assignment WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Assignment{}, school.ErrNotFound
		}
		return school.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return row.assignment(), nil
}

func (repo *Repository) UpdateAssignment(ctx context.Context, a school.Assignment) (school.Assignment, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE assignment
		SET assignment_name = $2, topic = $3, content = $4, assignment_file = $5, due_date = $6, updated_at = $7
		WHERE id = $1`,
		a.ID, a.Name, a.Topic, a.Body, a.File, a.DueDate, a.UpdatedAt,
	)
	if err != nil {
		return school.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Assignment{}, school.ErrNotFound
	}
	return a, nil
}

func (repo *Repository) DeleteAssignment(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "assignment", id)
}

type submissionRow struct {
	ID        int         `db:"id"`
	Name      string      `db:"assignment_name"`
	Body      string      `db:"content"`
	Grade     null.Int    `db:"grade"`
	File      null.String `db:"assignment_file"`
	Remarks   string      `db:"remarks"`
	IsGraded  bool        `db:"is_graded"`
	CourseID  null.Int    `db:"course_id"`
	StudentID null.Int    `db:"student_id"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r submissionRow) submission() school.SubmittedAssignment {
	return school.SubmittedAssignment{
		ID:        r.ID,
		Name:      r.Name,
		Body:      r.Body,
		Grade:     r.Grade,
		File:      r.File,
		Remarks:   r.Remarks,
		IsGraded:  r.IsGraded,
		CourseID:  r.CourseID,
		StudentID: r.StudentID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const submissionCols = `id, assignment_name, content, grade, assignment_file, remarks, is_graded, course_id, student_id, created_at, updated_at`

func (repo *Repository) CreateSubmission(ctx context.Context, sa school.SubmittedAssignment) (school.SubmittedAssignment, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO submitted_assignment (assignment_name, content, grade, assignment_file, remarks, is_graded, course_id, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		sa.Name, sa.Body, sa.Grade, sa.File, sa.Remarks, sa.IsGraded,
		sa.CourseID, sa.StudentID, sa.CreatedAt, sa.UpdatedAt,
	).Scan(&sa.ID)
	if err != nil {
		return school.SubmittedAssignment{}, errors.Wrap(err, "inserting submission")
	}
	return sa, nil
}

func (repo *Repository) querySubmissions(ctx context.Context, tail string, args ...interface{}) ([]school.SubmittedAssignment, error) {
	var rows []submissionRow
	q := `SELECT ` + submissionCols + ` FROM submitted_assignment ` + tail + ` ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	sas := make([]school.SubmittedAssignment, len(rows))
	for i, row := range rows {
		sas[i] = row.submission()
	}
	return sas, nil
}

func (repo *Repository) QueryAllSubmissions(ctx context.Context) ([]school.SubmittedAssignment, error) {
	return repo.querySubmissions(ctx, "")
}

func (repo *Repository) GetSubmissionByID(ctx context.Context, id int) (school.SubmittedAssignment, error) {
	var row submissionRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+submissionCols+` FROM submitted_assignment WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.SubmittedAssignment{}, school.ErrNotFound
		}
		return school.SubmittedAssignment{}, errors.Wrap(err, "getting submission")
	}
	return row.submission(), nil
}

func (repo *Repository) UpdateSubmission(ctx context.Context, sa school.SubmittedAssignment) (school.SubmittedAssignment, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE submitted_assignment
		SET assignment_name = $2, content = $3, grade = $4, assignment_file = $5, remarks = $6, is_graded = $7, updated_at = $8
		WHERE id = $1`,
		sa.ID, sa.Name, sa.Body, sa.Grade, sa.File, sa.Remarks, sa.IsGraded, sa.UpdatedAt,
	)
	if err != nil {
		return school.SubmittedAssignment{}, errors.Wrap(err, "updating submission")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.SubmittedAssignment{}, school.ErrNotFound
	}
	return sa, nil
}

func (repo *Repository) DeleteSubmission(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "submitted_assignment", id)
}

type reportCardRow struct {
	ID             int       `db:"id"`
	Topic          string    `db:"topic"`
	Grade          int       `db:"grade"`
	TeacherRemarks string    `db:"teacher_remarks"`
	CourseID       null.Int  `db:"course_id"`
	TeacherID      null.Int  `db:"teacher_id"`
	StudentID      null.Int  `db:"student_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r reportCardRow) reportCard() school.ReportCard {
	return school.ReportCard{
		ID:             r.ID,
		Topic:          r.Topic,
		Grade:          r.Grade,
		TeacherRemarks: r.TeacherRemarks,
		CourseID:       r.CourseID,
		TeacherID:      r.TeacherID,
		StudentID:      r.StudentID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

const reportCardCols = `id, topic, grade, teacher_remarks, course_id, teacher_id, student_id, created_at, updated_at`

func (repo *Repository) CreateReportCard(ctx context.Context, rc school.ReportCard) (school.ReportCard, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO report_card (topic, grade, teacher_remarks, course_id, teacher_id, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		rc.Topic, rc.Grade, rc.TeacherRemarks, rc.CourseID, rc.TeacherID, rc.StudentID, rc.CreatedAt, rc.UpdatedAt,
	).Scan(&rc.ID)
	if err != nil {
		return school.ReportCard{}, errors.Wrap(err, "inserting report card")
	}
	return rc, nil
}

func (repo *Repository) queryReportCards(ctx context.Context, tail string, args ...interface{}) ([]school.ReportCard, error) {
	var rows []reportCardRow
	q := `SELECT ` + reportCardCols + ` FROM report_card ` + tail + ` ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying report cards")
	}
	rcs := make([]school.ReportCard, len(rows))
	for i, row := range rows {
		rcs[i] = row.reportCard()
	}
	return rcs, nil
}

func (repo *Repository) QueryAllReportCards(ctx context.Context) ([]school.ReportCard, error) {
	return repo.queryReportCards(ctx, "")
}

func (repo *Repository) GetReportCardByID(ctx context.Context, id int) (school.ReportCard, error) {
	var row reportCardRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+reportCardCols+` FROM report_card WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.ReportCard{}, school.ErrNotFound
		}
		return school.ReportCard{}, errors.Wrap(err, "getting report card")
	}
	return row.reportCard(), nil
}

func (repo *Repository) UpdateReportCard(ctx context.Context, rc school.ReportCard) (school.ReportCard, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE report_card
		SET topic = $2, grade = $3, teacher_remarks = $4, updated_at = $5
		WHERE id = $1`,
		rc.ID, rc.Topic, rc.Grade, rc.TeacherRemarks, rc.UpdatedAt,
	)
	if err != nil {
		return school.ReportCard{}, errors.Wrap(err, "updating report card")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ReportCard{}, school.ErrNotFound
	}
	return rc, nil
}

func (repo *Repository) DeleteReportCard(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "report_card", id)
}
