package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
)

type eventRow struct {
	ID         int            `db:"id"`
	GroupID    null.Int       `db:"group_id"`
	AllDay     bool           `db:"all_day"`
	Start      core.Date      `db:"start_date"`
	End        core.Date      `db:"end_date"`
	DaysOfWeek string         `db:"days_of_week"`
	StartTime  core.TimeOfDay `db:"start_time"`
	EndTime    core.TimeOfDay `db:"end_time"`
	StartRecur core.Date      `db:"start_recur"`
	EndRecur   core.Date      `db:"end_recur"`
	Title      string         `db:"title"`
	CourseID   null.Int       `db:"course_id"`
	StudentID  null.Int       `db:"student_id"`
	TeacherID  null.Int       `db:"teacher_id"`
}

func (r eventRow) event() school.Event {
	return school.Event{
		ID:         r.ID,
		GroupID:    r.GroupID,
		AllDay:     r.AllDay,
		Start:      r.Start,
		End:        r.End,
		DaysOfWeek: r.DaysOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		StartRecur: r.StartRecur,
		EndRecur:   r.EndRecur,
		Title:      r.Title,
		CourseID:   r.CourseID,
		StudentID:  r.StudentID,
		TeacherID:  r.TeacherID,
	}
}

const eventCols = `id, group_id, all_day, start_date, end_date, days_of_week, start_time, end_time, start_recur, end_recur, title, course_id, student_id, teacher_id`

func (repo *Repository) CreateEvent(ctx context.Context, ev school.Event) (school.Event, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO event (group_id, all_day, start_date, end_date, days_of_week, start_time, end_time, start_recur, end_recur, title, course_id, student_id, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		ev.GroupID, ev.AllDay, ev.Start, ev.End, ev.DaysOfWeek, ev.StartTime, ev.EndTime,
		ev.StartRecur, ev.EndRecur, ev.Title, ev.CourseID, ev.StudentID, ev.TeacherID,
	).Scan(&ev.ID)
	if err != nil {
		return school.Event{}, errors.Wrap(err, "inserting event")
	}
	return ev, nil
}

func (repo *Repository) queryEvents(ctx context.Context, tail string, args ...interface{}) ([]school.Event, error) {
	var rows []eventRow
	q := `SELECT ` + eventCols + ` FROM event ` + tail + ` ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]school.Event, len(rows))
	for i, row := range rows {
		events[i] = row.event()
	}
	return events, nil
}

func (repo *Repository) QueryAllEvents(ctx context.Context) ([]school.Event, error) {
	return repo.queryEvents(ctx, "")
}

func (repo *Repository) GetEventByID(ctx context.Context, id int) (school.Event, error) {
	var row eventRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+eventCols+` FROM event WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Event{}, school.ErrNotFound
		}
		return school.Event{}, errors.Wrap(err, "getting event")
	}
	return row.event(), nil
}

func (repo *Repository) UpdateEvent(ctx context.Context, ev school.Event) (school.Event, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE event
		SET group_id = $2, all_day = $3, start_date = $4, end_date = $5, days_of_week = $6,
			start_time = $7, end_time = $8, start_recur = $9, end_recur = $10, title = $11, course_id = $12
		WHERE id = $1`,
		ev.ID, ev.GroupID, ev.AllDay, ev.Start, ev.End, ev.DaysOfWeek,
		ev.StartTime, ev.EndTime, ev.StartRecur, ev.EndRecur, ev.Title, ev.CourseID,
	)
	if err != nil {
		return school.Event{}, errors.Wrap(err, "updating event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Event{}, school.ErrNotFound
	}
	return ev, nil
}

func (repo *Repository) DeleteEvent(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "event", id)
}
