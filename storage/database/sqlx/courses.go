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

type courseRow struct {
	ID          int            `db:"id"`
	Name        string         `db:"course_name"`
	Description string         `db:"description"`
	ImageURL    null.String    `db:"image_url"`
	DaysOfWeek  string         `db:"days_of_week"`
	StartRecur  core.Date      `db:"start_recur"`
	EndRecur    core.Date      `db:"end_recur"`
	StartTime   core.TimeOfDay `db:"start_time"`
	EndTime     core.TimeOfDay `db:"end_time"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r courseRow) course() school.Course {
	return school.Course{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		DaysOfWeek:  r.DaysOfWeek,
		StartRecur:  r.StartRecur,
		EndRecur:    r.EndRecur,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const courseCols = `course.id, course.course_name, course.description, course.image_url, course.days_of_week,
	course.start_recur, course.end_recur, course.start_time, course.end_time, course.created_at, course.updated_at`

func (repo *Repository) CheckCourseNameUniqueness(ctx context.Context, name string, excluded ...school.Course) error {
	exclIDs := make([]int, 0, len(excluded))
	for _, c := range excluded {
		exclIDs = append(exclIDs, c.ID)
	}
	exists, err := repo.existsExcluding(ctx, "course", "course_name", name, exclIDs)
	if err != nil {
		return err
	}
	if exists {
		return school.ErrCourseNameExists
	}
	return nil
}

func (repo *Repository) CreateCourse(ctx context.Context, c school.Course) (school.Course, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO course (course_name, description, image_url, days_of_week, start_recur, end_recur, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.Name, c.Description, c.ImageURL, c.DaysOfWeek,
		c.StartRecur, c.EndRecur, c.StartTime, c.EndTime, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

// queryCoursesLoaded fetches courses matching the given tail clause and
// populates each course's teacher roster and content.
func (repo *Repository) queryCoursesLoaded(ctx context.Context, tail string, args ...interface{}) ([]school.Course, error) {
	var rows []courseRow
	q := `SELECT ` + courseCols + ` FROM course ` + tail + ` ORDER BY course.id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]school.Course, len(rows))
	for i, row := range rows {
		c := row.course()
		if err := repo.loadCourseRelations(ctx, &c); err != nil {
			return nil, err
		}
		courses[i] = c
	}
	return courses, nil
}

func (repo *Repository) loadCourseRelations(ctx context.Context, c *school.Course) error {
	var trows []teacherRow
	err := repo.db.SelectContext(ctx, &trows, `
		SELECT `+teacherCols+` FROM teacher
		JOIN course_teacher ct ON ct.teacher_id = teacher.id
		WHERE ct.course_id = $1 ORDER BY teacher.id`, c.ID)
	if err != nil {
		return errors.Wrap(err, "querying course teachers")
	}
	c.Teachers = make([]school.Teacher, len(trows))
	for i, trow := range trows {
		c.Teachers[i] = trow.teacher()
	}

	var srows []studentRow
	err = repo.db.SelectContext(ctx, &srows, `
		SELECT `+studentCols+` FROM student
		JOIN course_student cs ON cs.student_id = student.id
		WHERE cs.course_id = $1 ORDER BY student.id`, c.ID)
	if err != nil {
		return errors.Wrap(err, "querying course students")
	}
	c.Students = make([]school.Student, len(srows))
	for i, srow := range srows {
		c.Students[i] = srow.student()
	}

	if c.Content, err = repo.queryContents(ctx, `WHERE course_id = $1`, c.ID); err != nil {
		return err
	}
	return nil
}

func (repo *Repository) QueryAllCourses(ctx context.Context) ([]school.Course, error) {
	return repo.queryCoursesLoaded(ctx, "")
}

func (repo *Repository) GetCourseByID(ctx context.Context, id int) (school.Course, error) {
	var row courseRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+courseCols+` FROM course WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Course{}, school.ErrNotFound
		}
		return school.Course{}, errors.Wrap(err, "getting course")
	}
	c := row.course()
	if err = repo.loadCourseRelations(ctx, &c); err != nil {
		return school.Course{}, err
	}
	return c, nil
}

func (repo *Repository) UpdateCourse(ctx context.Context, c school.Course) (school.Course, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE course
		SET course_name = $2, description = $3, image_url = $4, days_of_week = $5,
			start_recur = $6, end_recur = $7, start_time = $8, end_time = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.ImageURL, c.DaysOfWeek,
		c.StartRecur, c.EndRecur, c.StartTime, c.EndTime, c.UpdatedAt,
	)
	if err != nil {
		return school.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Course{}, school.ErrNotFound
	}
	return c, nil
}

func (repo *Repository) DeleteCourse(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "course", id)
}

func (repo *Repository) AddCourseTeacher(ctx context.Context, courseID, teacherID int) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO course_teacher (course_id, teacher_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, teacherID)
	return errors.Wrap(err, "enrolling teacher")
}

func (repo *Repository) RemoveCourseTeacher(ctx context.Context, courseID, teacherID int) error {
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM course_teacher WHERE course_id = $1 AND teacher_id = $2`, courseID, teacherID)
	if err != nil {
		return errors.Wrap(err, "unenrolling teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrNotFound
	}
	return nil
}

func (repo *Repository) AddCourseStudent(ctx context.Context, courseID, studentID int) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO course_student (course_id, student_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, studentID)
	return errors.Wrap(err, "enrolling student")
}

func (repo *Repository) RemoveCourseStudent(ctx context.Context, courseID, studentID int) error {
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM course_student WHERE course_id = $1 AND student_id = $2`, courseID, studentID)
	if err != nil {
		return errors.Wrap(err, "unenrolling student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.ErrNotFound
	}
	return nil
}

type contentRow struct {
	ID          int         `db:"id"`
	Name        string      `db:"content_name"`
	Description string      `db:"description"`
	File        null.String `db:"content_file"`
	Type        string      `db:"content_type"`
	CourseID    null.Int    `db:"course_id"`
	TeacherID   null.Int    `db:"teacher_id"`
	StudentID   null.Int    `db:"student_id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r contentRow) content() school.Content {
	return school.Content{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		File:        r.File,
		Type:        r.Type,
		CourseID:    r.CourseID,
		Owner:       ownerFromFKs(r.TeacherID, r.StudentID, null.Int{}),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const contentCols = `id, content_name, description, content_file, content_type, course_id, teacher_id, student_id, created_at, updated_at`

func (repo *Repository) CreateContent(ctx context.Context, c school.Content) (school.Content, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO content (content_name, description, content_file, content_type, course_id, teacher_id, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		c.Name, c.Description, c.File, c.Type, c.CourseID,
		c.Owner.TeacherID(), c.Owner.StudentID(), c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return school.Content{}, errors.Wrap(err, "inserting content")
	}
	return c, nil
}

func (repo *Repository) queryContents(ctx context.Context, tail string, args ...interface{}) ([]school.Content, error) {
	var rows []contentRow
	q := `SELECT ` + contentCols + ` FROM content ` + tail + ` ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying contents")
	}
	contents := make([]school.Content, len(rows))
	for i, row := range rows {
		contents[i] = row.content()
	}
	return contents, nil
}

func (repo *Repository) QueryAllContents(ctx context.Context) ([]school.Content, error) {
	return repo.queryContents(ctx, "")
}

func (repo *Repository) GetContentByID(ctx context.Context, id int) (school.Content, error) {
	var row contentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+contentCols+` FROM content WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Content{}, school.ErrNotFound
		}
		return school.Content{}, errors.Wrap(err, "getting content")
	}
	return row.content(), nil
}

func (repo *Repository) UpdateContent(ctx context.Context, c school.Content) (school.Content, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE content
		SET content_name = $2, description = $3, content_file = $4, content_type = $5, course_id = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.File, c.Type, c.CourseID, c.UpdatedAt,
	)
	if err != nil {
		return school.Content{}, errors.Wrap(err, "updating content")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Content{}, school.ErrNotFound
	}
	return c, nil
}

func (repo *Repository) DeleteContent(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "content", id)
}

type savedContentRow struct {
	ID        int       `db:"id"`
	Name      string    `db:"content_name"`
	Type      string    `db:"content_type"`
	CourseID  null.Int  `db:"course_id"`
	TeacherID null.Int  `db:"teacher_id"`
	StudentID null.Int  `db:"student_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r savedContentRow) savedContent() school.SavedContent {
	return school.SavedContent{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		CourseID:  r.CourseID,
		Owner:     ownerFromFKs(r.TeacherID, r.StudentID, null.Int{}),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const savedContentCols = `id, content_name, content_type, course_id, teacher_id, student_id, created_at, updated_at`

func (repo *Repository) CreateSavedContent(ctx context.Context, sc school.SavedContent) (school.SavedContent, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO saved_content (content_name, content_type, course_id, teacher_id, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		sc.Name, sc.Type, sc.CourseID, sc.Owner.TeacherID(), sc.Owner.StudentID(), sc.CreatedAt, sc.UpdatedAt,
	).Scan(&sc.ID)
	if err != nil {
		return school.SavedContent{}, errors.Wrap(err, "inserting saved content")
	}
	return sc, nil
}

func (repo *Repository) querySavedContents(ctx context.Context, tail string, args ...interface{}) ([]school.SavedContent, error) {
	var rows []savedContentRow
	q := `SELECT ` + savedContentCols + ` FROM saved_content ` + tail + ` ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying saved contents")
	}
	scs := make([]school.SavedContent, len(rows))
	for i, row := range rows {
		scs[i] = row.savedContent()
	}
	return scs, nil
}

func (repo *Repository) QueryAllSavedContents(ctx context.Context) ([]school.SavedContent, error) {
	return repo.querySavedContents(ctx, "")
}

func (repo *Repository) GetSavedContentByID(ctx context.Context, id int) (school.SavedContent, error) {
	var row savedContentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+savedContentCols+` FROM saved_content WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.SavedContent{}, school.ErrNotFound
		}
		return school.SavedContent{}, errors.Wrap(err, "getting saved content")
	}
	return row.savedContent(), nil
}

func (repo *Repository) DeleteSavedContent(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "saved_content", id)
}
