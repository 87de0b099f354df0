package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

type teacherRow struct {
	ID            int         `db:"id"`
	Firstname     string      `db:"firstname"`
	Lastname      string      `db:"lastname"`
	PersonalEmail string      `db:"personal_email"`
	Email         string      `db:"email"`
	PasswordHash  []byte      `db:"password_hash"`
	Expertise     string      `db:"expertise"`
	Department    string      `db:"department"`
	ImageURL      null.String `db:"image_url"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (r teacherRow) teacher() school.Teacher {
	return school.Teacher{
		ID:            r.ID,
		Firstname:     r.Firstname,
		Lastname:      r.Lastname,
		PersonalEmail: r.PersonalEmail,
		Email:         r.Email,
		PasswordHash:  r.PasswordHash,
		Expertise:     r.Expertise,
		Department:    r.Department,
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

const teacherCols = `id, firstname, lastname, personal_email, email, password_hash, expertise, department, image_url, created_at, updated_at`

func (repo *Repository) CheckTeacherUniqueness(ctx context.Context, personalEmail, email string, excluded ...school.Teacher) error {
	exclIDs := make([]int, 0, len(excluded))
	for _, t := range excluded {
		exclIDs = append(exclIDs, t.ID)
	}
	exists, err := repo.existsExcluding(ctx, "teacher", "personal_email", personalEmail, exclIDs)
	if err != nil {
		return err
	}
	if exists {
		return school.ErrPersonalEmailExists
	}
	if exists, err = repo.existsExcluding(ctx, "teacher", "email", email, exclIDs); err != nil {
		return err
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *Repository) CreateTeacher(ctx context.Context, t school.Teacher, identity user.User) (school.Teacher, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO teacher (firstname, lastname, personal_email, email, password_hash, expertise, department, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			t.Firstname, t.Lastname, t.PersonalEmail, t.Email, t.PasswordHash,
			t.Expertise, t.Department, t.ImageURL, t.CreatedAt, t.UpdatedAt,
		).Scan(&t.ID)
		if err != nil {
			return errors.Wrap(err, "inserting teacher")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO app_user (email, password_hash, teacher_id) VALUES ($1, $2, $3)`,
			identity.Email, identity.PasswordHash, t.ID,
		)
		return errors.Wrap(err, "inserting identity")
	})
	if err != nil {
		return school.Teacher{}, err
	}
	return t, nil
}

func (repo *Repository) QueryAllTeachers(ctx context.Context) ([]school.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+teacherCols+` FROM teacher ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	teachers := make([]school.Teacher, len(rows))
	for i, row := range rows {
		teachers[i] = row.teacher()
	}
	return teachers, nil
}

// GetTeacherByID returns the teacher with its authored content and taught
// courses (each course carrying its roster and content) populated.
func (repo *Repository) GetTeacherByID(ctx context.Context, id int) (school.Teacher, error) {
	var row teacherRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+teacherCols+` FROM teacher WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Teacher{}, school.ErrNotFound
		}
		return school.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	t := row.teacher()

	if t.Docs, err = repo.queryContents(ctx, `WHERE teacher_id = $1`, id); err != nil {
		return school.Teacher{}, err
	}
	if t.Courses, err = repo.queryCoursesLoaded(ctx,
		`JOIN course_teacher ct ON ct.course_id = course.id WHERE ct.teacher_id = $1`, id); err != nil {
		return school.Teacher{}, err
	}
	return t, nil
}

func (repo *Repository) UpdateTeacher(ctx context.Context, t school.Teacher) (school.Teacher, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE teacher
		SET firstname = $2, lastname = $3, personal_email = $4, expertise = $5, department = $6, image_url = $7, updated_at = $8
		WHERE id = $1`,
		t.ID, t.Firstname, t.Lastname, t.PersonalEmail, t.Expertise, t.Department, t.ImageURL, t.UpdatedAt,
	)
	if err != nil {
		return school.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Teacher{}, school.ErrNotFound
	}
	return t, nil
}

func (repo *Repository) DeleteTeacher(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "teacher", id)
}

type studentRow struct {
	ID            int         `db:"id"`
	Firstname     string      `db:"firstname"`
	Lastname      string      `db:"lastname"`
	PersonalEmail string      `db:"personal_email"`
	Email         string      `db:"email"`
	PasswordHash  []byte      `db:"password_hash"`
	ImageURL      null.String `db:"image_url"`
	ParentID      null.Int    `db:"parent_id"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (r studentRow) student() school.Student {
	return school.Student{
		ID:            r.ID,
		Firstname:     r.Firstname,
		Lastname:      r.Lastname,
		PersonalEmail: r.PersonalEmail,
		Email:         r.Email,
		PasswordHash:  r.PasswordHash,
		ImageURL:      r.ImageURL,
		ParentID:      r.ParentID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

const studentCols = `id, firstname, lastname, personal_email, email, password_hash, image_url, parent_id, created_at, updated_at`

func (repo *Repository) CheckStudentUniqueness(ctx context.Context, personalEmail, email string, excluded ...school.Student) error {
	exclIDs := make([]int, 0, len(excluded))
	for _, s := range excluded {
		exclIDs = append(exclIDs, s.ID)
	}
	exists, err := repo.existsExcluding(ctx, "student", "personal_email", personalEmail, exclIDs)
	if err != nil {
		return err
	}
	if exists {
		return school.ErrPersonalEmailExists
	}
	if exists, err = repo.existsExcluding(ctx, "student", "email", email, exclIDs); err != nil {
		return err
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *Repository) CreateStudent(ctx context.Context, s school.Student, identity user.User) (school.Student, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO student (firstname, lastname, personal_email, email, password_hash, image_url, parent_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			s.Firstname, s.Lastname, s.PersonalEmail, s.Email, s.PasswordHash,
			s.ImageURL, s.ParentID, s.CreatedAt, s.UpdatedAt,
		).Scan(&s.ID)
		if err != nil {
			return errors.Wrap(err, "inserting student")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO app_user (email, password_hash, student_id) VALUES ($1, $2, $3)`,
			identity.Email, identity.PasswordHash, s.ID,
		)
		return errors.Wrap(err, "inserting identity")
	})
	if err != nil {
		return school.Student{}, err
	}
	return s, nil
}

func (repo *Repository) QueryAllStudents(ctx context.Context) ([]school.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+studentCols+` FROM student ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]school.Student, len(rows))
	for i, row := range rows {
		students[i] = row.student()
	}
	return students, nil
}

// GetStudentByID returns the student with every owned relation populated:
// parent, courses (loaded), content, report cards, submissions, events and
// saved content.
func (repo *Repository) GetStudentByID(ctx context.Context, id int) (school.Student, error) {
	var row studentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+studentCols+` FROM student WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Student{}, school.ErrNotFound
		}
		return school.Student{}, errors.Wrap(err, "getting student")
	}
	s := row.student()

	if s.ParentID.Valid {
		var prow parentRow
		err = repo.db.GetContext(ctx, &prow, `SELECT `+parentCols+` FROM parent WHERE id = $1`, s.ParentID.Int)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return school.Student{}, errors.Wrap(err, "getting parent")
		}
		if err == nil {
			p := prow.parent()
			s.Parent = &p
		}
	}
	if s.Courses, err = repo.queryCoursesLoaded(ctx,
		`JOIN course_student cs ON cs.course_id = course.id WHERE cs.student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	if s.Docs, err = repo.queryContents(ctx, `WHERE student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	if s.ReportCards, err = repo.queryReportCards(ctx, `WHERE student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	if s.Submissions, err = repo.querySubmissions(ctx, `WHERE student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	if s.Events, err = repo.queryEvents(ctx, `WHERE student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	if s.SavedItems, err = repo.querySavedContents(ctx, `WHERE student_id = $1`, id); err != nil {
		return school.Student{}, err
	}
	return s, nil
}

func (repo *Repository) UpdateStudent(ctx context.Context, s school.Student) (school.Student, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE student
		SET firstname = $2, lastname = $3, personal_email = $4, image_url = $5, parent_id = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Firstname, s.Lastname, s.PersonalEmail, s.ImageURL, s.ParentID, s.UpdatedAt,
	)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Student{}, school.ErrNotFound
	}
	return s, nil
}

func (repo *Repository) DeleteStudent(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "student", id)
}

type parentRow struct {
	ID           int         `db:"id"`
	Firstname    string      `db:"firstname"`
	Lastname     string      `db:"lastname"`
	Email        string      `db:"email"`
	PasswordHash []byte      `db:"password_hash"`
	ImageURL     null.String `db:"image_url"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

func (r parentRow) parent() school.Parent {
	return school.Parent{
		ID:           r.ID,
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		ImageURL:     r.ImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const parentCols = `id, firstname, lastname, email, password_hash, image_url, created_at, updated_at`

func (repo *Repository) CheckParentUniqueness(ctx context.Context, email string, excluded ...school.Parent) error {
	exclIDs := make([]int, 0, len(excluded))
	for _, p := range excluded {
		exclIDs = append(exclIDs, p.ID)
	}
	exists, err := repo.existsExcluding(ctx, "parent", "email", email, exclIDs)
	if err != nil {
		return err
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *Repository) CreateParent(ctx context.Context, p school.Parent, identity user.User) (school.Parent, error) {
	err := repo.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO parent (firstname, lastname, email, password_hash, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			p.Firstname, p.Lastname, p.Email, p.PasswordHash, p.ImageURL, p.CreatedAt, p.UpdatedAt,
		).Scan(&p.ID)
		if err != nil {
			return errors.Wrap(err, "inserting parent")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO app_user (email, password_hash, parent_id) VALUES ($1, $2, $3)`,
			identity.Email, identity.PasswordHash, p.ID,
		)
		return errors.Wrap(err, "inserting identity")
	})
	if err != nil {
		return school.Parent{}, err
	}
	return p, nil
}

func (repo *Repository) QueryAllParents(ctx context.Context) ([]school.Parent, error) {
	var rows []parentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+parentCols+` FROM parent ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying parents")
	}
	parents := make([]school.Parent, len(rows))
	for i, row := range rows {
		parents[i] = row.parent()
	}
	return parents, nil
}

// GetParentByID returns the parent with its children populated.
func (repo *Repository) GetParentByID(ctx context.Context, id int) (school.Parent, error) {
	var row parentRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+parentCols+` FROM parent WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.Parent{}, school.ErrNotFound
		}
		return school.Parent{}, errors.Wrap(err, "getting parent")
	}
	p := row.parent()

	var srows []studentRow
	err = repo.db.SelectContext(ctx, &srows, `SELECT `+studentCols+` FROM student WHERE parent_id = $1 ORDER BY id`, id)
	if err != nil {
		return school.Parent{}, errors.Wrap(err, "querying children")
	}
	p.Children = make([]school.Student, len(srows))
	for i, srow := range srows {
		p.Children[i] = srow.student()
	}
	return p, nil
}

func (repo *Repository) UpdateParent(ctx context.Context, p school.Parent) (school.Parent, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE parent
		SET firstname = $2, lastname = $3, image_url = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Firstname, p.Lastname, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		return school.Parent{}, errors.Wrap(err, "updating parent")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return school.Parent{}, school.ErrNotFound
	}
	return p, nil
}

func (repo *Repository) DeleteParent(ctx context.Context, id int) error {
	return repo.deleteByID(ctx, "parent", id)
}
