package school_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func setup(t *testing.T) (*school.Service, user.Repository) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo := inmemdb.NewUserRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(&core.Config{AppName: "Darasa", DefaultFromEmail: "noreply@localhost"})
	return school.NewService(inmemdb.NewRepository(db), usrRepo, mailSvc, "Darasa"), usrRepo
}

func createTeacher(t *testing.T, svc *school.Service, email string) school.Teacher {
	teacher, err := svc.CreateTeacher(context.Background(), school.NewTeacher{
		Firstname:     "Grace",
		Lastname:      "Otieno",
		PersonalEmail: "personal." + email,
		Email:         email,
		Password:      "s3cret",
		Expertise:     "software",
		Department:    "IT",
	})
	require.NoError(t, err)
	return teacher
}

func createStudent(t *testing.T, svc *school.Service, email string, parentID *int) school.Student {
	student, err := svc.CreateStudent(context.Background(), school.NewStudent{
		Firstname:     "Brian",
		Lastname:      "Kariuki",
		PersonalEmail: "personal." + email,
		Email:         email,
		Password:      "s3cret",
		ParentID:      parentID,
	})
	require.NoError(t, err)
	return student
}

func createParent(t *testing.T, svc *school.Service, email string) school.Parent {
	parent, err := svc.CreateParent(context.Background(), school.NewParent{
		Firstname: "Miriam",
		Lastname:  "Kariuki",
		Email:     email,
		Password:  "s3cret",
	})
	require.NoError(t, err)
	return parent
}

func createCourse(t *testing.T, svc *school.Service, name string) school.Course {
	course, err := svc.CreateCourse(context.Background(), school.NewCourse{
		Name:        name,
		Description: "desc",
		DaysOfWeek:  "1,3",
		StartRecur:  "2026-01-05",
		EndRecur:    "2026-04-24",
		StartTime:   "09:00",
		EndTime:     "10:30",
	})
	require.NoError(t, err)
	return course
}

func TestService_CreateTeacher(t *testing.T) {
	svc, usrRepo := setup(t)
	ctx := context.Background()

	teacher := createTeacher(t, svc, "otieno.grace@lecturer.test.cd")
	assert.NotZero(t, teacher.ID)

	// exactly one identity row exists, linked to the new profile
	usr, err := usrRepo.GetUserByEmail(ctx, teacher.Email)
	require.NoError(t, err)
	assert.Equal(t, user.KindTeacher, usr.Kind())
	assert.Equal(t, teacher.ID, usr.ProfileID())
	assert.NoError(t, usr.CheckPassword("s3cret"))

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateTeacher(ctx, school.NewTeacher{
			Firstname:     "Other",
			Lastname:      "Teacher",
			PersonalEmail: "other@test.cd",
			Email:         teacher.Email,
			Password:      "s3cret",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "email", vErr.Fields[0].Field)

		teachers, err := svc.QueryAllTeachers(ctx)
		require.NoError(t, err)
		assert.Len(t, teachers, 1) // no row written
	})

	t.Run("duplicate personal email", func(t *testing.T) {
		_, err := svc.CreateTeacher(ctx, school.NewTeacher{
			Firstname:     "Other",
			Lastname:      "Teacher",
			PersonalEmail: teacher.PersonalEmail,
			Email:         "other@lecturer.test.cd",
			Password:      "s3cret",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "personal_email", vErr.Fields[0].Field)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.CreateTeacher(ctx, school.NewTeacher{Email: "nope"})
		assert.Error(t, err)
	})
}

func TestService_UpdateTeacher(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	teacher := createTeacher(t, svc, "otieno.grace@lecturer.test.cd")

	newDept := "Networking"
	updated, err := svc.UpdateTeacher(ctx, teacher.ID, school.UpdateTeacher{Department: &newDept})
	require.NoError(t, err)

	// only the patched field changes
	assert.Equal(t, newDept, updated.Department)
	assert.Equal(t, teacher.Firstname, updated.Firstname)
	assert.Equal(t, teacher.PersonalEmail, updated.PersonalEmail)
	assert.Equal(t, teacher.Email, updated.Email)

	_, err = svc.UpdateTeacher(ctx, 999, school.UpdateTeacher{Department: &newDept})
	assert.Equal(t, school.ErrNotFound, err)
}

func TestService_DeleteParent_cascades(t *testing.T) {
	svc, usrRepo := setup(t)
	ctx := context.Background()

	parent := createParent(t, svc, "kariuki.miriam@parent.test.cd")
	student := createStudent(t, svc, "kariuki.brian@student.test.cd", &parent.ID)
	course := createCourse(t, svc, "Introduction to Python")
	require.NoError(t, svc.EnrollStudent(ctx, course.ID, student.ID))

	_, err := svc.CreateContent(ctx, school.NewContent{
		Name:        "notes",
		Description: "lecture notes",
		Type:        "pdf",
		StudentID:   &student.ID,
	})
	require.NoError(t, err)
	grade := 80
	_, err = svc.CreateReportCard(ctx, school.NewReportCard{
		Topic:     "Python",
		Grade:     &grade,
		CourseID:  &course.ID,
		StudentID: &student.ID,
	})
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, school.NewEvent{
		Start:     "2026-01-05",
		CourseID:  &course.ID,
		StudentID: &student.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteParent(ctx, parent.ID))

	// the child student and everything it owns are gone, identities included
	_, err = svc.GetStudent(ctx, student.ID)
	assert.Equal(t, school.ErrNotFound, err)
	_, err = usrRepo.GetUserByEmail(ctx, student.Email)
	assert.Equal(t, user.ErrNotFound, err)
	_, err = usrRepo.GetUserByEmail(ctx, parent.Email)
	assert.Equal(t, user.ErrNotFound, err)

	contents, err := svc.QueryAllContents(ctx)
	require.NoError(t, err)
	assert.Empty(t, contents)
	reportCards, err := svc.QueryAllReportCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, reportCards)
	events, err := svc.QueryAllEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	// the course survives, minus the enrollment
	refreshed, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Students)
}

func TestService_Courses(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	course := createCourse(t, svc, "Computer Networks")

	t.Run("times round-trip", func(t *testing.T) {
		fetched, err := svc.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, "09:00", fetched.StartTime.String())
		assert.Equal(t, "10:30", fetched.EndTime.String())
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, school.NewCourse{
			Name:        course.Name,
			Description: "desc",
			StartRecur:  "2026-01-05",
			EndRecur:    "2026-04-24",
			StartTime:   "09:00",
			EndTime:     "10:30",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "course_name", vErr.Fields[0].Field)
	})

	t.Run("bad date format", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, school.NewCourse{
			Name:        "Another",
			Description: "desc",
			StartRecur:  "05/01/2026",
			EndRecur:    "2026-04-24",
			StartTime:   "09:00",
			EndTime:     "10:30",
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "startRecur", vErr.Fields[0].Field)
	})

	t.Run("roster", func(t *testing.T) {
		teacher := createTeacher(t, svc, "otieno.grace@lecturer.test.cd")
		student := createStudent(t, svc, "kariuki.brian@student.test.cd", nil)
		require.NoError(t, svc.AssignTeacher(ctx, course.ID, teacher.ID))
		require.NoError(t, svc.EnrollStudent(ctx, course.ID, student.ID))

		fetched, err := svc.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Teachers, 1)
		assert.Equal(t, teacher.ID, fetched.Teachers[0].ID)
		require.Len(t, fetched.Students, 1)
		assert.Equal(t, student.ID, fetched.Students[0].ID)

		require.NoError(t, svc.UnenrollStudent(ctx, course.ID, student.ID))
		fetched, err = svc.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Empty(t, fetched.Students)

		assert.Equal(t, school.ErrNotFound, svc.UnenrollStudent(ctx, course.ID, student.ID))
	})
}

func TestService_Events_title(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	course := createCourse(t, svc, "Introduction to Python")

	t.Run("explicit title wins", func(t *testing.T) {
		ev, err := svc.CreateEvent(ctx, school.NewEvent{Start: "2026-01-05", Title: "Exam week", CourseID: &course.ID})
		require.NoError(t, err)
		assert.Equal(t, "Exam week", ev.Title)
	})

	t.Run("title derived from course", func(t *testing.T) {
		ev, err := svc.CreateEvent(ctx, school.NewEvent{Start: "2026-01-05", CourseID: &course.ID})
		require.NoError(t, err)
		assert.Equal(t, course.Name, ev.Title)
	})

	t.Run("unknown course fallback", func(t *testing.T) {
		missing := 999
		ev, err := svc.CreateEvent(ctx, school.NewEvent{Start: "2026-01-05", CourseID: &missing})
		require.NoError(t, err)
		assert.Equal(t, "Unknown Course", ev.Title)
	})

	t.Run("relinking a course re-derives the title", func(t *testing.T) {
		ev, err := svc.CreateEvent(ctx, school.NewEvent{Start: "2026-01-05", Title: "Old"})
		require.NoError(t, err)

		ev, err = svc.UpdateEvent(ctx, ev.ID, school.UpdateEvent{CourseID: &course.ID})
		require.NoError(t, err)
		assert.Equal(t, course.Name, ev.Title)
	})
}

func TestService_CreateComment(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	parent := createParent(t, svc, "kariuki.miriam@parent.test.cd")

	c, err := svc.CreateComment(ctx, school.NewComment{
		Subject:  "Progress",
		Body:     "How is Brian doing?",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, school.OwnerParent, c.Author.Kind)
	assert.Equal(t, parent.ID, c.Author.ID)

	t.Run("multiple authors rejected", func(t *testing.T) {
		other := 1
		_, err := svc.CreateComment(ctx, school.NewComment{
			Subject:   "Progress",
			Body:      "hello",
			ParentID:  &parent.ID,
			TeacherID: &other,
		})
		var vErr *core.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "owner", vErr.Fields[0].Field)
	})
}

func TestService_Account(t *testing.T) {
	svc, usrRepo := setup(t)
	ctx := context.Background()

	teacher := createTeacher(t, svc, "otieno.grace@lecturer.test.cd")
	course := createCourse(t, svc, "Introduction to Python")
	require.NoError(t, svc.AssignTeacher(ctx, course.ID, teacher.ID))
	_, err := svc.CreateContent(ctx, school.NewContent{
		Name:        "syllabus",
		Description: "course syllabus",
		Type:        "pdf",
		CourseID:    &course.ID,
		TeacherID:   &teacher.ID,
	})
	require.NoError(t, err)

	usr, err := usrRepo.GetUserByEmail(ctx, teacher.Email)
	require.NoError(t, err)

	view, err := svc.Account(ctx, usr)
	require.NoError(t, err)
	account, ok := view.(school.TeacherAccount)
	require.True(t, ok)
	assert.Equal(t, teacher.ID, account.ID)
	assert.Equal(t, "Grace Otieno", account.Name)
	require.Len(t, account.Courses, 1)
	assert.Equal(t, course.Name, account.Courses[0].Name)
	require.Len(t, account.Docs, 1)
	assert.Equal(t, "syllabus", account.Docs[0].Name)

	t.Run("parent account", func(t *testing.T) {
		parent := createParent(t, svc, "kariuki.miriam@parent.test.cd")
		student := createStudent(t, svc, "kariuki.brian@student.test.cd", &parent.ID)

		usr, err := usrRepo.GetUserByEmail(ctx, parent.Email)
		require.NoError(t, err)
		view, err := svc.Account(ctx, usr)
		require.NoError(t, err)
		account, ok := view.(school.ParentAccount)
		require.True(t, ok)
		require.Len(t, account.Children, 1)
		assert.Equal(t, student.ID, account.Children[0].ID)
	})
}
