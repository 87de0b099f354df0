package school

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var (
	// errors
	ErrNotFound            = errors.New("record not found")
	ErrPersonalEmailExists = errors.New("a profile with this personal email already exists")
	ErrCourseNameExists    = errors.New("a course with this name already exists")
)

const unknownCourseTitle = "Unknown Course"

type (
	// Repository is the persistence gateway: every write runs as a single
	// unit of work and cascade deletes complete in one transaction.
	Repository interface {
		ProfileRepository
		CourseRepository
		RecordRepository
		EventRepository
		CommentRepository
	}

	// ProfileRepository persists Teacher/Student/Parent profiles; the Create*
	// methods insert the profile and its paired identity atomically, and the
	// Delete* methods cascade to every owned row and the identity.
	ProfileRepository interface {
		CheckTeacherUniqueness(ctx context.Context, personalEmail, email string, excluded ...Teacher) error
		CreateTeacher(ctx context.Context, t Teacher, identity user.User) (Teacher, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id int) (Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id int) error

		CheckStudentUniqueness(ctx context.Context, personalEmail, email string, excluded ...Student) error
		CreateStudent(ctx context.Context, s Student, identity user.User) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id int) error

		CheckParentUniqueness(ctx context.Context, email string, excluded ...Parent) error
		CreateParent(ctx context.Context, p Parent, identity user.User) (Parent, error)
		QueryAllParents(ctx context.Context) ([]Parent, error)
		GetParentByID(ctx context.Context, id int) (Parent, error)
		UpdateParent(ctx context.Context, p Parent) (Parent, error)
		DeleteParent(ctx context.Context, id int) error
	}

	CourseRepository interface {
		CheckCourseNameUniqueness(ctx context.Context, name string, excluded ...Course) error
		CreateCourse(ctx context.Context, c Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, id int) error
		AddCourseTeacher(ctx context.Context, courseID, teacherID int) error
		RemoveCourseTeacher(ctx context.Context, courseID, teacherID int) error
		AddCourseStudent(ctx context.Context, courseID, studentID int) error
		RemoveCourseStudent(ctx context.Context, courseID, studentID int) error

		CreateContent(ctx context.Context, c Content) (Content, error)
		QueryAllContents(ctx context.Context) ([]Content, error)
		GetContentByID(ctx context.Context, id int) (Content, error)
		UpdateContent(ctx context.Context, c Content) (Content, error)
		DeleteContent(ctx context.Context, id int) error

		CreateSavedContent(ctx context.Context, sc SavedContent) (SavedContent, error)
		QueryAllSavedContents(ctx context.Context) ([]SavedContent, error)
		GetSavedContentByID(ctx context.Context, id int) (SavedContent, error)
		DeleteSavedContent(ctx context.Context, id int) error
	}

	RecordRepository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error

		CreateSubmission(ctx context.Context, sa SubmittedAssignment) (SubmittedAssignment, error)
		QueryAllSubmissions(ctx context.Context) ([]SubmittedAssignment, error)
		GetSubmissionByID(ctx context.Context, id int) (SubmittedAssignment, error)
		UpdateSubmission(ctx context.Context, sa SubmittedAssignment) (SubmittedAssignment, error)
		DeleteSubmission(ctx context.Context, id int) error

		CreateReportCard(ctx context.Context, rc ReportCard) (ReportCard, error)
		QueryAllReportCards(ctx context.Context) ([]ReportCard, error)
		GetReportCardByID(ctx context.Context, id int) (ReportCard, error)
		UpdateReportCard(ctx context.Context, rc ReportCard) (ReportCard, error)
		DeleteReportCard(ctx context.Context, id int) error
	}

	EventRepository interface {
		CreateEvent(ctx context.Context, ev Event) (Event, error)
		QueryAllEvents(ctx context.Context) ([]Event, error)
		GetEventByID(ctx context.Context, id int) (Event, error)
		UpdateEvent(ctx context.Context, ev Event) (Event, error)
		DeleteEvent(ctx context.Context, id int) error
	}

	CommentRepository interface {
		CreateComment(ctx context.Context, c Comment) (Comment, error)
		QueryAllComments(ctx context.Context) ([]Comment, error)
		GetCommentByID(ctx context.Context, id int) (Comment, error)
		UpdateComment(ctx context.Context, c Comment) (Comment, error)
		DeleteComment(ctx context.Context, id int) error
	}

	Service struct {
		repo    Repository
		users   user.Repository
		mailSvc core.EmailService
		appName string
	}
)

func NewService(repo Repository, users user.Repository, mailSvc core.EmailService, appName string) *Service {
	return &Service{repo: repo, users: users, mailSvc: mailSvc, appName: appName}
}

// uniqueness checks; sentinel errors are surfaced as field-level validation errors

func (svc *Service) checkTeacherUniqueness(ctx context.Context, personalEmail, email string, excl ...Teacher) error {
	if err := svc.repo.CheckTeacherUniqueness(ctx, personalEmail, email, excl...); err != nil {
		return uniquenessError(err)
	}
	exclUsers := make([]user.User, 0, len(excl))
	for _, t := range excl {
		exclUsers = append(exclUsers, user.New(user.KindTeacher, t.ID, t.Email, nil))
	}
	if err := svc.users.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		return uniquenessError(err)
	}
	return nil
}

func (svc *Service) checkStudentUniqueness(ctx context.Context, personalEmail, email string, excl ...Student) error {
	if err := svc.repo.CheckStudentUniqueness(ctx, personalEmail, email, excl...); err != nil {
		return uniquenessError(err)
	}
	exclUsers := make([]user.User, 0, len(excl))
	for _, s := range excl {
		exclUsers = append(exclUsers, user.New(user.KindStudent, s.ID, s.Email, nil))
	}
	if err := svc.users.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		return uniquenessError(err)
	}
	return nil
}

func (svc *Service) checkParentUniqueness(ctx context.Context, email string, excl ...Parent) error {
	if err := svc.repo.CheckParentUniqueness(ctx, email, excl...); err != nil {
		return uniquenessError(err)
	}
	exclUsers := make([]user.User, 0, len(excl))
	for _, p := range excl {
		exclUsers = append(exclUsers, user.New(user.KindParent, p.ID, p.Email, nil))
	}
	if err := svc.users.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		return uniquenessError(err)
	}
	return nil
}

func (svc *Service) checkCourseNameUniqueness(ctx context.Context, name string, excl ...Course) error {
	if err := svc.repo.CheckCourseNameUniqueness(ctx, name, excl...); err != nil {
		return uniquenessError(err)
	}
	return nil
}

func uniquenessError(err error) error {
	var field string
	switch err {
	case user.ErrEmailExists:
		field = "email"
	case ErrPersonalEmailExists:
		field = "personal_email"
	case ErrCourseNameExists:
		field = "course_name"
	default:
		return err
	}
	return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
}

func (svc *Service) sendWelcomeEmail(name, email string) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: name, Address: email}},
		Subject: "Welcome!",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Log in with %s to get started.\n", name, svc.appName, email),
	})
}

// Teachers

func (svc *Service) CreateTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(ctx, svc); err != nil {
		return Teacher{}, err
	}
	now := time.Now().UTC()
	t := Teacher{
		Firstname:     nt.Firstname,
		Lastname:      nt.Lastname,
		PersonalEmail: nt.PersonalEmail,
		Email:         nt.Email,
		Expertise:     nt.Expertise,
		Department:    nt.Department,
		ImageURL:      null.NewString(nt.ImageURL, nt.ImageURL != ""),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	identity := user.User{Email: nt.Email}
	if err := identity.SetPassword(nt.Password); err != nil {
		return Teacher{}, errors.Wrap(err, "hashing password")
	}
	t.PasswordHash = identity.PasswordHash

	t, err := svc.repo.CreateTeacher(ctx, t, identity)
	if err != nil {
		return Teacher{}, err
	}
	svc.sendWelcomeEmail(t.FullName(), t.Email)
	return t, nil
}

func (svc *Service) QueryAllTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) GetTeacher(ctx context.Context, id int) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *Service) UpdateTeacher(ctx context.Context, id int, ut UpdateTeacher) (Teacher, error) {
	t, err := svc.repo.GetTeacherByID(ctx, id)
	if err != nil {
		return Teacher{}, err
	}
	if err = ut.Validate(ctx, t, svc); err != nil {
		return Teacher{}, err
	}
	ut.apply(&t)
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(ctx, t)
}

func (svc *Service) DeleteTeacher(ctx context.Context, id int) error {
	return svc.repo.DeleteTeacher(ctx, id)
}

// Students

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(ctx, svc); err != nil {
		return Student{}, err
	}
	now := time.Now().UTC()
	s := Student{
		Firstname:     ns.Firstname,
		Lastname:      ns.Lastname,
		PersonalEmail: ns.PersonalEmail,
		Email:         ns.Email,
		ImageURL:      null.NewString(ns.ImageURL, ns.ImageURL != ""),
		ParentID:      null.IntFromPtr(ns.ParentID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	identity := user.User{Email: ns.Email}
	if err := identity.SetPassword(ns.Password); err != nil {
		return Student{}, errors.Wrap(err, "hashing password")
	}
	s.PasswordHash = identity.PasswordHash

	s, err := svc.repo.CreateStudent(ctx, s, identity)
	if err != nil {
		return Student{}, err
	}
	svc.sendWelcomeEmail(s.FullName(), s.Email)
	return s, nil
}

func (svc *Service) QueryAllStudents(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetStudent(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if err = us.Validate(ctx, s, svc); err != nil {
		return Student{}, err
	}
	us.apply(&s)
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, s)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}

// Parents

func (svc *Service) CreateParent(ctx context.Context, np NewParent) (Parent, error) {
	if err := np.Validate(ctx, svc); err != nil {
		return Parent{}, err
	}
	now := time.Now().UTC()
	p := Parent{
		Firstname: np.Firstname,
		Lastname:  np.Lastname,
		Email:     np.Email,
		ImageURL:  null.NewString(np.ImageURL, np.ImageURL != ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	identity := user.User{Email: np.Email}
	if err := identity.SetPassword(np.Password); err != nil {
		return Parent{}, errors.Wrap(err, "hashing password")
	}
	p.PasswordHash = identity.PasswordHash

	p, err := svc.repo.CreateParent(ctx, p, identity)
	if err != nil {
		return Parent{}, err
	}
	svc.sendWelcomeEmail(p.FullName(), p.Email)
	return p, nil
}

func (svc *Service) QueryAllParents(ctx context.Context) ([]Parent, error) {
	return svc.repo.QueryAllParents(ctx)
}

func (svc *Service) GetParent(ctx context.Context, id int) (Parent, error) {
	return svc.repo.GetParentByID(ctx, id)
}

func (svc *Service) UpdateParent(ctx context.Context, id int, up UpdateParent) (Parent, error) {
	p, err := svc.repo.GetParentByID(ctx, id)
	if err != nil {
		return Parent{}, err
	}
	if err = up.Validate(); err != nil {
		return Parent{}, err
	}
	up.apply(&p)
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateParent(ctx, p)
}

func (svc *Service) DeleteParent(ctx context.Context, id int) error {
	return svc.repo.DeleteParent(ctx, id)
}

// Courses

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(ctx, svc); err != nil {
		return Course{}, err
	}
	now := time.Now().UTC()
	c := Course{
		Name:        nc.Name,
		Description: nc.Description,
		ImageURL:    null.NewString(nc.ImageURL, nc.ImageURL != ""),
		DaysOfWeek:  nc.DaysOfWeek,
		StartRecur:  nc.startRecur,
		EndRecur:    nc.endRecur,
		StartTime:   nc.startTime,
		EndTime:     nc.endTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(ctx, c)
}

func (svc *Service) QueryAllCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetCourse(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if err = uc.Validate(ctx, c, svc); err != nil {
		return Course{}, err
	}
	uc.apply(&c)
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, c)
}

func (svc *Service) DeleteCourse(ctx context.Context, id int) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) EnrollStudent(ctx context.Context, courseID, studentID int) error {
	return svc.repo.AddCourseStudent(ctx, courseID, studentID)
}

func (svc *Service) UnenrollStudent(ctx context.Context, courseID, studentID int) error {
	return svc.repo.RemoveCourseStudent(ctx, courseID, studentID)
}

func (svc *Service) AssignTeacher(ctx context.Context, courseID, teacherID int) error {
	return svc.repo.AddCourseTeacher(ctx, courseID, teacherID)
}

func (svc *Service) UnassignTeacher(ctx context.Context, courseID, teacherID int) error {
	return svc.repo.RemoveCourseTeacher(ctx, courseID, teacherID)
}

// Contents

func (svc *Service) CreateContent(ctx context.Context, nc NewContent) (Content, error) {
	if err := nc.Validate(); err != nil {
		return Content{}, err
	}
	now := time.Now().UTC()
	c := Content{
		Name:        nc.Name,
		Description: nc.Description,
		Type:        nc.Type,
		File:        null.NewString(nc.File, nc.File != ""),
		CourseID:    null.IntFromPtr(nc.CourseID),
		Owner:       nc.owner(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateContent(ctx, c)
}

func (svc *Service) QueryAllContents(ctx context.Context) ([]Content, error) {
	return svc.repo.QueryAllContents(ctx)
}

func (svc *Service) GetContent(ctx context.Context, id int) (Content, error) {
	return svc.repo.GetContentByID(ctx, id)
}

func (svc *Service) UpdateContent(ctx context.Context, id int, uc UpdateContent) (Content, error) {
	c, err := svc.repo.GetContentByID(ctx, id)
	if err != nil {
		return Content{}, err
	}
	if err = uc.Validate(); err != nil {
		return Content{}, err
	}
	uc.apply(&c)
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateContent(ctx, c)
}

func (svc *Service) DeleteContent(ctx context.Context, id int) error {
	return svc.repo.DeleteContent(ctx, id)
}

// Saved contents

func (svc *Service) CreateSavedContent(ctx context.Context, ns NewSavedContent) (SavedContent, error) {
	if err := ns.Validate(); err != nil {
		return SavedContent{}, err
	}
	now := time.Now().UTC()
	sc := SavedContent{
		Name:      ns.Name,
		Type:      ns.Type,
		CourseID:  null.IntFromPtr(ns.CourseID),
		Owner:     ns.owner(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateSavedContent(ctx, sc)
}

func (svc *Service) QueryAllSavedContents(ctx context.Context) ([]SavedContent, error) {
	return svc.repo.QueryAllSavedContents(ctx)
}

func (svc *Service) DeleteSavedContent(ctx context.Context, id int) error {
	return svc.repo.DeleteSavedContent(ctx, id)
}

// Assignments

func (svc *Service) CreateAssignment(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	now := time.Now().UTC()
	a := Assignment{
		Name:      na.Name,
		Topic:     na.Topic,
		Body:      na.Body,
		File:      null.NewString(na.File, na.File != ""),
		DueDate:   na.dueDate,
		CourseID:  null.IntFromPtr(na.CourseID),
		TeacherID: null.IntFromPtr(na.TeacherID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateAssignment(ctx, a)
}

func (svc *Service) QueryAllAssignments(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAllAssignments(ctx)
}

func (svc *Service) GetAssignment(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) UpdateAssignment(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	if err = ua.Validate(); err != nil {
		return Assignment{}, err
	}
	ua.apply(&a)
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAssignment(ctx, a)
}

func (svc *Service) DeleteAssignment(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}

// Submitted assignments

func (svc *Service) CreateSubmission(ctx context.Context, ns NewSubmission) (SubmittedAssignment, error) {
	if err := ns.Validate(); err != nil {
		return SubmittedAssignment{}, err
	}
	now := time.Now().UTC()
	sa := SubmittedAssignment{
		Name:      ns.Name,
		Body:      ns.Body,
		Grade:     null.IntFromPtr(ns.Grade),
		File:      null.NewString(ns.File, ns.File != ""),
		Remarks:   ns.Remarks,
		IsGraded:  ns.IsGraded,
		CourseID:  null.IntFromPtr(ns.CourseID),
		StudentID: null.IntFromPtr(ns.StudentID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateSubmission(ctx, sa)
}

func (svc *Service) QueryAllSubmissions(ctx context.Context) ([]SubmittedAssignment, error) {
	return svc.repo.QueryAllSubmissions(ctx)
}

func (svc *Service) GetSubmission(ctx context.Context, id int) (SubmittedAssignment, error) {
	return svc.repo.GetSubmissionByID(ctx, id)
}

func (svc *Service) UpdateSubmission(ctx context.Context, id int, us UpdateSubmission) (SubmittedAssignment, error) {
	sa, err := svc.repo.GetSubmissionByID(ctx, id)
	if err != nil {
		return SubmittedAssignment{}, err
	}
	if err = us.Validate(); err != nil {
		return SubmittedAssignment{}, err
	}
	us.apply(&sa)
	sa.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubmission(ctx, sa)
}

func (svc *Service) DeleteSubmission(ctx context.Context, id int) error {
	return svc.repo.DeleteSubmission(ctx, id)
}

// Report cards

func (svc *Service) CreateReportCard(ctx context.Context, nr NewReportCard) (ReportCard, error) {
	if err := nr.Validate(); err != nil {
		return ReportCard{}, err
	}
	now := time.Now().UTC()
	rc := ReportCard{
		Topic:          nr.Topic,
		TeacherRemarks: nr.TeacherRemarks,
		CourseID:       null.IntFromPtr(nr.CourseID),
		TeacherID:      null.IntFromPtr(nr.TeacherID),
		StudentID:      null.IntFromPtr(nr.StudentID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if nr.Grade != nil {
		rc.Grade = *nr.Grade
	}
	return svc.repo.CreateReportCard(ctx, rc)
}

func (svc *Service) QueryAllReportCards(ctx context.Context) ([]ReportCard, error) {
	return svc.repo.QueryAllReportCards(ctx)
}

func (svc *Service) GetReportCard(ctx context.Context, id int) (ReportCard, error) {
	return svc.repo.GetReportCardByID(ctx, id)
}

func (svc *Service) UpdateReportCard(ctx context.Context, id int, ur UpdateReportCard) (ReportCard, error) {
	rc, err := svc.repo.GetReportCardByID(ctx, id)
	if err != nil {
		return ReportCard{}, err
	}
	if err = ur.Validate(); err != nil {
		return ReportCard{}, err
	}
	ur.apply(&rc)
	rc.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateReportCard(ctx, rc)
}

func (svc *Service) DeleteReportCard(ctx context.Context, id int) error {
	return svc.repo.DeleteReportCard(ctx, id)
}

// Events

// eventTitle resolves an event title: an explicit title wins, then the
// linked course's name, then a fixed fallback.
func (svc *Service) eventTitle(ctx context.Context, explicit string, courseID *int) string {
	if explicit != "" {
		return explicit
	}
	if courseID != nil {
		if c, err := svc.repo.GetCourseByID(ctx, *courseID); err == nil {
			return c.Name
		}
	}
	return unknownCourseTitle
}

func (svc *Service) CreateEvent(ctx context.Context, ne NewEvent) (Event, error) {
	if err := ne.Validate(); err != nil {
		return Event{}, err
	}
	ev := Event{
		GroupID:    null.IntFromPtr(ne.GroupID),
		AllDay:     ne.AllDay,
		Start:      ne.start,
		End:        ne.end,
		DaysOfWeek: ne.DaysOfWeek,
		StartTime:  ne.startTime,
		EndTime:    ne.endTime,
		StartRecur: ne.startRecur,
		EndRecur:   ne.endRecur,
		Title:      svc.eventTitle(ctx, core.CleanString(ne.Title), ne.CourseID),
		CourseID:   null.IntFromPtr(ne.CourseID),
		StudentID:  null.IntFromPtr(ne.StudentID),
		TeacherID:  null.IntFromPtr(ne.TeacherID),
	}
	return svc.repo.CreateEvent(ctx, ev)
}

func (svc *Service) QueryAllEvents(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

func (svc *Service) GetEvent(ctx context.Context, id int) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *Service) UpdateEvent(ctx context.Context, id int, ue UpdateEvent) (Event, error) {
	ev, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err = ue.Validate(); err != nil {
		return Event{}, err
	}
	ue.apply(&ev)
	// re-linking a course re-derives the title from it
	if ue.CourseID != nil {
		ev.Title = svc.eventTitle(ctx, "", ue.CourseID)
	}
	return svc.repo.UpdateEvent(ctx, ev)
}

func (svc *Service) DeleteEvent(ctx context.Context, id int) error {
	return svc.repo.DeleteEvent(ctx, id)
}

// Comments

func (svc *Service) CreateComment(ctx context.Context, nc NewComment) (Comment, error) {
	if err := nc.Validate(); err != nil {
		return Comment{}, err
	}
	now := time.Now().UTC()
	c := Comment{
		Title:     nc.Title,
		Subject:   nc.Subject,
		Body:      nc.Body,
		Author:    nc.author(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateComment(ctx, c)
}

func (svc *Service) QueryAllComments(ctx context.Context) ([]Comment, error) {
	return svc.repo.QueryAllComments(ctx)
}

func (svc *Service) GetComment(ctx context.Context, id int) (Comment, error) {
	return svc.repo.GetCommentByID(ctx, id)
}

func (svc *Service) UpdateComment(ctx context.Context, id int, uc UpdateComment) (Comment, error) {
	c, err := svc.repo.GetCommentByID(ctx, id)
	if err != nil {
		return Comment{}, err
	}
	if err = uc.Validate(); err != nil {
		return Comment{}, err
	}
	uc.apply(&c)
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateComment(ctx, c)
}

func (svc *Service) DeleteComment(ctx context.Context, id int) error {
	return svc.repo.DeleteComment(ctx, id)
}
