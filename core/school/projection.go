package school

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// Projections are pure read transforms: they never touch the repository and
// absent relations always come out as empty slices, never null. Nesting is
// deliberately shallow (a Course nests its teacher roster and content, a
// Parent nests its children) so the cyclic Student-Course-Teacher-Content
// graph can never be walked unbounded.

type (
	TeacherBrief struct {
		ID        int    `json:"id"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Expertise string `json:"expertise"`
	}

	StudentBrief struct {
		ID        int    `json:"id"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	}

	// ContentProjection keeps the historical flat owner columns on the wire.
	ContentProjection struct {
		ID          int         `json:"id"`
		Name        string      `json:"content_name"`
		Description string      `json:"description"`
		File        null.String `json:"content_file"`
		Type        string      `json:"content_type"`
		CourseID    null.Int    `json:"course_id"`
		TeacherID   null.Int    `json:"teacher_id"`
		StudentID   null.Int    `json:"student_id"`
		CreatedAt   time.Time   `json:"created_at"`
	}

	SavedContentProjection struct {
		ID        int       `json:"id"`
		Name      string    `json:"content_name"`
		Type      string    `json:"content_type"`
		CourseID  null.Int  `json:"course_id"`
		TeacherID null.Int  `json:"teacher_id"`
		StudentID null.Int  `json:"student_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	CommentProjection struct {
		ID        int       `json:"id"`
		Title     string    `json:"title"`
		Subject   string    `json:"subject"`
		Body      string    `json:"content"`
		TeacherID null.Int  `json:"teacher_id"`
		StudentID null.Int  `json:"student_id"`
		ParentID  null.Int  `json:"parent_id"`
		CreatedAt time.Time `json:"created_at"`
	}

	CourseProjection struct {
		ID          int                 `json:"id"`
		Name        string              `json:"course_name"`
		Description string              `json:"description"`
		ImageURL    null.String         `json:"image_url"`
		DaysOfWeek  string              `json:"daysOfWeek"`
		StartRecur  core.Date           `json:"startRecur"`
		EndRecur    core.Date           `json:"endRecur"`
		StartTime   core.TimeOfDay      `json:"startTime"`
		EndTime     core.TimeOfDay      `json:"endTime"`
		Teachers    []TeacherBrief      `json:"teachers"`
		Content     []ContentProjection `json:"content"`
	}

	ReportCardProjection struct {
		ID             int      `json:"id"`
		Topic          string   `json:"topic"`
		Grade          int      `json:"grade"`
		TeacherRemarks string   `json:"teacher_remarks"`
		CourseID       null.Int `json:"course_id"`
	}

	SubmissionProjection struct {
		ID       int      `json:"id"`
		Name     string   `json:"assignment_name"`
		Grade    null.Int `json:"grade"`
		Remarks  string   `json:"remarks"`
		IsGraded bool     `json:"is_graded"`
		CourseID null.Int `json:"course_id"`
	}

	UserProjection struct {
		Email     string   `json:"email"`
		Role      string   `json:"role"`
		TeacherID null.Int `json:"teacher_id"`
		StudentID null.Int `json:"student_id"`
		ParentID  null.Int `json:"parent_id"`
	}
)

// role-shaped account views returned by POST /login and GET /checksession.

type (
	TeacherAccount struct {
		ID         int                 `json:"teacher_id"`
		Name       string              `json:"name"`
		Email      string              `json:"email"`
		ImageURL   null.String         `json:"image_url"`
		Expertise  string              `json:"expertise"`
		Department string              `json:"department"`
		Docs       []ContentProjection `json:"docs"`
		Courses    []CourseProjection  `json:"courses"`
	}

	StudentAccount struct {
		ID          int                      `json:"student_id"`
		Name        string                   `json:"name"`
		Email       string                   `json:"email"`
		ImageURL    null.String              `json:"image_url"`
		ParentID    null.Int                 `json:"parent_id"`
		ReportCards []ReportCardProjection   `json:"report_card"`
		Submissions []SubmissionProjection   `json:"assignments"`
		Docs        []ContentProjection      `json:"docs"`
		Courses     []CourseProjection       `json:"courses"`
		Events      []Event                  `json:"event"`
		SavedItems  []SavedContentProjection `json:"saved_content"`
	}

	ParentAccount struct {
		ID       int            `json:"parent_id"`
		Name     string         `json:"name"`
		Email    string         `json:"email"`
		ImageURL null.String    `json:"image_url"`
		Children []StudentBrief `json:"child"`
	}
)

func ProjectContent(c Content) ContentProjection {
	return ContentProjection{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		File:        c.File,
		Type:        c.Type,
		CourseID:    c.CourseID,
		TeacherID:   c.Owner.TeacherID(),
		StudentID:   c.Owner.StudentID(),
		CreatedAt:   c.CreatedAt,
	}
}

func ProjectContents(cs []Content) []ContentProjection {
	res := make([]ContentProjection, len(cs))
	for i, c := range cs {
		res[i] = ProjectContent(c)
	}
	return res
}

func ProjectSavedContent(sc SavedContent) SavedContentProjection {
	return SavedContentProjection{
		ID:        sc.ID,
		Name:      sc.Name,
		Type:      sc.Type,
		CourseID:  sc.CourseID,
		TeacherID: sc.Owner.TeacherID(),
		StudentID: sc.Owner.StudentID(),
		CreatedAt: sc.CreatedAt,
	}
}

func ProjectSavedContents(scs []SavedContent) []SavedContentProjection {
	res := make([]SavedContentProjection, len(scs))
	for i, sc := range scs {
		res[i] = ProjectSavedContent(sc)
	}
	return res
}

func ProjectComment(c Comment) CommentProjection {
	return CommentProjection{
		ID:        c.ID,
		Title:     c.Title,
		Subject:   c.Subject,
		Body:      c.Body,
		TeacherID: c.Author.TeacherID(),
		StudentID: c.Author.StudentID(),
		ParentID:  c.Author.ParentID(),
		CreatedAt: c.CreatedAt,
	}
}

func ProjectComments(cs []Comment) []CommentProjection {
	res := make([]CommentProjection, len(cs))
	for i, c := range cs {
		res[i] = ProjectComment(c)
	}
	return res
}

func ProjectTeacherBrief(t Teacher) TeacherBrief {
	return TeacherBrief{ID: t.ID, Firstname: t.Firstname, Lastname: t.Lastname, Expertise: t.Expertise}
}

func ProjectStudentBrief(s Student) StudentBrief {
	return StudentBrief{ID: s.ID, Firstname: s.Firstname, Lastname: s.Lastname}
}

func ProjectCourse(c Course) CourseProjection {
	teachers := make([]TeacherBrief, len(c.Teachers))
	for i, t := range c.Teachers {
		teachers[i] = ProjectTeacherBrief(t)
	}
	return CourseProjection{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		DaysOfWeek:  c.DaysOfWeek,
		StartRecur:  c.StartRecur,
		EndRecur:    c.EndRecur,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Teachers:    teachers,
		Content:     ProjectContents(c.Content),
	}
}

func ProjectCourses(cs []Course) []CourseProjection {
	res := make([]CourseProjection, len(cs))
	for i, c := range cs {
		res[i] = ProjectCourse(c)
	}
	return res
}

func ProjectReportCard(rc ReportCard) ReportCardProjection {
	return ReportCardProjection{
		ID:             rc.ID,
		Topic:          rc.Topic,
		Grade:          rc.Grade,
		TeacherRemarks: rc.TeacherRemarks,
		CourseID:       rc.CourseID,
	}
}

func ProjectReportCards(rcs []ReportCard) []ReportCardProjection {
	res := make([]ReportCardProjection, len(rcs))
	for i, rc := range rcs {
		res[i] = ProjectReportCard(rc)
	}
	return res
}

func ProjectSubmission(sa SubmittedAssignment) SubmissionProjection {
	return SubmissionProjection{
		ID:       sa.ID,
		Name:     sa.Name,
		Grade:    sa.Grade,
		Remarks:  sa.Remarks,
		IsGraded: sa.IsGraded,
		CourseID: sa.CourseID,
	}
}

func ProjectSubmissions(sas []SubmittedAssignment) []SubmissionProjection {
	res := make([]SubmissionProjection, len(sas))
	for i, sa := range sas {
		res[i] = ProjectSubmission(sa)
	}
	return res
}

func ProjectUser(usr user.User) UserProjection {
	return UserProjection{
		Email:     usr.Email,
		Role:      string(usr.Kind()),
		TeacherID: usr.TeacherID,
		StudentID: usr.StudentID,
		ParentID:  usr.ParentID,
	}
}

func ProjectUsers(usrs []user.User) []UserProjection {
	res := make([]UserProjection, len(usrs))
	for i, usr := range usrs {
		res[i] = ProjectUser(usr)
	}
	return res
}

func ProjectTeacherAccount(t Teacher) TeacherAccount {
	return TeacherAccount{
		ID:         t.ID,
		Name:       t.FullName(),
		Email:      t.Email,
		ImageURL:   t.ImageURL,
		Expertise:  t.Expertise,
		Department: t.Department,
		Docs:       ProjectContents(t.Docs),
		Courses:    ProjectCourses(t.Courses),
	}
}

func ProjectStudentAccount(s Student) StudentAccount {
	events := s.Events
	if events == nil {
		events = []Event{}
	}
	return StudentAccount{
		ID:          s.ID,
		Name:        s.FullName(),
		Email:       s.Email,
		ImageURL:    s.ImageURL,
		ParentID:    s.ParentID,
		ReportCards: ProjectReportCards(s.ReportCards),
		Submissions: ProjectSubmissions(s.Submissions),
		Docs:        ProjectContents(s.Docs),
		Courses:     ProjectCourses(s.Courses),
		Events:      events,
		SavedItems:  ProjectSavedContents(s.SavedItems),
	}
}

func ProjectParentAccount(p Parent) ParentAccount {
	children := make([]StudentBrief, len(p.Children))
	for i, s := range p.Children {
		children[i] = ProjectStudentBrief(s)
	}
	return ParentAccount{
		ID:       p.ID,
		Name:     p.FullName(),
		Email:    p.Email,
		ImageURL: p.ImageURL,
		Children: children,
	}
}

// Account resolves the caller's role-shaped profile view: a TeacherAccount,
// StudentAccount or ParentAccount depending on the identity's kind.
func (svc *Service) Account(ctx context.Context, usr user.User) (interface{}, error) {
	switch usr.Kind() {
	case user.KindTeacher:
		t, err := svc.repo.GetTeacherByID(ctx, usr.ProfileID())
		if err != nil {
			return nil, err
		}
		return ProjectTeacherAccount(t), nil
	case user.KindStudent:
		s, err := svc.repo.GetStudentByID(ctx, usr.ProfileID())
		if err != nil {
			return nil, err
		}
		return ProjectStudentAccount(s), nil
	case user.KindParent:
		p, err := svc.repo.GetParentByID(ctx, usr.ProfileID())
		if err != nil {
			return nil, err
		}
		return ProjectParentAccount(p), nil
	}
	return nil, ErrNotFound
}
