package school

import (
	"context"

	"github.com/trezcool/darasa/core"
)

// NewTeacher contains information needed to create a new Teacher profile
// and its paired identity. Bound from JSON or multipart form data.
type NewTeacher struct {
	Firstname     string `json:"firstname" form:"firstname" validate:"required"`
	Lastname      string `json:"lastname" form:"lastname" validate:"required"`
	PersonalEmail string `json:"personal_email" form:"personal_email" validate:"required,email_simple"`
	Email         string `json:"email" form:"email" validate:"required,email_simple"`
	Password      string `json:"password" form:"password" validate:"required"`
	Expertise     string `json:"expertise" form:"expertise"`
	Department    string `json:"department" form:"department"`
	ImageURL      string `json:"image_url" form:"image_url"`
}

func (nt *NewTeacher) Validate(ctx context.Context, svc *Service) error {
	nt.Firstname = core.CleanString(nt.Firstname)
	nt.Lastname = core.CleanString(nt.Lastname)
	nt.PersonalEmail = core.CleanString(nt.PersonalEmail, true /* lower */)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkTeacherUniqueness(ctx, nt.PersonalEmail, nt.Email)
}

// UpdateTeacher defines the patchable Teacher fields; absent fields are left
// unchanged. The identity email and password hash are not patchable here.
type UpdateTeacher struct {
	Firstname     *string `json:"firstname" validate:"omitempty,min=1"`
	Lastname      *string `json:"lastname" validate:"omitempty,min=1"`
	PersonalEmail *string `json:"personal_email" validate:"omitempty,email_simple"`
	Expertise     *string `json:"expertise"`
	Department    *string `json:"department"`
	ImageURL      *string `json:"image_url"`
}

func (ut *UpdateTeacher) Validate(ctx context.Context, orig Teacher, svc *Service) error {
	cleanPtr(ut.Firstname)
	cleanPtr(ut.Lastname)
	cleanPtrLower(ut.PersonalEmail)

	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	if ut.PersonalEmail != nil {
		return svc.checkTeacherUniqueness(ctx, *ut.PersonalEmail, orig.Email, orig)
	}
	return nil
}

func (ut UpdateTeacher) apply(t *Teacher) {
	setStr(&t.Firstname, ut.Firstname)
	setStr(&t.Lastname, ut.Lastname)
	setStr(&t.PersonalEmail, ut.PersonalEmail)
	setStr(&t.Expertise, ut.Expertise)
	setStr(&t.Department, ut.Department)
	setNullStr(&t.ImageURL, ut.ImageURL)
}

type NewStudent struct {
	Firstname     string `json:"firstname" form:"firstname" validate:"required"`
	Lastname      string `json:"lastname" form:"lastname" validate:"required"`
	PersonalEmail string `json:"personal_email" form:"personal_email" validate:"required,email_simple"`
	Email         string `json:"email" form:"email" validate:"required,email_simple"`
	Password      string `json:"password" form:"password" validate:"required"`
	ImageURL      string `json:"image_url" form:"image_url"`
	ParentID      *int   `json:"parent_id" form:"parent_id"`
}

func (ns *NewStudent) Validate(ctx context.Context, svc *Service) error {
	ns.Firstname = core.CleanString(ns.Firstname)
	ns.Lastname = core.CleanString(ns.Lastname)
	ns.PersonalEmail = core.CleanString(ns.PersonalEmail, true /* lower */)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkStudentUniqueness(ctx, ns.PersonalEmail, ns.Email)
}

type UpdateStudent struct {
	Firstname     *string `json:"firstname" validate:"omitempty,min=1"`
	Lastname      *string `json:"lastname" validate:"omitempty,min=1"`
	PersonalEmail *string `json:"personal_email" validate:"omitempty,email_simple"`
	ImageURL      *string `json:"image_url"`
	ParentID      *int    `json:"parent_id"`
}

func (us *UpdateStudent) Validate(ctx context.Context, orig Student, svc *Service) error {
	cleanPtr(us.Firstname)
	cleanPtr(us.Lastname)
	cleanPtrLower(us.PersonalEmail)

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	if us.PersonalEmail != nil {
		return svc.checkStudentUniqueness(ctx, *us.PersonalEmail, orig.Email, orig)
	}
	return nil
}

func (us UpdateStudent) apply(s *Student) {
	setStr(&s.Firstname, us.Firstname)
	setStr(&s.Lastname, us.Lastname)
	setStr(&s.PersonalEmail, us.PersonalEmail)
	setNullStr(&s.ImageURL, us.ImageURL)
	setNullInt(&s.ParentID, us.ParentID)
}

type NewParent struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email_simple"`
	Password  string `json:"password" validate:"required"`
	ImageURL  string `json:"image_url"`
}

func (np *NewParent) Validate(ctx context.Context, svc *Service) error {
	np.Firstname = core.CleanString(np.Firstname)
	np.Lastname = core.CleanString(np.Lastname)
	np.Email = core.CleanString(np.Email, true /* lower */)

	if err := core.Validate.Struct(np); err != nil {
		return err
	}
	return svc.checkParentUniqueness(ctx, np.Email)
}

type UpdateParent struct {
	Firstname *string `json:"firstname" validate:"omitempty,min=1"`
	Lastname  *string `json:"lastname" validate:"omitempty,min=1"`
	ImageURL  *string `json:"image_url"`
}

func (up *UpdateParent) Validate() error {
	cleanPtr(up.Firstname)
	cleanPtr(up.Lastname)
	return core.Validate.Struct(up)
}

func (up UpdateParent) apply(p *Parent) {
	setStr(&p.Firstname, up.Firstname)
	setStr(&p.Lastname, up.Lastname)
	setNullStr(&p.ImageURL, up.ImageURL)
}

// NewCourse carries the recurrence window as text; dates use YYYY-MM-DD and
// times HH:MM, parsed during validation.
type NewCourse struct {
	Name        string `json:"course_name" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"image_url"`
	DaysOfWeek  string `json:"daysOfWeek"`
	StartRecur  string `json:"startRecur" validate:"required"`
	EndRecur    string `json:"endRecur" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`

	startRecur, endRecur core.Date
	startTime, endTime   core.TimeOfDay
}

func (nc *NewCourse) Validate(ctx context.Context, svc *Service) error {
	nc.Name = core.CleanString(nc.Name)

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}

	var flds []core.FieldError
	nc.startRecur = parseDateField("startRecur", nc.StartRecur, &flds)
	nc.endRecur = parseDateField("endRecur", nc.EndRecur, &flds)
	nc.startTime = parseTimeField("startTime", nc.StartTime, &flds)
	nc.endTime = parseTimeField("endTime", nc.EndTime, &flds)
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return svc.checkCourseNameUniqueness(ctx, nc.Name)
}

type UpdateCourse struct {
	Name        *string `json:"course_name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	DaysOfWeek  *string `json:"daysOfWeek"`
	StartRecur  *string `json:"startRecur"`
	EndRecur    *string `json:"endRecur"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`

	startRecur, endRecur *core.Date
	startTime, endTime   *core.TimeOfDay
}

func (uc *UpdateCourse) Validate(ctx context.Context, orig Course, svc *Service) error {
	cleanPtr(uc.Name)

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}

	var flds []core.FieldError
	uc.startRecur = parseDateFieldPtr("startRecur", uc.StartRecur, &flds)
	uc.endRecur = parseDateFieldPtr("endRecur", uc.EndRecur, &flds)
	uc.startTime = parseTimeFieldPtr("startTime", uc.StartTime, &flds)
	uc.endTime = parseTimeFieldPtr("endTime", uc.EndTime, &flds)
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	if uc.Name != nil {
		return svc.checkCourseNameUniqueness(ctx, *uc.Name, orig)
	}
	return nil
}

func (uc UpdateCourse) apply(c *Course) {
	setStr(&c.Name, uc.Name)
	setStr(&c.Description, uc.Description)
	setNullStr(&c.ImageURL, uc.ImageURL)
	setStr(&c.DaysOfWeek, uc.DaysOfWeek)
	if uc.startRecur != nil {
		c.StartRecur = *uc.startRecur
	}
	if uc.endRecur != nil {
		c.EndRecur = *uc.endRecur
	}
	if uc.startTime != nil {
		c.StartTime = *uc.startTime
	}
	if uc.endTime != nil {
		c.EndTime = *uc.endTime
	}
}

type NewContent struct {
	Name        string `json:"content_name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"content_type" validate:"required"`
	File        string `json:"content_file"`
	CourseID    *int   `json:"course_id"`
	TeacherID   *int   `json:"teacher_id"`
	StudentID   *int   `json:"student_id"`
}

func (nc *NewContent) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	_, err := ownerOf(nc.TeacherID, nc.StudentID, nil)
	return err
}

func (nc NewContent) owner() Owner {
	o, _ := ownerOf(nc.TeacherID, nc.StudentID, nil)
	return o
}

type UpdateContent struct {
	Name        *string `json:"content_name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Type        *string `json:"content_type"`
	File        *string `json:"content_file"`
	CourseID    *int    `json:"course_id"`
}

func (uc *UpdateContent) Validate() error {
	cleanPtr(uc.Name)
	return core.Validate.Struct(uc)
}

func (uc UpdateContent) apply(c *Content) {
	setStr(&c.Name, uc.Name)
	setStr(&c.Description, uc.Description)
	setStr(&c.Type, uc.Type)
	setNullStr(&c.File, uc.File)
	setNullInt(&c.CourseID, uc.CourseID)
}

type NewSavedContent struct {
	Name      string `json:"content_name" validate:"required"`
	Type      string `json:"content_type" validate:"required"`
	CourseID  *int   `json:"course_id"`
	TeacherID *int   `json:"teacher_id"`
	StudentID *int   `json:"student_id"`
}

func (ns *NewSavedContent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	_, err := ownerOf(ns.TeacherID, ns.StudentID, nil)
	return err
}

func (ns NewSavedContent) owner() Owner {
	o, _ := ownerOf(ns.TeacherID, ns.StudentID, nil)
	return o
}

type NewAssignment struct {
	Name      string `json:"assignment_name" form:"assignment_name" validate:"required"`
	Topic     string `json:"topic" form:"topic" validate:"required"`
	Body      string `json:"content" form:"content" validate:"required"`
	File      string `json:"assignment_file" form:"assignment_file"`
	DueDate   string `json:"due_date" form:"due_date" validate:"required"`
	CourseID  *int   `json:"course_id" form:"course_id"`
	TeacherID *int   `json:"teacher_id" form:"teacher_id"`

	dueDate core.Date
}

func (na *NewAssignment) Validate() error {
	na.Name = core.CleanString(na.Name)
	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	var flds []core.FieldError
	na.dueDate = parseDateField("due_date", na.DueDate, &flds)
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

type UpdateAssignment struct {
	Name    *string `json:"assignment_name" validate:"omitempty,min=1"`
	Topic   *string `json:"topic"`
	Body    *string `json:"content"`
	File    *string `json:"assignment_file"`
	DueDate *string `json:"due_date"`

	dueDate *core.Date
}

func (ua *UpdateAssignment) Validate() error {
	cleanPtr(ua.Name)
	if err := core.Validate.Struct(ua); err != nil {
		return err
	}
	var flds []core.FieldError
	ua.dueDate = parseDateFieldPtr("due_date", ua.DueDate, &flds)
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (ua UpdateAssignment) apply(a *Assignment) {
	setStr(&a.Name, ua.Name)
	setStr(&a.Topic, ua.Topic)
	setStr(&a.Body, ua.Body)
	setNullStr(&a.File, ua.File)
	if ua.dueDate != nil {
		a.DueDate = *ua.dueDate
	}
}

type NewSubmission struct {
	Name      string `json:"assignment_name" validate:"required"`
	Body      string `json:"content"`
	Grade     *int   `json:"grade"`
	File      string `json:"assignment_file"`
	Remarks   string `json:"remarks"`
	IsGraded  bool   `json:"is_graded"`
	CourseID  *int   `json:"course_id"`
	StudentID *int   `json:"student_id"`
}

func (ns *NewSubmission) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

type UpdateSubmission struct {
	Name     *string `json:"assignment_name" validate:"omitempty,min=1"`
	Body     *string `json:"content"`
	Grade    *int    `json:"grade"`
	File     *string `json:"assignment_file"`
	Remarks  *string `json:"remarks"`
	IsGraded *bool   `json:"is_graded"`
}

func (us *UpdateSubmission) Validate() error {
	cleanPtr(us.Name)
	return core.Validate.Struct(us)
}

func (us UpdateSubmission) apply(sa *SubmittedAssignment) {
	setStr(&sa.Name, us.Name)
	setStr(&sa.Body, us.Body)
	setNullInt(&sa.Grade, us.Grade)
	setNullStr(&sa.File, us.File)
	setStr(&sa.Remarks, us.Remarks)
	if us.IsGraded != nil {
		sa.IsGraded = *us.IsGraded
	}
}

type NewReportCard struct {
	Topic          string `json:"topic" validate:"required"`
	Grade          *int   `json:"grade" validate:"required"`
	TeacherRemarks string `json:"teacher_remarks"`
	CourseID       *int   `json:"course_id"`
	TeacherID      *int   `json:"teacher_id"`
	StudentID      *int   `json:"student_id"`
}

func (nr *NewReportCard) Validate() error {
	nr.Topic = core.CleanString(nr.Topic)
	return core.Validate.Struct(nr)
}

type UpdateReportCard struct {
	Topic          *string `json:"topic" validate:"omitempty,min=1"`
	Grade          *int    `json:"grade"`
	TeacherRemarks *string `json:"teacher_remarks"`
}

func (ur *UpdateReportCard) Validate() error {
	cleanPtr(ur.Topic)
	return core.Validate.Struct(ur)
}

func (ur UpdateReportCard) apply(rc *ReportCard) {
	setStr(&rc.Topic, ur.Topic)
	if ur.Grade != nil {
		rc.Grade = *ur.Grade
	}
	setStr(&rc.TeacherRemarks, ur.TeacherRemarks)
}

type NewEvent struct {
	GroupID    *int   `json:"groupId"`
	AllDay     bool   `json:"allDay"`
	Start      string `json:"start" validate:"required"`
	End        string `json:"end"`
	DaysOfWeek string `json:"daysOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	StartRecur string `json:"startRecur"`
	EndRecur   string `json:"endRecur"`
	Title      string `json:"title"`
	CourseID   *int   `json:"course_id"`
	StudentID  *int   `json:"student_id"`
	TeacherID  *int   `json:"teacher_id"`

	start, end           core.Date
	startRecur, endRecur core.Date
	startTime, endTime   core.TimeOfDay
}

func (ne *NewEvent) Validate() error {
	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	var flds []core.FieldError
	ne.start = parseDateField("start", ne.Start, &flds)
	if ne.End != "" {
		ne.end = parseDateField("end", ne.End, &flds)
	}
	if ne.StartRecur != "" {
		ne.startRecur = parseDateField("startRecur", ne.StartRecur, &flds)
	}
	if ne.EndRecur != "" {
		ne.endRecur = parseDateField("endRecur", ne.EndRecur, &flds)
	}
	if ne.StartTime != "" {
		ne.startTime = parseTimeField("startTime", ne.StartTime, &flds)
	}
	if ne.EndTime != "" {
		ne.endTime = parseTimeField("endTime", ne.EndTime, &flds)
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

type UpdateEvent struct {
	GroupID    *int    `json:"groupId"`
	AllDay     *bool   `json:"allDay"`
	Start      *string `json:"start"`
	End        *string `json:"end"`
	DaysOfWeek *string `json:"daysOfWeek"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	StartRecur *string `json:"startRecur"`
	EndRecur   *string `json:"endRecur"`
	Title      *string `json:"title"`
	CourseID   *int    `json:"course_id"`

	start, end           *core.Date
	startRecur, endRecur *core.Date
	startTime, endTime   *core.TimeOfDay
}

func (ue *UpdateEvent) Validate() error {
	if err := core.Validate.Struct(ue); err != nil {
		return err
	}
	var flds []core.FieldError
	ue.start = parseDateFieldPtr("start", ue.Start, &flds)
	ue.end = parseDateFieldPtr("end", ue.End, &flds)
	ue.startRecur = parseDateFieldPtr("startRecur", ue.StartRecur, &flds)
	ue.endRecur = parseDateFieldPtr("endRecur", ue.EndRecur, &flds)
	ue.startTime = parseTimeFieldPtr("startTime", ue.StartTime, &flds)
	ue.endTime = parseTimeFieldPtr("endTime", ue.EndTime, &flds)
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (ue UpdateEvent) apply(ev *Event) {
	setNullInt(&ev.GroupID, ue.GroupID)
	if ue.AllDay != nil {
		ev.AllDay = *ue.AllDay
	}
	if ue.start != nil {
		ev.Start = *ue.start
	}
	if ue.end != nil {
		ev.End = *ue.end
	}
	setStr(&ev.DaysOfWeek, ue.DaysOfWeek)
	if ue.startTime != nil {
		ev.StartTime = *ue.startTime
	}
	if ue.endTime != nil {
		ev.EndTime = *ue.endTime
	}
	if ue.startRecur != nil {
		ev.StartRecur = *ue.startRecur
	}
	if ue.endRecur != nil {
		ev.EndRecur = *ue.endRecur
	}
	setStr(&ev.Title, ue.Title)
	setNullInt(&ev.CourseID, ue.CourseID)
}

type NewComment struct {
	Title     string `json:"title"`
	Subject   string `json:"subject" validate:"required"`
	Body      string `json:"content" validate:"required"`
	TeacherID *int   `json:"teacher_id"`
	StudentID *int   `json:"student_id"`
	ParentID  *int   `json:"parent_id"`
}

func (nc *NewComment) Validate() error {
	nc.Subject = core.CleanString(nc.Subject)
	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	_, err := ownerOf(nc.TeacherID, nc.StudentID, nc.ParentID)
	return err
}

func (nc NewComment) author() Owner {
	o, _ := ownerOf(nc.TeacherID, nc.StudentID, nc.ParentID)
	return o
}

type UpdateComment struct {
	Title   *string `json:"title"`
	Subject *string `json:"subject" validate:"omitempty,min=1"`
	Body    *string `json:"content"`
}

func (uc *UpdateComment) Validate() error {
	cleanPtr(uc.Subject)
	return core.Validate.Struct(uc)
}

func (uc UpdateComment) apply(c *Comment) {
	setStr(&c.Title, uc.Title)
	setStr(&c.Subject, uc.Subject)
	setStr(&c.Body, uc.Body)
}
