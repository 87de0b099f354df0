package school

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// OwnerKind tags the profile owning a polymorphic record
// (Content, SavedContent, Comment).
type OwnerKind string

const (
	OwnerNone    OwnerKind = ""
	OwnerTeacher OwnerKind = "teacher"
	OwnerStudent OwnerKind = "student"
	OwnerParent  OwnerKind = "parent" // comments only
)

// Owner is a tagged variant replacing the legacy trio of nullable owner
// columns; at most one owner is ever set.
type Owner struct {
	Kind OwnerKind `json:"owner_kind"`
	ID   int       `json:"owner_id"`
}

func TeacherOwner(id int) Owner { return Owner{Kind: OwnerTeacher, ID: id} }
func StudentOwner(id int) Owner { return Owner{Kind: OwnerStudent, ID: id} }
func ParentOwner(id int) Owner  { return Owner{Kind: OwnerParent, ID: id} }

func (o Owner) IsSet() bool { return o.Kind != OwnerNone }

// TeacherID returns the owner id as a nullable teacher FK, for serialization
// in the legacy three-column shape.
func (o Owner) TeacherID() null.Int { return o.fk(OwnerTeacher) }
func (o Owner) StudentID() null.Int { return o.fk(OwnerStudent) }
func (o Owner) ParentID() null.Int  { return o.fk(OwnerParent) }

func (o Owner) fk(kind OwnerKind) null.Int {
	if o.Kind == kind {
		return null.IntFrom(o.ID)
	}
	return null.Int{}
}

type Teacher struct {
	ID            int         `json:"id"`
	Firstname     string      `json:"firstname"`
	Lastname      string      `json:"lastname"`
	PersonalEmail string      `json:"personal_email"`
	Email         string      `json:"email"`
	PasswordHash  []byte      `json:"-"`
	Expertise     string      `json:"expertise"`
	Department    string      `json:"department"`
	ImageURL      null.String `json:"image_url"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
	UpdatedAt     time.Time   `json:"updated_at"` // UTC

	// relations, loaded by the repository for projection
	Courses []Course  `json:"-"`
	Docs    []Content `json:"-"`
}

func (t Teacher) FullName() string { return t.Firstname + " " + t.Lastname }

type Student struct {
	ID            int         `json:"id"`
	Firstname     string      `json:"firstname"`
	Lastname      string      `json:"lastname"`
	PersonalEmail string      `json:"personal_email"`
	Email         string      `json:"email"`
	PasswordHash  []byte      `json:"-"`
	ImageURL      null.String `json:"image_url"`
	ParentID      null.Int    `json:"parent_id"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
	UpdatedAt     time.Time   `json:"updated_at"` // UTC

	Parent      *Parent               `json:"-"`
	Courses     []Course              `json:"-"`
	Docs        []Content             `json:"-"`
	ReportCards []ReportCard          `json:"-"`
	Submissions []SubmittedAssignment `json:"-"`
	Events      []Event               `json:"-"`
	SavedItems  []SavedContent        `json:"-"`
}

func (s Student) FullName() string { return s.Firstname + " " + s.Lastname }

type Parent struct {
	ID           int         `json:"id"`
	Firstname    string      `json:"firstname"`
	Lastname     string      `json:"lastname"`
	Email        string      `json:"email"`
	PasswordHash []byte      `json:"-"`
	ImageURL     null.String `json:"image_url"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC

	Children []Student `json:"-"`
}

func (p Parent) FullName() string { return p.Firstname + " " + p.Lastname }

type Course struct {
	ID          int            `json:"id"`
	Name        string         `json:"course_name"`
	Description string         `json:"description"`
	ImageURL    null.String    `json:"image_url"`
	DaysOfWeek  string         `json:"daysOfWeek"`
	StartRecur  core.Date      `json:"startRecur"`
	EndRecur    core.Date      `json:"endRecur"`
	StartTime   core.TimeOfDay `json:"startTime"`
	EndTime     core.TimeOfDay `json:"endTime"`
	CreatedAt   time.Time      `json:"created_at"` // UTC
	UpdatedAt   time.Time      `json:"updated_at"` // UTC

	Teachers []Teacher `json:"-"`
	Students []Student `json:"-"`
	Content  []Content `json:"-"`
}

type Content struct {
	ID          int         `json:"id"`
	Name        string      `json:"content_name"`
	Description string      `json:"description"`
	File        null.String `json:"content_file"`
	Type        string      `json:"content_type"`
	CourseID    null.Int    `json:"course_id"`
	Owner       Owner       `json:"-"` // authored by a Teacher or a Student
	CreatedAt   time.Time   `json:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at"` // UTC
}

type SavedContent struct {
	ID        int       `json:"id"`
	Name      string    `json:"content_name"`
	Type      string    `json:"content_type"`
	CourseID  null.Int  `json:"course_id"`
	Owner     Owner     `json:"-"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Assignment struct {
	ID        int         `json:"id"`
	Name      string      `json:"assignment_name"`
	Topic     string      `json:"topic"`
	Body      string      `json:"content"`
	File      null.String `json:"assignment_file"`
	DueDate   core.Date   `json:"due_date"`
	CourseID  null.Int    `json:"course_id"`
	TeacherID null.Int    `json:"teacher_id"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

type SubmittedAssignment struct {
	ID        int         `json:"id"`
	Name      string      `json:"assignment_name"`
	Body      string      `json:"content"`
	Grade     null.Int    `json:"grade"`
	File      null.String `json:"assignment_file"`
	Remarks   string      `json:"remarks"`
	IsGraded  bool        `json:"is_graded"`
	CourseID  null.Int    `json:"course_id"`
	StudentID null.Int    `json:"student_id"`
	CreatedAt time.Time   `json:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at"` // UTC
}

type ReportCard struct {
	ID             int       `json:"id"`
	Topic          string    `json:"topic"`
	Grade          int       `json:"grade"`
	TeacherRemarks string    `json:"teacher_remarks"`
	CourseID       null.Int  `json:"course_id"`
	TeacherID      null.Int  `json:"teacher_id"`
	StudentID      null.Int  `json:"student_id"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

type Event struct {
	ID         int            `json:"id"`
	GroupID    null.Int       `json:"groupId"`
	AllDay     bool           `json:"allDay"`
	Start      core.Date      `json:"start"`
	End        core.Date      `json:"end"`
	DaysOfWeek string         `json:"daysOfWeek"`
	StartTime  core.TimeOfDay `json:"startTime"`
	EndTime    core.TimeOfDay `json:"endTime"`
	StartRecur core.Date      `json:"startRecur"`
	EndRecur   core.Date      `json:"endRecur"`
	Title      string         `json:"title"`
	CourseID   null.Int       `json:"course_id"`
	StudentID  null.Int       `json:"student_id"`
	TeacherID  null.Int       `json:"teacher_id"`
}

type Comment struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Body      string    `json:"content"`
	Author    Owner     `json:"-"` // a Teacher, Student or Parent
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}
