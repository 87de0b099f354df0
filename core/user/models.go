package user

import (
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"
)

// Kind tags which profile an identity authenticates.
type Kind string

const (
	KindTeacher Kind = "teacher"
	KindStudent Kind = "student"
	KindParent  Kind = "parent"
)

// User is the authentication record paired with exactly one
// Teacher, Student or Parent profile. The role link is immutable.
type User struct {
	Email        string   `json:"email"`
	PasswordHash []byte   `json:"-"`
	TeacherID    null.Int `json:"teacher_id"`
	StudentID    null.Int `json:"student_id"`
	ParentID     null.Int `json:"parent_id"`
}

// New returns the identity record for a freshly created profile.
func New(kind Kind, profileID int, email string, hash []byte) User {
	usr := User{Email: email, PasswordHash: hash}
	switch kind {
	case KindTeacher:
		usr.TeacherID = null.IntFrom(profileID)
	case KindStudent:
		usr.StudentID = null.IntFrom(profileID)
	case KindParent:
		usr.ParentID = null.IntFrom(profileID)
	}
	return usr
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) Kind() Kind {
	switch {
	case u.TeacherID.Valid:
		return KindTeacher
	case u.StudentID.Valid:
		return KindStudent
	default:
		return KindParent
	}
}

// ProfileID returns the id of the linked profile, whichever role it is.
func (u User) ProfileID() int {
	switch {
	case u.TeacherID.Valid:
		return u.TeacherID.Int
	case u.StudentID.Valid:
		return u.StudentID.Int
	default:
		return u.ParentID.Int
	}
}

func (u User) IsTeacher() bool { return u.TeacherID.Valid }
func (u User) IsStudent() bool { return u.StudentID.Valid }
func (u User) IsParent() bool  { return u.ParentID.Valid }
