package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

// DB is an in-memory stand-in for the relational store, used in tests.
// One mutex guards every table so cascade deletes stay atomic.
type DB struct {
	mutex   sync.RWMutex
	pkCount int

	users map[string]*user.User // by email

	teachers      map[int]*school.Teacher
	students      map[int]*school.Student
	parents       map[int]*school.Parent
	courses       map[int]*school.Course
	contents      map[int]*school.Content
	savedContents map[int]*school.SavedContent
	assignments   map[int]*school.Assignment
	submissions   map[int]*school.SubmittedAssignment
	reportCards   map[int]*school.ReportCard
	events        map[int]*school.Event
	comments      map[int]*school.Comment

	courseTeachers map[[2]int]bool // {courseID, teacherID}
	courseStudents map[[2]int]bool // {courseID, studentID}
}

func Open() (*DB, error) {
	db := &DB{
		users:          make(map[string]*user.User),
		teachers:       make(map[int]*school.Teacher),
		students:       make(map[int]*school.Student),
		parents:        make(map[int]*school.Parent),
		courses:        make(map[int]*school.Course),
		contents:       make(map[int]*school.Content),
		savedContents:  make(map[int]*school.SavedContent),
		assignments:    make(map[int]*school.Assignment),
		submissions:    make(map[int]*school.SubmittedAssignment),
		reportCards:    make(map[int]*school.ReportCard),
		events:         make(map[int]*school.Event),
		comments:       make(map[int]*school.Comment),
		courseTeachers: make(map[[2]int]bool),
		courseStudents: make(map[[2]int]bool),
	}
	return db, nil
}

// nextPK hands out surrogate keys; callers must hold the write lock.
func (db *DB) nextPK() int {
	db.pkCount++
	return db.pkCount
}

// PutUser stores a bare identity row, bypassing profile creation. Test helper.
func (db *DB) PutUser(usr user.User) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.users[usr.Email] = &usr
}
