package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/school"
)

func (repo *Repository) CheckCourseNameUniqueness(_ context.Context, name string, excluded ...school.Course) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excl := make(map[int]bool, len(excluded))
	for _, c := range excluded {
		excl[c.ID] = true
	}
	for _, c := range repo.db.courses {
		if c.Name == name && !excl[c.ID] {
			return school.ErrCourseNameExists
		}
	}
	return nil
}

func (repo *Repository) CreateCourse(_ context.Context, c school.Course) (school.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.courses[c.ID] = &c
	return c, nil
}

// loadCourseLocked returns a copy of the course with its roster and content
// populated. Callers must hold at least the read lock.
func (repo *Repository) loadCourseLocked(c school.Course) school.Course {
	c.Teachers = []school.Teacher{}
	for key := range repo.db.courseTeachers {
		if key[0] == c.ID {
			if t, ok := repo.db.teachers[key[1]]; ok {
				c.Teachers = append(c.Teachers, *t)
			}
		}
	}
	sort.Slice(c.Teachers, func(i, j int) bool { return c.Teachers[i].ID < c.Teachers[j].ID })

	c.Students = []school.Student{}
	for key := range repo.db.courseStudents {
		if key[0] == c.ID {
			if s, ok := repo.db.students[key[1]]; ok {
				c.Students = append(c.Students, *s)
			}
		}
	}
	sort.Slice(c.Students, func(i, j int) bool { return c.Students[i].ID < c.Students[j].ID })

	c.Content = repo.contentsWhere(func(cnt school.Content) bool {
		return cnt.CourseID.Valid && cnt.CourseID.Int == c.ID
	})
	return c
}

func (repo *Repository) coursesOfTeacher(teacherID int) []school.Course {
	courses := []school.Course{}
	for key := range repo.db.courseTeachers {
		if key[1] == teacherID {
			if c, ok := repo.db.courses[key[0]]; ok {
				courses = append(courses, repo.loadCourseLocked(*c))
			}
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *Repository) coursesOfStudent(studentID int) []school.Course {
	courses := []school.Course{}
	for key := range repo.db.courseStudents {
		if key[1] == studentID {
			if c, ok := repo.db.courses[key[0]]; ok {
				courses = append(courses, repo.loadCourseLocked(*c))
			}
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *Repository) QueryAllCourses(_ context.Context) ([]school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]school.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, repo.loadCourseLocked(*c))
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (repo *Repository) GetCourseByID(_ context.Context, id int) (school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	c, ok := repo.db.courses[id]
	if !ok {
		return school.Course{}, school.ErrNotFound
	}
	return repo.loadCourseLocked(*c), nil
}

func (repo *Repository) UpdateCourse(_ context.Context, c school.Course) (school.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[c.ID]; !ok {
		return school.Course{}, school.ErrNotFound
	}
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *Repository) DeleteCourse(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return school.ErrNotFound
	}
	for cid, c := range repo.db.contents {
		if c.CourseID.Valid && c.CourseID.Int == id {
			delete(repo.db.contents, cid)
		}
	}
	for sid, sc := range repo.db.savedContents {
		if sc.CourseID.Valid && sc.CourseID.Int == id {
			delete(repo.db.savedContents, sid)
		}
	}
	for aid, a := range repo.db.assignments {
		if a.CourseID.Valid && a.CourseID.Int == id {
			delete(repo.db.assignments, aid)
		}
	}
	for sid, sa := range repo.db.submissions {
		if sa.CourseID.Valid && sa.CourseID.Int == id {
			delete(repo.db.submissions, sid)
		}
	}
	for rid, rc := range repo.db.reportCards {
		if rc.CourseID.Valid && rc.CourseID.Int == id {
			delete(repo.db.reportCards, rid)
		}
	}
	for eid, ev := range repo.db.events {
		if ev.CourseID.Valid && ev.CourseID.Int == id {
			delete(repo.db.events, eid)
		}
	}
	for key := range repo.db.courseTeachers {
		if key[0] == id {
			delete(repo.db.courseTeachers, key)
		}
	}
	for key := range repo.db.courseStudents {
		if key[0] == id {
			delete(repo.db.courseStudents, key)
		}
	}
	delete(repo.db.courses, id)
	return nil
}

func (repo *Repository) AddCourseTeacher(_ context.Context, courseID, teacherID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[courseID]; !ok {
		return school.ErrNotFound
	}
	if _, ok := repo.db.teachers[teacherID]; !ok {
		return school.ErrNotFound
	}
	repo.db.courseTeachers[[2]int{courseID, teacherID}] = true
	return nil
}

func (repo *Repository) RemoveCourseTeacher(_ context.Context, courseID, teacherID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := [2]int{courseID, teacherID}
	if !repo.db.courseTeachers[key] {
		return school.ErrNotFound
	}
	delete(repo.db.courseTeachers, key)
	return nil
}

func (repo *Repository) AddCourseStudent(_ context.Context, courseID, studentID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[courseID]; !ok {
		return school.ErrNotFound
	}
	if _, ok := repo.db.students[studentID]; !ok {
		return school.ErrNotFound
	}
	repo.db.courseStudents[[2]int{courseID, studentID}] = true
	return nil
}

func (repo *Repository) RemoveCourseStudent(_ context.Context, courseID, studentID int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := [2]int{courseID, studentID}
	if !repo.db.courseStudents[key] {
		return school.ErrNotFound
	}
	delete(repo.db.courseStudents, key)
	return nil
}

func (repo *Repository) CreateContent(_ context.Context, c school.Content) (school.Content, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c.ID = repo.db.nextPK()
	repo.db.contents[c.ID] = &c
	return c, nil
}

func (repo *Repository) QueryAllContents(_ context.Context) ([]school.Content, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.contentsWhere(func(school.Content) bool { return true }), nil
}

func (repo *Repository) GetContentByID(_ context.Context, id int) (school.Content, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.contents[id]; ok {
		return *c, nil
	}
	return school.Content{}, school.ErrNotFound
}

func (repo *Repository) UpdateContent(_ context.Context, c school.Content) (school.Content, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.contents[c.ID]; !ok {
		return school.Content{}, school.ErrNotFound
	}
	repo.db.contents[c.ID] = &c
	return c, nil
}

func (repo *Repository) DeleteContent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.contents[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.contents, id)
	return nil
}

func (repo *Repository) CreateSavedContent(_ context.Context, sc school.SavedContent) (school.SavedContent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sc.ID = repo.db.nextPK()
	repo.db.savedContents[sc.ID] = &sc
	return sc, nil
}

func (repo *Repository) QueryAllSavedContents(_ context.Context) ([]school.SavedContent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.savedContentsWhere(func(school.SavedContent) bool { return true }), nil
}

func (repo *Repository) GetSavedContentByID(_ context.Context, id int) (school.SavedContent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sc, ok := repo.db.savedContents[id]; ok {
		return *sc, nil
	}
	return school.SavedContent{}, school.ErrNotFound
}

func (repo *Repository) DeleteSavedContent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.savedContents[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.savedContents, id)
	return nil
}
