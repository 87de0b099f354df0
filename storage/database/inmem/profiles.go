package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

func (repo *Repository) CheckTeacherUniqueness(_ context.Context, personalEmail, email string, excluded ...school.Teacher) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excl := make(map[int]bool, len(excluded))
	for _, t := range excluded {
		excl[t.ID] = true
	}
	for _, t := range repo.db.teachers {
		if excl[t.ID] {
			continue
		}
		if t.PersonalEmail == personalEmail {
			return school.ErrPersonalEmailExists
		}
		if t.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *Repository) CreateTeacher(_ context.Context, t school.Teacher, identity user.User) (school.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t.ID = repo.db.nextPK()
	repo.db.teachers[t.ID] = &t
	identity.TeacherID = null.IntFrom(t.ID)
	repo.db.users[identity.Email] = &identity
	return t, nil
}

func (repo *Repository) QueryAllTeachers(_ context.Context) ([]school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	teachers := make([]school.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		teachers = append(teachers, *t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (repo *Repository) GetTeacherByID(_ context.Context, id int) (school.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	t, ok := repo.db.teachers[id]
	if !ok {
		return school.Teacher{}, school.ErrNotFound
	}
	res := *t
	res.Docs = repo.contentsWhere(func(c school.Content) bool {
		return c.Owner.Kind == school.OwnerTeacher && c.Owner.ID == id
	})
	res.Courses = repo.coursesOfTeacher(id)
	return res, nil
}

func (repo *Repository) UpdateTeacher(_ context.Context, t school.Teacher) (school.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.teachers[t.ID]
	if !ok {
		return school.Teacher{}, school.ErrNotFound
	}
	t.Email = orig.Email
	t.PasswordHash = orig.PasswordHash
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *Repository) DeleteTeacher(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.teachers[id]; !ok {
		return school.ErrNotFound
	}
	for cid, c := range repo.db.contents {
		if c.Owner.Kind == school.OwnerTeacher && c.Owner.ID == id {
			delete(repo.db.contents, cid)
		}
	}
	for sid, sc := range repo.db.savedContents {
		if sc.Owner.Kind == school.OwnerTeacher && sc.Owner.ID == id {
			delete(repo.db.savedContents, sid)
		}
	}
	for cid, c := range repo.db.comments {
		if c.Author.Kind == school.OwnerTeacher && c.Author.ID == id {
			delete(repo.db.comments, cid)
		}
	}
	for aid, a := range repo.db.assignments {
		if a.TeacherID.Valid && a.TeacherID.Int == id {
			delete(repo.db.assignments, aid)
		}
	}
	for rid, rc := range repo.db.reportCards {
		if rc.TeacherID.Valid && rc.TeacherID.Int == id {
			delete(repo.db.reportCards, rid)
		}
	}
	for eid, ev := range repo.db.events {
		if ev.TeacherID.Valid && ev.TeacherID.Int == id {
			delete(repo.db.events, eid)
		}
	}
	for key := range repo.db.courseTeachers {
		if key[1] == id {
			delete(repo.db.courseTeachers, key)
		}
	}
	repo.db.deleteIdentityLocked(func(u user.User) bool {
		return u.TeacherID.Valid && u.TeacherID.Int == id
	})
	delete(repo.db.teachers, id)
	return nil
}

func (repo *Repository) CheckStudentUniqueness(_ context.Context, personalEmail, email string, excluded ...school.Student) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excl := make(map[int]bool, len(excluded))
	for _, s := range excluded {
		excl[s.ID] = true
	}
	for _, s := range repo.db.students {
		if excl[s.ID] {
			continue
		}
		if s.PersonalEmail == personalEmail {
			return school.ErrPersonalEmailExists
		}
		if s.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *Repository) CreateStudent(_ context.Context, s school.Student, identity user.User) (school.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = repo.db.nextPK()
	repo.db.students[s.ID] = &s
	identity.StudentID = null.IntFrom(s.ID)
	repo.db.users[identity.Email] = &identity
	return s, nil
}

func (repo *Repository) QueryAllStudents(_ context.Context) ([]school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]school.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *Repository) GetStudentByID(_ context.Context, id int) (school.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	s, ok := repo.db.students[id]
	if !ok {
		return school.Student{}, school.ErrNotFound
	}
	res := *s
	if res.ParentID.Valid {
		if p, ok := repo.db.parents[res.ParentID.Int]; ok {
			parent := *p
			res.Parent = &parent
		}
	}
	res.Courses = repo.coursesOfStudent(id)
	res.Docs = repo.contentsWhere(func(c school.Content) bool {
		return c.Owner.Kind == school.OwnerStudent && c.Owner.ID == id
	})
	res.SavedItems = repo.savedContentsWhere(func(sc school.SavedContent) bool {
		return sc.Owner.Kind == school.OwnerStudent && sc.Owner.ID == id
	})
	res.ReportCards = []school.ReportCard{}
	for _, rc := range repo.db.reportCards {
		if rc.StudentID.Valid && rc.StudentID.Int == id {
			res.ReportCards = append(res.ReportCards, *rc)
		}
	}
	sort.Slice(res.ReportCards, func(i, j int) bool { return res.ReportCards[i].ID < res.ReportCards[j].ID })
	res.Submissions = []school.SubmittedAssignment{}
	for _, sa := range repo.db.submissions {
		if sa.StudentID.Valid && sa.StudentID.Int == id {
			res.Submissions = append(res.Submissions, *sa)
		}
	}
	sort.Slice(res.Submissions, func(i, j int) bool { return res.Submissions[i].ID < res.Submissions[j].ID })
	res.Events = []school.Event{}
	for _, ev := range repo.db.events {
		if ev.StudentID.Valid && ev.StudentID.Int == id {
			res.Events = append(res.Events, *ev)
		}
	}
	sort.Slice(res.Events, func(i, j int) bool { return res.Events[i].ID < res.Events[j].ID })
	return res, nil
}

func (repo *Repository) UpdateStudent(_ context.Context, s school.Student) (school.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.students[s.ID]
	if !ok {
		return school.Student{}, school.ErrNotFound
	}
	s.Email = orig.Email
	s.PasswordHash = orig.PasswordHash
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *Repository) DeleteStudent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return school.ErrNotFound
	}
	repo.deleteStudentLocked(id)
	return nil
}

func (repo *Repository) deleteStudentLocked(id int) {
	for cid, c := range repo.db.contents {
		if c.Owner.Kind == school.OwnerStudent && c.Owner.ID == id {
			delete(repo.db.contents, cid)
		}
	}
	for sid, sc := range repo.db.savedContents {
		if sc.Owner.Kind == school.OwnerStudent && sc.Owner.ID == id {
			delete(repo.db.savedContents, sid)
		}
	}
	for cid, c := range repo.db.comments {
		if c.Author.Kind == school.OwnerStudent && c.Author.ID == id {
			delete(repo.db.comments, cid)
		}
	}
	for sid, sa := range repo.db.submissions {
		if sa.StudentID.Valid && sa.StudentID.Int == id {
			delete(repo.db.submissions, sid)
		}
	}
	for rid, rc := range repo.db.reportCards {
		if rc.StudentID.Valid && rc.StudentID.Int == id {
			delete(repo.db.reportCards, rid)
		}
	}
	for eid, ev := range repo.db.events {
		if ev.StudentID.Valid && ev.StudentID.Int == id {
			delete(repo.db.events, eid)
		}
	}
	for key := range repo.db.courseStudents {
		if key[1] == id {
			delete(repo.db.courseStudents, key)
		}
	}
	repo.db.deleteIdentityLocked(func(u user.User) bool {
		return u.StudentID.Valid && u.StudentID.Int == id
	})
	delete(repo.db.students, id)
}

func (repo *Repository) CheckParentUniqueness(_ context.Context, email string, excluded ...school.Parent) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excl := make(map[int]bool, len(excluded))
	for _, p := range excluded {
		excl[p.ID] = true
	}
	for _, p := range repo.db.parents {
		if excl[p.ID] {
			continue
		}
		if p.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *Repository) CreateParent(_ context.Context, p school.Parent, identity user.User) (school.Parent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p.ID = repo.db.nextPK()
	repo.db.parents[p.ID] = &p
	identity.ParentID = null.IntFrom(p.ID)
	repo.db.users[identity.Email] = &identity
	return p, nil
}

func (repo *Repository) QueryAllParents(_ context.Context) ([]school.Parent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	parents := make([]school.Parent, 0, len(repo.db.parents))
	for _, p := range repo.db.parents {
		parents = append(parents, *p)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i].ID < parents[j].ID })
	return parents, nil
}

func (repo *Repository) GetParentByID(_ context.Context, id int) (school.Parent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	p, ok := repo.db.parents[id]
	if !ok {
		return school.Parent{}, school.ErrNotFound
	}
	res := *p
	res.Children = []school.Student{}
	for _, s := range repo.db.students {
		if s.ParentID.Valid && s.ParentID.Int == id {
			res.Children = append(res.Children, *s)
		}
	}
	sort.Slice(res.Children, func(i, j int) bool { return res.Children[i].ID < res.Children[j].ID })
	return res, nil
}

func (repo *Repository) UpdateParent(_ context.Context, p school.Parent) (school.Parent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.parents[p.ID]
	if !ok {
		return school.Parent{}, school.ErrNotFound
	}
	p.Email = orig.Email
	p.PasswordHash = orig.PasswordHash
	repo.db.parents[p.ID] = &p
	return p, nil
}

func (repo *Repository) DeleteParent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.parents[id]; !ok {
		return school.ErrNotFound
	}
	for cid, c := range repo.db.comments {
		if c.Author.Kind == school.OwnerParent && c.Author.ID == id {
			delete(repo.db.comments, cid)
		}
	}
	// children go with the parent, along with everything they own
	for sid, s := range repo.db.students {
		if s.ParentID.Valid && s.ParentID.Int == id {
			repo.deleteStudentLocked(sid)
		}
	}
	repo.db.deleteIdentityLocked(func(u user.User) bool {
		return u.ParentID.Valid && u.ParentID.Int == id
	})
	delete(repo.db.parents, id)
	return nil
}
