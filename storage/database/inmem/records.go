package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/school"
)

func (repo *Repository) CreateAssignment(_ context.Context, a school.Assignment) (school.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a.ID = repo.db.nextPK()
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *Repository) QueryAllAssignments(_ context.Context) ([]school.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	assignments := make([]school.Assignment, 0, len(repo.db.assignments))
	for _, a := range repo.db.assignments {
		assignments = append(assignments, *a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (repo *Repository) GetAssignmentByID(_ context.Context, id int) (school.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return *a, nil
	}
	return school.Assignment{}, school.ErrNotFound
}

func (repo *Repository) UpdateAssignment(_ context.Context, a school.Assignment) (school.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[a.ID]; !ok {
		return school.Assignment{}, school.ErrNotFound
	}
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *Repository) DeleteAssignment(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.assignments, id)
	return nil
}

func (repo *Repository) CreateSubmission(_ context.Context, sa school.SubmittedAssignment) (school.SubmittedAssignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sa.ID = repo.db.nextPK()
	repo.db.submissions[sa.ID] = &sa
	return sa, nil
}

func (repo *Repository) QueryAllSubmissions(_ context.Context) ([]school.SubmittedAssignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	submissions := make([]school.SubmittedAssignment, 0, len(repo.db.submissions))
	for _, sa := range repo.db.submissions {
		submissions = append(submissions, *sa)
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].ID < submissions[j].ID })
	return submissions, nil
}

func (repo *Repository) GetSubmissionByID(_ context.Context, id int) (school.SubmittedAssignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sa, ok := repo.db.submissions[id]; ok {
		return *sa, nil
	}
	return school.SubmittedAssignment{}, school.ErrNotFound
}

func (repo *Repository) UpdateSubmission(_ context.Context, sa school.SubmittedAssignment) (school.SubmittedAssignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.submissions[sa.ID]; !ok {
		return school.SubmittedAssignment{}, school.ErrNotFound
	}
	repo.db.submissions[sa.ID] = &sa
	return sa, nil
}

func (repo *Repository) DeleteSubmission(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.submissions[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.submissions, id)
	return nil
}

func (repo *Repository) CreateReportCard(_ context.Context, rc school.ReportCard) (school.ReportCard, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rc.ID = repo.db.nextPK()
	repo.db.reportCards[rc.ID] = &rc
	return rc, nil
}

func (repo *Repository) QueryAllReportCards(_ context.Context) ([]school.ReportCard, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	reportCards := make([]school.ReportCard, 0, len(repo.db.reportCards))
	for _, rc := range repo.db.reportCards {
		reportCards = append(reportCards, *rc)
	}
	sort.Slice(reportCards, func(i, j int) bool { return reportCards[i].ID < reportCards[j].ID })
	return reportCards, nil
}

func (repo *Repository) GetReportCardByID(_ context.Context, id int) (school.ReportCard, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rc, ok := repo.db.reportCards[id]; ok {
		return *rc, nil
	}
	return school.ReportCard{}, school.ErrNotFound
}

func (repo *Repository) UpdateReportCard(_ context.Context, rc school.ReportCard) (school.ReportCard, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.reportCards[rc.ID]; !ok {
		return school.ReportCard{}, school.ErrNotFound
	}
	repo.db.reportCards[rc.ID] = &rc
	return rc, nil
}

func (repo *Repository) DeleteReportCard(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.reportCards[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.reportCards, id)
	return nil
}
