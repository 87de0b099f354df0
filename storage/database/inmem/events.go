package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/darasa/core/school"
)

func (repo *Repository) CreateEvent(_ context.Context, ev school.Event) (school.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ev.ID = repo.db.nextPK()
	repo.db.events[ev.ID] = &ev
	return ev, nil
}

func (repo *Repository) QueryAllEvents(_ context.Context) ([]school.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]school.Event, 0, len(repo.db.events))
	for _, ev := range repo.db.events {
		events = append(events, *ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (repo *Repository) GetEventByID(_ context.Context, id int) (school.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ev, ok := repo.db.events[id]; ok {
		return *ev, nil
	}
	return school.Event{}, school.ErrNotFound
}

func (repo *Repository) UpdateEvent(_ context.Context, ev school.Event) (school.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.events[ev.ID]; !ok {
		return school.Event{}, school.ErrNotFound
	}
	repo.db.events[ev.ID] = &ev
	return ev, nil
}

func (repo *Repository) DeleteEvent(_ context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.events[id]; !ok {
		return school.ErrNotFound
	}
	delete(repo.db.events, id)
	return nil
}
