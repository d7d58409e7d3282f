package service

import (
	"context"
	"sort"
	"time"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They mirror the
// contracts documented on the ports: sentinel errors for missing rows, a
// duplicate-email conflict on user creation, date-ascending range queries and
// an all-or-nothing UpdateMany.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *stubUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *stubTaskRepo) FindAll(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if !filter.DueBefore.IsZero() {
			if t.DueDate == nil || !t.DueDate.Before(filter.DueBefore) {
				continue
			}
		}
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubTaskRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type stubEntryRepo struct {
	entries map[string]*domain.TimeEntry
	seq     []string // insertion order
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{entries: make(map[string]*domain.TimeEntry)}
}

func cloneEntry(e *domain.TimeEntry) *domain.TimeEntry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEntryRepo) Insert(_ context.Context, entry *domain.TimeEntry) error {
	r.entries[entry.ID] = cloneEntry(entry)
	r.seq = append(r.seq, entry.ID)
	return nil
}

func (r *stubEntryRepo) InsertMany(ctx context.Context, entries []*domain.TimeEntry) error {
	for _, e := range entries {
		if err := r.Insert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubEntryRepo) FindByID(_ context.Context, id string) (*domain.TimeEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *stubEntryRepo) all() []*domain.TimeEntry {
	out := make([]*domain.TimeEntry, 0, len(r.seq))
	for _, id := range r.seq {
		if e, ok := r.entries[id]; ok {
			out = append(out, cloneEntry(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *stubEntryRepo) FindByUser(_ context.Context, userID string) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, e := range r.all() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEntryRepo) FindByUserInRange(_ context.Context, userID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, e := range r.all() {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEntryRepo) FindInRange(_ context.Context, from, to time.Time) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, e := range r.all() {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEntryRepo) FindByTask(_ context.Context, taskID string) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, e := range r.all() {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEntryRepo) Update(_ context.Context, entry *domain.TimeEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (r *stubEntryRepo) UpdateMany(_ context.Context, entries []*domain.TimeEntry) error {
	for _, e := range entries {
		if _, ok := r.entries[e.ID]; !ok {
			return domain.ErrEntryNotFound
		}
	}
	for _, e := range entries {
		r.entries[e.ID] = cloneEntry(e)
	}
	return nil
}

func (r *stubEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *stubEntryRepo) DeleteByTask(_ context.Context, taskID string) (int64, error) {
	var n int64
	for id, e := range r.entries {
		if e.TaskID == taskID {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

type stubRevoker struct {
	revoked map[string]bool
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (r *stubRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	r.revoked[token] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}
