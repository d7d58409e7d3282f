package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/efforttracker/effort-api/internal/core/domain"
	"github.com/efforttracker/effort-api/internal/core/ports"
)

type taskFixture struct {
	svc     *TaskService
	users   *stubUserRepo
	tasks   *stubTaskRepo
	entries *stubEntryRepo
}

func newTaskFixture() *taskFixture {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	entries := newStubEntryRepo()
	return &taskFixture{
		svc:     NewTaskService(tasks, entries, users, zerolog.Nop()),
		users:   users,
		tasks:   tasks,
		entries: entries,
	}
}

func TestTaskService_Create_DefaultsStatus(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.Create(context.Background(), ports.CreateTaskInput{Name: "cleanup"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Status != domain.TaskStatusOpen {
		t.Fatalf("expected status open, got %s", task.Status)
	}
	if task.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestTaskService_Create_EmptyName(t *testing.T) {
	f := newTaskFixture()

	if _, err := f.svc.Create(context.Background(), ports.CreateTaskInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTaskService_CreateWithEntries(t *testing.T) {
	f := newTaskFixture()
	user := &domain.User{ID: "u1", Email: "u1@example.com", HourlyRate: dec("50.00")}
	_, _ = f.users.Create(context.Background(), user)

	task, err := f.svc.CreateWithEntries(context.Background(), ports.CreateTaskWithEntriesInput{
		Task:   ports.CreateTaskInput{Name: "launch"},
		UserID: user.ID,
		Entries: []ports.TaskEntrySeed{
			{Date: date(2026, time.July, 1), Hours: dec("2"), Description: "prep"},
			{Date: date(2026, time.July, 2), Hours: dec("3"), Description: "rollout"},
		},
	})
	if err != nil {
		t.Fatalf("create with entries failed: %v", err)
	}

	seeded, err := f.entries.FindByTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("find by task failed: %v", err)
	}
	if len(seeded) != 2 {
		t.Fatalf("expected 2 seeded entries, got %d", len(seeded))
	}
	for _, e := range seeded {
		if e.UserID != user.ID {
			t.Fatalf("entry not owned by requesting user")
		}
	}
	if !seeded[0].Earnings.Equal(dec("100.00")) {
		t.Fatalf("expected earnings 100.00, got %s", seeded[0].Earnings)
	}
}

func TestTaskService_CreateWithEntries_UnknownUser(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.CreateWithEntries(context.Background(), ports.CreateTaskWithEntriesInput{
		Task:   ports.CreateTaskInput{Name: "launch"},
		UserID: "nope",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTaskService_CreateWithEntries_BadSeedWritesNothing(t *testing.T) {
	f := newTaskFixture()
	user := &domain.User{ID: "u1", Email: "u1@example.com", HourlyRate: dec("10.00")}
	_, _ = f.users.Create(context.Background(), user)

	_, err := f.svc.CreateWithEntries(context.Background(), ports.CreateTaskWithEntriesInput{
		Task:   ports.CreateTaskInput{Name: "launch"},
		UserID: user.ID,
		Entries: []ports.TaskEntrySeed{
			{Date: date(2026, time.July, 1), Hours: dec("2"), Description: "prep"},
			{Date: date(2026, time.July, 2), Hours: dec("30"), Description: "rollout"},
		},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	tasks, err := f.tasks.FindAll(context.Background(), ports.TaskFilter{})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no task persisted after failed create, got %d", len(tasks))
	}
}

func TestTaskService_ListForUser(t *testing.T) {
	f := newTaskFixture()
	user := &domain.User{ID: "u1", Email: "u1@example.com"}
	_, _ = f.users.Create(context.Background(), user)

	beta, _ := f.tasks.Create(context.Background(), &domain.Task{ID: "t2", Name: "beta"})
	alpha, _ := f.tasks.Create(context.Background(), &domain.Task{ID: "t1", Name: "alpha"})
	_, _ = f.tasks.Create(context.Background(), &domain.Task{ID: "t3", Name: "untouched"})

	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e1", UserID: user.ID, TaskID: beta.ID, Date: date(2026, 1, 1)})
	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e2", UserID: user.ID, TaskID: alpha.ID, Date: date(2026, 1, 2)})
	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e3", UserID: user.ID, TaskID: alpha.ID, Date: date(2026, 1, 3)})

	tasks, err := f.svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list for user failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "alpha" || tasks[1].Name != "beta" {
		t.Fatalf("tasks not name-sorted: %s, %s", tasks[0].Name, tasks[1].Name)
	}
}

func TestTaskService_Update_Partial(t *testing.T) {
	f := newTaskFixture()
	task, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Name: "draft", Description: "original"})

	status := domain.TaskStatusDone
	updated, err := f.svc.Update(context.Background(), task.ID, ports.UpdateTaskInput{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.TaskStatusDone {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	if updated.Name != "draft" || updated.Description != "original" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	empty := ""
	if _, err := f.svc.Update(context.Background(), task.ID, ports.UpdateTaskInput{Name: &empty}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestTaskService_Delete_CascadesEntries(t *testing.T) {
	f := newTaskFixture()
	user := &domain.User{ID: "u1", Email: "u1@example.com"}
	_, _ = f.users.Create(context.Background(), user)
	task, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Name: "doomed"})

	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e1", UserID: user.ID, TaskID: task.ID, Date: date(2026, 1, 1)})
	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e2", UserID: user.ID, TaskID: task.ID, Date: date(2026, 1, 2)})
	_ = f.entries.Insert(context.Background(), &domain.TimeEntry{ID: "e3", UserID: user.ID, TaskID: "", Date: date(2026, 1, 3)})

	if err := f.svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := f.tasks.FindByID(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task still present after delete")
	}
	remaining, _ := f.entries.FindByUser(context.Background(), user.ID)
	if len(remaining) != 1 || remaining[0].ID != "e3" {
		t.Fatalf("cascade removed wrong entries: %d remaining", len(remaining))
	}
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	f := newTaskFixture()

	if err := f.svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
