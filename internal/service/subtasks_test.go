package service

import (
	"context"
	"testing"

	"minder/internal/models"
)

func TestSubtaskDefaultsRequired(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Checklist")
	task := svc.mustTask(t, project.Slug, "Parent")

	subtask, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "Step one"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !subtask.RequiredForCompletion {
		t.Fatal("required_for_completion must default to true")
	}
	if subtask.Status != models.TaskNotStarted {
		t.Fatalf("expected NOT_STARTED, got %q", subtask.Status)
	}
}

func TestSubtaskRejectsAbandoned(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Checklist")
	task := svc.mustTask(t, project.Slug, "Parent")
	subtask, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "Step"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.subtasks.Update(ctx, subtask.ID, SubtaskUpdateInput{Status: strptr("IN_PROGRESS")}); err != nil {
		t.Fatalf("start: %v", err)
	}

	// ABANDONED belongs to tasks only.
	_, err = svc.subtasks.Update(ctx, subtask.ID, SubtaskUpdateInput{Status: strptr("ABANDONED")})
	if !models.IsKind(err, models.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubtaskTransitionRules(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Checklist")
	task := svc.mustTask(t, project.Slug, "Parent")
	subtask, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "Step"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.subtasks.Update(ctx, subtask.ID, SubtaskUpdateInput{Status: strptr("COMPLETED")})
	if !models.IsKind(err, models.KindInvalidTransition) {
		t.Fatalf("expected invalid_transition from NOT_STARTED, got %v", err)
	}

	for _, status := range []string{"IN_PROGRESS", "PAUSED", "BLOCKED", "IN_PROGRESS", "COMPLETED"} {
		if _, err := svc.subtasks.Update(ctx, subtask.ID, SubtaskUpdateInput{Status: strptr(status)}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}
}

func TestSubtaskListStatusFilter(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Checklist")
	task := svc.mustTask(t, project.Slug, "Parent")

	first, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "First"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "Second"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := svc.subtasks.Update(ctx, first.ID, SubtaskUpdateInput{Status: strptr("IN_PROGRESS")}); err != nil {
		t.Fatalf("start: %v", err)
	}

	got, err := svc.subtasks.List(ctx, project.Slug, task.Slug, "in_progress")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("expected only the in-progress subtask, got %+v", got)
	}
}

func TestSubtaskDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Checklist")
	task := svc.mustTask(t, project.Slug, "Parent")
	subtask, err := svc.subtasks.Create(ctx, SubtaskCreateInput{Project: project.Slug, Task: task.Slug, Name: "Gone"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.subtasks.Delete(ctx, subtask.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.subtasks.Delete(ctx, subtask.ID)
	if !models.IsKind(err, models.KindNotFound) {
		t.Fatalf("expected not_found on second delete, got %v", err)
	}
}
