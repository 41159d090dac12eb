package service

import (
	"context"
	"strings"
	"testing"

	"minder/internal/models"
)

func strptr(s string) *string { return &s }

func TestCreateProjectDefaults(t *testing.T) {
	svc := newTestServices(t)

	project, err := svc.projects.Create(context.Background(), ProjectCreateInput{Name: "  Fresh Start  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Status != models.ProjectActive {
		t.Fatalf("expected default ACTIVE, got %q", project.Status)
	}
	if project.Name != "Fresh Start" {
		t.Fatalf("expected trimmed name, got %q", project.Name)
	}
	if project.Slug != "fresh-start" {
		t.Fatalf("expected slug 'fresh-start', got %q", project.Slug)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.projects.Create(ctx, ProjectCreateInput{Name: ""})
	if !models.IsKind(err, models.KindValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}

	_, err = svc.projects.Create(ctx, ProjectCreateInput{Name: strings.Repeat("x", models.MaxNameLength+1)})
	if !models.IsKind(err, models.KindValidation) {
		t.Fatalf("expected validation error for long name, got %v", err)
	}

	_, err = svc.projects.Create(ctx, ProjectCreateInput{Name: "ok", Status: "BOGUS"})
	if !models.IsKind(err, models.KindValidation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
}

func TestCreateProjectExplicitStatus(t *testing.T) {
	svc := newTestServices(t)

	project, err := svc.projects.Create(context.Background(), ProjectCreateInput{Name: "Someday", Status: "prospective"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Status != models.ProjectProspective {
		t.Fatalf("expected PROSPECTIVE, got %q", project.Status)
	}
}

func TestUpdateProjectTransitionRules(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Rules")

	// ACTIVE -> ARCHIVED skips COMPLETED/CANCELLED and must be refused.
	_, err := svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("ARCHIVED")})
	if !models.IsKind(err, models.KindInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	updated, err := svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("CANCELLED")})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != models.ProjectCancelled {
		t.Fatalf("expected CANCELLED, got %q", updated.Status)
	}

	updated, err = svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("ARCHIVED")})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if updated.Status != models.ProjectArchived {
		t.Fatalf("expected ARCHIVED, got %q", updated.Status)
	}

	// ARCHIVED is terminal.
	_, err = svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("ACTIVE")})
	if !models.IsKind(err, models.KindInvalidTransition) {
		t.Fatalf("expected invalid_transition out of ARCHIVED, got %v", err)
	}
}

func TestCompleteProjectRequiresFinishedTasks(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Gated")
	task := svc.mustTask(t, project.Slug, "Open work")

	_, err := svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("COMPLETED")})
	if !models.IsKind(err, models.KindIncompleteChildren) {
		t.Fatalf("expected incomplete_children, got %v", err)
	}
	if !strings.Contains(err.Error(), "Open work") {
		t.Fatalf("expected blocker name in message, got %q", err.Error())
	}

	// Abandoning the task satisfies the gate.
	if _, err := svc.tasks.Update(ctx, project.Slug, task.Slug, TaskUpdateInput{Status: strptr("IN_PROGRESS")}); err != nil {
		t.Fatalf("start task: %v", err)
	}
	if _, err := svc.tasks.Update(ctx, project.Slug, task.Slug, TaskUpdateInput{Status: strptr("ABANDONED")}); err != nil {
		t.Fatalf("abandon task: %v", err)
	}

	updated, err := svc.projects.Update(ctx, project.Slug, ProjectUpdateInput{Status: strptr("COMPLETED")})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != models.ProjectCompleted {
		t.Fatalf("expected COMPLETED, got %q", updated.Status)
	}
}

func TestDeleteProjectRefusesWhenNotEmpty(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	project := svc.mustProject(t, "Occupied")
	svc.mustTask(t, project.Slug, "One")
	svc.mustTask(t, project.Slug, "Two")

	err := svc.projects.Delete(ctx, project.Slug, false)
	if !models.IsKind(err, models.KindNotEmpty) {
		t.Fatalf("expected not_empty, got %v", err)
	}
	if !strings.Contains(err.Error(), "2 task(s)") {
		t.Fatalf("expected task count in message, got %q", err.Error())
	}

	if err := svc.projects.Delete(ctx, project.Slug, true); err != nil {
		t.Fatalf("force delete: %v", err)
	}
	_, err = svc.projects.Get(ctx, project.Slug)
	if !models.IsKind(err, models.KindNotFound) {
		t.Fatalf("expected not_found after force delete, got %v", err)
	}
}
