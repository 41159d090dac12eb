package store

import (
	"context"
	"testing"

	"minder/internal/models"
)

func TestCreateProjectDerivesSlug(t *testing.T) {
	st := testStore(t)

	project := mkProject(t, st, "Website Redesign")
	if project.Slug != "website-redesign" {
		t.Fatalf("expected slug 'website-redesign', got %q", project.Slug)
	}

	got, err := st.GetProjectBySlug(context.Background(), "website-redesign")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got == nil || got.ID != project.ID {
		t.Fatalf("expected project %s, got %+v", project.ID, got)
	}
}

func TestCreateProjectSlugCollision(t *testing.T) {
	st := testStore(t)

	first := mkProject(t, st, "Website")
	second := mkProject(t, st, "Website")
	third := mkProject(t, st, "Website")

	if first.Slug != "website" {
		t.Fatalf("expected first slug 'website', got %q", first.Slug)
	}
	if second.Slug != "website-1" {
		t.Fatalf("expected second slug 'website-1', got %q", second.Slug)
	}
	if third.Slug != "website-2" {
		t.Fatalf("expected third slug 'website-2', got %q", third.Slug)
	}
}

func TestGetProjectMissing(t *testing.T) {
	st := testStore(t)

	got, err := st.GetProject(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing project, got %+v", got)
	}
}

func TestListProjectsOrdered(t *testing.T) {
	st := testStore(t)
	mkProject(t, st, "Zeta")
	mkProject(t, st, "Alpha")

	projects, err := st.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "Alpha" || projects[1].Name != "Zeta" {
		t.Fatalf("expected name order, got %q then %q", projects[0].Name, projects[1].Name)
	}
}

func TestUpdateProjectKeepsSlug(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Original Name")
	newName := "Renamed"
	newStatus := models.ProjectCompleted
	if err := st.UpdateProject(ctx, project.ID, ProjectUpdate{Name: &newName, Status: &newStatus}, testNow()); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("expected name 'Renamed', got %q", got.Name)
	}
	if got.Status != models.ProjectCompleted {
		t.Fatalf("expected status COMPLETED, got %q", got.Status)
	}
	if got.Slug != "original-name" {
		t.Fatalf("rename must not change slug, got %q", got.Slug)
	}
}

func TestDeleteProjectCascade(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Doomed")
	task := mkTask(t, st, project.ID, "Doomed task")

	subtask := &models.Subtask{ID: "sub-1", TaskID: task.ID, Name: "Step", Status: models.TaskNotStarted, CreatedAt: testNow(), UpdatedAt: testNow()}
	if err := st.CreateSubtask(ctx, subtask); err != nil {
		t.Fatalf("create subtask: %v", err)
	}
	note := &models.Note{ID: "note-1", Content: "hi", EntityType: models.NoteEntityTask, EntityID: task.ID, CreatedAt: testNow(), UpdatedAt: testNow()}
	if err := st.CreateNote(ctx, note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	deleted, err := st.DeleteProjectCascade(ctx, project.ID)
	if err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected project to be deleted")
	}

	if got, _ := st.GetTask(ctx, task.ID); got != nil {
		t.Fatal("expected task to be removed with its project")
	}
	if got, _ := st.GetSubtask(ctx, subtask.ID); got != nil {
		t.Fatal("expected subtask to be removed with its project")
	}
	notes, err := st.ListNotes(ctx, models.NoteEntityTask, task.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected task notes removed, got %d", len(notes))
	}
}

func TestDeleteProjectMissing(t *testing.T) {
	st := testStore(t)

	deleted, err := st.DeleteProject(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Fatal("expected no deletion for missing project")
	}
}

func TestCountTasks(t *testing.T) {
	st := testStore(t)
	project := mkProject(t, st, "Busy")
	mkTask(t, st, project.ID, "One")
	mkTask(t, st, project.ID, "Two")

	count, err := st.CountTasks(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tasks, got %d", count)
	}
}
