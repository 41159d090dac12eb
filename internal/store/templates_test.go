package store

import (
	"context"
	"testing"

	"minder/internal/models"
	"minder/internal/slugid"
)

func mkTemplate(t *testing.T, st *Store, name string, blueprints ...models.SubtaskTemplate) *models.TaskTemplate {
	t.Helper()
	ctx := context.Background()
	now := testNow()
	template := &models.TaskTemplate{
		ID:        slugid.NewID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.CreateTemplate(ctx, template); err != nil {
		t.Fatalf("create template %q: %v", name, err)
	}
	for _, blueprint := range blueprints {
		blueprint.ID = slugid.NewID()
		blueprint.TemplateID = template.ID
		if err := st.CreateSubtaskTemplate(ctx, &blueprint); err != nil {
			t.Fatalf("create subtask template %q: %v", blueprint.Name, err)
		}
	}
	return template
}

func TestApplyTemplateInstantiatesSubtasks(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	template := mkTemplate(t, st, "Release checklist",
		models.SubtaskTemplate{Name: "Tag version", RequiredForCompletion: true},
		models.SubtaskTemplate{Name: "Announce", RequiredForCompletion: false},
	)

	project := mkProject(t, st, "Delivery")
	task := mkTask(t, st, project.ID, "Ship v2")

	created, err := st.ApplyTemplate(ctx, template.ID, task.ID, testNow())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(created))
	}

	subtasks, err := st.ListSubtasks(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("list subtasks: %v", err)
	}
	if len(subtasks) != 2 {
		t.Fatalf("expected 2 persisted subtasks, got %d", len(subtasks))
	}
	for _, subtask := range subtasks {
		if subtask.Status != models.TaskNotStarted {
			t.Fatalf("instantiated subtasks start NOT_STARTED, got %q", subtask.Status)
		}
	}

	// Applying again produces fresh rows; the template is never consumed.
	if _, err := st.ApplyTemplate(ctx, template.ID, task.ID, testNow()); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	subtasks, err = st.ListSubtasks(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("list subtasks: %v", err)
	}
	if len(subtasks) != 4 {
		t.Fatalf("expected 4 subtasks after second apply, got %d", len(subtasks))
	}
}

func TestDeleteTemplateCascadesBlueprints(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	template := mkTemplate(t, st, "Onboarding",
		models.SubtaskTemplate{Name: "Grant access", RequiredForCompletion: true},
	)

	deleted, err := st.DeleteTemplate(ctx, template.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected template to be deleted")
	}

	blueprints, err := st.ListSubtaskTemplates(ctx, template.ID)
	if err != nil {
		t.Fatalf("list blueprints: %v", err)
	}
	if len(blueprints) != 0 {
		t.Fatalf("expected blueprints to cascade, got %d", len(blueprints))
	}
}

func TestListTemplatesOrdered(t *testing.T) {
	st := testStore(t)
	mkTemplate(t, st, "Zeta flow")
	mkTemplate(t, st, "Alpha flow")

	templates, err := st.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].Name != "Alpha flow" {
		t.Fatalf("expected name order, got %q first", templates[0].Name)
	}
}
