package store

import (
	"context"
	"testing"

	"minder/internal/models"
)

func TestAddAndListDependencies(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	a := mkTask(t, st, project.ID, "A")
	b := mkTask(t, st, project.ID, "B")

	added, err := st.AddDependency(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatal("expected edge to be added")
	}

	deps, err := st.ListDependencies(ctx, a.ID)
	if err != nil {
		t.Fatalf("list dependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].ID != b.ID {
		t.Fatalf("expected A to depend on B, got %+v", deps)
	}

	dependents, err := st.ListDependents(ctx, b.ID)
	if err != nil {
		t.Fatalf("list dependents: %v", err)
	}
	if len(dependents) != 1 || dependents[0].ID != a.ID {
		t.Fatalf("expected B to block A, got %+v", dependents)
	}
}

func TestAddDependencyDuplicate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	a := mkTask(t, st, project.ID, "A")
	b := mkTask(t, st, project.ID, "B")

	if _, err := st.AddDependency(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	added, err := st.AddDependency(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if added {
		t.Fatal("duplicate edge must report false")
	}

	deps, err := st.ListDependencies(ctx, a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(deps) != 1 {
		t.Fatalf("expected a single edge, got %d", len(deps))
	}
}

func TestAddDependencySelfLoop(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	a := mkTask(t, st, project.ID, "A")

	_, err := st.AddDependency(ctx, a.ID, a.ID)
	if !models.IsKind(err, models.KindConflict) {
		t.Fatalf("expected conflict for self-loop, got %v", err)
	}
}

func TestAddDependencyRejectsCycle(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	a := mkTask(t, st, project.ID, "A")
	b := mkTask(t, st, project.ID, "B")
	c := mkTask(t, st, project.ID, "C")

	if _, err := st.AddDependency(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("a->b: %v", err)
	}
	if _, err := st.AddDependency(ctx, b.ID, c.ID); err != nil {
		t.Fatalf("b->c: %v", err)
	}

	_, err := st.AddDependency(ctx, c.ID, a.ID)
	if !models.IsKind(err, models.KindConflict) {
		t.Fatalf("expected conflict closing the cycle, got %v", err)
	}

	// The rejected edge must leave the existing graph untouched.
	deps, err := st.ListDependencies(ctx, c.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(deps) != 0 {
		t.Fatalf("expected no edges from C, got %+v", deps)
	}
	deps, err = st.ListDependencies(ctx, a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(deps) != 1 || deps[0].ID != b.ID {
		t.Fatalf("expected A->B to survive, got %+v", deps)
	}
}

func TestRemoveDependency(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	a := mkTask(t, st, project.ID, "A")
	b := mkTask(t, st, project.ID, "B")

	if _, err := st.AddDependency(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	removed, err := st.RemoveDependency(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("expected edge to be removed")
	}

	removed, err = st.RemoveDependency(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removed {
		t.Fatal("removing a missing edge must report false")
	}
}

func TestCountDependents(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	project := mkProject(t, st, "Graph")
	base := mkTask(t, st, project.ID, "Base")
	one := mkTask(t, st, project.ID, "One")
	two := mkTask(t, st, project.ID, "Two")

	if _, err := st.AddDependency(ctx, one.ID, base.ID); err != nil {
		t.Fatalf("one->base: %v", err)
	}
	if _, err := st.AddDependency(ctx, two.ID, base.ID); err != nil {
		t.Fatalf("two->base: %v", err)
	}

	count, err := st.CountDependents(ctx, base.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 dependents, got %d", count)
	}
}
