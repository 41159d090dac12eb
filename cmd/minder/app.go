package main

import (
	"log/slog"

	"minder/internal/config"
	"minder/internal/service"
	"minder/internal/store"
)

// services bundles everything a command needs against one open store.
type services struct {
	store     *store.Store
	resolver  *service.Resolver
	projects  *service.ProjectService
	tasks     *service.TaskService
	subtasks  *service.SubtaskService
	metadata  *service.MetadataService
	notes     *service.NoteService
	templates *service.TemplateService
}

// withServices opens the database, wires the services and runs fn, closing
// the store afterwards.
func withServices(cfg *config.Config, fn func(*services) error) error {
	slog.Debug("opening store", "db_path", cfg.DBPath)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	resolver := service.NewResolver(st)
	return fn(&services{
		store:     st,
		resolver:  resolver,
		projects:  service.NewProjectService(st, resolver),
		tasks:     service.NewTaskService(st, resolver),
		subtasks:  service.NewSubtaskService(st, resolver),
		metadata:  service.NewMetadataService(st, resolver),
		notes:     service.NewNoteService(st, resolver),
		templates: service.NewTemplateService(st, resolver),
	})
}
