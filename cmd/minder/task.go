package main

import (
	"strings"

	"github.com/spf13/cobra"

	"minder/internal/config"
	"minder/internal/service"
)

func newTaskCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskCreateCmd(cfg, jsonOutput),
		newTaskShowCmd(cfg, jsonOutput),
		newTaskListCmd(cfg, jsonOutput),
		newTaskUpdateCmd(cfg, jsonOutput),
		newTaskDeleteCmd(cfg),
	)
	return cmd
}

func newTaskCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, description, status string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new task in a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				task, err := svc.tasks.Create(cmd.Context(), service.TaskCreateInput{
					Project:     project,
					Name:        strings.Join(args, " "),
					Description: description,
					Status:      status,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(task)
				}
				return writePlain("%s\n", task.Slug)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "owning project (id or slug)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default NOT_STARTED)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "show <task>",
		Short: "Show a task by id, or by slug within a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				task, err := svc.tasks.Get(cmd.Context(), project, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(task)
				}
				return writeTaskDetail(task)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}

func newTaskListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, statuses string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				tasks, err := svc.tasks.List(cmd.Context(), project, splitCommaList(statuses))
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tasks)
				}
				return writeTaskList(tasks)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "restrict to one project (id or slug)")
	cmd.Flags().StringVarP(&statuses, "status", "s", "", "comma-separated status filter")
	return cmd
}

func newTaskUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, name, description, status, moveTo string

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update a task's fields, status or owning project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				input := service.TaskUpdateInput{}
				if cmd.Flags().Changed("name") {
					input.Name = &name
				}
				if cmd.Flags().Changed("description") {
					input.Description = &description
				}
				if cmd.Flags().Changed("status") {
					input.Status = &status
				}
				if cmd.Flags().Changed("move-to") {
					input.Project = &moveTo
				}

				task, err := svc.tasks.Update(cmd.Context(), project, args[0], input)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(task)
				}
				return writeTaskDetail(task)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&moveTo, "move-to", "", "move the task into another project (id or slug)")
	return cmd
}

func newTaskDeleteCmd(cfg *config.Config) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.tasks.Delete(cmd.Context(), project, args[0])
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}
