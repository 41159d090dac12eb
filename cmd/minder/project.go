package main

import (
	"strings"

	"github.com/spf13/cobra"

	"minder/internal/config"
	"minder/internal/service"
)

func newProjectCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(cfg, jsonOutput),
		newProjectShowCmd(cfg, jsonOutput),
		newProjectListCmd(cfg, jsonOutput),
		newProjectUpdateCmd(cfg, jsonOutput),
		newProjectDeleteCmd(cfg),
	)
	return cmd
}

func newProjectCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var description, status string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				project, err := svc.projects.Create(cmd.Context(), service.ProjectCreateInput{
					Name:        strings.Join(args, " "),
					Description: description,
					Status:      status,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project)
				}
				return writePlain("%s\n", project.Slug)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default ACTIVE)")
	return cmd
}

func newProjectShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project by id or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				project, err := svc.projects.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project)
				}
				return writeProjectDetail(project)
			})
		},
	}
}

func newProjectListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				projects, err := svc.projects.List(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(projects)
				}
				return writeProjectList(projects)
			})
		},
	}
}

func newProjectUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var name, description, status string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project's name, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				input := service.ProjectUpdateInput{}
				if cmd.Flags().Changed("name") {
					input.Name = &name
				}
				if cmd.Flags().Changed("description") {
					input.Description = &description
				}
				if cmd.Flags().Changed("status") {
					input.Status = &status
				}

				project, err := svc.projects.Update(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project)
				}
				return writeProjectDetail(project)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	return cmd
}

func newProjectDeleteCmd(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.projects.Delete(cmd.Context(), args[0], force)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete the project together with all its tasks and notes")
	return cmd
}
