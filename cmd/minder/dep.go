package main

import (
	"github.com/spf13/cobra"

	"minder/internal/config"
)

func newDepCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(cfg, jsonOutput),
		newDepRemoveCmd(cfg),
		newDepListCmd(cfg, jsonOutput),
		newDepDependentsCmd(cfg, jsonOutput),
	)
	return cmd
}

func newDepAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add <task> <depends-on>",
		Short: "Record that a task depends on another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				added, err := svc.tasks.AddDependency(cmd.Context(), project, args[0], args[1])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]bool{"added": added})
				}
				if !added {
					return writePlain("dependency already present\n")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}

func newDepRemoveCmd(cfg *config.Config) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <task> <depends-on>",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.tasks.RemoveDependency(cmd.Context(), project, args[0], args[1])
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}

func newDepListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list <task>",
		Short: "List the tasks a task depends on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				deps, err := svc.tasks.ListDependencies(cmd.Context(), project, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(deps)
				}
				return writeTaskList(deps)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}

func newDepDependentsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "dependents <task>",
		Short: "List the tasks that depend on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				dependents, err := svc.tasks.ListDependents(cmd.Context(), project, args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(dependents)
				}
				return writeTaskList(dependents)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project scope for slug lookups")
	return cmd
}
