package main

import (
	"strings"

	"github.com/spf13/cobra"

	"minder/internal/config"
	"minder/internal/models"
	"minder/internal/service"
)

func newNoteCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes on projects and tasks",
	}

	cmd.AddCommand(
		newNoteAddCmd(cfg, jsonOutput),
		newNoteShowCmd(cfg, jsonOutput),
		newNoteListCmd(cfg, jsonOutput),
		newNoteUpdateCmd(cfg, jsonOutput),
		newNoteDeleteCmd(cfg),
	)
	return cmd
}

func newNoteAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task, author string

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Attach a note to a project or task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				if author == "" {
					author = cfg.Author
				}
				note, err := svc.notes.Add(cmd.Context(), service.NoteCreateInput{
					Project: project,
					Task:    task,
					Content: strings.Join(args, " "),
					Author:  author,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(note)
				}
				return writePlain("%s\n", note.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "attach to a project (id or slug)")
	cmd.Flags().StringVarP(&task, "task", "t", "", "attach to a task (id or slug)")
	cmd.Flags().StringVarP(&author, "author", "a", "", "note author (defaults to config author)")
	return cmd
}

func newNoteShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				note, err := svc.notes.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(note)
				}
				return writeNoteList([]models.Note{*note})
			})
		},
	}
}

func newNoteListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes on a project or task, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				notes, err := svc.notes.List(cmd.Context(), project, task)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(notes)
				}
				return writeNoteList(notes)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project (id or slug)")
	cmd.Flags().StringVarP(&task, "task", "t", "", "task (id or slug)")
	return cmd
}

func newNoteUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var content, author string

	cmd := &cobra.Command{
		Use:   "update <note-id>",
		Short: "Update a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				input := service.NoteUpdateInput{}
				if cmd.Flags().Changed("content") {
					input.Content = &content
				}
				if cmd.Flags().Changed("author") {
					input.Author = &author
				}

				note, err := svc.notes.Update(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(note)
				}
				return writeNoteList([]models.Note{*note})
			})
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "new content")
	cmd.Flags().StringVarP(&author, "author", "a", "", "new author")
	return cmd
}

func newNoteDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cfg, func(svc *services) error {
				return svc.notes.Delete(cmd.Context(), args[0])
			})
		},
	}
}
