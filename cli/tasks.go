package cli

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"twodo/app"
	"twodo/model"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTaskListCmd(a))
	cmd.AddCommand(newTaskFindCmd(a))
	cmd.AddCommand(newTaskAddCmd(a))
	cmd.AddCommand(newTaskDoneCmd(a, "done", app.TaskDone))
	cmd.AddCommand(newTaskDoneCmd(a, "undone", app.TaskUndone))
	cmd.AddCommand(newTaskEditCmd(a))
	cmd.AddCommand(newTaskDeleteCmd(a))
	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	var (
		projectID int64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			tasks, _ = app.ReorderTasks(tasks)
			if limit > 0 && len(tasks) > limit {
				tasks = tasks[:limit]
			}
			return writeOut(cmd, a, tasks, formatTaskTree(tasks))
		},
	}

	cmd.Flags().Int64VarP(&projectID, "project", "p", model.InboxProjectID, "Project id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N tasks (0 = all)")
	return cmd
}

// formatTaskTree prints one task per line, indented by depth.
func formatTaskTree(tasks []model.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		done := ""
		if t.Done {
			done = "[x] "
		}
		lines = append(lines, fmt.Sprintf("%s%s%d. %s", strings.Repeat("  ", t.Depth), done, t.ID, t.Title))
	}
	return strings.Join(lines, "\n")
}

func newTaskFindCmd(a *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "find QUERY...",
		Short: "Fuzzy-search task titles, best match first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			found := findTasks(tasks, strings.Join(args, " "))
			lines := make([]string, 0, len(found))
			for _, t := range found {
				lines = append(lines, fmt.Sprintf("%d. %s", t.ID, t.Title))
			}
			return writeOut(cmd, a, found, strings.Join(lines, "\n"))
		},
	}

	cmd.Flags().Int64VarP(&projectID, "project", "p", model.InboxProjectID, "Project id")
	return cmd
}

func findTasks(tasks []model.Task, query string) []model.Task {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	matches := fuzzy.Find(query, titles)
	out := make([]model.Task, 0, len(matches))
	for _, m := range matches {
		out = append(out, tasks[m.Index])
	}
	return out
}

func newTaskAddCmd(a *App) *cobra.Command {
	var (
		description string
		projectID   int64
		parent      int64
	)

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer s.Close()

			op := app.TaskOp{
				Kind:      app.TaskAdd,
				Title:     model.String(strings.Join(args, " ")),
				ProjectID: projectID,
			}
			if cmd.Flags().Changed("description") {
				op.Description = model.String(description)
			}
			if cmd.Flags().Changed("parent") {
				op.ParentID = model.Int64(parent)
			}
			id, err := app.ApplyTaskOp(cmd.Context(), s, op)
			if err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			return writeOut(cmd, a, map[string]int64{"id": id}, fmt.Sprintf("Created task %d", id))
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description (markdown)")
	cmd.Flags().Int64VarP(&projectID, "project", "p", model.InboxProjectID, "Project id")
	cmd.Flags().Int64Var(&parent, "parent", 0, "Parent task id")
	return cmd
}

func newTaskDoneCmd(a *App, use string, kind app.TaskOpKind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: "Mark a task as " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskOp(cmd, a, args[0], app.TaskOp{Kind: kind}, "Task %d marked "+use)
		},
	}
}

func newTaskEditCmd(a *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := app.TaskOp{Kind: app.TaskEdit}
			if cmd.Flags().Changed("title") {
				op.Title = model.String(title)
			}
			if cmd.Flags().Changed("description") {
				op.Description = model.String(description)
			}
			return runTaskOp(cmd, a, args[0], op, "Task %d updated")
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (empty clears it)")
	return cmd
}

func newTaskDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its sub-tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskOp(cmd, a, args[0], app.TaskOp{Kind: app.TaskDelete}, "Task %d deleted")
		},
	}
}

func runTaskOp(cmd *cobra.Command, a *App, rawID string, op app.TaskOp, done string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	op.ID = id

	s, err := openStore(cmd.Context(), a)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := app.ApplyTaskOp(cmd.Context(), s, op); err != nil {
		return fmt.Errorf("%s task %d: %w", op.Kind, id, err)
	}
	return writeOut(cmd, a, map[string]int64{"id": id}, fmt.Sprintf(done, id))
}
