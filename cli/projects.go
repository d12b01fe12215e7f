package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"twodo/app"
)

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Project commands",
	}
	cmd.AddCommand(newProjectListCmd(a))
	cmd.AddCommand(newProjectAddCmd(a))
	cmd.AddCommand(newProjectEditCmd(a))
	cmd.AddCommand(newProjectDeleteCmd(a))
	return cmd
}

func newProjectListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer s.Close()

			projects, err := s.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			lines := make([]string, 0, len(projects))
			for _, p := range projects {
				lines = append(lines, fmt.Sprintf("%d. %s", p.ID, p.Name))
			}
			return writeOut(cmd, a, projects, strings.Join(lines, "\n"))
		},
	}
}

func newProjectAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := app.ApplyProjectOp(cmd.Context(), s, app.ProjectOp{Kind: app.ProjectAdd, Name: strings.Join(args, " ")})
			if err != nil {
				return fmt.Errorf("add project: %w", err)
			}
			return writeOut(cmd, a, map[string]int64{"id": id}, fmt.Sprintf("Created project %d", id))
		},
	}
}

func newProjectEditCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectOp(cmd, a, args[0], app.ProjectOp{Kind: app.ProjectRename, Name: name}, "Project %d renamed")
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New project name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a project and all of its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectOp(cmd, a, args[0], app.ProjectOp{Kind: app.ProjectDelete}, "Project %d deleted")
		},
	}
}

func runProjectOp(cmd *cobra.Command, a *App, rawID string, op app.ProjectOp, done string) error {
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

	if _, err := app.ApplyProjectOp(cmd.Context(), s, op); err != nil {
		return fmt.Errorf("%s project %d: %w", op.Kind, id, err)
	}
	return writeOut(cmd, a, map[string]int64{"id": id}, fmt.Sprintf(done, id))
}
