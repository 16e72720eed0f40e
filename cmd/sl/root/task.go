package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage study tasks",
	}
	cmd.AddCommand(newTaskAddCmd(), newTaskDoneCmd(), newTaskListCmd(), newTaskEditCmd(), newTaskShowCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var in engine.AddTaskInput
	var priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task (+10 XP)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			if priority != "" {
				p, err := engine.ParsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			return withApp(func(ctx context.Context, a *app) error {
				t, grant, err := a.svc.AddTask(ctx, in)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s %s\n", ui.IconPlus, t.Title, ui.Muted.Render(shortID(t.ID)))
				printGrant(out, grant)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Subject, "subject", "s", "", "Subject")
	f.StringVarP(&in.DueDate, "due", "d", "", "Due date (YYYY-MM-DD)")
	f.StringVarP(&priority, "priority", "p", "medium", "Priority (high|medium|low)")
	f.IntVarP(&in.EstimatedTime, "minutes", "m", 30, "Estimated minutes")
	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion (+15 XP when completed)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				res, err := a.svc.ToggleTask(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.Task.Completed {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" "+res.Task.Title))
				} else {
					fmt.Fprintln(out, ui.Warn.Render("↩ "+res.Task.Title+" pendiente de nuevo"))
				}
				printGrant(out, res.Grant)
				return nil
			})
		},
	}
	return cmd
}

func newTaskEditCmd() *cobra.Command {
	var title, subject, due, priority string
	var minutes int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch engine.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("subject") {
				patch.Subject = &subject
			}
			if flags.Changed("due") {
				patch.DueDate = &due
			}
			if flags.Changed("priority") {
				p, err := engine.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("minutes") {
				patch.EstimatedTime = &minutes
			}
			return withApp(func(ctx context.Context, a *app) error {
				t, err := a.svc.UpdateTask(ctx, args[0], patch)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+t.Title+" actualizada"))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "Title")
	f.StringVarP(&subject, "subject", "s", "", "Subject")
	f.StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	f.StringVarP(&priority, "priority", "p", "", "Priority (high|medium|low)")
	f.IntVarP(&minutes, "minutes", "m", 0, "Estimated minutes")
	return cmd
}

func newTaskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				t, err := a.svc.FindTask(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconNote, t.Title))
				fmt.Fprintln(out, ui.LabelValue("ID", t.ID))
				fmt.Fprintln(out, ui.LabelValue("Asignatura", t.Subject))
				fmt.Fprintln(out, ui.LabelValue("Entrega", t.DueDate))
				fmt.Fprintln(out, ui.LabelValue("Prioridad", ui.PriorityText(t.Priority)))
				fmt.Fprintln(out, ui.LabelValue("Tiempo estimado", fmt.Sprintf("%d min", t.EstimatedTime)))
				fmt.Fprintln(out, ui.LabelValue("Completada", t.Completed))
				return nil
			})
		},
	}
}

func newTaskListCmd() *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				tasks := a.svc.Tasks()
				if pending {
					tasks = engine.PendingTasks(tasks)
				}
				fmt.Fprintln(out, ui.Heading(ui.IconNote, "Tareas"))
				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(vacío)"))
					return nil
				}
				for _, t := range tasks {
					check := "[ ]"
					if t.Completed {
						check = ui.Good.Render("[x]")
					}
					fmt.Fprintf(out, "%s %s %s · %s · %s · %d min %s\n",
						check, ui.Muted.Render(shortID(t.ID)), t.Title, t.Subject, t.DueDate, t.EstimatedTime, ui.PriorityText(t.Priority))
				}
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d%% completadas", engine.CompletionRate(a.svc.Tasks()))))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only pending tasks, soonest first")
	return cmd
}

// shortID is the millisecond-timestamp prefix of a v7 id. Task commands
// accept any unique prefix.
func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}
