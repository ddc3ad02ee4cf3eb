package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the todo list",
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos, open ones first",
	Args:  cobra.NoArgs,
	RunE:  listTodos,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  addTodo,
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTodoDone(cmd, args[0], true)
	},
}

var todoUndoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Mark a todo as open again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTodoDone(cmd, args[0], false)
	},
}

var todoRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>...",
	Short: "Change a todo's title",
	Args:  cobra.MinimumNArgs(2),
	RunE:  renameTodo,
}

var todoRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    removeTodo,
}

func init() {
	todoCmd.AddCommand(todoListCmd, todoAddCmd, todoDoneCmd, todoUndoCmd, todoRenameCmd, todoRemoveCmd)
	rootCmd.AddCommand(todoCmd)
}

func listTodos(cmd *cobra.Command, args []string) error {
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	todos, err := journal.ListTodos()
	if err != nil {
		return err
	}
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(todos)
	}
	if len(todos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No todos")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE")
	for _, todo := range todos {
		mark := " "
		if todo.Done {
			mark = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\n", todo.ID, mark, todo.Title)
	}
	return w.Flush()
}

func addTodo(cmd *cobra.Command, args []string) error {
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	todo, err := journal.AddTodo(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s\n", todo.ID, todo.Title)
	return nil
}

func setTodoDone(cmd *cobra.Command, rawID string, done bool) error {
	id, err := parseTodoID(rawID)
	if err != nil {
		return err
	}
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	return journal.SetTodoDone(id, done)
}

func renameTodo(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	return journal.RenameTodo(id, strings.Join(args[1:], " "))
}

func removeTodo(cmd *cobra.Command, args []string) error {
	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	return journal.DeleteTodo(id)
}

func parseTodoID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}
