package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesabjorn/anything-db/internal/console"
)

const (
	rule         = "-------------------------"
	choicePrompt = "What do you want to do? "
)

// Operations is the set of menu actions; engine.Engine implements it
type Operations interface {
	ListTables(ctx context.Context) error
	CreateTable(ctx context.Context) error
	DropTable(ctx context.Context) error
	Insert(ctx context.Context) error
	Read(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
}

type menuItem struct {
	key   string
	label string
	run   func(Operations, context.Context) error
}

var menu = []menuItem{
	{"1", "List Tables", Operations.ListTables},
	{"2", "Create Table", Operations.CreateTable},
	{"3", "Drop Table", Operations.DropTable},
	{"4", "Insert Record", Operations.Insert},
	{"5", "Read Records", Operations.Read},
	{"6", "Update Record", Operations.Update},
	{"7", "Delete Record", Operations.Delete},
	{"8", "Exit", nil},
}

// Start runs the menu loop until the operator exits or input ends.
// Closed or interrupted input ends the session cleanly; any other
// error from an operation is returned.
func Start(ctx context.Context, ops Operations, p console.Prompter, out io.Writer) error {
	for {
		printMenu(out)
		choice, err := p.Prompt(choicePrompt)
		if err != nil {
			return endOfInput(out, err)
		}
		fmt.Fprintln(out, rule)

		item, ok := lookup(strings.TrimSpace(choice))
		if !ok {
			fmt.Fprintln(out, "Invalid choice. Please try again.")
			continue
		}
		if item.run == nil {
			fmt.Fprintln(out, "Exiting program.")
			return nil
		}

		if err := item.run(ops, ctx); err != nil {
			return endOfInput(out, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out, rule)
	for _, item := range menu {
		fmt.Fprintf(out, "%s. %s\n", item.key, item.label)
	}
	fmt.Fprintln(out, rule)
}

func lookup(choice string) (menuItem, bool) {
	for _, item := range menu {
		if item.key == choice {
			return item, true
		}
	}
	return menuItem{}, false
}

func endOfInput(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, console.ErrInterrupted) {
		fmt.Fprintln(out, "Exiting program.")
		return nil
	}
	return err
}
