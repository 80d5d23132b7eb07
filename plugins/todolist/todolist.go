// Package todolist marks items of the local to-do list as complete.
package todolist

import (
	"context"
	"fmt"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins"
	"github.com/smallnest/kernelplay/store"
)

const (
	PluginName = "TodoListPlugin"
	Collection = "todolist/todo"
)

// List is the to-do list collection.
type List struct {
	store store.CollectionStore
}

// NewList creates a list backed by s.
func NewList(s store.CollectionStore) *List {
	return &List{store: s}
}

// CompleteTask marks the first task whose text equals task as completed.
// Task names are not unique; later duplicates stay as they are.
func (l *List) CompleteTask(ctx context.Context, task string) (store.Outcome, error) {
	return store.UpdateFirst(ctx, l.store, Collection,
		func(r store.Record) bool { return r.String("task") == task },
		func(r store.Record) { r["completed"] = true },
	)
}

// Confirmation renders the result of CompleteTask for the caller.
func Confirmation(task string, outcome store.Outcome) string {
	if outcome == store.Updated {
		return fmt.Sprintf("Task '%s' marked as complete.", task)
	}
	return fmt.Sprintf("Task '%s' not found.", task)
}

// New builds the plugin over s.
func New(s store.CollectionStore) *plugin.Plugin {
	l := NewList(s)
	return plugin.New(PluginName, "The user's to-do list",
		plugin.NewFunction("CompleteTask", "Mark a todo list item as complete",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				task := args.String("task")
				outcome, err := l.CompleteTask(ctx, task)
				if err != nil {
					return "", err
				}
				return Confirmation(task, outcome), nil
			},
			plugin.Parameter{Name: "task", Description: "The task to complete", Required: true},
		),
		plugin.NewFunction("GetTodoList", "Get the user's to-do list",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				return plugins.LoadJSON(ctx, s, Collection)
			}),
	)
}
