// Package todoistplugin exposes a Todoist account to the kernel.
package todoistplugin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/todoist"
)

const PluginName = "TodoistPlugin"

// Service is the part of the Todoist API the plugin uses.
type Service interface {
	GetProjects(ctx context.Context) ([]todoist.Project, error)
	GetTasks(ctx context.Context, filter todoist.TaskFilter) ([]todoist.Task, error)
	CreateTask(ctx context.Context, req todoist.TaskRequest) (*todoist.Task, error)
	CloseTask(ctx context.Context, id string) error
}

var _ Service = (*todoist.Client)(nil)

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serialise response: %w", err)
	}
	return string(data), nil
}

// New builds the plugin over svc.
func New(svc Service) *plugin.Plugin {
	return plugin.New(PluginName, "Projects and tasks in the user's Todoist account",
		plugin.NewFunction("GetProjects", "Gets the list of all projects",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				projects, err := svc.GetProjects(ctx)
				if err != nil {
					return "", err
				}
				return marshal(projects)
			}),
		plugin.NewFunction("GetTasks", "Gets the list of active tasks, optionally of one project",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				tasks, err := svc.GetTasks(ctx, todoist.TaskFilter{ProjectID: args.String("projectId")})
				if err != nil {
					return "", err
				}
				return marshal(tasks)
			},
			plugin.Parameter{Name: "projectId", Description: "Only list tasks of this project"},
		),
		plugin.NewFunction("CreateTask", "Creates a new task",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				task, err := svc.CreateTask(ctx, todoist.TaskRequest{
					Content:   args.String("taskDescription"),
					DueString: args.String("dueString"),
				})
				if err != nil {
					return "", err
				}
				return marshal(task)
			},
			plugin.Parameter{Name: "taskDescription", Description: "What has to be done", Required: true},
			plugin.Parameter{Name: "dueString", Description: "Due date in natural language, e.g. 'tomorrow at 12'"},
		),
		plugin.NewFunction("CompleteTask", "Marks a task as completed",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				id := args.String("taskId")
				if err := svc.CloseTask(ctx, id); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task %s closed.", id), nil
			},
			plugin.Parameter{Name: "taskId", Description: "The id of the task", Required: true},
		),
	)
}
