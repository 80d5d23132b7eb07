// Package todoist is a small client for the Todoist REST API v2.
//
// It covers projects, tasks, sections, labels and comments:
//
//	c, err := todoist.New(todoist.WithAPIKey(os.Getenv("TODOIST_API_KEY")))
//	tasks, err := c.GetTasks(ctx, todoist.TaskFilter{Filter: "today"})
//
// Any non-2xx response is returned as *HTTPError, which matches ErrHTTPFailure.
package todoist
