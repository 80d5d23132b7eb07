package todoist

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func pathFor(resource, id string, action ...string) string {
	p := "/" + resource + "/" + url.PathEscape(id)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

// GetProjects lists all projects.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, pathFor("projects", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req ProjectRequest) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject changes the fields set in req.
func (c *Client) UpdateProject(ctx context.Context, id string, req ProjectRequest) (*Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, pathFor("projects", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFor("projects", id), nil, nil, nil)
}

// GetTasks lists active tasks.
func (c *Client) GetTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	q := url.Values{}
	if filter.ProjectID != "" {
		q.Set("project_id", filter.ProjectID)
	}
	if filter.SectionID != "" {
		q.Set("section_id", filter.SectionID)
	}
	if filter.Label != "" {
		q.Set("label", filter.Label)
	}
	if filter.Filter != "" {
		q.Set("filter", filter.Filter)
	}
	if len(filter.IDs) > 0 {
		q.Set("ids", strings.Join(filter.IDs, ","))
	}

	var out []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask fetches one active task.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodGet, pathFor("tasks", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask changes the fields set in req.
func (c *Client) UpdateTask(ctx context.Context, id string, req TaskRequest) (*Task, error) {
	var out Task
	if err := c.do(ctx, http.MethodPost, pathFor("tasks", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseTask completes a task.
func (c *Client) CloseTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, pathFor("tasks", id, "close"), nil, nil, nil)
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, pathFor("tasks", id, "reopen"), nil, nil, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFor("tasks", id), nil, nil, nil)
}

// GetSections lists sections, optionally of one project.
func (c *Client) GetSections(ctx context.Context, projectID string) ([]Section, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	var out []Section
	if err := c.do(ctx, http.MethodGet, "/sections", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSection fetches one section.
func (c *Client) GetSection(ctx context.Context, id string) (*Section, error) {
	var out Section
	if err := c.do(ctx, http.MethodGet, pathFor("sections", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSection creates a section.
func (c *Client) CreateSection(ctx context.Context, req SectionRequest) (*Section, error) {
	var out Section
	if err := c.do(ctx, http.MethodPost, "/sections", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSection renames a section.
func (c *Client) UpdateSection(ctx context.Context, id string, req SectionRequest) (*Section, error) {
	var out Section
	if err := c.do(ctx, http.MethodPost, pathFor("sections", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSection deletes a section and its tasks.
func (c *Client) DeleteSection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFor("sections", id), nil, nil, nil)
}

// GetLabels lists personal labels.
func (c *Client) GetLabels(ctx context.Context) ([]Label, error) {
	var out []Label
	if err := c.do(ctx, http.MethodGet, "/labels", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLabel fetches one label.
func (c *Client) GetLabel(ctx context.Context, id string) (*Label, error) {
	var out Label
	if err := c.do(ctx, http.MethodGet, pathFor("labels", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLabel creates a label.
func (c *Client) CreateLabel(ctx context.Context, req LabelRequest) (*Label, error) {
	var out Label
	if err := c.do(ctx, http.MethodPost, "/labels", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLabel changes the fields set in req.
func (c *Client) UpdateLabel(ctx context.Context, id string, req LabelRequest) (*Label, error) {
	var out Label
	if err := c.do(ctx, http.MethodPost, pathFor("labels", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLabel deletes a label.
func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFor("labels", id), nil, nil, nil)
}

// GetComments lists the comments of a task or a project.
func (c *Client) GetComments(ctx context.Context, taskID, projectID string) ([]Comment, error) {
	q := url.Values{}
	if taskID != "" {
		q.Set("task_id", taskID)
	}
	if projectID != "" {
		q.Set("project_id", projectID)
	}
	var out []Comment
	if err := c.do(ctx, http.MethodGet, "/comments", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetComment fetches one comment.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	var out Comment
	if err := c.do(ctx, http.MethodGet, pathFor("comments", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateComment adds a comment.
func (c *Client) CreateComment(ctx context.Context, req CommentRequest) (*Comment, error) {
	var out Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment changes the comment text.
func (c *Client) UpdateComment(ctx context.Context, id string, req CommentRequest) (*Comment, error) {
	var out Comment
	if err := c.do(ctx, http.MethodPost, pathFor("comments", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathFor("comments", id), nil, nil, nil)
}
