package todoist

// Project is a Todoist project.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	ParentID       string `json:"parent_id,omitempty"`
	Order          int    `json:"order"`
	CommentCount   int    `json:"comment_count"`
	IsShared       bool   `json:"is_shared"`
	IsFavorite     bool   `json:"is_favorite"`
	IsInboxProject bool   `json:"is_inbox_project"`
	IsTeamInbox    bool   `json:"is_team_inbox"`
	ViewStyle      string `json:"view_style,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Due is the due date of a task.
type Due struct {
	String      string `json:"string"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
	Datetime    string `json:"datetime,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// Task is a Todoist task.
type Task struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Description  string   `json:"description"`
	IsCompleted  bool     `json:"is_completed"`
	Labels       []string `json:"labels"`
	ProjectID    string   `json:"project_id"`
	SectionID    string   `json:"section_id,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
	Order        int      `json:"order"`
	Priority     int      `json:"priority"`
	Due          *Due     `json:"due,omitempty"`
	URL          string   `json:"url,omitempty"`
	CommentCount int      `json:"comment_count"`
	CreatorID    string   `json:"creator_id,omitempty"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
	AssignerID   string   `json:"assigner_id,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// Section is a group of tasks inside a project.
type Section struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Order     int    `json:"order"`
	Name      string `json:"name"`
}

// Label is a personal label.
type Label struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	Order      int    `json:"order"`
	IsFavorite bool   `json:"is_favorite"`
}

// Comment is a note on a task or project.
type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Content   string `json:"content"`
	PostedAt  string `json:"posted_at,omitempty"`
}

// ProjectRequest creates or updates a project. Empty fields are not sent.
type ProjectRequest struct {
	Name       string `json:"name,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
}

// TaskRequest creates or updates a task. Empty fields are not sent.
type TaskRequest struct {
	Content     string   `json:"content,omitempty"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Order       int      `json:"order,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
}

// TaskFilter narrows GetTasks. Empty fields are ignored.
type TaskFilter struct {
	ProjectID string
	SectionID string
	Label     string
	Filter    string
	IDs       []string
}

// SectionRequest creates or updates a section.
type SectionRequest struct {
	Name      string `json:"name,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Order     int    `json:"order,omitempty"`
}

// LabelRequest creates or updates a label.
type LabelRequest struct {
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	Order      int    `json:"order,omitempty"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
}

// CommentRequest creates or updates a comment. One of TaskID or ProjectID is
// required on create.
type CommentRequest struct {
	Content   string `json:"content,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}
