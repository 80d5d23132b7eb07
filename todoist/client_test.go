package todoist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(WithAPIKey("test-token"), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNotSetAuth)

	c, err := New(WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	custom := &http.Client{}
	c, err = New(WithAPIKey("k"), WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, c.httpClient)
}

func TestGetProjects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"220474322","name":"Inbox","is_inbox_project":true},{"id":"2","name":"Music"}]`))
	})

	projects, err := c.GetProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Inbox", projects[0].Name)
	assert.True(t, projects[0].IsInboxProject)
	assert.Equal(t, "2", projects[1].ID)
}

func TestCreateTask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err, "POST requests carry a request id")

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"Buy milk","due_string":"tomorrow"}`, string(body))

		w.Write([]byte(`{"id":"7","content":"Buy milk","due":{"string":"tomorrow","date":"2026-10-20"}}`))
	})

	task, err := c.CreateTask(context.Background(), TaskRequest{Content: "Buy milk", DueString: "tomorrow"})
	require.NoError(t, err)
	assert.Equal(t, "7", task.ID)
	require.NotNil(t, task.Due)
	assert.Equal(t, "2026-10-20", task.Due.Date)
}

func TestGetTasksFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "p1", q.Get("project_id"))
		assert.Equal(t, "today", q.Get("filter"))
		assert.Equal(t, "1,2", q.Get("ids"))
		assert.Empty(t, q.Get("label"))
		w.Write([]byte(`[]`))
	})

	tasks, err := c.GetTasks(context.Background(), TaskFilter{ProjectID: "p1", Filter: "today", IDs: []string{"1", "2"}})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCloseAndReopenTask(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, c.CloseTask(ctx, "42"))
	require.NoError(t, c.ReopenTask(ctx, "42"))
	assert.Equal(t, []string{"/tasks/42/close", "/tasks/42/reopen"}, paths)
}

func TestDeleteResources(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, c.DeleteProject(ctx, "1"))
	require.NoError(t, c.DeleteTask(ctx, "2"))
	require.NoError(t, c.DeleteSection(ctx, "3"))
	require.NoError(t, c.DeleteLabel(ctx, "4"))
	require.NoError(t, c.DeleteComment(ctx, "5"))
	assert.Equal(t, []string{"/projects/1", "/tasks/2", "/sections/3", "/labels/4", "/comments/5"}, paths)
}

func TestSectionsLabelsComments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/sections":
			assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
			w.Write([]byte(`[{"id":"s1","project_id":"p1","name":"Groceries"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/labels/l1":
			var req map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, map[string]any{"name": "urgent", "is_favorite": true}, req)
			w.Write([]byte(`{"id":"l1","name":"urgent","is_favorite":true}`))
		case r.Method == http.MethodPost && r.URL.Path == "/comments":
			w.Write([]byte(`{"id":"c1","task_id":"t1","content":"on it"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	sections, err := c.GetSections(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Groceries", sections[0].Name)

	fav := true
	label, err := c.UpdateLabel(ctx, "l1", LabelRequest{Name: "urgent", IsFavorite: &fav})
	require.NoError(t, err)
	assert.True(t, label.IsFavorite)

	comment, err := c.CreateComment(ctx, CommentRequest{TaskID: "t1", Content: "on it"})
	require.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)
}

func TestHTTPFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := c.GetProjects(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPFailure)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "boom", httpErr.Body)
	assert.Equal(t, "/projects", httpErr.Path)
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetLabels(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
