package proofhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starkedge/timelogger-backend-go/internal/config"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.UpstreamConfig{
		BaseURL:         server.URL,
		DirectoryAPIKey: "dir-key",
		APIKeys:         map[int64]string{1: "emp-1-key"},
	})
}

func TestListEmployees(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people", r.URL.Path)
		assert.Equal(t, "dir-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`[{"id":1,"first_name":"Ava","last_name":"Stone","email":"ava@example.com"}]`))
	})

	employees, err := client.ListEmployees(context.Background())

	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Ava Stone", employees[0].FullName())
}

func TestListEmployees_MalformedPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"not an array"}`))
	})

	_, err := client.ListEmployees(context.Background())

	assert.ErrorIs(t, err, timeentry.ErrMalformedResponse)
}

func TestListDepartments(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups", r.URL.Path)
		w.Write([]byte(`[{"id":10,"name":"Engineering","assigned":[1,2]}]`))
	})

	departments, err := client.ListDepartments(context.Background())

	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, []int64{1, 2}, departments[0].Assigned)
}

func TestFetchTimeEntries(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alltime", r.URL.Path)
		assert.Equal(t, "emp-1-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from_date"))
		assert.Equal(t, "2024-01-05", r.URL.Query().Get("to_date"))
		w.Write([]byte(`[
			{"date":"2024-01-01","logged_hours":8,"logged_mins":0,"by_me":true},
			{"date":"2024-01-02","logged_hours":4,"logged_mins":0,"by_me":false}
		]`))
	})

	entries, err := client.FetchTimeEntries(context.Background(), 1, "2024-01-01", "2024-01-05")

	require.NoError(t, err)
	// Entries logged by someone else are dropped.
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-01", entries[0].Date)
	// The employee ID is stamped on since the payload omits it.
	assert.Equal(t, int64(1), entries[0].EmployeeID)
}

func TestFetchTimeEntries_NoKeyConfigured(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	entries, err := client.FetchTimeEntries(context.Background(), 99, "2024-01-01", "2024-01-05")

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, called)
}

func TestFetchTimeEntries_NonArrayPayloadIsEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"rate limited"}`))
	})

	entries, err := client.FetchTimeEntries(context.Background(), 1, "2024-01-01", "2024-01-05")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchTodos(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alltodo", r.URL.Path)
		assert.Equal(t, "emp-1-key", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`[
			{"id":101,"title":"Fix login redirect","logged_hours":2,"logged_mins":30,"due_date":"2024-01-20","project":{"name":"Backend"}},
			{"id":102,"title":"Untracked chore"}
		]`))
	})

	todos, err := client.FetchTodos(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, int64(101), todos[0].ID)
	assert.Equal(t, 150, todos[0].LoggedMinutes())
	assert.Equal(t, "Backend", todos[0].Project.Name)
	assert.Zero(t, todos[1].LoggedMinutes())
}

func TestFetchTodos_NoKeyConfigured(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	todos, err := client.FetchTodos(context.Background(), 99)

	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.False(t, called)
}

func TestFetchTodos_NonArrayPayloadIsEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"rate limited"}`))
	})

	todos, err := client.FetchTodos(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestFetchTimeEntries_UpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchTimeEntries(context.Background(), 1, "2024-01-01", "2024-01-05")

	assert.Error(t, err)
}
