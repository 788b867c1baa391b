package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

// fakeTasksAPI mimics the subset of the Google Tasks REST API the repository uses.
// Like the real API, an insert without "previous" goes to the top of the list.
type fakeTasksAPI struct {
	mu       sync.Mutex
	lists    map[string][]*tasks.Task
	nextID   int
	pageSize int

	listErrCode int
}

func newFakeTasksAPI() *fakeTasksAPI {
	return &fakeTasksAPI{lists: make(map[string][]*tasks.Task), pageSize: 2}
}

func (f *fakeTasksAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/users/@me/lists"):
		var in tasks.TaskList
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.nextID++
		in.Id = fmt.Sprintf("list%d", f.nextID)
		f.lists[in.Id] = nil
		writeJSON(w, in)

	case r.Method == http.MethodDelete && strings.Contains(path, "/users/@me/lists/"):
		id := path[strings.LastIndex(path, "/")+1:]
		if _, ok := f.lists[id]; !ok {
			http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
			return
		}
		delete(f.lists, id)
		w.WriteHeader(http.StatusNoContent)

	case strings.HasPrefix(path, "/tasks/v1/lists/") && strings.HasSuffix(path, "/tasks"):
		listID := strings.TrimSuffix(strings.TrimPrefix(path, "/tasks/v1/lists/"), "/tasks")
		if _, ok := f.lists[listID]; !ok {
			http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
			return
		}
		if r.Method == http.MethodPost {
			f.insert(w, r, listID)
			return
		}
		f.list(w, r, listID)

	default:
		http.Error(w, "unexpected request "+r.Method+" "+path, http.StatusBadRequest)
	}
}

func (f *fakeTasksAPI) insert(w http.ResponseWriter, r *http.Request, listID string) {
	var in tasks.Task
	_ = json.NewDecoder(r.Body).Decode(&in)
	f.nextID++
	in.Id = fmt.Sprintf("task%d", f.nextID)

	items := f.lists[listID]
	at := 0
	if prev := r.URL.Query().Get("previous"); prev != "" {
		for i, it := range items {
			if it.Id == prev {
				at = i + 1
			}
		}
	}
	items = append(items, nil)
	copy(items[at+1:], items[at:])
	items[at] = &in
	for i, it := range items {
		it.Position = fmt.Sprintf("%020d", i)
	}
	f.lists[listID] = items
	writeJSON(w, in)
}

func (f *fakeTasksAPI) list(w http.ResponseWriter, r *http.Request, listID string) {
	if f.listErrCode != 0 {
		http.Error(w, `{"error":{"code":401,"message":"unauthorized"}}`, f.listErrCode)
		return
	}

	// Serve in reverse position order so the client has to sort
	items := f.lists[listID]
	reversed := make([]*tasks.Task, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		reversed = append(reversed, items[i])
	}

	start := 0
	if tok := r.URL.Query().Get("pageToken"); tok != "" {
		fmt.Sscanf(tok, "%d", &start)
	}
	end := start + f.pageSize
	if end > len(reversed) {
		end = len(reversed)
	}

	resp := tasks.Tasks{Items: reversed[start:end]}
	if end < len(reversed) {
		resp.NextPageToken = fmt.Sprintf("%d", end)
	}
	writeJSON(w, resp)
}

func (f *fakeTasksAPI) hasList(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.lists[id]
	return ok
}

func (f *fakeTasksAPI) failListsWith(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErrCode = code
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestRepository(t *testing.T) (*Repository, *fakeTasksAPI) {
	t.Helper()

	api := newFakeTasksAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	repo, err := NewWithHTTPClient(context.Background(), srv.Client(), nil, option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewWithHTTPClient() err = %v", err)
	}
	return repo, api
}

func TestRepository_CreatesScratchList(t *testing.T) {
	repo, api := newTestRepository(t)

	if repo.ListID() == "" {
		t.Fatal("expected a scratch list ID")
	}
	if !api.hasList(repo.ListID()) {
		t.Fatalf("scratch list %q not created on the server", repo.ListID())
	}
}

func TestRepository_EmptyList(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, err := repo.AllTasks(context.Background())
	if err != nil {
		t.Fatalf("AllTasks() err = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("AllTasks() len = %d, want 0", len(got))
	}
}

func TestRepository_KeepsInsertionOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	done := task.New("Do homework")
	done.Complete()
	want := []task.Task{
		task.New("Walk the dog"),
		done,
		task.New("Cook dinner"),
		task.New(""),
		task.New("Walk the dog"),
	}
	for _, tk := range want {
		if err := repo.AddTask(ctx, tk); err != nil {
			t.Fatalf("AddTask(%+v) err = %v", tk, err)
		}
	}

	got, err := repo.AllTasks(ctx)
	if err != nil {
		t.Fatalf("AllTasks() err = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("AllTasks() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllTasks()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRepository_CloseDeletesList(t *testing.T) {
	repo, api := newTestRepository(t)
	_ = repo.AddTask(context.Background(), task.New("x"))

	if err := repo.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	if api.hasList(repo.ListID()) {
		t.Fatal("expected scratch list to be deleted")
	}
}

func TestRepository_CloseTwiceNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	_ = repo.Close()

	err := repo.Close()
	if err == nil {
		t.Fatal("expected error on second Close")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestRepository_AuthError(t *testing.T) {
	repo, api := newTestRepository(t)
	api.failListsWith(http.StatusUnauthorized)

	_, err := repo.AllTasks(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "token expired or revoked") {
		t.Errorf("expected auth error message, got %v", err)
	}
}

func TestWrapError_Nil(t *testing.T) {
	if wrapError(nil) != nil {
		t.Error("expected nil")
	}
}

func TestWrapError_Timeout(t *testing.T) {
	err := wrapError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected timeout message, got %v", err)
	}
}

const testOAuthClient = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret",` +
	`"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",` +
	`"redirect_uris":["http://localhost"]}}`

// newTestConfig writes the given files into a temp config dir.
func newTestConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("config.New() err = %v", err)
	}
	return cfg
}

func TestOpen_MalformedToken(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
		config.TokenFile:       "{not json",
	})

	repo, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for malformed token.json")
	}
	if repo != nil {
		t.Errorf("expected nil repository, got %+v", repo)
	}
	if !strings.HasPrefix(err.Error(), "invalid token.json: ") {
		t.Errorf("expected invalid token.json error, got %v", err)
	}
}

func TestOpen_MissingToken(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
	})

	_, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for missing token.json")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to read token.json: ") {
		t.Errorf("expected read error for token.json, got %v", err)
	}
}

func TestOpen_MalformedOAuthClient(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		config.OAuthClientFile: "{}",
		config.TokenFile:       `{"access_token":"x"}`,
	})

	_, err := Open(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for malformed oauth_client.json")
	}
	if !strings.HasPrefix(err.Error(), "invalid oauth_client.json: ") {
		t.Errorf("expected invalid oauth_client.json error, got %v", err)
	}
}
