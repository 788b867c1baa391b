// Package googletasks implements repository.Repository on top of the Google Tasks API.
//
// Each Repository owns a scratch task list created by Open and deleted by
// Close, so tasks never outlive the process.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

const (
	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	// PageSize is the number of tasks fetched per API page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// ListTitlePrefix prefixes the title of every scratch list.
	ListTitlePrefix = "tasklist "

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Repository stores tasks in a scratch Google Tasks list.
type Repository struct {
	svc    *tasks.Service
	listID string
	logger *log.Logger

	mu     sync.Mutex
	lastID string // most recently inserted task, new tasks go after it
}

// OAuthConfig loads the OAuth client configuration from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// Open creates a repository authenticated with the stored OAuth token.
// Requires oauth_client.json and token.json to exist.
func Open(ctx context.Context, cfg *config.Config) (*Repository, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	return NewWithHTTPClient(ctx, httpClient, cfg.Logger())
}

// NewWithHTTPClient creates a repository using httpClient for API calls.
// Extra options (such as option.WithEndpoint) are passed to the Tasks client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, logger *log.Logger, opts ...option.ClientOption) (*Repository, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	r := &Repository{svc: svc, logger: logger}
	if err := r.createList(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ListID returns the ID of the scratch list.
func (r *Repository) ListID() string {
	return r.listID
}

func (r *Repository) createList(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	title := ListTitlePrefix + uuid.NewString()
	list, err := r.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create task list: %w", wrapError(err))
	}
	r.listID = list.Id
	r.logger.Printf("created scratch list %q (%s)", title, list.Id)
	return nil
}

// AddTask inserts t after the previously added task.
func (r *Repository) AddTask(ctx context.Context, t task.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	call := r.svc.Tasks.Insert(r.listID, &tasks.Task{
		Title:  t.Description,
		Status: status(t),
	})
	// Without a previous sibling the API puts the task at the top
	if r.lastID != "" {
		call = call.Previous(r.lastID)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	r.lastID = created.Id
	r.logger.Printf("inserted task %s", created.Id)
	return nil
}

// AllTasks returns all tasks in the scratch list ordered by position.
func (r *Repository) AllTasks(ctx context.Context) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var items []*tasks.Task
	err := r.svc.Tasks.List(r.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	// Positions are fixed-width strings, so lexical order is list order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	result := make([]task.Task, 0, len(items))
	for _, item := range items {
		result = append(result, task.Task{
			Description: item.Title,
			IsCompleted: item.Status == statusCompleted,
		})
	}
	return result, nil
}

// Close deletes the scratch list.
func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), APITimeout)
	defer cancel()

	if err := r.svc.Tasklists.Delete(r.listID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete task list: %w", wrapError(err))
	}
	r.logger.Printf("deleted scratch list %s", r.listID)
	return nil
}

func status(t task.Task) string {
	if t.IsCompleted {
		return statusCompleted
	}
	return statusNeedsAction
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked (run: tasklist login)")
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}

	return err
}
