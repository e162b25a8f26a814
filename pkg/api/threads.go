package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/otto8-ai/otto-admin/internal/logger"
	"github.com/otto8-ai/otto-admin/pkg/files"
	"github.com/otto8-ai/otto-admin/pkg/models"
)

// ListOptions selects a page of a paginated collection
type ListOptions struct {
	Offset int
	Limit  int
	Search string
}

func (o ListOptions) query() map[string]string {
	q := map[string]string{}
	if o.Limit > 0 {
		q["offset"] = strconv.Itoa(o.Offset)
		q["limit"] = strconv.Itoa(o.Limit)
	}
	if o.Search != "" {
		q["search"] = o.Search
	}
	return q
}

// GetThread fetches one thread
func (c *Client) GetThread(ctx context.Context, id string) (*models.Thread, error) {
	var thread models.Thread
	req := c.request(ctx).SetPathParam("id", id).SetResult(&thread)
	if _, err := do(req, http.MethodGet, "/threads/{id}"); err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetAgent fetches one agent
func (c *Client) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	var agent models.Agent
	req := c.request(ctx).SetPathParam("id", id).SetResult(&agent)
	if _, err := do(req, http.MethodGet, "/agents/{id}"); err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetWorkflow fetches one workflow
func (c *Client) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var wf models.Workflow
	req := c.request(ctx).SetPathParam("id", id).SetResult(&wf)
	if _, err := do(req, http.MethodGet, "/workflows/{id}"); err != nil {
		return nil, err
	}
	return &wf, nil
}

// GetEntity resolves the agent or workflow a thread belongs to
func (c *Client) GetEntity(ctx context.Context, thread *models.Thread) (models.Entity, error) {
	id := thread.EntityID()
	if id == "" {
		return models.Entity{}, fmt.Errorf("thread %s has no agent or workflow", thread.ID)
	}
	if models.IsAgentID(id) {
		agent, err := c.GetAgent(ctx, id)
		if err != nil {
			return models.Entity{}, err
		}
		return models.Entity{ID: agent.ID, Name: agent.Name}, nil
	}
	wf, err := c.GetWorkflow(ctx, id)
	if err != nil {
		return models.Entity{}, err
	}
	return models.Entity{ID: wf.ID, Name: wf.Name}, nil
}

// ListThreadFiles returns one page of the files in a thread's workspace
func (c *Client) ListThreadFiles(ctx context.Context, threadID string, opts ListOptions) (models.Page[models.File], error) {
	var page models.Page[models.File]
	req := c.request(ctx).
		SetPathParam("id", threadID).
		SetQueryParams(opts.query()).
		SetResult(&page)
	if _, err := do(req, http.MethodGet, "/threads/{id}/files"); err != nil {
		return models.Page[models.File]{}, err
	}
	return paginate(page, opts, func(f models.File) string { return f.Name }), nil
}

// ListThreadTables returns one page of the tables in a thread's database
func (c *Client) ListThreadTables(ctx context.Context, threadID string, opts ListOptions) (models.Page[models.Table], error) {
	var page models.Page[models.Table]
	req := c.request(ctx).
		SetPathParam("id", threadID).
		SetQueryParams(opts.query()).
		SetResult(&page)
	if _, err := do(req, http.MethodGet, "/threads/{id}/tables"); err != nil {
		return models.Page[models.Table]{}, err
	}
	return paginate(page, opts, func(t models.Table) string { return t.Name }), nil
}

// ListThreadKnowledge returns the knowledge files attached to a thread
func (c *Client) ListThreadKnowledge(ctx context.Context, threadID string) ([]models.KnowledgeFile, error) {
	var list models.List[models.KnowledgeFile]
	req := c.request(ctx).SetPathParam("id", threadID).SetResult(&list)
	if _, err := do(req, http.MethodGet, "/threads/{id}/knowledge-files"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// ListThreadCredentials returns the credentials stored for a thread
func (c *Client) ListThreadCredentials(ctx context.Context, threadID string) ([]models.Credential, error) {
	var list models.List[models.Credential]
	req := c.request(ctx).SetPathParam("id", threadID).SetResult(&list)
	if _, err := do(req, http.MethodGet, "/threads/{id}/credentials"); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// DeleteThreadCredential removes a credential from a thread
func (c *Client) DeleteThreadCredential(ctx context.Context, threadID, name string) error {
	req := c.request(ctx).SetPathParams(map[string]string{"id": threadID, "name": name})
	_, err := do(req, http.MethodDelete, "/threads/{id}/credentials/{name}")
	return err
}

// DownloadThreadFile saves a workspace file into dir and returns the path written
func (c *Client) DownloadThreadFile(ctx context.Context, threadID, name, dir string) (string, error) {
	req := c.request(ctx).
		SetPathParams(map[string]string{"id": threadID, "file": name}).
		SetHeader("Accept", "*/*").
		SetDoNotParseResponse(true)

	logger.Request(http.MethodGet, "/threads/{id}/file/{file}", "file", name)
	resp, err := req.Execute(http.MethodGet, "/threads/{id}/file/{file}")
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(body, 4096))
		return "", &Error{
			StatusCode: resp.StatusCode(),
			Method:     http.MethodGet,
			Path:       resp.Request.URL,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	return files.SaveDownload(dir, name, body)
}

// paginate makes sure a page honors opts even when the server ignored the
// pagination parameters and sent the whole collection. A page holding more
// items than the limit, or fewer than its total claims, is the whole collection.
func paginate[T any](page models.Page[T], opts ListOptions, name func(T) string) models.Page[T] {
	oversized := opts.Limit > 0 && len(page.Items) > opts.Limit
	if !oversized && page.Total >= len(page.Items) {
		return page
	}

	items := page.Items
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		filtered := make([]T, 0, len(items))
		for _, item := range items {
			if strings.Contains(strings.ToLower(name(item)), needle) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	total := len(items)
	if opts.Limit <= 0 {
		return models.Page[T]{Items: items, Total: total}
	}

	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return models.Page[T]{Items: items[start:end], Total: total}
}
