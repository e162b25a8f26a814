package api

import (
	"context"
	"net/http"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

// ListModelProviders returns the model providers known to the platform
func (c *Client) ListModelProviders(ctx context.Context) ([]models.ModelProvider, error) {
	var list models.List[models.ModelProvider]
	req := c.request(ctx).SetResult(&list)
	if _, err := do(req, http.MethodGet, "/model-providers"); err != nil {
		return nil, err
	}
	return list.Items, nil
}
