// Package dialogapi is a client for the task dialog JSON API. It is what
// terminal hosts such as taskctl use to drive a dialog that lives in the
// service.
package dialogapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/platform/httpclient"
)

const basePath = "/api/v1/dialogs"

// Client drives dialogs through the JSON API. Problem responses are
// translated to domain errors: a closed dialog is domain.ErrNotFound and a
// full service is domain.ErrUnavailable.
type Client struct {
	req *acl.Requester
}

// New creates a Client backed by the given HTTP client.
func New(client *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{req: acl.NewRequester(client, logger)}
}

// Open mounts a new dialog.
func (c *Client) Open(ctx context.Context) (*dto.DialogResponse, error) {
	var resp dto.DialogResponse
	if err := c.req.Do(ctx, http.MethodPost, basePath, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns the current state of a dialog.
func (c *Client) Get(ctx context.Context, id string) (*dto.DialogResponse, error) {
	var resp dto.DialogResponse
	if err := c.req.Do(ctx, http.MethodGet, dialogPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Edit replaces one field's value.
func (c *Client) Edit(ctx context.Context, id string, field dialog.Field, value string) (*dto.DialogResponse, error) {
	var resp dto.DialogResponse
	body := dto.EditFieldRequest{Value: &value}
	path := dialogPath(id) + "/fields/" + url.PathEscape(field.String())
	if err := c.req.Do(ctx, http.MethodPut, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit runs one submit attempt.
func (c *Client) Submit(ctx context.Context, id string) (*dto.SubmitResponse, error) {
	var resp dto.SubmitResponse
	if err := c.req.Do(ctx, http.MethodPost, dialogPath(id)+"/submit", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Close presses Cancel. It reports false, without an error, when the
// dialog refused because a submission is in flight.
func (c *Client) Close(ctx context.Context, id string) (bool, error) {
	var resp dto.CloseResponse
	err := c.req.Do(ctx, http.MethodPost, dialogPath(id)+"/close", struct{}{}, &resp)
	if errors.Is(err, domain.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return resp.Closed, nil
}

// Click clicks the backdrop or the panel.
func (c *Client) Click(ctx context.Context, id string, target dialog.Target) (bool, error) {
	var resp dto.CloseResponse
	body := dto.ClickRequest{Target: target.String()}
	if err := c.req.Do(ctx, http.MethodPost, dialogPath(id)+"/click", body, &resp); err != nil {
		return false, err
	}
	return resp.Closed, nil
}

func dialogPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}
