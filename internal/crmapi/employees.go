package crmapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/fisto/crm-sync/internal/domain"
)

const (
	OpFetch    = "fetch"
	OpDelete   = "delete"
	OpRegister = "register"
	OpPing     = "ping"
)

// FetchResult is a decoded employee list.
type FetchResult struct {
	Employees []domain.Employee
	// Dropped counts records discarded for lacking an identifier.
	Dropped  int
	Attempts int
}

// EmployeeService is the backend surface used by the sync store.
type EmployeeService interface {
	FetchEmployees(ctx context.Context) (FetchResult, error)
	DeleteEmployee(ctx context.Context, id string) error
	RegisterEmployee(ctx context.Context, reg domain.Registration) error
	Ping(ctx context.Context) error
}

var _ EmployeeService = (*Client)(nil)

func (c *Client) getFetch(ctx context.Context) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, c.fetchURL, nil)
}

// FetchEmployees downloads the employee list. A null data field is an empty list.
func (c *Client) FetchEmployees(ctx context.Context) (FetchResult, error) {
	resp, err := c.send(ctx, OpFetch, c.maxRetries, c.getFetch)
	if err != nil {
		return FetchResult{}, err
	}
	c.log.Debug("fetch response", "bytes", len(resp.body), "preview", preview(resp.body, 200))

	env, err := decodeEnvelope(OpFetch, resp.attempts, resp.body, "Failed to load employees")
	if err != nil {
		return FetchResult{}, err
	}
	result := FetchResult{Employees: []domain.Employee{}, Attempts: resp.attempts}
	if !env.hasData() {
		return result, nil
	}
	employees, dropped, err := domain.DecodeEmployees(env.Data)
	if err != nil {
		return FetchResult{}, protocolError(OpFetch, resp.attempts, fmt.Errorf("decode employees: %w", err))
	}
	for _, idx := range dropped {
		c.log.Warn("dropping employee record without emp_id", "index", idx)
	}
	result.Employees = employees
	result.Dropped = len(dropped)
	return result, nil
}

// DeleteEmployee asks the backend to remove the employee with id. It uses the
// same retry policy as fetch.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("employee id required")
	}
	form := url.Values{"emp_id": {id}}.Encode()
	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.deleteURL, strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	resp, err := c.send(ctx, OpDelete, c.maxRetries, build)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(OpDelete, resp.attempts, resp.body, "Failed to delete employee")
	return err
}

// RegisterEmployee validates reg and submits it as multipart form data.
// Registration is not idempotent, so it is sent exactly once.
func (c *Client) RegisterEmployee(ctx context.Context, reg domain.Registration) error {
	if err := reg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range reg.FormFields() {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("encode form field %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	payload := buf.Bytes()
	contentType := mw.FormDataContentType()

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.registerURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}

	resp, err := c.send(ctx, OpRegister, 1, build)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(OpRegister, resp.attempts, resp.body, "Failed to register employee")
	return err
}

// Ping checks that the fetch endpoint answers with a valid envelope.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, OpPing, c.maxRetries, c.getFetch)
	if err != nil {
		return err
	}
	_, err = decodeEnvelope(OpPing, resp.attempts, resp.body, "Connection test failed")
	return err
}
