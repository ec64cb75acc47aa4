package netbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is returned when NetBox answers with a non-success status.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("netbox %s %s (status %d): %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// Client is the HTTP implementation of Registry.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
}

// NewClient creates a NetBox client from configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("netbox url is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("netbox token is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.URL, "/") + "/api/",
		token:    cfg.Token,
		pageSize: pageSize,
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

func (c *Client) do(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", target, err)
		}
		reader = bytes.NewReader(data)
	}

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + target
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}
	if resp.StatusCode >= 300 {
		return &APIError{Method: method, Endpoint: target, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return nil
}

// list is the envelope of every NetBox listing.
type list[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// collection implements Collection over one API endpoint.
type collection[T any] struct {
	client *Client
	path   string
}

func (col collection[T]) All(ctx context.Context) ([]T, error) {
	return col.Filter(ctx, nil)
}

func (col collection[T]) Filter(ctx context.Context, query url.Values) ([]T, error) {
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("limit", strconv.Itoa(col.client.pageSize))
	params.Set("offset", "0")

	var items []T
	target := col.path + "?" + params.Encode()
	for target != "" {
		var page list[T]
		if err := col.client.do(ctx, http.MethodGet, target, nil, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Results...)

		target = ""
		if page.Next != nil {
			target = *page.Next
		}
	}
	return items, nil
}

func (col collection[T]) Create(ctx context.Context, payload map[string]any) (T, error) {
	var created T
	err := col.client.do(ctx, http.MethodPost, col.path, payload, &created)
	return created, err
}

func (col collection[T]) Update(ctx context.Context, patches []map[string]any) error {
	if len(patches) == 0 {
		return nil
	}
	return col.client.do(ctx, http.MethodPatch, col.path, patches, nil)
}

func (c *Client) Tenants() Collection[Tenant] {
	return collection[Tenant]{client: c, path: "tenancy/tenants/"}
}

func (c *Client) Manufacturers() Collection[Manufacturer] {
	return collection[Manufacturer]{client: c, path: "dcim/manufacturers/"}
}

func (c *Client) DeviceTypes() Collection[DeviceType] {
	return collection[DeviceType]{client: c, path: "dcim/device-types/"}
}

func (c *Client) Sites() Collection[Site] {
	return collection[Site]{client: c, path: "dcim/sites/"}
}

func (c *Client) Locations() Collection[Location] {
	return collection[Location]{client: c, path: "dcim/locations/"}
}

func (c *Client) DeviceRoles() Collection[DeviceRole] {
	return collection[DeviceRole]{client: c, path: "dcim/device-roles/"}
}

func (c *Client) Devices() Collection[Device] {
	return collection[Device]{client: c, path: "dcim/devices/"}
}

type customField struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EnsureCustomField creates or updates the custom field definition.
func (c *Client) EnsureCustomField(ctx context.Context, def CustomFieldDefinition) (bool, error) {
	fields := collection[customField]{client: c, path: "extras/custom-fields/"}

	existing, err := fields.Filter(ctx, url.Values{"name": {def.Name}})
	if err != nil {
		return false, fmt.Errorf("failed to look up custom field %s: %w", def.Name, err)
	}

	payload := def.Payload()
	if len(existing) == 0 {
		if _, err := fields.Create(ctx, payload); err != nil {
			return false, fmt.Errorf("failed to create custom field %s: %w", def.Name, err)
		}
		return true, nil
	}

	payload["id"] = existing[0].ID
	if err := fields.Update(ctx, []map[string]any{payload}); err != nil {
		return false, fmt.Errorf("failed to update custom field %s: %w", def.Name, err)
	}
	return false, nil
}
