package snipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// APIError is returned when Snipe-IT answers with an error status or payload.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("snipe-it %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("snipe-it %s: %s", e.Endpoint, e.Message)
}

// Client is the HTTP implementation of Provider.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
}

// NewClient creates a Snipe-IT client from configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("snipe url is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("snipe token is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.URL, "/") + "/api/v1/",
		token:    cfg.Token,
		pageSize: pageSize,
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

// page is the envelope of every Snipe-IT listing.
type page[T any] struct {
	Total    int    `json:"total"`
	Rows     []T    `json:"rows"`
	Status   string `json:"status"`
	Messages any    `json:"messages"`
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", endpoint, err)
	}
	if resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", endpoint, err)
	}
	return nil
}

// listAll walks every page of endpoint and keeps the first row seen for each id.
func listAll[T any](ctx context.Context, c *Client, endpoint string, id func(T) int) ([]T, error) {
	var (
		items  []T
		seen   = make(map[int]struct{})
		offset = 0
	)

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var p page[T]
		if err := c.get(ctx, endpoint, params, &p); err != nil {
			return nil, err
		}
		if p.Status == "error" {
			return nil, &APIError{Endpoint: endpoint, Message: fmt.Sprint(p.Messages)}
		}

		for _, row := range p.Rows {
			key := id(row)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, row)
		}

		offset += c.pageSize
		if len(p.Rows) == 0 || offset >= p.Total {
			return items, nil
		}
	}
}

// Companies lists all companies sorted by id.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	companies, err := listAll(ctx, c, "companies", func(v Company) int { return v.ID })
	if err != nil {
		return nil, err
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })
	return companies, nil
}

// Locations lists all locations sorted by name.
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	locations, err := listAll(ctx, c, "locations", func(v Location) int { return v.ID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

// macFieldsets returns the ids of fieldsets declaring a MAC field.
func (c *Client) macFieldsets(ctx context.Context) (map[int]struct{}, error) {
	fieldsets, err := listAll(ctx, c, "fieldsets", func(v Fieldset) int { return v.ID })
	if err != nil {
		return nil, err
	}
	ids := make(map[int]struct{})
	for _, fs := range fieldsets {
		if fs.HasMACFormat() {
			ids[fs.ID] = struct{}{}
		}
	}
	return ids, nil
}

// ModelsWithMAC lists models whose fieldset declares a MAC field and their
// manufacturers, both sorted by id.
func (c *Client) ModelsWithMAC(ctx context.Context) ([]Manufacturer, []Model, error) {
	fieldsets, err := c.macFieldsets(ctx)
	if err != nil {
		return nil, nil, err
	}

	all, err := listAll(ctx, c, "models", func(v Model) int { return v.ID })
	if err != nil {
		return nil, nil, err
	}

	var (
		models        []Model
		manufacturers []Manufacturer
		seen          = make(map[int]struct{})
	)
	for _, m := range all {
		if m.Fieldset == nil {
			continue
		}
		if _, ok := fieldsets[m.Fieldset.ID]; !ok {
			continue
		}
		models = append(models, m)

		if m.Manufacturer == nil {
			continue
		}
		if _, dup := seen[m.Manufacturer.ID]; dup {
			continue
		}
		seen[m.Manufacturer.ID] = struct{}{}
		manufacturers = append(manufacturers, Manufacturer{ID: m.Manufacturer.ID, Name: m.Manufacturer.Name})
	}

	sort.Slice(manufacturers, func(i, j int) bool { return manufacturers[i].ID < manufacturers[j].ID })
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return manufacturers, models, nil
}

// AssetsWithMAC lists assets with a MAC formatted custom field, sorted by tag.
// Snipe-IT cannot filter by fieldset server-side, so every asset is fetched.
func (c *Client) AssetsWithMAC(ctx context.Context) ([]Asset, error) {
	all, err := listAll(ctx, c, "hardware", func(v Asset) int { return v.ID })
	if err != nil {
		return nil, err
	}

	var assets []Asset
	for _, a := range all {
		if a.CustomFields.HasMACFormat() {
			assets = append(assets, a)
		}
	}
	sort.SliceStable(assets, func(i, j int) bool { return assets[i].AssetTag < assets[j].AssetTag })
	return assets, nil
}

// Fetch loads every collection used by a sync run from p. The collections are
// independent and fetched concurrently; the first failure cancels the rest.
func Fetch(ctx context.Context, p Provider) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		if snap.Companies, err = p.Companies(ctx); err != nil {
			return fmt.Errorf("failed to list companies: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Manufacturers, snap.Models, err = p.ModelsWithMAC(ctx); err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Locations, err = p.Locations(ctx); err != nil {
			return fmt.Errorf("failed to list locations: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Assets, err = p.AssetsWithMAC(ctx); err != nil {
			return fmt.Errorf("failed to list assets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
