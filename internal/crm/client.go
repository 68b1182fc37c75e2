// Package crm is the GoHighLevel-style REST client the reconciliation
// pipeline pulls contacts and the custom-field catalog from.
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledgerlink/internal/core"
)

const (
	// pageSize is fixed by the upstream API contract: a page with
	// fewer items than this is the last one.
	pageSize = 100

	// pagePause spaces consecutive page requests to respect the
	// upstream rate policy.
	pagePause = 300 * time.Millisecond

	defaultTimeout = 30 * time.Second
)

// Client talks to the CRM with a static bearer credential.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string

	// pause between page requests; only tests touch this.
	pagePause time.Duration
}

// New creates a client for the given base URL (e.g.
// "https://rest.gohighlevel.com/v1") and API key.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		apiKey:    apiKey,
		pagePause: pagePause,
	}
}

// contactsPage tolerates both response shapes the upstream is known to
// produce: contacts at the top level or nested under data.
type contactsPage struct {
	Contacts []core.RawContact `json:"contacts"`
	Data     struct {
		Contacts []core.RawContact `json:"contacts"`
	} `json:"data"`
}

func (p contactsPage) items() []core.RawContact {
	if p.Contacts != nil {
		return p.Contacts
	}
	return p.Data.Contacts
}

// FetchAllContacts retrieves the complete contact collection page by
// page. Pagination is strictly sequential: the terminal signal is a
// page shorter than the fixed page size, so the next request cannot be
// issued until the previous page has answered. Any page failure aborts
// the whole fetch with no partial result.
func (c *Client) FetchAllContacts(ctx context.Context) ([]core.RawContact, error) {
	var all []core.RawContact
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/contacts/?page=%d&limit=%d", c.baseURL, page, pageSize)

		var body contactsPage
		if err := c.getJSON(ctx, url, &body); err != nil {
			return nil, &core.UpstreamError{Op: fmt.Sprintf("fetch contacts page %d", page), Err: err}
		}

		items := body.items()
		all = append(all, items...)
		if len(items) < pageSize {
			return all, nil
		}

		select {
		case <-time.After(c.pagePause):
		case <-ctx.Done():
			return nil, &core.UpstreamError{Op: "fetch contacts", Err: ctx.Err()}
		}
	}
}

type catalogResponse struct {
	CustomFields json.RawMessage `json:"customFields"`
}

type fieldDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// FetchCustomFields retrieves the custom-field catalog and builds the
// id lookup. A response whose customFields is missing or not a
// sequence means the upstream cannot describe its own fields, so it
// surfaces as a schema error distinct from a transport failure.
func (c *Client) FetchCustomFields(ctx context.Context) (map[string]core.FieldDefinition, error) {
	var body catalogResponse
	if err := c.getJSON(ctx, c.baseURL+"/custom-fields/", &body); err != nil {
		return nil, &core.UpstreamError{Op: "fetch custom fields", Err: err}
	}

	if len(body.CustomFields) == 0 || string(body.CustomFields) == "null" {
		return nil, &core.SchemaError{Err: errors.New("customFields missing from response")}
	}
	var defs []fieldDefinition
	if err := json.Unmarshal(body.CustomFields, &defs); err != nil {
		return nil, &core.SchemaError{Err: fmt.Errorf("customFields is not a sequence: %w", err)}
	}

	catalog := make(map[string]core.FieldDefinition, len(defs))
	for _, d := range defs {
		group := d.Group
		if group == "" {
			group = "General"
		}
		catalog[d.ID] = core.FieldDefinition{ID: d.ID, Name: d.Name, Group: group}
	}
	return catalog, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for a useful message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
