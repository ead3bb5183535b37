// Package exomast queries the ExoMAST planet/TCE services. Responses are
// the archive's {fields, data} JSON shape, converted to table.Table.
package exomast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mjkukula/tessgraph/table"
	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://exo.mast.stsci.edu"

type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache.New(15*time.Minute, 30*time.Minute),
	}
}

// tableResponse is the wire shape shared by the table-returning endpoints.
type tableResponse struct {
	Fields []table.Field    `json:"fields"`
	Data   []map[string]any `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	full := c.baseURL + path

	if body, found := c.cache.Get(full); found {
		return errors.Wrap(json.Unmarshal(body.([]byte), out), "unmarshal cached")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return errors.Wrap(err, "new request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("exomast: status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	c.cache.SetDefault(full, body)

	return errors.Wrap(json.Unmarshal(body, out), "unmarshal")
}

// TCETable fetches the data-validation results table for one TCE of a TIC
// target, e.g. ticID "425997655", tce "TCE_1".
func (c *Client) TCETable(ctx context.Context, ticID string, tce string) (*table.Table, error) {
	path := fmt.Sprintf("/api/v0.1/dvdata/tess/%s/table/?tce=%s",
		url.PathEscape(ticID), url.QueryEscape(tce))

	var resp tableResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "tce table")
	}

	return table.Build(resp.Fields, resp.Data), nil
}

// TCEList returns the TCE identifiers known for a TIC target.
func (c *Client) TCEList(ctx context.Context, ticID string) ([]string, error) {
	path := fmt.Sprintf("/api/v0.1/dvdata/tess/%s/tces/", url.PathEscape(ticID))

	var resp struct {
		TCEs []string `json:"TCE"`
	}
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "tce list")
	}

	return resp.TCEs, nil
}

// Identifiers resolves a planet name to the archive's identifier record.
func (c *Client) Identifiers(ctx context.Context, name string) (map[string]any, error) {
	path := "/api/v0.1/exoplanets/identifiers/?name=" + url.QueryEscape(name)

	var resp map[string]any
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "identifiers")
	}

	return resp, nil
}
