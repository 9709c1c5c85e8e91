// Package fetch implements the ContentStore interface over the Sanity
// HTTP API: documents are read from the doc endpoint, listed through a
// GROQ query and written back with a patch mutation.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultUserAgent    = "blockpipe/1.0 (https://github.com/gaurav-prasanna/blockpipe)"
	defaultAPIVersion   = "v2021-06-07"
	defaultDocumentType = "article"
)

// ErrReadOnly is returned by Save when no API token is configured.
var ErrReadOnly = errors.New("content store is read-only: no API token configured")

// Config configures a SanityClient.
type Config struct {
	ProjectID    string
	Dataset      string
	Token        string
	APIVersion   string
	DocumentType string
	// BaseURL overrides the API host, e.g. for tests.
	BaseURL string
	Timeout time.Duration
	Log     *logger.Logger
}

var _ core.ConditionalStore = (*SanityClient)(nil)

// SanityClient reads and writes article documents.
type SanityClient struct {
	client  *http.Client
	baseURL string
	dataset string
	token   string
	docType string
	log     *logger.Logger
}

// New creates a SanityClient with a sensible timeout.
func New(cfg Config) *SanityClient {
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	docType := cfg.DocumentType
	if docType == "" {
		docType = defaultDocumentType
	}
	return &SanityClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(base, "/") + "/" + version,
		dataset: cfg.Dataset,
		token:   cfg.Token,
		docType: docType,
		log:     logger.OrNop(cfg.Log),
	}
}

// sanityDocument is the stored shape of an article.
type sanityDocument struct {
	ID          string          `json:"_id"`
	Type        string          `json:"_type,omitempty"`
	Rev         string          `json:"_rev,omitempty"`
	Title       string          `json:"title"`
	Slug        *sanitySlug     `json:"slug,omitempty"`
	PublishedAt string          `json:"publishedAt,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
}

type sanitySlug struct {
	Type    string `json:"_type,omitempty"`
	Current string `json:"current"`
}

// Fetch retrieves one article by document ID.
func (c *SanityClient) Fetch(ctx context.Context, id string) (*core.Article, error) {
	endpoint := fmt.Sprintf("%s/data/doc/%s/%s", c.baseURL, url.PathEscape(c.dataset), url.PathEscape(id))
	var resp struct {
		Documents []sanityDocument `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Documents) == 0 {
		return nil, fmt.Errorf("fetching %s: %w", id, core.ErrNotFound)
	}

	d := resp.Documents[0]
	body := block.Document{}
	if len(d.Body) > 0 && string(d.Body) != "null" {
		var err error
		body, err = block.Decode(bytes.NewReader(d.Body))
		if err != nil {
			return nil, fmt.Errorf("decoding body of %s: %w", id, err)
		}
	}
	a := &core.Article{
		ID:          d.ID,
		Title:       d.Title,
		PublishedAt: d.PublishedAt,
		Revision:    d.Rev,
		Body:        body,
	}
	if d.Slug != nil {
		a.Slug = d.Slug.Current
	}
	c.log.Debug("fetched article", "id", id, "blocks", len(body), "rev", d.Rev)
	return a, nil
}

// List returns the IDs of all documents of the configured type, newest
// first.
func (c *SanityClient) List(ctx context.Context) ([]string, error) {
	q := url.Values{}
	q.Set("query", "*[_type == $type] | order(publishedAt desc)._id")
	q.Set("$type", fmt.Sprintf("%q", c.docType))
	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, url.PathEscape(c.dataset), q.Encode())

	var resp struct {
		Result []string `json:"result"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// Save writes the article body (and title, when set) with a patch
// mutation, creating the document first if it does not exist.
func (c *SanityClient) Save(ctx context.Context, a *core.Article) error {
	patch, err := c.patch(a)
	if err != nil {
		return err
	}
	return c.mutate(ctx, a,
		map[string]any{"createIfNotExists": map[string]any{"_id": a.ID, "_type": c.docType}},
		map[string]any{"patch": patch},
	)
}

// SaveIfRevision patches the document only while its _rev equals
// revision. Sanity rejects a stale patch with 409 Conflict.
func (c *SanityClient) SaveIfRevision(ctx context.Context, a *core.Article, revision string) error {
	patch, err := c.patch(a)
	if err != nil {
		return err
	}
	patch["ifRevisionID"] = revision
	return c.mutate(ctx, a, map[string]any{"patch": patch})
}

func (c *SanityClient) patch(a *core.Article) (map[string]any, error) {
	if c.token == "" {
		return nil, ErrReadOnly
	}
	body, err := a.Body.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding body: %w", err)
	}
	set := map[string]any{"body": json.RawMessage(body)}
	if a.Title != "" {
		set["title"] = a.Title
	}
	return map[string]any{"id": a.ID, "set": set}, nil
}

// mutate posts one transaction and stamps a with its ID.
func (c *SanityClient) mutate(ctx context.Context, a *core.Article, mutations ...any) error {
	payload, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return fmt.Errorf("encoding mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.baseURL, url.PathEscape(c.dataset))
	var resp struct {
		TransactionID string `json:"transactionId"`
	}
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &resp); err != nil {
		return err
	}
	a.Revision = resp.TransactionID
	c.log.Info("saved article", "id", a.ID, "blocks", len(a.Body), "transaction", resp.TransactionID)
	return nil
}

// do performs one API call and decodes the JSON response into out.
func (c *SanityClient) do(ctx context.Context, method, endpoint string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("calling %s: %w", endpoint, core.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("calling %s: %w", endpoint, core.ErrRevisionMismatch)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d for %s: %s", resp.StatusCode, endpoint, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
