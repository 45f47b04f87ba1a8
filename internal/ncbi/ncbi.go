// Package ncbi provides a client for the NCBI E-utilities service, used to
// fetch SRA sample metadata in batches.
package ncbi

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Connection issues synchronous requests to the E-utilities service.
type Connection struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewConnection creates a connection to the production service.
func NewConnection() *Connection {
	return &Connection{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: zap.NewNop(),
	}
}

// SetBaseURL overrides the service endpoint. Used for mirrors and tests.
func (c *Connection) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// SetLogger sets the logger for request progress messages.
func (c *Connection) SetLogger(l *zap.Logger) {
	c.logger = l
}

// ListQuery accumulates accession ids for one batched fetch against a
// single NCBI database.
type ListQuery struct {
	db  string
	ids []string
}

// NewListQuery creates a list query against the named database ("sra").
func NewListQuery(db string) *ListQuery {
	return &ListQuery{db: db}
}

// Add appends an accession id to the query.
func (q *ListQuery) Add(id string) {
	q.ids = append(q.ids, id)
}

// Size returns the number of ids currently accumulated.
func (q *ListQuery) Size() int {
	return len(q.ids)
}

// Fetch runs the query and returns the records found. The query is reset
// so the caller can reuse it for the next batch. An empty query returns no
// records and issues no request.
func (c *Connection) Fetch(q *ListQuery) ([]ExperimentPackage, error) {
	if q.Size() == 0 {
		return nil, nil
	}
	ids := q.ids
	q.ids = nil

	c.logger.Info("retrieving sample batch from NCBI", zap.Int("count", len(ids)))
	params := url.Values{}
	params.Set("db", q.db)
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", "xml")
	fetchURL := fmt.Sprintf("%s/efetch.fcgi?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(fetchURL)
	if err != nil {
		return nil, fmt.Errorf("efetch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("efetch error %d: %s", resp.StatusCode, string(body))
	}

	var envelope experimentPackageSet
	if err := xml.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode efetch response: %w", err)
	}
	c.logger.Info("sample batch decoded", zap.Int("records", len(envelope.Packages)))
	return envelope.Packages, nil
}
