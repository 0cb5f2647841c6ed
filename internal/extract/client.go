// Package extract ingests scanned newspaper PDFs. A hosted extraction
// service turns a PDF into structured article records; this package wraps
// the service call, merges articles continued across pages, and hands the
// results to the storage sink.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/hulondalo/warta/internal/logger"
)

// Status reflects the most recent extraction attempt.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Record is one article as returned by the extraction service. Field names
// follow the service's Indonesian wire format.
type Record struct {
	Judul    string `json:"judul"`
	Konten   string `json:"konten"`
	Kategori string `json:"kategori"`
	// Halaman is the page number, comma-joined ("3,4") once continued
	// articles are merged.
	Halaman string `json:"halaman"`
	Sumber  string `json:"sumber"`
}

const defaultProcessTimeout = 5 * time.Minute

// Client calls the hosted PDF extraction service.
type Client struct {
	baseURL string
	client  *http.Client
	log     logger.Interface

	mu     sync.Mutex
	status Status
}

// NewClient builds a client for the extraction service at baseURL. A nil
// httpClient gets a default with a generous timeout; extraction of a full
// newspaper scan is slow.
func NewClient(baseURL string, httpClient *http.Client, log logger.Interface) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultProcessTimeout}
	}
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		log:     log,
		status:  StatusIdle,
	}
}

// Status returns the state of the most recent Process call.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Process uploads a PDF and returns the extracted article records. On
// failure it returns an empty list and leaves the client in the error
// state; callers log and move on rather than aborting their run.
func (c *Client) Process(ctx context.Context, pdf []byte, filename string) ([]Record, error) {
	c.setStatus(StatusProcessing)

	records, err := c.upload(ctx, pdf, filename)
	if err != nil {
		c.setStatus(StatusError)
		c.log.WithError(err).Error("PDF extraction failed", "filename", filename)
		return nil, err
	}

	c.setStatus(StatusCompleted)
	c.log.Info("PDF extraction completed",
		"filename", filename,
		"articles", len(records),
	)
	return records, nil
}

func (c *Client) upload(ctx context.Context, pdf []byte, filename string) ([]Record, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, payload)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}
	return records, nil
}
