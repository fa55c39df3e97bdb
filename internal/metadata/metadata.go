// Package metadata talks to the off-ledger blob store that pins descriptive
// credential metadata and hands back a stable reference URI. The core treats
// it as an opaque collaborator; it never affects verification correctness.
package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ticketblock/ticketblock/internal/domain"
)

// Attribute is one trait of a credential document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// Document is the descriptive content bound to a credential token at mint
// time. It is not reproducible after the fact; the ledger only ever stores
// the returned reference.
type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []Attribute `json:"attributes"`
}

// TicketDocument describes one seat of one event.
func TicketDocument(ev *domain.Event, t *domain.Ticket) Document {
	return Document{
		Name:        ev.Title,
		Description: ev.Description,
		Attributes: []Attribute{
			{TraitType: "Event ID", Value: t.EventID},
			{TraitType: "Ticket ID", Value: t.TicketID},
			{TraitType: "Zone", Value: t.Zone},
			{TraitType: "Row", Value: t.Row},
			{TraitType: "Column", Value: t.Column},
		},
	}
}

// Store pins a document and returns its reference URI.
type Store interface {
	Pin(ctx context.Context, doc Document) (string, error)
}

type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client pins documents through a pinning-service HTTP API.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type pinResponse struct {
	MetadataURL string `json:"metadataUrl"`
}

func (c *Client) Pin(ctx context.Context, doc Document) (string, error) {
	const op = "metadata.Client.Pin"

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.BaseURL+"/api/metadata",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("pinata_api_key", c.cfg.APIKey)
		req.Header.Set("pinata_secret_api_key", c.cfg.APISecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: pin service returned %d", op, resp.StatusCode)
	}

	var out pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if out.MetadataURL == "" {
		return "", fmt.Errorf("%s: pin service returned no reference", op)
	}

	return out.MetadataURL, nil
}
