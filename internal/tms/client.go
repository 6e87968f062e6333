package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"shipdesk/internal/config"
)

const (
	shipmentsPath    = "/v1/shipments"
	shipmentListPath = "/v1/shipments/list"
	documentsPath    = "/v1/documents"
	documentsURLPath = "/v1/documents/url"
)

// couldNotDownload is the upstream's error text when its server fails to pull
// the file from the caller-supplied URL. It almost always means the URL is not
// reachable without credentials, so it gets rewritten into something a support
// agent can act on.
const couldNotDownload = "could not download file"

// Client is the outbound surface to the upstream TMS. Implementations are
// safe for concurrent use.
type Client interface {
	// GetShipment reads the full nested shipment record by internal id.
	// An upstream 404 yields ErrShipmentNotFound.
	GetShipment(ctx context.Context, id string) (*ShipmentEnvelope, error)

	// SearchShipmentsByBOL runs an equality search on BOL number. The result
	// rows are summaries; the full record requires GetShipment.
	SearchShipmentsByBOL(ctx context.Context, bol string) ([]SearchHit, error)

	// ListDocuments returns the shipment's document list unmodified.
	ListDocuments(ctx context.Context, shipmentID string) ([]json.RawMessage, error)

	// UpdateShipmentStatus resubmits the current status code together with a
	// new note and returns the refreshed status history.
	UpdateShipmentStatus(ctx context.Context, shipmentID, statusKey, note string) ([]json.RawMessage, error)

	// AttachDocumentURL asks the upstream to ingest a document from a URL.
	AttachDocumentURL(ctx context.Context, req AttachURLRequest) (json.RawMessage, error)
}

// HTTPClient implements Client against the upstream REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	tokens  TokenProvider
	http    *http.Client
}

// NewHTTPClient builds the upstream client. The http.Client is shared with
// the token source so both ride the same instrumented transport.
func NewHTTPClient(cfg config.TMSConfig, tokens TokenProvider, hc *http.Client) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		tokens:  tokens,
		http:    hc,
	}
}

func (c *HTTPClient) GetShipment(ctx context.Context, id string) (*ShipmentEnvelope, error) {
	resp, err := c.do(ctx, http.MethodGet, shipmentsPath+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrShipmentNotFound
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var env ShipmentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode shipment response: %w", err)
	}
	return &env, nil
}

func (c *HTTPClient) SearchShipmentsByBOL(ctx context.Context, bol string) ([]SearchHit, error) {
	q := url.Values{}
	q.Set("bolNumber[eq]", bol)

	resp, err := c.do(ctx, http.MethodGet, shipmentListPath, q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var body struct {
		Shipments []SearchHit `json:"shipments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return body.Shipments, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context, shipmentID string) ([]json.RawMessage, error) {
	filter, err := json.Marshal(map[string]any{"id": shipmentID, "type": "SHIPMENT"})
	if err != nil {
		return nil, fmt.Errorf("marshal context filter: %w", err)
	}
	q := url.Values{}
	q.Set("context", string(filter))

	resp, err := c.do(ctx, http.MethodGet, documentsPath, q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var body struct {
		Documents []json.RawMessage `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode documents response: %w", err)
	}
	if body.Documents == nil {
		return []json.RawMessage{}, nil
	}
	return body.Documents, nil
}

func (c *HTTPClient) UpdateShipmentStatus(ctx context.Context, shipmentID, statusKey, note string) ([]json.RawMessage, error) {
	// The upstream has no append-note call; the full status object, including
	// the current code, is resubmitted with the note attached.
	payload := map[string]any{
		"status": Status{
			Code:  &KeyValue{Key: statusKey},
			Notes: note,
		},
	}

	resp, err := c.do(ctx, http.MethodPut, shipmentsPath+"/"+url.PathEscape(shipmentID), nil, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var env ShipmentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode status update response: %w", err)
	}
	if env.Details == nil || env.Details.StatusHistory == nil {
		return []json.RawMessage{}, nil
	}
	return env.Details.StatusHistory, nil
}

func (c *HTTPClient) AttachDocumentURL(ctx context.Context, req AttachURLRequest) (json.RawMessage, error) {
	payload := map[string]any{
		"context": map[string]any{"id": req.ShipmentID, "type": "SHIPMENT"},
		"name":    req.Filename,
		"type":    KeyValue{Key: req.TypeKey, Value: req.TypeLabel},
		"urls":    []string{req.FileURL},
	}

	resp, err := c.do(ctx, http.MethodPost, documentsURLPath, nil, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamMessage(resp)
		if strings.Contains(strings.ToLower(msg), couldNotDownload) {
			msg = fmt.Sprintf("the TMS could not download %q; the source URL is likely not reachable by its servers (check sharing permissions)", req.FileURL)
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}

	details, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read attach response: %w", err)
	}
	return json.RawMessage(details), nil
}

// do issues one authenticated request. Acquiring the token may itself trigger
// a refresh call upstream.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tms request: %w", err)
	}
	return resp, nil
}

// checkStatus converts any non-2xx response into an UpstreamError carrying
// the upstream's own message when one can be extracted.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	return &UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(resp)}
}

// upstreamMessage pulls a human-readable message out of an error body.
// The upstream is not consistent about the field name.
func upstreamMessage(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(b, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Error != "":
			return body.Error
		case body.Details != "":
			return body.Details
		}
	}
	return strings.TrimSpace(string(b))
}
