// ABOUTME: HTTP client for the dialog backend endpoints
// ABOUTME: init, chat/stream, chat/stop, history, and static card retrieval

package dialog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mauromedda/dialogstream-go/pkg/dialog/internal/httputil"
)

const (
	pathInit    = "/api/dialog/init"
	pathStream  = "/api/chat/stream"
	pathStop    = "/api/chat/stop"
	pathHistory = "/api/history"

	defaultCardPath         = "/static/cards.json"
	defaultCardFallbackPath = "/cards.json"
)

// ClientOptions configure a Client. Zero-value paths fall back to defaults.
type ClientOptions struct {
	BaseURL          string
	CardPath         string
	CardFallbackPath string
}

// Client talks to the dialog backend's HTTP surface.
type Client struct {
	http             *httputil.Client
	cardPath         string
	cardFallbackPath string
}

// NewClient creates a Client for the given backend.
func NewClient(opts ClientOptions) *Client {
	cardPath := opts.CardPath
	if cardPath == "" {
		cardPath = defaultCardPath
	}
	fallback := opts.CardFallbackPath
	if fallback == "" {
		fallback = defaultCardFallbackPath
	}

	return &Client{
		http:             httputil.NewClient(opts.BaseURL, nil),
		cardPath:         cardPath,
		cardFallbackPath: fallback,
	}
}

// initDialog performs the initialization handshake and returns the backend's
// acknowledgement together with the HTTP status code.
func (c *Client) initDialog(ctx context.Context, req initRequest) (initResponse, int, error) {
	var ack initResponse
	resp, err := c.http.PostJSON(ctx, pathInit, req, &ack)
	if err != nil {
		return initResponse{}, 0, fmt.Errorf("init request: %w", err)
	}
	return ack, resp.StatusCode, nil
}

// openStream issues the streaming chat request and returns the live response.
// The caller owns resp.Body regardless of status code.
func (c *Client) openStream(ctx context.Context, req chatRequest) (*http.Response, error) {
	return c.http.OpenStream(ctx, pathStream, req)
}

// stop fires the server-side stop notification. Callers treat failures as
// best-effort and swallow the returned error; a single attempt, since
// replaying a stop for an already-cancelled stream buys nothing.
func (c *Client) stop(ctx context.Context, runtimeID, dialogID string) error {
	resp, err := c.http.PostJSONOnce(ctx, pathStop, stopRequest{RuntimeID: runtimeID, DialogID: dialogID}, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stop notification returned status %d", resp.StatusCode)
	}
	return nil
}

// History fetches the conversation history for the given identity.
func (c *Client) History(ctx context.Context, runtimeID, dialogID string) ([]HistoryEntry, error) {
	q := url.Values{}
	q.Set("runtime_id", runtimeID)
	q.Set("dialog_id", dialogID)

	var out historyResponse
	if err := c.http.GetJSON(ctx, pathHistory+"?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("history fetch: %w", err)
	}
	return out.History, nil
}
