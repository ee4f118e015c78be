package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.trello.com/1"

// cardFields is the field list requested for every card fetch.
var cardFields = []string{"id", "name", "due", "idMembers", "labels"} //nolint:gochecknoglobals // request constant

// Client is a minimal Trello REST client scoped to the card and member
// reads this application performs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Trello API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Trello client authenticating with the given API key
// and token.
func NewClient(key, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		key:        key,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiCard is the wire shape of a Trello card, limited to cardFields.
type apiCard struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Due       string   `json:"due"`
	IDMembers []string `json:"idMembers"`
	Labels    []Label  `json:"labels"`
}

// apiMember is the wire shape of a Trello board member.
type apiMember struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// ListCards fetches all cards in a list.
func (c *Client) ListCards(ctx context.Context, listID string) ([]apiCard, error) {
	var cards []apiCard
	path := fmt.Sprintf("/lists/%s/cards", url.PathEscape(listID))
	if err := c.get(ctx, path, url.Values{"fields": {strings.Join(cardFields, ",")}}, &cards); err != nil {
		return nil, fmt.Errorf("board.Client.ListCards: %w", err)
	}
	return cards, nil
}

// BoardMembers fetches the members of a board, keyed by member ID.
func (c *Client) BoardMembers(ctx context.Context, boardID string) (map[string]string, error) {
	var members []apiMember
	path := fmt.Sprintf("/boards/%s/members", url.PathEscape(boardID))
	if err := c.get(ctx, path, nil, &members); err != nil {
		return nil, fmt.Errorf("board.Client.BoardMembers: %w", err)
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.FullName
	}
	return names, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.key)
	query.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
