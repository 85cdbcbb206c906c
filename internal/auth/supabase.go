package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// verifyTimeout bounds the remote verification call so a stuck identity
// provider cannot hold requests open indefinitely.
const verifyTimeout = 5 * time.Second

// Client calls a Supabase-style identity provider to verify tokens the local
// check could not.
type Client struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: verifyTimeout},
	}
}

// VerifyUser asks the provider who the token belongs to. An auth-rejection
// status maps to ErrInvalidToken; anything that prevents a verdict maps to
// ErrUnavailable.
func (c *Client) VerifyUser(ctx context.Context, token string) (uuid.UUID, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return uuid.Nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return uuid.Nil, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return uuid.Nil, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}
	if user.ID == "" {
		return uuid.Nil, ErrInvalidToken
	}

	return parseUserID(user.ID)
}
