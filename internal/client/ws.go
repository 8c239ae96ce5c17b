package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sajorahasan/FitSense/internal/models"
)

// UserUpdate mirrors the payload the server pushes whenever the signed-in
// user's record changes.
type UserUpdate struct {
	Type      string       `json:"type"`
	User      *models.User `json:"user"`
	Timestamp string       `json:"timestamp"`
}

// Watch opens the live subscription and invokes handler for every update
// until the context is cancelled or the connection drops.
func (c *Client) Watch(ctx context.Context, handler func(UserUpdate)) error {
	wsURL, err := c.websocketURL()
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var update UserUpdate
		if err := json.Unmarshal(message, &update); err != nil {
			continue
		}
		handler(update)
	}
}

func (c *Client) websocketURL() (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	default:
		parsed.Scheme = "ws"
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/api/v1/ws"
	query := parsed.Query()
	query.Set("token", c.token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
