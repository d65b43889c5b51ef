package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/pkg/models"
)

// LoginResponse is the body returned by /login/.
type LoginResponse struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, email, password, displayName string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/register/",
		body: models.Registration{
			Email:       email,
			Password:    password,
			DisplayName: displayName,
		},
	}, nil)
}

// Login exchanges credentials for a token and stores it, together with the
// display name when the backend sends one.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/login/",
		body:   models.Credentials{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, &GeneralError{Text: "Login successful, but no token received."}
	}
	if err := c.session.Set(resp.Token, resp.DisplayName); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().Str("display_name", resp.DisplayName).Msg("logged in")
	return &resp, nil
}

// Logout forgets the stored session. No request is sent.
func (c *Client) Logout() error {
	if err := c.session.Clear(); err != nil {
		return err
	}
	log.Info().Msg("logged out")
	return nil
}
