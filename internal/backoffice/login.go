package backoffice

import (
	"context"
	"net/http"

	"github.com/tsaratour/service-booking/internal/platform/auth"
)

// User is the profile returned on login.
type User struct {
	ID    auth.FlexibleID `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  auth.Role       `json:"role"`
}

// LoginResult is the token pair and profile returned by the backend.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, PathLogin, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
