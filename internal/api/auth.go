package api

import (
	"context"
	"net/http"
)

// Login authenticates against the backend and returns the user record,
// including the bearer token. The token is not installed on the client;
// callers decide whether to keep it.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out User
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, in, &out, false); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/users/register", nil, in, &out, false); err != nil {
		return User{}, err
	}
	return out, nil
}

// Barbers lists barber users. Public endpoint.
func (c *Client) Barbers(ctx context.Context) ([]Barber, error) {
	var out struct {
		Barbers []Barber `json:"barbers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/barbers", nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out.Barbers, nil
}

// ChangeUserRole promotes a user to the barber role.
func (c *Client) ChangeUserRole(ctx context.Context, userID, role string) error {
	in := struct {
		Role string `json:"rol"`
	}{Role: role}
	return c.do(ctx, http.MethodPut, "/admin/users/"+userID+"/role", nil, in, nil, true)
}
