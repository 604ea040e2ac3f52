package api

import (
	"context"
)

// credentialsRequest is the body for signup and login
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse is the backend's answer to account creation
type SignupResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the backend's answer to a login attempt. Token may
// be empty even on an HTTP-OK response; callers must treat that as a
// failed login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// User is the identity the backend reports for a verified session
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Signup creates a new account. It never issues or stores a session.
func (c *Client) Signup(ctx context.Context, username, password string) (*SignupResponse, error) {
	resp, err := c.doRequest(ctx, "POST", "/auth/signup", credentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var signupResp SignupResponse
	if err := parseResponse(resp, &signupResp); err != nil {
		return nil, err
	}

	return &signupResp, nil
}

// Login exchanges credentials for a session token and role
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, "POST", "/auth/login", credentialsRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := parseResponse(resp, &loginResp); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// Me verifies the current session against the backend and returns the
// authoritative user
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, "GET", "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
