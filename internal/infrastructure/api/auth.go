package api

import (
	"context"
	"net/http"
)

// AuthService wraps /auth
type AuthService struct {
	client *Client
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// Login exchanges credentials for a bearer token
func (s *AuthService) Login(ctx context.Context, username, password string) Result[string] {
	res := do[loginResponse](ctx, s.client, call{
		op:      "auth.login",
		method:  http.MethodPost,
		url:     s.client.endpoints.Auth.Login,
		body:    loginRequest{Username: username, Password: password},
		failMsg: "Login failed",
	})
	if !res.OK() {
		return Fail[string](res.Err)
	}
	if res.Data.Token == "" {
		return Fail[string](&Error{Kind: KindDecode, Message: "Login failed"})
	}
	return Ok(res.Data.Token)
}

// Validate asks the backend whether token is still valid
func (s *AuthService) Validate(ctx context.Context, token string) Result[bool] {
	res := do[validateResponse](WithToken(ctx, token), s.client, call{
		op:      "auth.validate",
		method:  http.MethodPost,
		url:     s.client.endpoints.Auth.Validate,
		auth:    true,
		failMsg: "Token validation failed",
	})
	if !res.OK() {
		return Fail[bool](res.Err)
	}
	return Ok(res.Data.Valid)
}
