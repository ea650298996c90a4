package api

import (
	"context"
	"net/http"
)

// AuthClient handles login and logout. Successful logins write the issued
// credentials through the session store before returning.
type AuthClient struct {
	c *Client
}

// LoginAdmin authenticates with username and password on the admin surface.
func (a *AuthClient) LoginAdmin(ctx context.Context, username, password string) (*AdminLoginResponse, error) {
	var out AdminLoginResponse
	err := a.c.post(ctx, "/auth/login/admin", AdminLoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	if err := a.c.sessions.SetTokens(out.AccessToken, out.RefreshToken, out.Username); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginWebApp authenticates an end user with a Telegram-signed init data
// payload from the mini-app.
func (a *AuthClient) LoginWebApp(ctx context.Context, initData string) (*WebAppLoginResponse, error) {
	var out WebAppLoginResponse
	err := a.c.post(ctx, "/auth/login/webapp", WebAppLoginRequest{InitData: initData}, &out)
	if err != nil {
		return nil, err
	}
	username := ""
	if out.TgUsername != nil {
		username = *out.TgUsername
	}
	if err := a.c.sessions.SetTokens(out.AccessToken, out.RefreshToken, username); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogoutAdmin invalidates the session server-side, then clears local
// credentials. The local session is cleared even when the server call fails.
func (a *AuthClient) LogoutAdmin(ctx context.Context) error {
	var out LogoutResponse
	callErr := a.c.send(ctx, request{method: http.MethodPost, path: "/auth/logout/admin"}, &out)
	if err := a.c.sessions.Logout(); err != nil {
		return err
	}
	return callErr
}
