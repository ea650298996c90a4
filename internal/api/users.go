package api

import (
	"context"
	"net/url"
)

// UsersClient covers the end-user profile endpoints and the admin user list.
type UsersClient struct {
	c *Client
}

// Me returns the current user's profile.
func (uc *UsersClient) Me(ctx context.Context) (*User, error) {
	var out User
	if err := uc.c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe patches the current user's profile.
func (uc *UsersClient) UpdateMe(ctx context.Context, body UserUpdate) (*User, error) {
	var out User
	if err := uc.c.patch(ctx, "/users/me", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *UsersClient) List(ctx context.Context, p ListParams) (*Page[User], error) {
	var out Page[User]
	if err := uc.c.get(ctx, "/users/admin", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *UsersClient) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := uc.c.get(ctx, "/users/"+url.PathEscape(id)+"/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *UsersClient) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := uc.c.delete(ctx, "/users/"+url.PathEscape(id)+"/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
