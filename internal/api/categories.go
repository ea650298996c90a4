package api

import (
	"context"
	"net/url"
)

// CategoriesClient covers the admin category CRUD surface.
type CategoriesClient struct {
	c *Client
}

func (cc *CategoriesClient) List(ctx context.Context, p ListParams) (*Page[Category], error) {
	var out Page[Category]
	if err := cc.c.get(ctx, "/categories/admin", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CategoriesClient) Get(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := cc.c.get(ctx, "/categories/"+url.PathEscape(id)+"/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CategoriesClient) Create(ctx context.Context, body CategoryCreate) (*Category, error) {
	var out Category
	if err := cc.c.post(ctx, "/categories/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CategoriesClient) Update(ctx context.Context, id string, body CategoryUpdate) (*Category, error) {
	var out Category
	if err := cc.c.patch(ctx, "/categories/"+url.PathEscape(id)+"/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CategoriesClient) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := cc.c.delete(ctx, "/categories/"+url.PathEscape(id)+"/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
