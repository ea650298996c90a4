package api

import (
	"context"
	"net/url"
)

// IngredientsClient covers the admin ingredient CRUD surface.
type IngredientsClient struct {
	c *Client
}

func (ic *IngredientsClient) List(ctx context.Context, p ListParams) (*Page[Ingredient], error) {
	var out Page[Ingredient]
	if err := ic.c.get(ctx, "/ingredients/admin", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IngredientsClient) Get(ctx context.Context, id string) (*Ingredient, error) {
	var out Ingredient
	if err := ic.c.get(ctx, "/ingredients/"+url.PathEscape(id)+"/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IngredientsClient) Create(ctx context.Context, body IngredientCreate) (*Ingredient, error) {
	var out Ingredient
	if err := ic.c.post(ctx, "/ingredients/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IngredientsClient) Update(ctx context.Context, id string, body IngredientUpdate) (*Ingredient, error) {
	var out Ingredient
	if err := ic.c.patch(ctx, "/ingredients/"+url.PathEscape(id)+"/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ic *IngredientsClient) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := ic.c.delete(ctx, "/ingredients/"+url.PathEscape(id)+"/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
