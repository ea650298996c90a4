package api

import (
	"context"
	"net/url"
)

// StepsClient covers the admin step CRUD surface. Steps always belong to a
// recipe; List can be filtered down to one parent.
type StepsClient struct {
	c *Client
}

// StepListParams extend the common list parameters with a parent filter.
type StepListParams struct {
	Limit    int
	Offset   int
	RecipeID string
}

func (p StepListParams) values() url.Values {
	v := ListParams{Limit: p.Limit, Offset: p.Offset}.values()
	if p.RecipeID != "" {
		v.Set("recipe_id", p.RecipeID)
	}
	return v
}

func (sc *StepsClient) List(ctx context.Context, p StepListParams) (*Page[Step], error) {
	var out Page[Step]
	if err := sc.c.get(ctx, "/steps/admin", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (sc *StepsClient) Get(ctx context.Context, id string) (*Step, error) {
	var out Step
	if err := sc.c.get(ctx, "/steps/"+url.PathEscape(id)+"/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (sc *StepsClient) Create(ctx context.Context, body StepCreate) (*Step, error) {
	var out Step
	if err := sc.c.post(ctx, "/steps/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (sc *StepsClient) Update(ctx context.Context, id string, body StepUpdate) (*Step, error) {
	var out Step
	if err := sc.c.patch(ctx, "/steps/"+url.PathEscape(id)+"/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (sc *StepsClient) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := sc.c.delete(ctx, "/steps/"+url.PathEscape(id)+"/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
