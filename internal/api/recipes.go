package api

import (
	"context"
	"net/url"
)

// RecipesClient covers both recipe surfaces: the end-user browse/favorite
// endpoints and the admin CRUD endpoints.
type RecipesClient struct {
	c *Client
}

// BrowseParams filter the end-user recipe list.
type BrowseParams struct {
	Limit       int
	Offset      int
	Search      string
	CategoryID  string
	IsFavorited bool
	IsInHistory bool
}

func (p BrowseParams) values() url.Values {
	v := ListParams{Limit: p.Limit, Offset: p.Offset, Search: p.Search}.values()
	if p.CategoryID != "" {
		v.Set("category_id", p.CategoryID)
	}
	if p.IsFavorited {
		v.Set("is_favorited", "true")
	}
	if p.IsInHistory {
		v.Set("is_in_history", "true")
	}
	return v
}

// List returns the end-user recipe list.
func (r *RecipesClient) List(ctx context.Context, p BrowseParams) (*Page[RecipeListItem], error) {
	var out Page[RecipeListItem]
	if err := r.c.get(ctx, "/recipes", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the end-user recipe detail.
func (r *RecipesClient) Get(ctx context.Context, id string) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := r.c.get(ctx, "/recipes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFavorite marks a recipe as favorited by the current user.
func (r *RecipesClient) AddFavorite(ctx context.Context, id string) (*FavoriteToggleResponse, error) {
	var out FavoriteToggleResponse
	if err := r.c.post(ctx, "/recipes/"+url.PathEscape(id)+"/favorite", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFavorite removes a recipe from the current user's favorites.
func (r *RecipesClient) RemoveFavorite(ctx context.Context, id string) (*FavoriteToggleResponse, error) {
	var out FavoriteToggleResponse
	if err := r.c.delete(ctx, "/recipes/"+url.PathEscape(id)+"/favorite", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToHistory records that the current user cooked a recipe.
func (r *RecipesClient) AddToHistory(ctx context.Context, id string) (*HistoryToggleResponse, error) {
	var out HistoryToggleResponse
	if err := r.c.post(ctx, "/recipes/"+url.PathEscape(id)+"/history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdmin returns the admin recipe list.
func (r *RecipesClient) ListAdmin(ctx context.Context, p ListParams) (*Page[Recipe], error) {
	var out Page[Recipe]
	if err := r.c.get(ctx, "/recipes/admin", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAdmin returns the full aggregate used to seed the recipe editor.
func (r *RecipesClient) GetAdmin(ctx context.Context, id string) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := r.c.get(ctx, "/recipes/"+url.PathEscape(id)+"/admin", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a recipe with its category and ingredient links.
func (r *RecipesClient) Create(ctx context.Context, body RecipeCreate) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := r.c.post(ctx, "/recipes/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches recipe scalars and replaces its relation sets.
func (r *RecipesClient) Update(ctx context.Context, id string, body RecipeUpdate) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := r.c.patch(ctx, "/recipes/"+url.PathEscape(id)+"/admin", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes a recipe.
func (r *RecipesClient) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := r.c.delete(ctx, "/recipes/"+url.PathEscape(id)+"/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
