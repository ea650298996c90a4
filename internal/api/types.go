package api

import (
	"net/url"
	"strconv"
)

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HasMore reports whether another page exists past the current offset.
func (p Page[T]) HasMore() bool {
	return p.Total > p.Offset+p.Limit
}

// ListParams are the common list query parameters.
type ListParams struct {
	Limit  int
	Offset int
	Search string
}

func (p ListParams) values() url.Values {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(p.Offset))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// Auth.

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Username     string `json:"username"`
}

// WebAppLoginRequest carries the Telegram-signed init data blob.
type WebAppLoginRequest struct {
	InitData string `json:"init_data"`
}

type WebAppLoginResponse struct {
	UserID       string  `json:"user_id"`
	TgID         int64   `json:"tg_id"`
	TgUsername   *string `json:"tg_username"`
	PhoneNumber  *string `json:"phone_number"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    int     `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// Users.

type User struct {
	ID          string  `json:"id"`
	TgID        int64   `json:"tg_id"`
	TgUsername  *string `json:"tg_username"`
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phone_number"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type UserUpdate struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Categories.

type Category struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CategoryCreate struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

type CategoryUpdate struct {
	Title    *string `json:"title,omitempty"`
	Slug     *string `json:"slug,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Ingredients.

type Ingredient struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Slug              string `json:"slug"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

type IngredientCreate struct {
	Title             string `json:"title"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Slug              string `json:"slug"`
	IsActive          bool   `json:"is_active"`
}

type IngredientUpdate struct {
	Title             *string `json:"title,omitempty"`
	UnitOfMeasurement *string `json:"unit_of_measurement,omitempty"`
	Slug              *string `json:"slug,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// Recipes.

// Recipe is the admin list row: scalar attributes without relations.
type Recipe struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PhotoURL    string   `json:"photo_url"`
	Protein     *float64 `json:"protein"`
	Fat         *float64 `json:"fat"`
	Carbs       *float64 `json:"carbs"`
	PrepTime    int      `json:"prep_time"`
	CookTime    int      `json:"cook_time"`
	Difficulty  string   `json:"difficulty"`
	Servings    string   `json:"servings"`
	Slug        string   `json:"slug"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// RecipeListItem is the end-user list row with the caller's favorite/history flags.
type RecipeListItem struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	PhotoURL    string `json:"photo_url"`
	PrepTime    int    `json:"prep_time"`
	CookTime    int    `json:"cook_time"`
	Difficulty  string `json:"difficulty"`
	Servings    string `json:"servings"`
	IsFavorited bool   `json:"is_favorited"`
	IsInHistory bool   `json:"is_in_history"`
}

// RecipeIngredientRef is one ingredient link inside a recipe detail.
type RecipeIngredientRef struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	Amount       float64         `json:"amount"`
	Ingredient   *IngredientInfo `json:"ingredient"`
}

type IngredientInfo struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Slug              string `json:"slug"`
}

// RecipeDetail is the full aggregate: scalars plus steps, ingredient links
// and category memberships.
type RecipeDetail struct {
	Recipe
	Steps             []Step                `json:"steps"`
	RecipeIngredients []RecipeIngredientRef `json:"recipe_ingredients"`
	Categories        []Category            `json:"categories"`
	IsFavorited       bool                  `json:"is_favorited"`
	IsInHistory       bool                  `json:"is_in_history"`
}

// IngredientAmount is the {ingredient_id, amount} pair sent on save.
type IngredientAmount struct {
	IngredientID string  `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
}

type RecipeCreate struct {
	Title         string             `json:"title"`
	PhotoURL      string             `json:"photo_url"`
	Description   string             `json:"description"`
	Protein       *float64           `json:"protein,omitempty"`
	Fat           *float64           `json:"fat,omitempty"`
	Carbs         *float64           `json:"carbs,omitempty"`
	PrepTime      int                `json:"prep_time"`
	CookTime      int                `json:"cook_time"`
	Difficulty    string             `json:"difficulty"`
	Servings      string             `json:"servings"`
	Slug          string             `json:"slug"`
	IsActive      bool               `json:"is_active"`
	IngredientIDs []IngredientAmount `json:"ingredient_ids,omitempty"`
	CategoryIDs   []string           `json:"category_ids,omitempty"`
}

type RecipeUpdate struct {
	Title       *string            `json:"title,omitempty"`
	PhotoURL    *string            `json:"photo_url,omitempty"`
	Description *string            `json:"description,omitempty"`
	Protein     *float64           `json:"protein,omitempty"`
	Fat         *float64           `json:"fat,omitempty"`
	Carbs       *float64           `json:"carbs,omitempty"`
	PrepTime    *int               `json:"prep_time,omitempty"`
	CookTime    *int               `json:"cook_time,omitempty"`
	Difficulty  *string            `json:"difficulty,omitempty"`
	Servings    *string            `json:"servings,omitempty"`
	Slug        *string            `json:"slug,omitempty"`
	IsActive    *bool              `json:"is_active,omitempty"`
	// Relation sets are always sent: the backend replaces them only when the
	// field is present, so an emptied set must arrive as [] rather than be
	// omitted.
	Categories  []string           `json:"categories"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

type FavoriteToggleResponse struct {
	ID          string `json:"id"`
	IsFavorited bool   `json:"is_favorited"`
}

type HistoryToggleResponse struct {
	ID          string `json:"id"`
	IsInHistory bool   `json:"is_in_history"`
}

// Steps.

type Step struct {
	ID          string  `json:"id"`
	RecipeID    string  `json:"recipe_id"`
	StepNumber  int     `json:"step_number"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url"`
	IsActive    bool    `json:"is_active"`
	Slug        *string `json:"slug"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type StepCreate struct {
	RecipeID    string  `json:"recipe_id"`
	StepNumber  int     `json:"step_number"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type StepUpdate struct {
	StepNumber  *int    `json:"step_number,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Images.

type Image struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Filename    *string `json:"filename"`
	ContentType *string `json:"content_type"`
	Size        *int64  `json:"size"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ImageUploadResponse struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Filename    *string `json:"filename"`
	ContentType *string `json:"content_type"`
	Size        *int64  `json:"size"`
	CreatedAt   string  `json:"created_at"`
}

// DeleteResponse is the soft-delete acknowledgement shared by admin endpoints.
type DeleteResponse struct {
	ID        string `json:"id"`
	IsDeleted bool   `json:"is_deleted"`
}
