package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/session"
)

func newTestApp(t *testing.T, baseURL string) *app {
	t.Helper()
	sessions, err := session.Open("")
	if err != nil {
		t.Fatal(err)
	}
	if err := sessions.SetTokens("tok", "ref", "admin"); err != nil {
		t.Fatal(err)
	}
	client, err := api.New(api.Config{BaseURL: baseURL, Sessions: sessions})
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return &app{client: client, log: zap.NewNop()}
}

func writeRecipeYAML(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyRecipeReplacesRelations(t *testing.T) {
	detail := api.RecipeDetail{
		Recipe: api.Recipe{
			ID: "r1", Title: "Борщ", Slug: "borsch", Description: "Классический",
			Difficulty: "medium", Servings: "4", IsActive: true,
		},
		Categories:        []api.Category{{ID: "c1"}},
		RecipeIngredients: []api.RecipeIngredientRef{{IngredientID: "i1", Amount: 2}},
	}

	var patched api.RecipeUpdate
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/r1/admin", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(detail)
		case http.MethodPatch:
			if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
				t.Error(err)
			}
			json.NewEncoder(w).Encode(detail)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	doc := `title: Борщ
slug: borsch
description: Классический
difficulty: medium
servings: "4"
categories: [c2]
ingredients:
  - ingredient_id: i2
    amount: 3
`
	a := newTestApp(t, srv.URL)
	if err := a.applyRecipe(context.Background(), []string{"-id", "r1", "-f", writeRecipeYAML(t, doc)}); err != nil {
		t.Fatalf("applyRecipe() error = %v", err)
	}

	if len(patched.Categories) != 1 || patched.Categories[0] != "c2" {
		t.Errorf("categories = %v, want [c2] (hydrated c1 removed)", patched.Categories)
	}
	want := api.IngredientAmount{IngredientID: "i2", Amount: 3}
	if len(patched.Ingredients) != 1 || patched.Ingredients[0] != want {
		t.Errorf("ingredients = %v, want [%+v] (hydrated i1 removed)", patched.Ingredients, want)
	}
}

func TestApplyRecipeSendsEmptiedRelations(t *testing.T) {
	detail := api.RecipeDetail{
		Recipe: api.Recipe{
			ID: "r1", Title: "Борщ", Slug: "borsch", Description: "Классический",
			Difficulty: "medium", Servings: "4", IsActive: true,
		},
		Categories:        []api.Category{{ID: "c1"}},
		RecipeIngredients: []api.RecipeIngredientRef{{IngredientID: "i1", Amount: 2}},
	}

	var rawPatch string
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/r1/admin", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(detail)
		case http.MethodPatch:
			body, err := io.ReadAll(r.Body)
			if err != nil {
				t.Error(err)
			}
			rawPatch = string(body)
			json.NewEncoder(w).Encode(detail)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// No categories or ingredients in the file: the hydrated ones go away.
	doc := `title: Борщ
slug: borsch
description: Классический
difficulty: medium
servings: "4"
`
	a := newTestApp(t, srv.URL)
	if err := a.applyRecipe(context.Background(), []string{"-id", "r1", "-f", writeRecipeYAML(t, doc)}); err != nil {
		t.Fatalf("applyRecipe() error = %v", err)
	}

	// The backend replaces relations only when the keys are present, so the
	// emptied sets must be on the wire as [].
	if !strings.Contains(rawPatch, `"categories":[]`) {
		t.Errorf("patch body %s missing \"categories\":[]", rawPatch)
	}
	if !strings.Contains(rawPatch, `"ingredients":[]`) {
		t.Errorf("patch body %s missing \"ingredients\":[]", rawPatch)
	}
}
