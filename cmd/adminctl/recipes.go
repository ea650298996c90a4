package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/editor"
	"github.com/whattoeat/client_layer/internal/format"
)

func (a *app) recipes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("recipes: expected list|get|delete|apply")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("recipes list", flag.ExitOnError)
		limit, offset, search := listFlags(fs)
		fs.Parse(args[1:])
		page, err := a.client.Recipes().ListAdmin(ctx, api.ListParams{Limit: *limit, Offset: *offset, Search: *search})
		if err != nil {
			return err
		}
		printRecipes(page)
		return nil
	case "get":
		detail, err := a.client.Recipes().GetAdmin(ctx, argID(args))
		if err != nil {
			return err
		}
		printRecipeDetail(detail)
		return nil
	case "delete":
		resp, err := a.client.Recipes().Delete(ctx, argID(args))
		if err != nil {
			return err
		}
		fmt.Printf("deleted recipe %s\n", resp.ID)
		return nil
	case "apply":
		return a.applyRecipe(ctx, args[1:])
	}
	return fmt.Errorf("recipes: unknown subcommand %q", args[0])
}

// recipeFile is the YAML document `recipes apply` consumes: the full
// aggregate in one file.
type recipeFile struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	PhotoURL    string   `yaml:"photo_url"`
	Description string   `yaml:"description"`
	PrepTime    int      `yaml:"prep_time"`
	CookTime    int      `yaml:"cook_time"`
	Difficulty  string   `yaml:"difficulty"`
	Servings    string   `yaml:"servings"`
	Protein     *float64 `yaml:"protein"`
	Fat         *float64 `yaml:"fat"`
	Carbs       *float64 `yaml:"carbs"`
	IsActive    *bool    `yaml:"is_active"`

	Categories  []string `yaml:"categories"`
	Ingredients []struct {
		IngredientID string  `yaml:"ingredient_id"`
		Amount       float64 `yaml:"amount"`
	} `yaml:"ingredients"`
	Steps []struct {
		StepNumber  int     `yaml:"step_number"`
		Title       string  `yaml:"title"`
		Description *string `yaml:"description"`
		PhotoURL    *string `yaml:"photo_url"`
	} `yaml:"steps"`
}

// applyRecipe drives the aggregate editor from a YAML file: without -id it
// creates the recipe and replays the staged steps; with -id it hydrates the
// existing recipe and overwrites its fields and relations.
func (a *app) applyRecipe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recipes apply", flag.ExitOnError)
	id := fs.String("id", "", "existing recipe id (omit to create)")
	file := fs.String("f", "", "recipe YAML file")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("recipes apply: -f is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("recipes apply: %w", err)
	}
	var doc recipeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("recipes apply: parse %s: %w", *file, err)
	}

	deps := editor.Deps{Recipes: a.client.Recipes(), Steps: a.client.Steps(), Logger: a.log}
	var ed *editor.Editor
	if *id == "" {
		ed = editor.New(deps)
	} else {
		ed = editor.Open(deps, *id)
		if err := ed.Hydrate(ctx); err != nil {
			return err
		}
	}

	ed.Form.Title = doc.Title
	ed.Form.Slug = doc.Slug
	ed.Form.PhotoURL = doc.PhotoURL
	ed.Form.Description = doc.Description
	ed.Form.PrepTime = doc.PrepTime
	ed.Form.CookTime = doc.CookTime
	if doc.Difficulty != "" {
		ed.Form.Difficulty = doc.Difficulty
	}
	ed.Form.Servings = doc.Servings
	ed.Form.Protein = doc.Protein
	ed.Form.Fat = doc.Fat
	ed.Form.Carbs = doc.Carbs
	if doc.IsActive != nil {
		ed.Form.IsActive = *doc.IsActive
	}

	// The file is the whole aggregate: hydrated relations it does not name
	// are removed, not kept.
	wantCategory := make(map[string]bool, len(doc.Categories))
	for _, catID := range doc.Categories {
		wantCategory[catID] = true
	}
	for _, catID := range ed.Categories() {
		if !wantCategory[catID] {
			ed.ToggleCategory(catID)
		}
	}
	wantIngredient := make(map[string]bool, len(doc.Ingredients))
	for _, ing := range doc.Ingredients {
		wantIngredient[ing.IngredientID] = true
	}
	for _, row := range ed.Ingredients() {
		if !wantIngredient[row.IngredientID] {
			ed.RemoveIngredient(row.IngredientID)
		}
	}

	for _, catID := range doc.Categories {
		if !ed.CategorySelected(catID) {
			ed.ToggleCategory(catID)
		}
	}
	for _, ing := range doc.Ingredients {
		err := ed.AddIngredient(editor.IngredientRow{IngredientID: ing.IngredientID, Amount: ing.Amount})
		if err == editor.ErrDuplicateIngredient {
			err = ed.SetIngredientAmount(ing.IngredientID, ing.Amount)
		}
		if err != nil {
			return err
		}
	}

	if ed.Mode() == editor.Creating {
		for _, st := range doc.Steps {
			_, err := ed.AddLocalStep(editor.LocalStep{
				StepNumber:  st.StepNumber,
				Title:       st.Title,
				Description: st.Description,
				PhotoURL:    st.PhotoURL,
			})
			if err != nil {
				return err
			}
		}
	}

	result, err := ed.Save(ctx)
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Printf("created recipe %s\n", result.RecipeID)
	} else {
		fmt.Printf("updated recipe %s\n", result.RecipeID)
	}
	for _, se := range result.StepErrors {
		fmt.Fprintf(os.Stderr, "warning: step %q was not saved: %v\n", se.Title, se.Err)
	}

	// Steps of an existing recipe are individual backend objects; an apply
	// against -id changes only scalars and relation sets.
	if ed.Mode() == editor.Editing && *id != "" && len(doc.Steps) > 0 {
		fmt.Fprintln(os.Stderr, "note: steps in the file were ignored; use `adminctl steps` for an existing recipe")
	}
	return nil
}

func printRecipeDetail(d *api.RecipeDetail) {
	fmt.Printf("%s (%s)\n", d.Title, d.ID)
	fmt.Printf("  slug: %s  difficulty: %s  servings: %s\n", d.Slug, format.Difficulty(d.Difficulty), d.Servings)
	fmt.Printf("  prep: %s  cook: %s  active: %v\n", format.Minutes(d.PrepTime), format.Minutes(d.CookTime), d.IsActive)
	fmt.Printf("  photo: %s\n", format.ImageURL(d.PhotoURL))
	fmt.Printf("  created: %s\n", format.Date(d.CreatedAt))
	if len(d.Categories) > 0 {
		fmt.Println("  categories:")
		for _, c := range d.Categories {
			fmt.Printf("    - %s (%s)\n", c.Title, c.ID)
		}
	}
	if len(d.RecipeIngredients) > 0 {
		fmt.Println("  ingredients:")
		for _, ri := range d.RecipeIngredients {
			title, unit := "?", ""
			if ri.Ingredient != nil {
				title, unit = ri.Ingredient.Title, ri.Ingredient.UnitOfMeasurement
			}
			fmt.Printf("    - %s: %g %s\n", title, ri.Amount, unit)
		}
	}
	if len(d.Steps) > 0 {
		fmt.Println("  steps:")
		for _, s := range sortedSteps(d.Steps) {
			fmt.Printf("    %d. %s\n", s.StepNumber, s.Title)
		}
	}
}
