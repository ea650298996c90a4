package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/whattoeat/client_layer/internal/api"
)

func listFlags(fs *flag.FlagSet) (*int, *int, *string) {
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	search := fs.String("search", "", "search filter")
	return limit, offset, search
}

func (a *app) categories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("categories: expected list|get|create|update|delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("categories list", flag.ExitOnError)
		limit, offset, search := listFlags(fs)
		fs.Parse(args[1:])
		page, err := a.client.Categories().List(ctx, api.ListParams{Limit: *limit, Offset: *offset, Search: *search})
		if err != nil {
			return err
		}
		printCategories(page)
		return nil
	case "get":
		cat, err := a.client.Categories().Get(ctx, argID(args))
		if err != nil {
			return err
		}
		return printJSON(cat)
	case "create":
		fs := flag.NewFlagSet("categories create", flag.ExitOnError)
		title := fs.String("title", "", "category title")
		slug := fs.String("slug", "", "category slug")
		active := fs.Bool("active", true, "active flag")
		fs.Parse(args[1:])
		cat, err := a.client.Categories().Create(ctx, api.CategoryCreate{Title: *title, Slug: *slug, IsActive: *active})
		if err != nil {
			return err
		}
		fmt.Printf("created category %s\n", cat.ID)
		return nil
	case "update":
		fs := flag.NewFlagSet("categories update", flag.ExitOnError)
		id := fs.String("id", "", "category id")
		title := fs.String("title", "", "new title")
		slug := fs.String("slug", "", "new slug")
		fs.Parse(args[1:])
		body := api.CategoryUpdate{}
		if *title != "" {
			body.Title = title
		}
		if *slug != "" {
			body.Slug = slug
		}
		cat, err := a.client.Categories().Update(ctx, *id, body)
		if err != nil {
			return err
		}
		fmt.Printf("updated category %s\n", cat.ID)
		return nil
	case "delete":
		resp, err := a.client.Categories().Delete(ctx, argID(args))
		if err != nil {
			return err
		}
		fmt.Printf("deleted category %s\n", resp.ID)
		return nil
	}
	return fmt.Errorf("categories: unknown subcommand %q", args[0])
}

func (a *app) ingredients(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("ingredients: expected list|get|create|update|delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("ingredients list", flag.ExitOnError)
		limit, offset, search := listFlags(fs)
		fs.Parse(args[1:])
		page, err := a.client.Ingredients().List(ctx, api.ListParams{Limit: *limit, Offset: *offset, Search: *search})
		if err != nil {
			return err
		}
		printIngredients(page)
		return nil
	case "get":
		ing, err := a.client.Ingredients().Get(ctx, argID(args))
		if err != nil {
			return err
		}
		return printJSON(ing)
	case "create":
		fs := flag.NewFlagSet("ingredients create", flag.ExitOnError)
		title := fs.String("title", "", "ingredient title")
		unit := fs.String("unit", "", "unit of measurement")
		slug := fs.String("slug", "", "ingredient slug")
		active := fs.Bool("active", true, "active flag")
		fs.Parse(args[1:])
		ing, err := a.client.Ingredients().Create(ctx, api.IngredientCreate{
			Title: *title, UnitOfMeasurement: *unit, Slug: *slug, IsActive: *active,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created ingredient %s\n", ing.ID)
		return nil
	case "update":
		fs := flag.NewFlagSet("ingredients update", flag.ExitOnError)
		id := fs.String("id", "", "ingredient id")
		title := fs.String("title", "", "new title")
		unit := fs.String("unit", "", "new unit of measurement")
		fs.Parse(args[1:])
		body := api.IngredientUpdate{}
		if *title != "" {
			body.Title = title
		}
		if *unit != "" {
			body.UnitOfMeasurement = unit
		}
		ing, err := a.client.Ingredients().Update(ctx, *id, body)
		if err != nil {
			return err
		}
		fmt.Printf("updated ingredient %s\n", ing.ID)
		return nil
	case "delete":
		resp, err := a.client.Ingredients().Delete(ctx, argID(args))
		if err != nil {
			return err
		}
		fmt.Printf("deleted ingredient %s\n", resp.ID)
		return nil
	}
	return fmt.Errorf("ingredients: unknown subcommand %q", args[0])
}

func (a *app) steps(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("steps: expected list|get|delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("steps list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		recipeID := fs.String("recipe", "", "filter by parent recipe id")
		fs.Parse(args[1:])
		page, err := a.client.Steps().List(ctx, api.StepListParams{Limit: *limit, Offset: *offset, RecipeID: *recipeID})
		if err != nil {
			return err
		}
		printSteps(page)
		return nil
	case "get":
		step, err := a.client.Steps().Get(ctx, argID(args))
		if err != nil {
			return err
		}
		return printJSON(step)
	case "delete":
		resp, err := a.client.Steps().Delete(ctx, argID(args))
		if err != nil {
			return err
		}
		fmt.Printf("deleted step %s\n", resp.ID)
		return nil
	}
	return fmt.Errorf("steps: unknown subcommand %q", args[0])
}

func (a *app) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("users: expected list|get|delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("users list", flag.ExitOnError)
		limit, offset, search := listFlags(fs)
		fs.Parse(args[1:])
		page, err := a.client.Users().List(ctx, api.ListParams{Limit: *limit, Offset: *offset, Search: *search})
		if err != nil {
			return err
		}
		printUsers(page)
		return nil
	case "get":
		user, err := a.client.Users().Get(ctx, argID(args))
		if err != nil {
			return err
		}
		return printJSON(user)
	case "delete":
		resp, err := a.client.Users().Delete(ctx, argID(args))
		if err != nil {
			return err
		}
		fmt.Printf("deleted user %s\n", resp.ID)
		return nil
	}
	return fmt.Errorf("users: unknown subcommand %q", args[0])
}

func (a *app) images(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("images: expected list|upload|delete")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("images list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		fs.Parse(args[1:])
		page, err := a.client.Images().List(ctx, api.ListParams{Limit: *limit, Offset: *offset})
		if err != nil {
			return err
		}
		printImages(page)
		return nil
	case "upload":
		if len(args) < 2 {
			return fmt.Errorf("images upload: expected a file path")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("images upload: %w", err)
		}
		defer f.Close()
		resp, err := a.client.Images().Upload(ctx, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %s -> %s\n", resp.ID, resp.URL)
		return nil
	case "delete":
		if err := a.client.Images().Delete(ctx, argID(args)); err != nil {
			return err
		}
		fmt.Println("image deleted")
		return nil
	}
	return fmt.Errorf("images: unknown subcommand %q", args[0])
}

// argID returns the positional ID argument of a get/delete subcommand.
func argID(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}
