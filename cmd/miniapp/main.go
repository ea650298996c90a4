// miniapp is the terminal counterpart of the WhatToEat Telegram mini-app:
// recipe browsing, favorites, cooking history and profile editing for end
// users.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/config"
	"github.com/whattoeat/client_layer/internal/format"
	"github.com/whattoeat/client_layer/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: miniapp <command> [arguments]

  login -init-data <blob>    authenticate with Telegram init data
  logout                     end the session
  recipes [flags]            list recipes (-search, -category, -favorites, -history)
  recipe <id>                show a recipe
  favorite <id>              add a recipe to favorites
  unfavorite <id>            remove a recipe from favorites
  cook <id>                  mark a recipe as cooked
  profile                    show the profile
  profile set [flags]        edit the profile
  browse                     interactive search`)
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("miniapp: %v", err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("miniapp: init logger: %v", err)
	}
	defer logger.Sync()

	sessions, err := session.Open(cfg.SessionPath)
	if err != nil {
		log.Fatalf("miniapp: %v", err)
	}
	client, err := api.New(api.Config{BaseURL: cfg.APIBaseURL, Sessions: sessions, Logger: logger})
	if err != nil {
		log.Fatalf("miniapp: %v", err)
	}

	ctx := context.Background()
	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("miniapp: %v", err)
	}
}

func run(ctx context.Context, client *api.Client, command string, args []string) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		initData := fs.String("init-data", "", "Telegram WebApp init data (or TG_INIT_DATA env)")
		fs.Parse(args)
		if *initData == "" {
			*initData = os.Getenv("TG_INIT_DATA")
		}
		if *initData == "" {
			return fmt.Errorf("login: init data is required")
		}
		resp, err := client.Auth().LoginWebApp(ctx, *initData)
		if err != nil {
			return err
		}
		fmt.Printf("logged in (tg id %d)\n", resp.TgID)
		return nil

	case "logout":
		return client.Sessions().Logout()

	case "recipes":
		fs := flag.NewFlagSet("recipes", flag.ExitOnError)
		search := fs.String("search", "", "search filter")
		category := fs.String("category", "", "category id filter")
		favorites := fs.Bool("favorites", false, "only favorited recipes")
		history := fs.Bool("history", false, "only cooked recipes")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		fs.Parse(args)
		page, err := client.Recipes().List(ctx, api.BrowseParams{
			Limit: *limit, Offset: *offset, Search: *search,
			CategoryID: *category, IsFavorited: *favorites, IsInHistory: *history,
		})
		if err != nil {
			return err
		}
		printRecipeList(page)
		return nil

	case "recipe":
		if len(args) < 1 {
			return fmt.Errorf("recipe: expected an id")
		}
		detail, err := client.Recipes().Get(ctx, args[0])
		if err != nil {
			return err
		}
		printRecipe(detail)
		return nil

	case "favorite":
		if len(args) < 1 {
			return fmt.Errorf("favorite: expected an id")
		}
		_, err := client.Recipes().AddFavorite(ctx, args[0])
		return err

	case "unfavorite":
		if len(args) < 1 {
			return fmt.Errorf("unfavorite: expected an id")
		}
		_, err := client.Recipes().RemoveFavorite(ctx, args[0])
		return err

	case "cook":
		if len(args) < 1 {
			return fmt.Errorf("cook: expected an id")
		}
		_, err := client.Recipes().AddToHistory(ctx, args[0])
		return err

	case "profile":
		if len(args) > 0 && args[0] == "set" {
			return profileSet(ctx, client, args[1:])
		}
		me, err := client.Users().Me(ctx)
		if err != nil {
			return err
		}
		printProfile(me)
		return nil

	case "browse":
		return browse(ctx, client)
	}
	usage()
	return nil
}

func profileSet(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("profile set", flag.ExitOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	username := fs.String("username", "", "display name")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	body := api.UserUpdate{}
	if *firstName != "" {
		body.FirstName = firstName
	}
	if *lastName != "" {
		body.LastName = lastName
	}
	if *username != "" {
		body.Username = username
	}
	if *phone != "" {
		body.PhoneNumber = phone
	}

	me, err := client.Users().UpdateMe(ctx, body)
	if err != nil {
		return err
	}
	printProfile(me)
	return nil
}

func printRecipeList(page *api.Page[api.RecipeListItem]) {
	for i, r := range page.Items {
		marks := ""
		if r.IsFavorited {
			marks += " ♥"
		}
		if r.IsInHistory {
			marks += " ✓"
		}
		fmt.Printf("%2d. %s%s\n    %s · %s · %s\n", page.Offset+i+1, r.Title, marks,
			format.Minutes(r.PrepTime+r.CookTime), format.Difficulty(r.Difficulty), r.ID)
	}
	if page.HasMore() {
		fmt.Printf("… ещё %d\n", page.Total-page.Offset-len(page.Items))
	}
}

func printRecipe(d *api.RecipeDetail) {
	fmt.Println(d.Title)
	fmt.Printf("%s · %s · %s порц.\n", format.Minutes(d.PrepTime+d.CookTime), format.Difficulty(d.Difficulty), d.Servings)
	fmt.Printf("фото: %s\n\n%s\n", format.ImageURL(d.PhotoURL), d.Description)
	if len(d.RecipeIngredients) > 0 {
		fmt.Println("\nИнгредиенты:")
		for _, ri := range d.RecipeIngredients {
			if ri.Ingredient != nil {
				fmt.Printf("  - %s: %g %s\n", ri.Ingredient.Title, ri.Amount, ri.Ingredient.UnitOfMeasurement)
			}
		}
	}
	if len(d.Steps) > 0 {
		fmt.Println("\nШаги:")
		for _, s := range sortedSteps(d.Steps) {
			fmt.Printf("  %d. %s\n", s.StepNumber, s.Title)
		}
	}
}

// sortedSteps orders steps ascending by number; the backend does not order
// the relation.
func sortedSteps(steps []api.Step) []api.Step {
	out := make([]api.Step, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out
}

func printProfile(u *api.User) {
	fmt.Printf("id:        %s\n", u.ID)
	fmt.Printf("tg id:     %d\n", u.TgID)
	fmt.Printf("имя:       %s %s\n", deref(u.FirstName), deref(u.LastName))
	fmt.Printf("username:  %s\n", deref(u.Username))
	fmt.Printf("телефон:   %s\n", deref(u.PhoneNumber))
	fmt.Printf("создан:    %s\n", format.Date(u.CreatedAt))
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
