package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/fetch"
)

// browse is an interactive search loop. Every input line starts a new list
// query in the background; a result is only shown when no newer query has
// started since (last-request-wins, like a search box dropping stale
// responses). "fav N" toggles the favorite flag of the Nth listed recipe
// optimistically: the local list flips first and is restored if the call
// fails.
func browse(ctx context.Context, client *api.Client) error {
	fmt.Println("поиск рецептов — введите запрос, `fav N` для избранного, пустая строка — выход")

	latest := fetch.NewLatest()
	var mu sync.Mutex
	var current []api.RecipeListItem

	search := func(query string) {
		fetch.Do(latest, "recipes", func() (*api.Page[api.RecipeListItem], error) {
			return client.Recipes().List(ctx, api.BrowseParams{Search: query, Limit: 10})
		}, func(page *api.Page[api.RecipeListItem], err error) {
			if err != nil {
				fmt.Printf("ошибка поиска: %v\n> ", err)
				return
			}
			mu.Lock()
			current = page.Items
			items := current
			mu.Unlock()
			show(items)
			fmt.Print("> ")
		})
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if n, ok := strings.CutPrefix(line, "fav "); ok {
			mu.Lock()
			idx, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil || idx < 1 || idx > len(current) {
				mu.Unlock()
				fmt.Println("нет такого номера")
				continue
			}
			if err := toggleFavorite(ctx, client, &current, idx-1); err != nil {
				fmt.Printf("не получилось: %v\n", err)
			}
			items := current
			mu.Unlock()
			show(items)
			continue
		}

		go search(line)
	}
	return scanner.Err()
}

func toggleFavorite(ctx context.Context, client *api.Client, list *[]api.RecipeListItem, idx int) error {
	target := (*list)[idx]
	return fetch.Optimistic(
		func() []api.RecipeListItem { return *list },
		func(v []api.RecipeListItem) { *list = v },
		func(v []api.RecipeListItem) []api.RecipeListItem {
			out := make([]api.RecipeListItem, len(v))
			copy(out, v)
			out[idx].IsFavorited = !out[idx].IsFavorited
			return out
		},
		func() error {
			var err error
			if target.IsFavorited {
				_, err = client.Recipes().RemoveFavorite(ctx, target.ID)
			} else {
				_, err = client.Recipes().AddFavorite(ctx, target.ID)
			}
			return err
		},
	)
}

func show(items []api.RecipeListItem) {
	if len(items) == 0 {
		fmt.Println("ничего не найдено")
		return
	}
	for i, r := range items {
		mark := " "
		if r.IsFavorited {
			mark = "♥"
		}
		fmt.Printf("%2d %s %s\n", i+1, mark, r.Title)
	}
}
