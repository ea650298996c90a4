package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/whattoeat/client_layer/internal/api"
	"github.com/whattoeat/client_layer/internal/format"
)

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func footer[T any](page *api.Page[T]) {
	fmt.Printf("%d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)
	if page.HasMore() {
		fmt.Printf(" (more: -offset %d)", page.Offset+page.Limit)
	}
	fmt.Println()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printRecipes(page *api.Page[api.Recipe]) {
	w := table()
	fmt.Fprintln(w, "ID\tTITLE\tSLUG\tDIFFICULTY\tTIME\tACTIVE")
	for _, r := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\n",
			r.ID, r.Title, r.Slug, format.Difficulty(r.Difficulty),
			format.Minutes(r.PrepTime+r.CookTime), r.IsActive)
	}
	w.Flush()
	footer(page)
}

func printCategories(page *api.Page[api.Category]) {
	w := table()
	fmt.Fprintln(w, "ID\tTITLE\tSLUG\tACTIVE")
	for _, c := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", c.ID, c.Title, c.Slug, c.IsActive)
	}
	w.Flush()
	footer(page)
}

func printIngredients(page *api.Page[api.Ingredient]) {
	w := table()
	fmt.Fprintln(w, "ID\tTITLE\tUNIT\tSLUG\tACTIVE")
	for _, i := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", i.ID, i.Title, i.UnitOfMeasurement, i.Slug, i.IsActive)
	}
	w.Flush()
	footer(page)
}

func printSteps(page *api.Page[api.Step]) {
	w := table()
	fmt.Fprintln(w, "ID\tRECIPE\t#\tTITLE")
	for _, s := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.RecipeID, s.StepNumber, s.Title)
	}
	w.Flush()
	footer(page)
}

func printUsers(page *api.Page[api.User]) {
	w := table()
	fmt.Fprintln(w, "ID\tTG ID\tUSERNAME\tNAME\tCREATED")
	for _, u := range page.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s %s\t%s\n",
			u.ID, u.TgID, strOrDash(u.Username), strOrDash(u.FirstName), strOrDash(u.LastName),
			format.Date(u.CreatedAt))
	}
	w.Flush()
	footer(page)
}

func printImages(page *api.Page[api.Image]) {
	w := table()
	fmt.Fprintln(w, "ID\tFILENAME\tURL\tCREATED")
	for _, img := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			img.ID, strOrDash(img.Filename), format.ImageURL(img.URL), format.Date(img.CreatedAt))
	}
	w.Flush()
	footer(page)
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func sortedSteps(steps []api.Step) []api.Step {
	out := make([]api.Step, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out
}
