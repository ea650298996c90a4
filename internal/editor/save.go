package editor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/whattoeat/client_layer/internal/api"
)

// StepError records one staged step that failed to persist during the
// create-to-edit transition.
type StepError struct {
	Title string
	Err   error
}

func (s StepError) Error() string {
	return fmt.Sprintf("step %q: %v", s.Title, s.Err)
}

// SaveResult reports the outcome of a save.
type SaveResult struct {
	RecipeID string
	// Created is true when this save created the recipe (and the session
	// transitioned from Creating to Editing).
	Created bool
	// StepErrors holds the staged steps that failed to persist after a
	// successful create. The recipe itself exists regardless.
	StepErrors []StepError
}

// Save validates the scalar fields and submits them together with the
// category set and ingredient quantities as one request.
//
// In Creating mode a successful create is followed by a sequential replay of
// the staged steps against the new recipe ID, in the order they were staged.
// A failed step is reported in SaveResult.StepErrors and does not abort the
// remaining steps or roll back the recipe. The session then transitions to
// Editing mode for the new ID; from that point it behaves exactly like a
// session opened on the existing recipe.
//
// On any scalar-save failure the working state is left untouched, so nothing
// the user entered is lost.
func (e *Editor) Save(ctx context.Context) (*SaveResult, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	pairs := make([]api.IngredientAmount, 0, len(e.rows))
	for _, r := range e.rows {
		pairs = append(pairs, api.IngredientAmount{IngredientID: r.IngredientID, Amount: r.Amount})
	}

	if e.mode == Editing {
		detail, err := e.recipes.Update(ctx, e.recipeID, api.RecipeUpdate{
			Title:       &e.Form.Title,
			PhotoURL:    &e.Form.PhotoURL,
			Description: &e.Form.Description,
			Protein:     e.Form.Protein,
			Fat:         e.Form.Fat,
			Carbs:       e.Form.Carbs,
			PrepTime:    &e.Form.PrepTime,
			CookTime:    &e.Form.CookTime,
			Difficulty:  &e.Form.Difficulty,
			Servings:    &e.Form.Servings,
			Slug:        &e.Form.Slug,
			IsActive:    &e.Form.IsActive,
			Categories:  e.Categories(),
			Ingredients: pairs,
		})
		if err != nil {
			return nil, err
		}
		return &SaveResult{RecipeID: detail.ID}, nil
	}

	detail, err := e.recipes.Create(ctx, api.RecipeCreate{
		Title:         e.Form.Title,
		PhotoURL:      e.Form.PhotoURL,
		Description:   e.Form.Description,
		Protein:       e.Form.Protein,
		Fat:           e.Form.Fat,
		Carbs:         e.Form.Carbs,
		PrepTime:      e.Form.PrepTime,
		CookTime:      e.Form.CookTime,
		Difficulty:    e.Form.Difficulty,
		Servings:      e.Form.Servings,
		Slug:          e.Form.Slug,
		IsActive:      e.Form.IsActive,
		IngredientIDs: pairs,
		CategoryIDs:   e.Categories(),
	})
	if err != nil {
		return nil, err
	}

	result := &SaveResult{RecipeID: detail.ID, Created: true}

	// Replay staged steps one at a time so each failure attributes to a
	// single step. Failures are non-fatal: the recipe stays created.
	for _, ls := range e.localSteps {
		_, stepErr := e.steps.Create(ctx, api.StepCreate{
			RecipeID:    detail.ID,
			StepNumber:  ls.StepNumber,
			Title:       ls.Title,
			Description: ls.Description,
			PhotoURL:    ls.PhotoURL,
		})
		if stepErr != nil {
			e.log.Warn("staged step failed to persist",
				zap.String("recipe_id", detail.ID),
				zap.String("title", ls.Title),
				zap.Error(stepErr))
			result.StepErrors = append(result.StepErrors, StepError{Title: ls.Title, Err: stepErr})
		}
	}

	// Create -> Edit transition. The hydration guard is primed with the new
	// ID so a later Hydrate does not clobber the just-entered working state.
	e.mode = Editing
	e.recipeID = detail.ID
	e.lastHydratedID = detail.ID
	e.localSteps = nil

	if err := e.refreshSteps(ctx); err != nil {
		e.log.Warn("refresh steps after create", zap.Error(err))
	}
	return result, nil
}
