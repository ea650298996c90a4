// Package editor implements the aggregate recipe editing workflow: one
// recipe's scalar fields, category memberships, ingredient quantities and
// ordered steps, reconciled across the create and edit lifecycles.
//
// The asymmetry the editor exists to absorb is that a step requires an
// existing parent recipe. In Creating mode steps are staged locally and
// replayed against the backend once the create call has produced a recipe ID;
// in Editing mode step operations go straight to the backend.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whattoeat/client_layer/internal/api"
)

// Mode is the editing session lifecycle state.
type Mode int

const (
	// Creating is the initial state when no recipe ID was supplied. Steps
	// are staged in memory; nothing has been sent to the backend.
	Creating Mode = iota
	// Editing is the state for an existing recipe. Step operations are
	// individual backend calls.
	Editing
)

func (m Mode) String() string {
	if m == Creating {
		return "creating"
	}
	return "editing"
}

var (
	// ErrDuplicateIngredient is returned when a row for the same
	// ingredient already exists in the working set.
	ErrDuplicateIngredient = errors.New("editor: ingredient already added")
	// ErrUnknownIngredient is returned when updating a row that is not in
	// the working set.
	ErrUnknownIngredient = errors.New("editor: ingredient not in working set")
	// ErrNotCreating is returned for local-step operations outside
	// Creating mode. Once a recipe exists its steps live on the backend.
	ErrNotCreating = errors.New("editor: local steps only exist before the recipe is created")
	// ErrNotEditing is returned for backend step operations before the
	// recipe exists.
	ErrNotEditing = errors.New("editor: recipe does not exist yet")
)

// IngredientRow is one entry of the working ingredient set, mirroring a
// recipe_ingredients link. At most one row per ingredient ID.
type IngredientRow struct {
	IngredientID string
	Title        string
	Unit         string
	Amount       float64
}

// LocalStep is a step authored before the parent recipe exists, identified by
// a client-generated ID.
type LocalStep struct {
	LocalID     string
	StepNumber  int
	Title       string
	Description *string
	PhotoURL    *string
}

// Form holds the recipe's scalar fields.
type Form struct {
	Title       string   `validate:"required"`
	Slug        string   `validate:"required"`
	PhotoURL    string
	Description string   `validate:"required"`
	PrepTime    int      `validate:"min=0"`
	CookTime    int      `validate:"min=0"`
	Difficulty  string   `validate:"required,oneof=easy medium hard"`
	Servings    string   `validate:"required"`
	Protein     *float64 `validate:"omitempty,min=0"`
	Fat         *float64 `validate:"omitempty,min=0"`
	Carbs       *float64 `validate:"omitempty,min=0"`
	IsActive    bool
}

// RecipeService is the slice of the recipes repository the editor uses.
// *api.RecipesClient satisfies it.
type RecipeService interface {
	GetAdmin(ctx context.Context, id string) (*api.RecipeDetail, error)
	Create(ctx context.Context, body api.RecipeCreate) (*api.RecipeDetail, error)
	Update(ctx context.Context, id string, body api.RecipeUpdate) (*api.RecipeDetail, error)
}

// StepService is the slice of the steps repository the editor uses.
// *api.StepsClient satisfies it.
type StepService interface {
	Create(ctx context.Context, body api.StepCreate) (*api.Step, error)
	Update(ctx context.Context, id string, body api.StepUpdate) (*api.Step, error)
	Delete(ctx context.Context, id string) (*api.DeleteResponse, error)
}

// Deps are the editor's collaborators.
type Deps struct {
	Recipes RecipeService
	Steps   StepService
	Logger  *zap.Logger
}

// Editor is one recipe editing session.
type Editor struct {
	recipes  RecipeService
	steps    StepService
	log      *zap.Logger
	validate *validator.Validate

	mode           Mode
	recipeID       string
	lastHydratedID string

	Form        Form
	categoryIDs []string
	rows        []IngredientRow
	localSteps  []LocalStep
	serverSteps []api.Step
}

// New starts a Creating session for a recipe that does not exist yet.
func New(deps Deps) *Editor {
	return newEditor(deps, Creating, "")
}

// Open starts an Editing session for an existing recipe. Call Hydrate to seed
// the working state from the backend.
func Open(deps Deps, recipeID string) *Editor {
	return newEditor(deps, Editing, recipeID)
}

func newEditor(deps Deps, mode Mode, recipeID string) *Editor {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		recipes:  deps.Recipes,
		steps:    deps.Steps,
		log:      logger,
		validate: validator.New(),
		mode:     mode,
		recipeID: recipeID,
		Form:     Form{Difficulty: "medium", IsActive: true},
	}
}

// Mode returns the session lifecycle state.
func (e *Editor) Mode() Mode { return e.mode }

// RecipeID returns the recipe ID, or "" in Creating mode.
func (e *Editor) RecipeID() string { return e.recipeID }

// Hydrate seeds the working state from the backend in Editing mode. It runs
// once per recipe ID: refetches after the first seed leave user edits alone.
func (e *Editor) Hydrate(ctx context.Context) error {
	if e.mode != Editing {
		return nil
	}
	if e.recipeID == e.lastHydratedID {
		return nil
	}

	detail, err := e.recipes.GetAdmin(ctx, e.recipeID)
	if err != nil {
		return fmt.Errorf("editor: hydrate recipe %s: %w", e.recipeID, err)
	}
	e.lastHydratedID = detail.ID

	e.Form = Form{
		Title:       detail.Title,
		Slug:        detail.Slug,
		PhotoURL:    detail.PhotoURL,
		Description: detail.Description,
		PrepTime:    detail.PrepTime,
		CookTime:    detail.CookTime,
		Difficulty:  detail.Difficulty,
		Servings:    detail.Servings,
		Protein:     detail.Protein,
		Fat:         detail.Fat,
		Carbs:       detail.Carbs,
		IsActive:    detail.IsActive,
	}
	e.categoryIDs = e.categoryIDs[:0]
	for _, c := range detail.Categories {
		e.categoryIDs = append(e.categoryIDs, c.ID)
	}
	e.rows = e.rows[:0]
	for _, ri := range detail.RecipeIngredients {
		row := IngredientRow{IngredientID: ri.IngredientID, Title: "Unknown", Amount: ri.Amount}
		if ri.Ingredient != nil {
			row.Title = ri.Ingredient.Title
			row.Unit = ri.Ingredient.UnitOfMeasurement
		}
		e.rows = append(e.rows, row)
	}
	e.serverSteps = detail.Steps
	return nil
}

// Ingredient working set.

// AddIngredient appends a row, rejecting a second row for the same
// ingredient.
func (e *Editor) AddIngredient(row IngredientRow) error {
	for _, r := range e.rows {
		if r.IngredientID == row.IngredientID {
			return ErrDuplicateIngredient
		}
	}
	e.rows = append(e.rows, row)
	return nil
}

// RemoveIngredient drops the row for the given ingredient, if present.
func (e *Editor) RemoveIngredient(ingredientID string) {
	kept := e.rows[:0]
	for _, r := range e.rows {
		if r.IngredientID != ingredientID {
			kept = append(kept, r)
		}
	}
	e.rows = kept
}

// SetIngredientAmount replaces the amount of an existing row.
func (e *Editor) SetIngredientAmount(ingredientID string, amount float64) error {
	for i := range e.rows {
		if e.rows[i].IngredientID == ingredientID {
			e.rows[i].Amount = amount
			return nil
		}
	}
	return ErrUnknownIngredient
}

// Ingredients returns the working set in insertion order.
func (e *Editor) Ingredients() []IngredientRow {
	out := make([]IngredientRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// Categories.

// ToggleCategory flips membership of a category in the selected set.
func (e *Editor) ToggleCategory(id string) {
	for i, cur := range e.categoryIDs {
		if cur == id {
			e.categoryIDs = append(e.categoryIDs[:i], e.categoryIDs[i+1:]...)
			return
		}
	}
	e.categoryIDs = append(e.categoryIDs, id)
}

// CategorySelected reports membership of a category in the selected set.
func (e *Editor) CategorySelected(id string) bool {
	for _, cur := range e.categoryIDs {
		if cur == id {
			return true
		}
	}
	return false
}

// Categories returns the selected category IDs.
func (e *Editor) Categories() []string {
	out := make([]string, len(e.categoryIDs))
	copy(out, e.categoryIDs)
	return out
}

// Local steps (Creating mode).

// NextStepNumber suggests the number for the next staged step.
func (e *Editor) NextStepNumber() int { return len(e.localSteps) + 1 }

// AddLocalStep stages a step for replay after the recipe is created. A
// non-positive number takes the next sequential suggestion.
func (e *Editor) AddLocalStep(step LocalStep) (LocalStep, error) {
	if e.mode != Creating {
		return LocalStep{}, ErrNotCreating
	}
	if step.LocalID == "" {
		step.LocalID = uuid.NewString()
	}
	if step.StepNumber <= 0 {
		step.StepNumber = e.NextStepNumber()
	}
	e.localSteps = append(e.localSteps, step)
	return step, nil
}

// UpdateLocalStep replaces the staged step with the same local ID.
func (e *Editor) UpdateLocalStep(step LocalStep) error {
	if e.mode != Creating {
		return ErrNotCreating
	}
	for i := range e.localSteps {
		if e.localSteps[i].LocalID == step.LocalID {
			e.localSteps[i] = step
			return nil
		}
	}
	return fmt.Errorf("editor: local step %s not found", step.LocalID)
}

// RemoveLocalStep drops the staged step with the given local ID.
func (e *Editor) RemoveLocalStep(localID string) error {
	if e.mode != Creating {
		return ErrNotCreating
	}
	kept := e.localSteps[:0]
	for _, s := range e.localSteps {
		if s.LocalID != localID {
			kept = append(kept, s)
		}
	}
	e.localSteps = kept
	return nil
}

// LocalSteps returns the staged steps sorted by step number for display.
// Submission order on save is insertion order, not this order.
func (e *Editor) LocalSteps() []LocalStep {
	out := make([]LocalStep, len(e.localSteps))
	copy(out, e.localSteps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out
}

// Backend steps (Editing mode). Each mutation refetches the parent's step
// list rather than patching it locally, so server-side normalization of
// numbering or fields is always reflected.

// AddStep creates a step on the backend.
func (e *Editor) AddStep(ctx context.Context, body api.StepCreate) error {
	if e.mode != Editing {
		return ErrNotEditing
	}
	body.RecipeID = e.recipeID
	if body.StepNumber <= 0 {
		body.StepNumber = len(e.serverSteps) + 1
	}
	if _, err := e.steps.Create(ctx, body); err != nil {
		return err
	}
	return e.refreshSteps(ctx)
}

// UpdateStep patches a step on the backend.
func (e *Editor) UpdateStep(ctx context.Context, stepID string, body api.StepUpdate) error {
	if e.mode != Editing {
		return ErrNotEditing
	}
	if _, err := e.steps.Update(ctx, stepID, body); err != nil {
		return err
	}
	return e.refreshSteps(ctx)
}

// DeleteStep deletes a step on the backend.
func (e *Editor) DeleteStep(ctx context.Context, stepID string) error {
	if e.mode != Editing {
		return ErrNotEditing
	}
	if _, err := e.steps.Delete(ctx, stepID); err != nil {
		return err
	}
	return e.refreshSteps(ctx)
}

// Steps returns the recipe's steps sorted ascending by step number.
func (e *Editor) Steps() []api.Step {
	out := make([]api.Step, len(e.serverSteps))
	copy(out, e.serverSteps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out
}

func (e *Editor) refreshSteps(ctx context.Context) error {
	detail, err := e.recipes.GetAdmin(ctx, e.recipeID)
	if err != nil {
		return fmt.Errorf("editor: refresh steps: %w", err)
	}
	e.serverSteps = detail.Steps
	return nil
}

// Validate checks the scalar fields. The returned error is a
// validator.ValidationErrors carrying field-scoped failures.
func (e *Editor) Validate() error {
	return e.validate.Struct(e.Form)
}
