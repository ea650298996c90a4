package main

import (
	"testing"

	"github.com/whattoeat/client_layer/internal/api"
)

func TestSortedSteps(t *testing.T) {
	steps := []api.Step{
		{StepNumber: 3, Title: "третий"},
		{StepNumber: 1, Title: "первый"},
		{StepNumber: 2, Title: "второй"},
	}

	got := sortedSteps(steps)
	for i, want := range []string{"первый", "второй", "третий"} {
		if got[i].Title != want {
			t.Errorf("step %d = %q, want %q", i, got[i].Title, want)
		}
	}
	if steps[0].StepNumber != 3 {
		t.Error("input slice must not be reordered")
	}
}
