package fetch

import (
	"errors"
	"testing"
)

func TestOptimisticKeepsConfirmedChange(t *testing.T) {
	list := []string{"a", "b", "c"}

	err := Optimistic(
		func() []string { return list },
		func(v []string) { list = v },
		func(v []string) []string { return append(v[:1:1], v[2:]...) },
		func() error { return nil },
	)
	if err != nil {
		t.Fatalf("Optimistic() error = %v", err)
	}
	if len(list) != 2 || list[1] != "c" {
		t.Errorf("list = %v, want [a c]", list)
	}
}

func TestOptimisticRevertsOnFailure(t *testing.T) {
	list := []string{"a", "b", "c"}
	fail := errors.New("backend rejected")

	applied := false
	err := Optimistic(
		func() []string { return list },
		func(v []string) { list = v },
		func(v []string) []string {
			applied = true
			return v[:1]
		},
		func() error { return fail },
	)
	if !errors.Is(err, fail) {
		t.Fatalf("Optimistic() error = %v, want %v", err, fail)
	}
	if !applied {
		t.Fatal("apply was never called")
	}
	if len(list) != 3 {
		t.Errorf("list = %v, want original restored", list)
	}
}
