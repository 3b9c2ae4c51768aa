package wizard

import (
	"reflect"
	"testing"
)

func TestNewDraftDefaults(t *testing.T) {
	draft := NewDraft()

	if draft.SessionID == "" {
		t.Error("expected a session id to be generated")
	}
	if draft.NumDays != 7 {
		t.Errorf("expected default of 7 days, got %d", draft.NumDays)
	}
	if draft.StartDate != TodayISO() {
		t.Errorf("expected start date %q, got %q", TodayISO(), draft.StartDate)
	}
	if len(draft.RecipeIDs) != 0 || len(draft.SideIDs) != 0 {
		t.Error("expected empty selections in a fresh draft")
	}

	other := NewDraft()
	if other.SessionID == draft.SessionID {
		t.Error("expected distinct session ids for distinct drafts")
	}
}

func TestSetNumDaysClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{7, 7},
		{14, 14},
		{20, 14},
	}
	for _, tt := range tests {
		got := NewDraft().SetNumDays(tt.in).NumDays
		if got != tt.want {
			t.Errorf("SetNumDays(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestToggleRecipeIdempotence(t *testing.T) {
	state := NewDraft()

	once := state.ToggleRecipe("a")
	if !once.HasRecipe("a") {
		t.Fatal("expected 'a' selected after one toggle")
	}

	twice := once.ToggleRecipe("a")
	if twice.HasRecipe("a") {
		t.Error("expected 'a' deselected after double toggle")
	}
	if !reflect.DeepEqual(twice.RecipeIDs, state.RecipeIDs) {
		t.Errorf("double toggle changed the selection: %v vs %v", twice.RecipeIDs, state.RecipeIDs)
	}
	if twice.NumDays != state.NumDays || twice.StartDate != state.StartDate {
		t.Error("toggle changed unrelated fields")
	}
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	state := NewDraft().ToggleRecipe("a")

	_ = state.ToggleRecipe("b")
	if state.HasRecipe("b") {
		t.Error("ToggleRecipe mutated its receiver")
	}

	_ = state.ToggleSide("s")
	if state.HasSide("s") {
		t.Error("ToggleSide mutated its receiver")
	}
}

func TestToggleRecipeAndSideAreIndependent(t *testing.T) {
	state := NewDraft().ToggleRecipe("x").ToggleSide("x")

	if !state.HasRecipe("x") || !state.HasSide("x") {
		t.Fatal("expected 'x' in both selections")
	}

	state = state.ToggleRecipe("x")
	if state.HasRecipe("x") {
		t.Error("expected 'x' removed from recipes")
	}
	if !state.HasSide("x") {
		t.Error("removing from recipes should not touch sides")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"empty", nil},
		{"single", []string{"abc"}},
		{"several", []string{"r1", "r2", "r3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := map[string]struct{}{}
			for _, id := range tt.ids {
				set[id] = struct{}{}
			}

			decoded := DecodeIDs(EncodeIDs(set))
			if !reflect.DeepEqual(decoded, set) {
				t.Errorf("round trip lost data: %v -> %v", set, decoded)
			}
		})
	}
}

func TestDecodeFiltersEmptySegments(t *testing.T) {
	if got := DecodeIDs(""); len(got) != 0 {
		t.Errorf("expected empty set from empty string, got %v", got)
	}
	if got := DecodeIDs(",,a,,b,"); len(got) != 2 {
		t.Errorf("expected 2 ids with empty segments dropped, got %v", got)
	}
}

func TestEncodeEmptySet(t *testing.T) {
	if got := EncodeIDs(map[string]struct{}{}); got != "" {
		t.Errorf("expected empty string for empty set, got %q", got)
	}
}

func TestSortedIDs(t *testing.T) {
	state := NewDraft().ToggleRecipe("c").ToggleRecipe("a").ToggleRecipe("b")
	want := []string{"a", "b", "c"}
	if got := state.SortedRecipeIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
