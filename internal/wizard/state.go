// Package wizard holds the in-progress meal plan draft as an immutable
// value. The client owns the draft and round-trips it through navigable
// state (query parameters); the server only decodes, validates and
// re-encodes it until the final create-plan call.
package wizard

import (
	"sort"
	"strings"

	"plateful/internal/domain"

	"github.com/google/uuid"
)

// Default draft values for a fresh "new meal plan" session.
const DefaultNumDays = 7

// State is the draft being built through the wizard steps. All
// transition methods return a new State; the receiver is never mutated,
// so a step component can hold on to the previous value for free.
type State struct {
	SessionID string
	NumDays   int
	StartDate string // ISO calendar date, "2006-01-02"
	RecipeIDs map[string]struct{}
	SideIDs   map[string]struct{}
}

// NewDraft creates a fresh draft with a random session id, a 7-day
// span and today's date.
func NewDraft() State {
	return State{
		SessionID: uuid.NewString(),
		NumDays:   DefaultNumDays,
		StartDate: TodayISO(),
		RecipeIDs: map[string]struct{}{},
		SideIDs:   map[string]struct{}{},
	}
}

// SetNumDays returns the state with n clamped into [MinPlanDays, MaxPlanDays].
func (s State) SetNumDays(n int) State {
	if n < domain.MinPlanDays {
		n = domain.MinPlanDays
	}
	if n > domain.MaxPlanDays {
		n = domain.MaxPlanDays
	}
	s.NumDays = n
	return s
}

// SetStartDate returns the state with the given start date.
func (s State) SetStartDate(date string) State {
	s.StartDate = date
	return s
}

// ToggleRecipe adds the id to the main selection if absent, removes it
// if present. Toggling twice restores the original selection.
func (s State) ToggleRecipe(id string) State {
	s.RecipeIDs = toggle(s.RecipeIDs, id)
	return s
}

// ToggleSide is ToggleRecipe for the side-dish selection.
func (s State) ToggleSide(id string) State {
	s.SideIDs = toggle(s.SideIDs, id)
	return s
}

func toggle(set map[string]struct{}, id string) map[string]struct{} {
	out := make(map[string]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

// HasRecipe reports whether id is in the main selection.
func (s State) HasRecipe(id string) bool {
	_, ok := s.RecipeIDs[id]
	return ok
}

// HasSide reports whether id is in the side selection.
func (s State) HasSide(id string) bool {
	_, ok := s.SideIDs[id]
	return ok
}

// EncodeIDs serializes a selection set for transport as a comma-joined
// string. Encoding is sorted so equal sets encode identically, but
// callers must only rely on the set round-tripping, not on the order.
func EncodeIDs(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// DecodeIDs parses a comma-joined id string back into a set. Empty
// segments are dropped, so "" decodes to the empty set rather than a
// set containing an empty id.
func DecodeIDs(encoded string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, id := range strings.Split(encoded, ",") {
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// SortedRecipeIDs returns the main selection as a sorted slice.
func (s State) SortedRecipeIDs() []string {
	return sortedIDs(s.RecipeIDs)
}

// SortedSideIDs returns the side selection as a sorted slice.
func (s State) SortedSideIDs() []string {
	return sortedIDs(s.SideIDs)
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
