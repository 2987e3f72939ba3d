// package session holds the selection state behind the playlist builder.
//
// State is a value. Every user action is an [Event] applied by [Reduce], which returns the next
// State and the [Command]s (notifications, persistence requests) the caller must carry out.
// Nothing in this package performs I/O.
package session

import (
	"fmt"
	"maps"
	"strings"

	"github.com/desertthunder/popmix/internal/models"
	"github.com/desertthunder/popmix/internal/shared"
)

// DefaultBulkLimit is the largest filtered set Select All / Deselect All will act on.
const DefaultBulkLimit = 20

// Item is one entry of the track list.
type Item struct {
	Label string
	ID    int64
}

// State is the selection session: an immutable base list, the filter over it, and the selected IDs.
//
// Filter and selection are independent; the zero State is the empty session.
type State struct {
	tracks   []models.Track
	items    []Item
	filtered []Item
	selected map[int64]struct{}
	query    string
	limit    int
	creating bool
}

// New loads tracks into a fresh session: everything visible, nothing selected.
//
// A limit of zero or less uses [DefaultBulkLimit].
func New(tracks []models.Track, limit int) State {
	if limit <= 0 {
		limit = DefaultBulkLimit
	}

	items := make([]Item, len(tracks))
	for i, track := range tracks {
		items[i] = Item{Label: track.Label(), ID: track.ID}
	}

	return State{
		tracks:   tracks,
		items:    items,
		filtered: items,
		selected: map[int64]struct{}{},
		limit:    limit,
	}
}

// Items returns every item in catalog order.
func (s State) Items() []Item { return s.items }

// Filtered returns the items matching the current query.
func (s State) Filtered() []Item { return s.filtered }

// Query returns the active search text.
func (s State) Query() string { return s.query }

// Limit returns the bulk action limit.
func (s State) Limit() int { return s.limit }

// Creating reports whether a playlist is being persisted.
func (s State) Creating() bool { return s.creating }

// IsSelected reports whether id is in the selected set.
func (s State) IsSelected(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedCount returns the size of the selected set.
func (s State) SelectedCount() int { return len(s.selected) }

// SelectedItems returns the selected items in catalog order, for the selection panel.
func (s State) SelectedItems() []Item {
	var out []Item
	for _, item := range s.items {
		if s.IsSelected(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// Search recomputes the filtered set: items whose label contains query, ignoring case.
//
// The selection is not affected.
func (s State) Search(query string) State {
	s.query = query
	if query == "" {
		s.filtered = s.items
		return s
	}

	filtered := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if Matches(item.Label, query) {
			filtered = append(filtered, item)
		}
	}
	s.filtered = filtered
	return s
}

// Matches reports whether label contains query, ignoring case.
func Matches(label, query string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}

// SelectAll adds every filtered item to the selection.
//
// Fails with [shared.ErrBulkLimit] and returns s unchanged when the filtered set exceeds the limit.
func (s State) SelectAll() (State, error) {
	if len(s.filtered) > s.limit {
		return s, bulkLimitError("select", s.limit)
	}
	selected := s.cloneSelected()
	for _, item := range s.filtered {
		selected[item.ID] = struct{}{}
	}
	s.selected = selected
	return s, nil
}

// DeselectAll removes every filtered item from the selection, with the same limit as [State.SelectAll].
func (s State) DeselectAll() (State, error) {
	if len(s.filtered) > s.limit {
		return s, bulkLimitError("deselect", s.limit)
	}
	selected := s.cloneSelected()
	for _, item := range s.filtered {
		delete(selected, item.ID)
	}
	s.selected = selected
	return s, nil
}

// Toggle adds id to the selection, or removes it when already selected.
func (s State) Toggle(id int64) State {
	selected := s.cloneSelected()
	if _, ok := selected[id]; ok {
		delete(selected, id)
	} else {
		selected[id] = struct{}{}
	}
	s.selected = selected
	return s
}

func (s State) cloneSelected() map[int64]struct{} {
	if s.selected == nil {
		return map[int64]struct{}{}
	}
	return maps.Clone(s.selected)
}

// ClearSelection empties the selected set.
func (s State) ClearSelection() State {
	s.selected = map[int64]struct{}{}
	return s
}

// Selection projects the selected IDs back onto the loaded tracks.
//
// Labels are returned for every selected row; a track listed under several artists contributes its URI once.
// IDs with no loaded track are skipped.
func (s State) Selection() (labels []string, uris []string) {
	seen := map[int64]bool{}
	for _, track := range s.tracks {
		if !s.IsSelected(track.ID) {
			continue
		}
		labels = append(labels, track.Label())
		if !seen[track.ID] {
			seen[track.ID] = true
			uris = append(uris, track.URI)
		}
	}
	return labels, uris
}

// ValidationError is a rejected user action. Its message is meant for the user.
type ValidationError struct {
	Reason string
	Kind   error // [shared.ErrValidation] or [shared.ErrBulkLimit]
}

func (e *ValidationError) Error() string { return e.Reason }
func (e *ValidationError) Unwrap() error { return e.Kind }

func bulkLimitError(action string, limit int) error {
	return &ValidationError{
		Reason: fmt.Sprintf("Can not %s more than %d items in one go", action, limit),
		Kind:   shared.ErrBulkLimit,
	}
}

// Validate checks a playlist submission: a name that is not blank and a non-empty selection.
//
// The returned name is trimmed.
func Validate(name string, uris []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Reason: "Playlist name can't be empty", Kind: shared.ErrValidation}
	}
	if len(uris) == 0 {
		return "", &ValidationError{Reason: "Selection can't be empty", Kind: shared.ErrValidation}
	}
	return name, nil
}
